package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markdave123-py/reflectcoach/internal/config"
	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/core/llm"
	"github.com/markdave123-py/reflectcoach/internal/core/secrets"
	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
	"github.com/markdave123-py/reflectcoach/internal/services"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		CorsOrigins:    []string{"http://localhost:5173"},
		EngineProvider: config.ProviderOpenAI,
		EngineModel:    "gpt-4",
		EngineBaseURL:  "http://127.0.0.1:1",
		EngineTimeout:  time.Second,
		OpenAIAPIKey:   "sk-openai",
		GeminiAPIKey:   "gm-key",
	}
}

func TestCredentialProviderSelection(t *testing.T) {
	cfg := testConfig()

	p := newCredentialProvider(cfg, logger.Nop(), aws.Config{})
	require.IsType(t, &secrets.EnvCredential{}, p)
	key, err := p.APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sk-openai", key)

	cfg.EngineProvider = config.ProviderGemini
	key, err = newCredentialProvider(cfg, logger.Nop(), aws.Config{}).APIKey(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gm-key", key)

	cfg.SecretName = "coach/engine"
	assert.IsType(t, &secrets.SecretsManagerCredential{}, newCredentialProvider(cfg, logger.Nop(), aws.Config{}))
}

func TestCredentialProviderMissingKey(t *testing.T) {
	cfg := testConfig()
	cfg.OpenAIAPIKey = ""
	_, err := newCredentialProvider(cfg, logger.Nop(), aws.Config{}).APIKey(context.Background())
	assert.ErrorIs(t, err, core.ErrMissingCredential)
}

func TestReasoningEngineSelection(t *testing.T) {
	cfg := testConfig()
	creds := secrets.NewEnvCredential("k")

	engine, closer := newReasoningEngine(cfg, logger.Nop(), creds)
	assert.IsType(t, &llm.OpenAIChat{}, engine)
	assert.Nil(t, closer)

	cfg.EngineProvider = config.ProviderGemini
	engine, closer = newReasoningEngine(cfg, logger.Nop(), creds)
	assert.IsType(t, &llm.GeminiChat{}, engine)
	require.NotNil(t, closer)
	assert.NoError(t, closer())
}

type nopSessions struct{}

func (nopSessions) AdvanceTurn(context.Context, services.TurnRequest) (string, error) {
	return "reply", nil
}
func (nopSessions) ResetConversation(context.Context, string) error { return nil }
func (nopSessions) History(context.Context, string) ([]models.Turn, error) {
	return []models.Turn{}, nil
}

type nopGoals struct{}

func (nopGoals) List(context.Context, string) ([]models.GoalWithChildren, error) {
	return []models.GoalWithChildren{}, nil
}
func (nopGoals) Create(context.Context, string, string, []string) (string, error) {
	return "id-1", nil
}
func (nopGoals) Update(_ context.Context, id string, _ models.GoalUpdate) (*models.Goal, error) {
	return &models.Goal{ID: id}, nil
}
func (nopGoals) Delete(context.Context, string) error { return nil }

func TestServerRoutes(t *testing.T) {
	h := NewServer(testConfig(), logger.Nop(), nopSessions{}, nopGoals{}).Handler()

	cases := []struct {
		method, path, body string
		code               int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodPost, "/chatbot/send_message", `{"message":"hi","user_id":"u1"}`, http.StatusOK},
		{http.MethodGet, "/chatbot/reset_conversation/u1", "", http.StatusOK},
		{http.MethodPost, "/chatbot/reset_conversation/u1", "", http.StatusOK},
		{http.MethodGet, "/chatbot/history/u1", "", http.StatusOK},
		{http.MethodGet, "/goals/u1", "", http.StatusOK},
		{http.MethodPost, "/goals", `{"goal":"g","user_id":"u1"}`, http.StatusCreated},
		{http.MethodPut, "/goals/g1", `{"goal":"g","user_id":"u1"}`, http.StatusOK},
		{http.MethodDelete, "/goals/g1", "", http.StatusOK},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.code, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestServerRootGreeting(t *testing.T) {
	h := NewServer(testConfig(), logger.Nop(), nopSessions{}, nopGoals{}).Handler()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.JSONEq(t, `{"message":"Hello, World!"}`, rec.Body.String())
}

func TestServerCORSPreflight(t *testing.T) {
	h := NewServer(testConfig(), logger.Nop(), nopSessions{}, nopGoals{}).Handler()
	req := httptest.NewRequest(http.MethodOptions, "/goals/g1", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
