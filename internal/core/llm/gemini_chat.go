package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

// GeminiChat runs the transcript as a Gemini chat session.
// The SDK client is created on first use so a missing key stays a per-request error.
type GeminiChat struct {
	log         *logger.Logger
	creds       core.CredentialProvider
	modelName   string
	temperature float32

	mu        sync.Mutex
	client    *genai.Client
	clientKey string
}

func NewGeminiChat(log *logger.Logger, creds core.CredentialProvider, modelName string, temperature float64) *GeminiChat {
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &GeminiChat{
		log:         log.With("service", "GeminiChat"),
		creds:       creds,
		modelName:   modelName,
		temperature: float32(temperature),
	}
}

func (g *GeminiChat) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		err := g.client.Close()
		g.client = nil
		return err
	}
	return nil
}

func (g *GeminiChat) clientFor(ctx context.Context, apiKey string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil && g.clientKey == apiKey {
		return g.client, nil
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if g.client != nil {
		_ = g.client.Close()
	}
	g.client, g.clientKey = cl, apiKey
	return cl, nil
}

func (g *GeminiChat) Ready(ctx context.Context) error {
	_, err := g.creds.APIKey(ctx)
	return err
}

func (g *GeminiChat) Complete(ctx context.Context, transcript []models.ChatMessage) (string, error) {
	apiKey, err := g.creds.APIKey(ctx)
	if err != nil {
		return "", err
	}

	system, history, last, err := splitTranscript(transcript)
	if err != nil {
		return "", &core.EngineError{Err: err}
	}

	cl, err := g.clientFor(ctx, apiKey)
	if err != nil {
		return "", &core.EngineError{Err: fmt.Errorf("gemini client: %w", err)}
	}

	m := cl.GenerativeModel(g.modelName)
	m.SetTemperature(g.temperature)
	if system != "" {
		m.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	cs := m.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", &core.EngineError{Err: fmt.Errorf("gemini generate: %w", err)}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &core.EngineError{Err: errors.New("gemini returned no candidates")}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", &core.EngineError{Err: errors.New("gemini returned an empty reply")}
	}
	return b.String(), nil
}

// splitTranscript maps a chat transcript onto Gemini's shape: system messages become the
// system instruction, the trailing user message is sent, everything else is history.
// Consecutive messages of the same role are merged because Gemini expects alternation.
func splitTranscript(transcript []models.ChatMessage) (system string, history []*genai.Content, last string, err error) {
	var systemParts []string
	var turns []models.ChatMessage
	for _, m := range transcript {
		if m.Role == "system" {
			systemParts = append(systemParts, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) == 0 || turns[len(turns)-1].Role != string(models.EmitterUser) {
		return "", nil, "", errors.New("transcript must end with a user message")
	}

	lastIdx := len(turns) - 1
	for lastIdx > 0 && turns[lastIdx-1].Role == string(models.EmitterUser) {
		lastIdx--
	}
	var tail []string
	for _, m := range turns[lastIdx:] {
		tail = append(tail, m.Content)
	}

	for _, m := range turns[:lastIdx] {
		role := "user"
		if m.Role == string(models.EmitterAssistant) {
			role = "model"
		}
		if n := len(history); n > 0 && history[n-1].Role == role {
			history[n-1].Parts = append(history[n-1].Parts, genai.Text(m.Content))
			continue
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	return strings.Join(systemParts, "\n"), history, strings.Join(tail, "\n\n"), nil
}
