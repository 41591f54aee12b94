package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/markdave123-py/reflectcoach/internal/core"
	"github.com/markdave123-py/reflectcoach/internal/models"
	"github.com/markdave123-py/reflectcoach/internal/pkg/logger"
)

const maxErrorBody = 512

// OpenAIChat calls an OpenAI-compatible chat completions endpoint.
type OpenAIChat struct {
	log         *logger.Logger
	creds       core.CredentialProvider
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

func NewOpenAIChat(log *logger.Logger, creds core.CredentialProvider, baseURL, model string, temperature float64, timeout time.Duration) *OpenAIChat {
	return &OpenAIChat{
		log:         log.With("service", "OpenAIChat"),
		creds:       creds,
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type chatCompletionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIChat) Ready(ctx context.Context) error {
	_, err := c.creds.APIKey(ctx)
	return err
}

func (c *OpenAIChat) Complete(ctx context.Context, transcript []models.ChatMessage) (string, error) {
	apiKey, err := c.creds.APIKey(ctx)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(chatCompletionRequest{
		Model:       c.model,
		Messages:    transcript,
		Temperature: c.temperature,
	}); err != nil {
		return "", fmt.Errorf("encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &core.EngineError{Err: err}
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return "", &core.EngineError{Err: fmt.Errorf("read body: %w", readErr)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &core.EngineError{StatusCode: resp.StatusCode, Body: truncate(string(raw), maxErrorBody)}
	}

	var out chatCompletionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", &core.EngineError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", &core.EngineError{Err: errors.New("response carries no message content")}
	}

	c.log.Debug("chat completion finished", "model", c.model, "messages", len(transcript), "took", time.Since(start).String())
	return out.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
