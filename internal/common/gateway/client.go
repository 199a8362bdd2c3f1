// Package gateway implements the client for the upstream chat-completion
// service. Every action handler performs exactly one call through it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadflow/internal/common/config"
	apperrors "leadflow/internal/common/errors"
	"leadflow/internal/common/logger"
	"leadflow/pkg/catalog"
)

// Message is one entry of the chat-completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the OpenAI-style request body: exactly two messages,
// system first.
type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Client struct {
	cfg        config.GatewayConfig
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg config.GatewayConfig, log logger.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: config.GetDuration(cfg.Timeout),
		},
		logger: log.With(map[string]interface{}{
			"component": "gateway",
		}),
	}
}

// ModelFor resolves a catalog tier to the configured model identifier.
func (c *Client) ModelFor(tier catalog.ModelTier) string {
	if tier == catalog.TierDeep {
		return c.cfg.DeepModel
	}
	return c.cfg.FastModel
}

// Complete posts a system/user message pair and returns the raw text of the
// first choice. The API key is read at call time so a missing key surfaces as
// a configuration error on the action, not a startup crash.
func (c *Client) Complete(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", apperrors.NewConfigError("gateway.api_key is not set")
	}

	body, err := json.Marshal(completionRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError(0, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return "", apperrors.NewRateLimitedError(string(snippet))
		case http.StatusPaymentRequired:
			return "", apperrors.NewQuotaExceededError(string(snippet))
		default:
			return "", apperrors.NewUpstreamError(resp.StatusCode, string(snippet))
		}
	}

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", apperrors.NewUpstreamError(resp.StatusCode, fmt.Sprintf("decode completion: %v", err))
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "", &apperrors.ActionError{
			Kind:      apperrors.KindUpstream,
			Message:   "Empty response from upstream gateway",
			Timestamp: time.Now().UTC(),
		}
	}

	c.logger.Debug("completion received", map[string]interface{}{
		"model":      model,
		"durationMs": time.Since(started).Milliseconds(),
	})

	return completion.Choices[0].Message.Content, nil
}
