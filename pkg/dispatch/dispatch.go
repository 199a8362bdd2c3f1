// Package dispatch is the single choke point through which consumers issue
// actions, so error handling and status interpretation live in exactly one
// place. Calls are independent and at-most-once: no retry, no dedup.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "leadflow/internal/common/errors"
)

// Notifier receives the two user-facing failure notifications. Implementations
// render toasts, banners, logs — the dispatcher only guarantees exactly one
// call per recognized failure.
type Notifier interface {
	RateLimited()
	CreditsExhausted()
}

// NopNotifier ignores all notifications.
type NopNotifier struct{}

func (NopNotifier) RateLimited()      {}
func (NopNotifier) CreditsExhausted() {}

type Client struct {
	baseURL    string
	httpClient *http.Client
	notifier   Notifier
	userID     string
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithNotifier installs the notification sink.
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithUserID attaches a user id header to every request so the server can run
// its suspension check and activity logging.
func WithUserID(id string) Option {
	return func(c *Client) { c.userID = id }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		notifier:   NopNotifier{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type responseEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Invoke issues one action. payload must marshal to a JSON object (or be
// nil); its fields are sent as siblings of the action tag. On success the
// unwrapped data document is unmarshaled into out (out may be nil when the
// caller discards the result).
func (c *Client) Invoke(ctx context.Context, action string, payload, out interface{}) error {
	body, err := mergeActionPayload(action, payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/actions", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build action request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke %s: %w", action, err)
	}
	defer resp.Body.Close()

	var env responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("invoke %s: decode response: %w", action, err)
	}

	// The error field is authoritative: check it before trusting data.
	if env.Error != "" || resp.StatusCode != http.StatusOK {
		return c.classify(resp.StatusCode, env.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("invoke %s: decode data: %w", action, err)
	}
	return nil
}

// classify maps the response status to a structured error kind and emits the
// matching notification. Classification is by status code, never by message
// substrings.
func (c *Client) classify(status int, message string) error {
	if message == "" {
		message = fmt.Sprintf("action failed with status %d", status)
	}

	switch status {
	case http.StatusTooManyRequests:
		c.notifier.RateLimited()
		return &apperrors.ActionError{
			Kind:      apperrors.KindRateLimited,
			Message:   message,
			Timestamp: time.Now().UTC(),
		}
	case http.StatusPaymentRequired:
		c.notifier.CreditsExhausted()
		return &apperrors.ActionError{
			Kind:      apperrors.KindQuotaExceeded,
			Message:   message,
			Timestamp: time.Now().UTC(),
		}
	case http.StatusBadRequest:
		return &apperrors.ActionError{
			Kind:      apperrors.KindBadRequest,
			Message:   message,
			Timestamp: time.Now().UTC(),
		}
	case http.StatusForbidden:
		return &apperrors.ActionError{
			Kind:      apperrors.KindSuspended,
			Message:   message,
			Timestamp: time.Now().UTC(),
		}
	default:
		return &apperrors.ActionError{
			Kind:      apperrors.KindInternal,
			Message:   message,
			Timestamp: time.Now().UTC(),
		}
	}
}

func mergeActionPayload(action string, payload interface{}) ([]byte, error) {
	merged := map[string]interface{}{}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		if err := json.Unmarshal(raw, &merged); err != nil {
			return nil, fmt.Errorf("payload must be a JSON object: %w", err)
		}
	}
	merged["action"] = action
	return json.Marshal(merged)
}
