// Package errors provides the structured error type shared by the action
// router, the upstream gateway client, and the dispatch client.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies an ActionError once, at the point of detection. Layers
// above propagate the kind instead of re-parsing message strings.
type Kind string

const (
	KindUnknownAction Kind = "UNKNOWN_ACTION"
	KindBadRequest    Kind = "BAD_REQUEST"
	KindRateLimited   Kind = "RATE_LIMIT"
	KindQuotaExceeded Kind = "PAYMENT_REQUIRED"
	KindConfig        Kind = "CONFIG_ERROR"
	KindUpstream      Kind = "UPSTREAM_ERROR"
	KindMalformed     Kind = "MALFORMED_RESPONSE"
	KindSuspended     Kind = "ACCOUNT_SUSPENDED"
	KindInternal      Kind = "INTERNAL_ERROR"
)

// ActionError is the structured application error carried end-to-end.
type ActionError struct {
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *ActionError) Error() string {
	return e.Message
}

// HTTPStatus maps an error kind to the response status code.
func (e *ActionError) HTTPStatus() int {
	switch e.Kind {
	case KindUnknownAction, KindBadRequest:
		return http.StatusBadRequest
	case KindRateLimited:
		return http.StatusTooManyRequests
	case KindQuotaExceeded:
		return http.StatusPaymentRequired
	case KindSuspended:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// KindOf extracts the kind from any error chain, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// AsActionError normalizes any error to an *ActionError.
func AsActionError(err error) *ActionError {
	var ae *ActionError
	if errors.As(err, &ae) {
		return ae
	}
	return &ActionError{
		Kind:      KindInternal,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownActionError rejects an action name the router does not implement.
func NewUnknownActionError(action string) *ActionError {
	return &ActionError{
		Kind:      KindUnknownAction,
		Message:   fmt.Sprintf("Unknown action: %s", action),
		Timestamp: time.Now().UTC(),
	}
}

// NewBadRequestError flags a malformed or incomplete request payload.
func NewBadRequestError(details string) *ActionError {
	return &ActionError{
		Kind:      KindBadRequest,
		Message:   "Invalid request payload",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError reports an upstream 429. The message keeps the legacy
// RATE_LIMIT marker prefix so log-grepping consumers keep working.
func NewRateLimitedError(details string) *ActionError {
	return &ActionError{
		Kind:      KindRateLimited,
		Message:   "RATE_LIMIT: upstream gateway rate limit exceeded",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewQuotaExceededError reports an upstream 402.
func NewQuotaExceededError(details string) *ActionError {
	return &ActionError{
		Kind:      KindQuotaExceeded,
		Message:   "PAYMENT_REQUIRED: upstream gateway credits exhausted",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigError reports a missing or invalid operator-supplied setting.
// Not retryable without operator intervention.
func NewConfigError(details string) *ActionError {
	return &ActionError{
		Kind:      KindConfig,
		Message:   "Service configuration error",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamError reports any other non-2xx gateway response.
func NewUpstreamError(status int, details string) *ActionError {
	return &ActionError{
		Kind:      KindUpstream,
		Message:   fmt.Sprintf("Upstream gateway error (status %d)", status),
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError reports gateway text that failed fence-stripping,
// JSON parsing, or schema validation.
func NewMalformedResponseError(action string, err error) *ActionError {
	return &ActionError{
		Kind:      KindMalformed,
		Message:   fmt.Sprintf("Malformed model response for %s", action),
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewSuspendedError rejects a request from a suspended account.
func NewSuspendedError(userID string) *ActionError {
	return &ActionError{
		Kind:      KindSuspended,
		Message:   "Account is suspended",
		Details:   fmt.Sprintf("userId: %s", userID),
		Timestamp: time.Now().UTC(),
	}
}
