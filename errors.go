package washly

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors surfaced by the client and resource services.
var (
	// ErrNoSession means an operation needing credentials ran without any.
	ErrNoSession = errors.New("no active session")
	// ErrNoRefreshToken means a refresh was attempted with nothing to exchange.
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrBusinessRequired means a provider action needs a registered business first.
	ErrBusinessRequired = errors.New("business registration required")
	// ErrInvalidTransition means the requested booking status change is not
	// reachable from the current status.
	ErrInvalidTransition = errors.New("invalid booking status transition")
	// ErrNotCancellable means the booking is past the point where the
	// customer may cancel it.
	ErrNotCancellable = errors.New("booking can no longer be cancelled")
)

// Error codes returned by the API in error payloads.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeRateLimit     = "RATE_LIMIT_EXCEEDED"
	CodeInternalError = "INTERNAL_ERROR"
	CodeExpiredToken  = "EXPIRED_TOKEN"
	CodeInvalidToken  = "INVALID_TOKEN"
)

// APIError is a non-2xx response carrying the server's error payload.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// parseAPIError decodes the server error payload, falling back to the HTTP
// status text when the body is not the expected shape.
func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		} else if payload.Message != "" {
			apiErr.Message = payload.Message
		}
		apiErr.Code = payload.Code
		apiErr.Details = payload.Details
	}
	return apiErr
}

// AsAPIError unwraps err to an *APIError if one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
