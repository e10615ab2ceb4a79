// File: internal/services/anthropic/errors.go
package anthropic

import "fmt"

type ErrorType string

const (
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeNetwork   ErrorType = "NETWORK"
	ErrTypeProvider  ErrorType = "PROVIDER"
	ErrTypeRateLimit ErrorType = "RATE_LIMIT"
)

// APIError distinguishes fatal configuration errors, which are raised at
// startup and never retried, from recoverable network and provider errors.
type APIError struct {
	Type    ErrorType
	Code    int
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Anthropic %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("Anthropic %s error: %s", e.Type, e.Message)
}

func (e *APIError) Unwrap() error { return e.Cause }

// Retryable reports whether another attempt can succeed.
func (e *APIError) Retryable() bool {
	return e.Type != ErrTypeConfig
}

func NewConfigError(msg string) *APIError {
	return &APIError{Type: ErrTypeConfig, Message: msg}
}

func NewNetworkError(msg string, cause error) *APIError {
	return &APIError{Type: ErrTypeNetwork, Message: msg, Cause: cause}
}

func NewProviderError(code int, msg string) *APIError {
	return &APIError{Type: ErrTypeProvider, Code: code, Message: msg}
}
