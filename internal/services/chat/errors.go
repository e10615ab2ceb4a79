// File: internal/services/chat/errors.go
package chat

import "fmt"

type ErrorType string

const (
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeCompletion  ErrorType = "COMPLETION"
	ErrTypePersistence ErrorType = "PERSISTENCE"
)

type ChatError struct {
	Type      ErrorType
	Operation string
	Message   string
	SessionID string
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Cause }

func NewCompletionError(sessionID string, cause error) *ChatError {
	return &ChatError{
		Type:      ErrTypeCompletion,
		Operation: "process_query",
		Message:   "model call failed",
		SessionID: sessionID,
		Cause:     cause,
	}
}

func NewPersistenceError(sessionID, msg string, cause error) *ChatError {
	return &ChatError{
		Type:      ErrTypePersistence,
		Operation: "process_query",
		Message:   msg,
		SessionID: sessionID,
		Cause:     cause,
	}
}
