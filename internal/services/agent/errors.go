// File: internal/services/agent/errors.go
package agent

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNetwork    ErrorType = "NETWORK"
	ErrTypeStatus     ErrorType = "STATUS"
	ErrTypeDecode     ErrorType = "DECODE"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// AgentError carries the machine-readable cause of a gateway failure.
// The cause is for logs; users only ever see fixed fallback strings.
type AgentError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("agent %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("agent %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AgentError) Unwrap() error { return e.Cause }

func NewNetworkError(operation, msg string, cause error) *AgentError {
	return &AgentError{Type: ErrTypeNetwork, Operation: operation, Message: msg, Cause: cause}
}

func NewStatusError(operation string, statusCode int) *AgentError {
	return &AgentError{
		Type:      ErrTypeStatus,
		Operation: operation,
		Message:   fmt.Sprintf("endpoint returned status %d", statusCode),
	}
}

func NewDecodeError(operation string, cause error) *AgentError {
	return &AgentError{Type: ErrTypeDecode, Operation: operation, Message: "unparseable response body", Cause: cause}
}
