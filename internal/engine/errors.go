// internal/engine/errors.go
package engine

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	ErrCodeTransport         ErrorCode = "TRANSPORT"
	ErrCodeBlocked           ErrorCode = "BLOCKED"
	ErrCodeUnsupportedEngine ErrorCode = "UNSUPPORTED_ENGINE"
	ErrCodeInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	ErrCodeParseError        ErrorCode = "PARSE_ERROR"
)

// Sentinels for errors.Is; they match any EngineError with the same code.
var (
	ErrTransport         = &EngineError{Code: ErrCodeTransport, Message: "transport failure"}
	ErrBlocked           = &EngineError{Code: ErrCodeBlocked, Message: "blocked by challenge page"}
	ErrUnsupportedEngine = &EngineError{Code: ErrCodeUnsupportedEngine, Message: "unsupported search engine"}
	ErrInvalidArgument   = &EngineError{Code: ErrCodeInvalidArgument, Message: "invalid argument"}
	ErrParse             = &EngineError{Code: ErrCodeParseError, Message: "failed to parse response"}
)

// EngineError wraps errors with additional context
type EngineError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retry      bool
	Details    map[string]interface{}
}

// Error implements the error interface
func (e *EngineError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *EngineError) Unwrap() error {
	return e.Underlying
}

// Is checks if the error matches the target
func (e *EngineError) Is(target error) bool {
	if t, ok := target.(*EngineError); ok {
		return e.Code == t.Code
	}
	return errors.Is(e.Underlying, target)
}

// NewEngineError creates a new EngineError
func NewEngineError(code ErrorCode, message string, err error) *EngineError {
	return &EngineError{
		Code:       code,
		Message:    message,
		Underlying: err,
		Retry:      false,
		Details:    make(map[string]interface{}),
	}
}

// WithRetry marks the error as retryable
func (e *EngineError) WithRetry() *EngineError {
	e.Retry = true
	return e
}

// WithDetail adds a detail to the error
func (e *EngineError) WithDetail(key string, value interface{}) *EngineError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewTransportError reports a network, timeout or HTTP status failure.
func NewTransportError(message string, err error) *EngineError {
	return NewEngineError(ErrCodeTransport, message, err).WithRetry()
}

// NewBlockedError reports a challenge page returned by host.
func NewBlockedError(host string) *EngineError {
	return NewEngineError(ErrCodeBlocked, fmt.Sprintf("blocked/challenge response from %s", host), nil).
		WithDetail("host", host)
}

// NewInvalidArgumentError reports a caller supplied value that cannot be used.
func NewInvalidArgumentError(message string) *EngineError {
	return NewEngineError(ErrCodeInvalidArgument, message, nil)
}

// NewUnsupportedEngineError reports an engine name the router does not know.
func NewUnsupportedEngineError(name string) *EngineError {
	return NewEngineError(ErrCodeUnsupportedEngine, fmt.Sprintf("unsupported search engine: %s", name), nil).
		WithDetail("engine", name)
}

// IsBlocked reports whether err carries the BLOCKED code
func IsBlocked(err error) bool {
	return errors.Is(err, ErrBlocked)
}

// IsTransport reports whether err carries the TRANSPORT code
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsRetryable reports whether err is an EngineError marked for retry
func IsRetryable(err error) bool {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Retry
	}
	return false
}
