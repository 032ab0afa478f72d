// Package domain defines the core domain models for WireMesh.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
// Codes are stable identifiers of the form WM-<AREA>-<NNNN> and are safe to
// match on programmatically; messages are for humans and may change.
type DomainError struct {
	Code    string // Error code (e.g., "WM-CONN-4080")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support; two DomainErrors match on Code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks whether the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Connection Errors (CONN)
// ============================================================================

var (
	// ErrDialTimeout indicates a connect attempt exceeded the dial timeout.
	ErrDialTimeout = NewDomainError("WM-CONN-4080", "connection timed out")

	// ErrTransport indicates the underlying transport reported an error.
	ErrTransport = NewDomainError("WM-CONN-5020", "transport error")

	// ErrTransportClosed indicates a remote or network-initiated close.
	ErrTransportClosed = NewDomainError("WM-CONN-4990", "transport closed")

	// ErrReconnectExhausted indicates the reconnect attempt budget is spent.
	ErrReconnectExhausted = NewDomainError("WM-CONN-5030", "max reconnect attempts reached")

	// ErrManagerClosed indicates the manager has been shut down.
	ErrManagerClosed = NewDomainError("WM-CONN-4100", "connection manager closed")
)

// ============================================================================
// Message Errors (MSG)
// ============================================================================

var (
	// ErrMessageMalformed indicates a message failed validation or decoding.
	ErrMessageMalformed = NewDomainError("WM-MSG-4000", "malformed message")

	// ErrPayloadTooLarge indicates the message payload exceeds the size cap.
	ErrPayloadTooLarge = NewDomainError("WM-MSG-4130", "payload too large")

	// ErrQueueFull indicates the outbound queue reached its configured cap.
	ErrQueueFull = NewDomainError("WM-MSG-4290", "outbound queue full")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates an invalid argument.
	ErrInvalidArgument = NewDomainError("WM-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("WM-ARG-1002", "missing required argument")
)

// ============================================================================
// System Errors (SYS)
// ============================================================================

var (
	// ErrInternal indicates an internal error.
	ErrInternal = NewDomainError("WM-SYS-5000", "internal error")
)
