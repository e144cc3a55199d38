// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     errors
// Description: Structured error type with codes, severity and details
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Coded is implemented by errors that carry a code and a severity.
// *Error implements it, and so do the parser's syntax errors.
type Coded interface {
	error
	Code() Code
	Severity() Severity
}

// Error represents a structured error with context, code and metadata
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	operation string
	details   map[string]interface{}
}

// New creates a new Error with the given message
func New(message string) *Error {
	return &Error{
		message:  message,
		code:     CodeUnknown,
		severity: SeverityMedium,
		details:  make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with additional context. Code, severity
// and details of a wrapped coded error are preserved.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := New(message)
	wrapped.cause = err

	var coded Coded
	if stderrors.As(err, &coded) {
		wrapped.code = coded.Code()
		wrapped.severity = coded.Severity()
	}
	var inner *Error
	if stderrors.As(err, &inner) {
		for k, v := range inner.details {
			wrapped.details[k] = v
		}
	}
	return wrapped
}

// Error implements the standard error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the underlying cause for error unwrapping
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports a match for another *Error with the same non-unknown code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.code != CodeUnknown && t.code == e.code
}

// WithCode sets the error code and derives the severity from it
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	e.severity = SeverityFromCode(code)
	return e
}

// WithSeverity sets the error severity
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithOperation sets the operation that caused the error
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	e.details[key] = value
	return e
}

// Code returns the error code
func (e *Error) Code() Code {
	return e.code
}

// Severity returns the error severity
func (e *Error) Severity() Severity {
	return e.severity
}

// Operation returns the operation that caused the error
func (e *Error) Operation() string {
	return e.operation
}

// Details returns a copy of the error details
func (e *Error) Details() map[string]interface{} {
	result := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		result[k] = v
	}
	return result
}

// String returns a detailed representation including code and details
func (e *Error) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.code, e.Error())
	if e.operation != "" {
		fmt.Fprintf(&b, " (operation: %s)", e.operation)
	}
	if len(e.details) > 0 {
		keys := make([]string, 0, len(e.details))
		for k := range e.details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.details[k])
		}
		b.WriteString("}")
	}
	return b.String()
}

// MarshalJSON renders the error for machine-readable output
func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Message   string                 `json:"message"`
		Code      Code                   `json:"code"`
		Severity  string                 `json:"severity"`
		Operation string                 `json:"operation,omitempty"`
		Details   map[string]interface{} `json:"details,omitempty"`
	}{
		Message:   e.Error(),
		Code:      e.code,
		Severity:  e.severity.String(),
		Operation: e.operation,
		Details:   e.details,
	})
}

// CodeOf returns the code of the first coded error in err's chain
func CodeOf(err error) Code {
	var coded Coded
	if stderrors.As(err, &coded) {
		return coded.Code()
	}
	return CodeUnknown
}

// SeverityOf returns the severity of the first coded error in err's chain
func SeverityOf(err error) Severity {
	var coded Coded
	if stderrors.As(err, &coded) {
		return coded.Severity()
	}
	return SeverityMedium
}

// HasCode reports whether err carries the given code
func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// Is, As and Join forward to the standard library so callers need a
// single errors import.
var (
	Is   = stderrors.Is
	As   = stderrors.As
	Join = stderrors.Join
)
