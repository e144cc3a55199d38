// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     errors
// Description: Error codes and severities used across glottony
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package errors

import "strings"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeCanceled     Code = "CANCELED"

	// Environment
	CodeIOError     Code = "IO_ERROR"
	CodeConfigError Code = "CONFIG_ERROR"

	// Front end
	CodeSyntaxLex                 Code = "SYNTAX_LEX"
	CodeSyntaxUnexpectedToken     Code = "SYNTAX_UNEXPECTED_TOKEN"
	CodeSyntaxNoViableAlternative Code = "SYNTAX_NO_VIABLE_ALTERNATIVE"
	CodeSyntaxUnexpectedEOF       Code = "SYNTAX_UNEXPECTED_EOF"
	CodeNotRepresentable          Code = "NOT_REPRESENTABLE"
)

// String returns the code as string
func (c Code) String() string {
	return string(c)
}

// Category returns the prefix of the code, e.g. "SYNTAX"
func (c Code) Category() string {
	if i := strings.IndexByte(string(c), '_'); i > 0 {
		return string(c[:i])
	}
	return string(c)
}

// IsSyntax reports whether the code classifies a lexical or syntax error
func (c Code) IsSyntax() bool {
	return c.Category() == "SYNTAX"
}

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow is for problems in user input, e.g. syntax errors
	SeverityLow Severity = iota

	// SeverityMedium is the default for unclassified errors
	SeverityMedium

	// SeverityHigh is for environment failures such as unreadable files
	SeverityHigh

	// SeverityCritical is for internal faults
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// SeverityFromCode returns the default severity for a code
func SeverityFromCode(code Code) Severity {
	switch {
	case code.IsSyntax(), code == CodeInvalidInput, code == CodeNotRepresentable, code == CodeCanceled:
		return SeverityLow
	case code == CodeIOError, code == CodeConfigError:
		return SeverityHigh
	case code == CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
