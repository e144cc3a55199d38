// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     parser
// Description: Syntax error records and the source-ordered error list
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	glerrors "github.com/msto63/glottony/pkg/core/errors"
	"github.com/msto63/glottony/pkg/glottony/ast"
)

// ErrUnexpectedEndOfInput is returned by TokenStream.Advance when the
// stream is already positioned on the end marker
var ErrUnexpectedEndOfInput = errors.New("unexpected end of input")

// ErrorKind classifies a syntax error
type ErrorKind int

const (
	LexError ErrorKind = iota
	UnexpectedToken
	NoViableAlternative
	UnexpectedEndOfInput
)

// String returns the name of the error kind
func (k ErrorKind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case UnexpectedToken:
		return "UnexpectedToken"
	case NoViableAlternative:
		return "NoViableAlternative"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	default:
		return "Unknown"
	}
}

// Code maps the kind to its platform error code
func (k ErrorKind) Code() glerrors.Code {
	switch k {
	case LexError:
		return glerrors.CodeSyntaxLex
	case UnexpectedToken:
		return glerrors.CodeSyntaxUnexpectedToken
	case NoViableAlternative:
		return glerrors.CodeSyntaxNoViableAlternative
	case UnexpectedEndOfInput:
		return glerrors.CodeSyntaxUnexpectedEOF
	default:
		return glerrors.CodeUnknown
	}
}

// SyntaxError is a single lexical or syntactic error
type SyntaxError struct {
	Kind     ErrorKind    // Error classification
	Message  string       // Human readable description
	Pos      ast.Position // Where the error was detected
	Expected []TokenType  // Acceptable token types, if known
	Found    Token        // Offending token
}

// Error implements the error interface as "line:column: message"
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Code returns the platform error code for the error kind
func (e *SyntaxError) Code() glerrors.Code {
	return e.Kind.Code()
}

// Severity returns the severity of syntax errors
func (e *SyntaxError) Severity() glerrors.Severity {
	return glerrors.SeverityFromCode(e.Code())
}

// ExpectedString lists the expected tokens for diagnostics
func (e *SyntaxError) ExpectedString() string {
	return describeTypes(e.Expected)
}

func describeTypes(types []TokenType) string {
	names := make([]string, len(types))
	for i, tt := range types {
		names[i] = tt.Describe()
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
}

// ErrorList is a list of syntax errors. The zero value is an empty list
// ready to use.
type ErrorList []*SyntaxError

// Add appends an error to the list
func (p *ErrorList) Add(err *SyntaxError) {
	*p = append(*p, err)
}

// Len returns the number of errors
func (p ErrorList) Len() int {
	return len(p)
}

// Sort orders the list by source offset. Errors at the same offset keep
// the order in which they were reported.
func (p ErrorList) Sort() {
	sort.SliceStable(p, func(i, j int) bool {
		return p[i].Pos.Offset < p[j].Pos.Offset
	})
}

// Error implements the error interface
func (p ErrorList) Error() string {
	switch len(p) {
	case 0:
		return "no errors"
	case 1:
		return p[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", p[0], len(p)-1)
}

// Err returns an error equivalent to this list, or nil if it is empty
func (p ErrorList) Err() error {
	if len(p) == 0 {
		return nil
	}
	return p
}

// Code returns the code of the first error
func (p ErrorList) Code() glerrors.Code {
	if len(p) == 0 {
		return glerrors.CodeUnknown
	}
	return p[0].Code()
}

// Severity returns the severity of the first error
func (p ErrorList) Severity() glerrors.Severity {
	if len(p) == 0 {
		return glerrors.SeverityLow
	}
	return p[0].Severity()
}

// Unwrap exposes the individual errors to errors.Is and errors.As
func (p ErrorList) Unwrap() []error {
	errs := make([]error, len(p))
	for i, e := range p {
		errs[i] = e
	}
	return errs
}

// Errors extracts the syntax errors carried by err
func Errors(err error) ErrorList {
	var list ErrorList
	if errors.As(err, &list) {
		return list
	}
	var single *SyntaxError
	if errors.As(err, &single) {
		return ErrorList{single}
	}
	return nil
}
