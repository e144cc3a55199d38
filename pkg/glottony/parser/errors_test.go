// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     parser
// Description: Unit tests for syntax errors and the error list
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package parser

import (
	"errors"
	"fmt"
	"testing"

	glerrors "github.com/msto63/glottony/pkg/core/errors"
	"github.com/msto63/glottony/pkg/glottony/ast"
)

func syntaxError(kind ErrorKind, offset int, message string) *SyntaxError {
	return &SyntaxError{
		Kind:    kind,
		Message: message,
		Pos:     ast.Position{Line: 1, Column: offset + 1, Offset: offset},
	}
}

func TestErrorList_Sort(t *testing.T) {
	var list ErrorList
	list.Add(syntaxError(UnexpectedToken, 8, "second"))
	list.Add(syntaxError(LexError, 2, "first"))
	list.Add(syntaxError(UnexpectedToken, 8, "third"))

	list.Sort()

	for i, expected := range []string{"first", "second", "third"} {
		if list[i].Message != expected {
			t.Errorf("Position %d: expected %s, got %s", i, expected, list[i].Message)
		}
	}
}

func TestErrorList_Error(t *testing.T) {
	var list ErrorList
	if list.Err() != nil {
		t.Error("Expected nil error for an empty list")
	}
	if list.Error() != "no errors" {
		t.Errorf("Expected 'no errors', got %q", list.Error())
	}

	list.Add(syntaxError(LexError, 0, "bad"))
	if got := list.Error(); got != "1:1: bad" {
		t.Errorf("Expected '1:1: bad', got %q", got)
	}

	list.Add(syntaxError(LexError, 4, "worse"))
	if got := list.Error(); got != "1:1: bad (and 1 more errors)" {
		t.Errorf("Unexpected message %q", got)
	}
	if list.Len() != 2 {
		t.Errorf("Expected length 2, got %d", list.Len())
	}
}

func TestErrorKind_Code(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		name     string
		expected glerrors.Code
	}{
		{LexError, "LexError", glerrors.CodeSyntaxLex},
		{UnexpectedToken, "UnexpectedToken", glerrors.CodeSyntaxUnexpectedToken},
		{NoViableAlternative, "NoViableAlternative", glerrors.CodeSyntaxNoViableAlternative},
		{UnexpectedEndOfInput, "UnexpectedEndOfInput", glerrors.CodeSyntaxUnexpectedEOF},
		{ErrorKind(42), "Unknown", glerrors.CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("Expected %s, got %s", tt.name, got)
			}
			if got := tt.kind.Code(); got != tt.expected {
				t.Errorf("Expected code %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestErrors_Unwrapping(t *testing.T) {
	first := syntaxError(UnexpectedToken, 3, "boom")
	list := ErrorList{first}

	wrapped := fmt.Errorf("parsing main.glot: %w", list.Err())
	if got := Errors(wrapped); len(got) != 1 || got[0] != first {
		t.Errorf("Expected the list back from a wrapped error, got %v", got)
	}

	var target *SyntaxError
	if !errors.As(wrapped, &target) || target != first {
		t.Error("Expected errors.As to reach the individual syntax error")
	}

	if got := Errors(first); len(got) != 1 {
		t.Errorf("Expected a single error list, got %v", got)
	}
	if Errors(errors.New("plain")) != nil {
		t.Error("Expected nil for errors without syntax errors")
	}

	coded := glerrors.Wrap(list, "check failed")
	if coded.Code() != glerrors.CodeSyntaxUnexpectedToken {
		t.Errorf("Expected wrapped code to be preserved, got %s", coded.Code())
	}
}

func TestSyntaxError_ExpectedString(t *testing.T) {
	err := &SyntaxError{Expected: []TokenType{TokenRightParen, TokenComma}}
	if got := err.ExpectedString(); got != "')' or ','" {
		t.Errorf("Expected \"')' or ','\", got %q", got)
	}
}
