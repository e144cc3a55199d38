// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     glottony
// Description: Public entry points for parsing glottony source
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package glottony is the public front end of the glottony language. It
// turns source text into an ast.File or a list of syntax errors:
//
//	file, err := glottony.Parse("fun add(a: num, b: num): num = a + b")
//	if err != nil {
//		for _, e := range parser.Errors(err) {
//			fmt.Println(e)
//		}
//	}
//
// The package holds no state; concurrent calls are independent.
package glottony

import (
	"github.com/msto63/glottony/pkg/core/logging"
	"github.com/msto63/glottony/pkg/glottony/ast"
	"github.com/msto63/glottony/pkg/glottony/parser"
)

// Option configures a single Parse call
type Option func(*parser.Options)

// WithFailFast aborts at the first lexical or syntax error
func WithFailFast() Option {
	return func(o *parser.Options) {
		o.Mode = parser.FailFast
	}
}

// WithMaxErrors limits the number of errors collected in recovery mode
func WithMaxErrors(n int) Option {
	return func(o *parser.Options) {
		o.MaxErrors = n
	}
}

// WithLogger enables debug logging of the parse
func WithLogger(logger *logging.Logger) Option {
	return func(o *parser.Options) {
		o.Logger = logger
	}
}

// WithOptions replaces all options at once, e.g. with options derived
// from a configuration file
func WithOptions(options parser.Options) Option {
	return func(o *parser.Options) {
		*o = options
	}
}

// Parse parses src into a complete tree. On failure the tree is nil and
// the error holds the syntax errors in source order (see parser.Errors).
func Parse(src string, opts ...Option) (*ast.File, error) {
	options := parser.DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return parser.New(options).Parse(src)
}

// Tokenize returns the tokens of src terminated by EOF, and the lexical
// errors if any
func Tokenize(src string) ([]parser.Token, error) {
	return parser.TokenizeInput(src)
}

// Format renders a tree as canonical source text
func Format(file *ast.File) (string, error) {
	return ast.Format(file)
}
