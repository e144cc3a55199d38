// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     parser
// Description: Token types of the glottony terminal alphabet
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package parser

import (
	"fmt"

	"github.com/msto63/glottony/pkg/glottony/ast"
)

// TokenType represents the category of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Keywords
	TokenFun         // fun
	TokenNumberType  // num
	TokenIntegerType // int
	TokenStringType  // string

	// Punctuation
	TokenLeftParen  // (
	TokenRightParen // )
	TokenColon      // :
	TokenComma      // ,
	TokenEquals     // =
	TokenPlus       // +
	TokenMinus      // -
	TokenStar       // *
	TokenSlash      // /
	TokenDot        // .
	TokenQuote      // " without a closing quote

	// Literals and names
	TokenNumber     // 3.14
	TokenInteger    // 42
	TokenString     // "text"
	TokenIdentifier // name
)

var tokenNames = [...]string{
	TokenEOF:         "EOF",
	TokenIllegal:     "ILLEGAL",
	TokenFun:         "FUN",
	TokenNumberType:  "NUMBER_TYPE",
	TokenIntegerType: "INTEGER_TYPE",
	TokenStringType:  "STRING_TYPE",
	TokenLeftParen:   "LPAREN",
	TokenRightParen:  "RPAREN",
	TokenColon:       "COLON",
	TokenComma:       "COMMA",
	TokenEquals:      "EQ",
	TokenPlus:        "PLUS",
	TokenMinus:       "MINUS",
	TokenStar:        "MUL",
	TokenSlash:       "DIV",
	TokenDot:         "DOT",
	TokenQuote:       "QUOTE",
	TokenNumber:      "NUMBER",
	TokenInteger:     "INTEGER",
	TokenString:      "STRING",
	TokenIdentifier:  "IDENTIFIER",
}

var tokenSpellings = map[TokenType]string{
	TokenFun:         "fun",
	TokenNumberType:  "num",
	TokenIntegerType: "int",
	TokenStringType:  "string",
	TokenLeftParen:   "(",
	TokenRightParen:  ")",
	TokenColon:       ":",
	TokenComma:       ",",
	TokenEquals:      "=",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenSlash:       "/",
	TokenDot:         ".",
	TokenQuote:       `"`,
}

// String returns the grammar name of the token type
func (tt TokenType) String() string {
	if tt >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return "UNKNOWN"
}

// Describe returns a human readable form: the quoted spelling for fixed
// tokens, a lower-case category name otherwise
func (tt TokenType) Describe() string {
	if s, ok := tokenSpellings[tt]; ok {
		return "'" + s + "'"
	}
	switch tt {
	case TokenEOF:
		return "end of input"
	case TokenNumber:
		return "number"
	case TokenInteger:
		return "integer"
	case TokenString:
		return "string"
	case TokenIdentifier:
		return "identifier"
	default:
		return "illegal token"
	}
}

// Spelling returns the fixed spelling of the token type, if it has one
func (tt TokenType) Spelling() (string, bool) {
	s, ok := tokenSpellings[tt]
	return s, ok
}

// Token represents a lexical token with position information
type Token struct {
	Type   TokenType // Token type
	Value  string    // Exact lexeme; string tokens include their quotes
	Offset int       // Byte offset in input (0-based)
	Line   int       // Line number (1-based)
	Column int       // Column number in code points (1-based)
}

// Pos returns the token position as an AST position
func (t Token) Pos() ast.Position {
	return ast.Position{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return fmt.Sprintf("ILLEGAL(%s)", t.Value)
	default:
		return fmt.Sprintf("%s(%s)", t.Type, t.Value)
	}
}

// Describe returns the token as it should appear in diagnostics
func (t Token) Describe() string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenNumber, TokenInteger, TokenString, TokenIdentifier:
		return fmt.Sprintf("%s %s", t.Type.Describe(), t.Value)
	default:
		return "'" + t.Value + "'"
	}
}

// keywords are matched after the identifier rule has consumed the longest
// possible lexeme
var keywords = map[string]TokenType{
	"fun":    TokenFun,
	"num":    TokenNumberType,
	"int":    TokenIntegerType,
	"string": TokenStringType,
}

// lookupIdent determines if an identifier is a keyword or regular identifier
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsKeyword reports whether s is a reserved word
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}
