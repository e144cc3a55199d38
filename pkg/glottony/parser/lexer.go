// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     parser
// Description: Lexical analyzer turning source text into classified tokens
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer performs lexical analysis of glottony source text
type Lexer struct {
	input  string       // Input string
	mode   RecoveryMode // Behaviour on unrecognised input
	offset int          // Byte offset of the next unread character
	line   int          // Line of the next unread character (1-based)
	column int          // Column of the next unread character (1-based)
	failed bool         // Set once a fail-fast lexer reported an error
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string, mode RecoveryMode) *Lexer {
	return &Lexer{
		input:  input,
		mode:   mode,
		line:   1,
		column: 1,
	}
}

// NextToken returns the next token. For unrecognised input it returns a
// TokenIllegal token together with a LexError; the offending code point
// has already been consumed.
func (l *Lexer) NextToken() (Token, *SyntaxError) {
	l.skipWhitespace()

	start := Token{Offset: l.offset, Line: l.line, Column: l.column}
	if l.failed || l.offset >= len(l.input) {
		start.Type = TokenEOF
		return start, nil
	}

	ch, _ := l.peek(0)
	switch {
	case ch == '"':
		return l.readString(start), nil
	case isLetter(ch):
		start.Value = l.readWhile(isIdentChar)
		start.Type = lookupIdent(start.Value)
		return start, nil
	case isDigit(ch):
		return l.readNumber(start), nil
	}

	if tt, ok := punctuation[ch]; ok {
		l.advance()
		start.Type = tt
		start.Value = string(ch)
		return start, nil
	}

	l.advance()
	start.Type = TokenIllegal
	start.Value = string(ch)
	if l.mode == FailFast {
		l.failed = true
	}
	return start, &SyntaxError{
		Kind:    LexError,
		Message: fmt.Sprintf("unrecognized character %q", ch),
		Pos:     start.Pos(),
		Found:   start,
	}
}

// Tokenize returns all tokens of the input terminated by TokenEOF, and the
// lexical errors encountered. Illegal characters are not part of the token
// slice. In fail-fast mode lexing stops at the first error.
func (l *Lexer) Tokenize() ([]Token, ErrorList) {
	var tokens []Token
	var errs ErrorList

	for {
		tok, err := l.NextToken()
		if err != nil {
			errs.Add(err)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, errs
		}
	}
}

// peek returns the code point n runes ahead of the read position
func (l *Lexer) peek(n int) (rune, int) {
	off := l.offset
	for ; n > 0 && off < len(l.input); n-- {
		_, size := utf8.DecodeRuneInString(l.input[off:])
		off += size
	}
	if off >= len(l.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(l.input[off:])
}

// advance consumes one code point and updates line and column
func (l *Lexer) advance() {
	ch, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// readWhile consumes the longest run of code points satisfying pred
func (l *Lexer) readWhile(pred func(rune) bool) string {
	start := l.offset
	for l.offset < len(l.input) {
		ch, _ := l.peek(0)
		if !pred(ch) {
			break
		}
		l.advance()
	}
	return l.input[start:l.offset]
}

// readNumber reads INTEGER or NUMBER. A dot becomes part of the literal
// only when a digit follows it.
func (l *Lexer) readNumber(tok Token) Token {
	l.readWhile(isDigit)
	tok.Type = TokenInteger

	if dot, _ := l.peek(0); dot == '.' {
		if next, _ := l.peek(1); isDigit(next) {
			l.advance() // consume '.'
			l.readWhile(isDigit)
			tok.Type = TokenNumber
		}
	}

	tok.Value = l.input[tok.Offset:l.offset]
	return tok
}

// readString reads a double-quoted literal up to the next quote. Without
// a closing quote the lone '"' is returned as TokenQuote.
func (l *Lexer) readString(tok Token) Token {
	end := strings.IndexByte(l.input[l.offset+1:], '"')
	if end < 0 {
		l.advance()
		tok.Type = TokenQuote
		tok.Value = `"`
		return tok
	}

	stop := l.offset + 1 + end + 1
	for l.offset < stop {
		l.advance()
	}
	tok.Type = TokenString
	tok.Value = l.input[tok.Offset:stop]
	return tok
}

// skipWhitespace skips blanks and newlines, which carry no meaning
func (l *Lexer) skipWhitespace() {
	l.readWhile(isSpace)
}

var punctuation = map[rune]TokenType{
	'(': TokenLeftParen,
	')': TokenRightParen,
	':': TokenColon,
	',': TokenComma,
	'=': TokenEquals,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'.': TokenDot,
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch rune) bool {
	return isLetter(ch) || isDigit(ch)
}

// IsValidIdentifier checks if s is an identifier that is not a keyword
func IsValidIdentifier(s string) bool {
	if s == "" || IsKeyword(s) {
		return false
	}
	for i, ch := range s {
		if i == 0 && !isLetter(ch) || !isIdentChar(ch) {
			return false
		}
	}
	return true
}

// TokenizeInput tokenizes input in recovery mode and returns the tokens
// together with any lexical errors
func TokenizeInput(input string) ([]Token, error) {
	tokens, errs := NewLexer(input, RecoverErrors).Tokenize()
	return tokens, errs.Err()
}
