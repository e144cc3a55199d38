// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     parser
// Description: Lookahead cursor over a lexed token slice
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package parser

// TokenStream is a cursor over an EOF-terminated token slice. It is not
// safe for concurrent use; each parse owns its stream.
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream creates a stream over tokens. An EOF marker is appended
// when the slice does not end with one.
func NewTokenStream(tokens []Token) *TokenStream {
	if n := len(tokens); n == 0 || tokens[n-1].Type != TokenEOF {
		eof := Token{Type: TokenEOF, Line: 1, Column: 1}
		if n > 0 {
			last := tokens[n-1]
			eof.Offset = last.Offset + len(last.Value)
			eof.Line = last.Line
			eof.Column = last.Column + len([]rune(last.Value))
		}
		tokens = append(tokens[:n:n], eof)
	}
	return &TokenStream{tokens: tokens}
}

// Peek returns the token k positions ahead of the cursor; Peek(0) is the
// current token. Looking past the end yields the EOF marker.
func (s *TokenStream) Peek(k int) Token {
	i := s.pos + k
	if i < 0 {
		i = 0
	}
	if i >= len(s.tokens) {
		i = len(s.tokens) - 1
	}
	return s.tokens[i]
}

// Current returns the current token
func (s *TokenStream) Current() Token {
	return s.tokens[s.pos]
}

// Advance consumes and returns the current token. Advancing while
// positioned on EOF fails with ErrUnexpectedEndOfInput.
func (s *TokenStream) Advance() (Token, error) {
	tok := s.tokens[s.pos]
	if tok.Type == TokenEOF {
		return tok, ErrUnexpectedEndOfInput
	}
	s.pos++
	return tok, nil
}

// AtEOF reports whether the cursor is on the end marker
func (s *TokenStream) AtEOF() bool {
	return s.tokens[s.pos].Type == TokenEOF
}

// Position returns the index of the current token
func (s *TokenStream) Position() int {
	return s.pos
}

// Remaining returns the number of tokens left before EOF
func (s *TokenStream) Remaining() int {
	return len(s.tokens) - 1 - s.pos
}
