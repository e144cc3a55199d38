// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     parser
// Description: LL(1) recursive descent parser producing the glottony AST
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package parser implements the lexer, token stream and recursive descent
// parser of the glottony language:
//
//	file                 := functionDeclaration | expression
//	functionDeclaration  := FUN IDENTIFIER LPAREN [parameterDeclaration (COMMA parameterDeclaration)*] RPAREN COLON type EQ body
//	parameterDeclaration := IDENTIFIER COLON type
//	body                 := expression
//	expression           := addExpression
//	addExpression        := multiplyExpression (addOperator expression)*
//	multiplyExpression   := literalExpression (multiplyOperator literalExpression)*
//	literalExpression    := NUMBER | INTEGER | STRING | IDENTIFIER
//	type                 := NUMBER_TYPE | INTEGER_TYPE | STRING_TYPE
//
// addExpression recurses into expression, so "+" and "-" group to the
// right: 1-2-3 is Minus(1, Minus(2, 3)). multiplyExpression loops, so "*"
// and "/" group to the left: 6/3/2 is Div(Div(6, 3), 2).
package parser

import (
	"errors"
	"fmt"

	glerrors "github.com/msto63/glottony/pkg/core/errors"
	"github.com/msto63/glottony/pkg/core/logging"
	"github.com/msto63/glottony/pkg/glottony/ast"
)

var (
	// errRecovered tells the nearest rule boundary to resynchronize
	errRecovered = errors.New("recovered")

	// errBail aborts the parse (fail-fast or error limit reached)
	errBail = errors.New("bail out")
)

// Parser parses glottony source into an AST. A Parser holds only its
// options and may be used from several goroutines at once.
type Parser struct {
	options Options
	logger  *logging.Logger
}

// New creates a new parser
func New(options Options) *Parser {
	options = options.withDefaults()
	return &Parser{
		options: options,
		logger:  options.Logger.WithField("component", "glottony-parser"),
	}
}

// Options returns the effective parser options
func (p *Parser) Options() Options {
	return p.options
}

// Parse lexes and parses src. On success it returns a complete tree and a
// nil error. Otherwise the tree is nil and the error is an ErrorList in
// source order, unless the input was rejected before lexing.
func (p *Parser) Parse(src string) (*ast.File, error) {
	if limit := p.options.MaxInputLength; limit > 0 && len(src) > limit {
		return nil, glerrors.Newf("input of %d bytes exceeds limit of %d bytes", len(src), limit).
			WithCode(glerrors.CodeInvalidInput).
			WithOperation("parse").
			WithDetail("length", len(src))
	}

	timer := p.logger.StartTimer("parse")
	defer timer.Stop()

	tokens, lexErrs := NewLexer(src, p.options.Mode).Tokenize()
	timer.WithField("tokens", len(tokens))
	p.logger.Debug("source tokenized", "bytes", len(src), "tokens", len(tokens), "lex_errors", len(lexErrs))

	if len(lexErrs) > 0 && p.options.Mode == FailFast {
		p.logger.Debug("parse aborted", "reason", "lexical error")
		return nil, lexErrs
	}

	return p.parse(tokens, lexErrs)
}

// ParseTokens parses an already lexed token slice
func (p *Parser) ParseTokens(tokens []Token) (*ast.File, error) {
	return p.parse(tokens, nil)
}

func (p *Parser) parse(tokens []Token, lexErrs ErrorList) (*ast.File, error) {
	s := &state{
		stream:    NewTokenStream(tokens),
		mode:      p.options.Mode,
		maxErrors: p.options.MaxErrors,
		errors:    lexErrs,
	}
	if len(lexErrs) >= s.maxErrors {
		return nil, lexErrs[:s.maxErrors]
	}

	file, err := s.parseFile()
	if err == nil && len(s.errors) == 0 {
		p.logger.Debug("parse completed", "construct", constructName(file))
		return file, nil
	}

	s.errors.Sort()
	p.logger.Debug("parse failed", "errors", len(s.errors), "first", s.errors[0].Error())
	return nil, s.errors
}

// state is the per-call parse state: the token cursor and the errors
// collected so far
type state struct {
	stream     *TokenStream
	mode       RecoveryMode
	maxErrors  int
	errors     ErrorList
	recovering bool // suppress errors until the next successful match
}

// ----------------------------------------------------------------------------
// Grammar rules
// ----------------------------------------------------------------------------

// parseFile decides between a declaration and an expression on the first
// token only
func (s *state) parseFile() (*ast.File, error) {
	file := &ast.File{Pos: s.cur().Pos()}

	for file.Content == nil {
		var err error
		switch s.cur().Type {
		case TokenFun:
			var decl *ast.FunctionDeclaration
			decl, err = s.parseFunctionDeclaration()
			if decl != nil {
				file.Content = decl
			}
		case TokenNumber, TokenInteger, TokenString:
			var expr ast.Expression
			expr, err = s.parseExpression()
			if expr != nil {
				file.Content = expr
			}
		default:
			if err := s.report(s.noViableAlternative()); err != nil {
				return nil, err
			}
			s.skipTo(TokenFun, TokenNumber, TokenInteger, TokenString)
			if s.cur().Type == TokenEOF {
				return nil, nil
			}
			continue
		}

		if err := s.resync(err); err != nil {
			return nil, err
		}
		if file.Content == nil {
			return nil, nil
		}
	}

	if tok := s.cur(); tok.Type != TokenEOF {
		err := s.report(&SyntaxError{
			Kind:     UnexpectedToken,
			Message:  "expected end of input, found " + tok.Describe(),
			Pos:      tok.Pos(),
			Expected: []TokenType{TokenEOF},
			Found:    tok,
		})
		if err != nil {
			return nil, err
		}
	}
	return file, nil
}

// parseFunctionDeclaration parses "fun name(params): type = body"
func (s *state) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	decl := &ast.FunctionDeclaration{Pos: s.match().Pos()}

	name, err := s.expect(TokenIdentifier)
	if err := s.resync(err, TokenLeftParen, TokenColon, TokenEquals); err != nil {
		return nil, err
	}
	decl.Name, decl.NamePos = name.Value, name.Pos()

	if _, err := s.expect(TokenLeftParen); err != nil {
		if err := s.resync(err, TokenRightParen, TokenColon, TokenEquals); err != nil {
			return nil, err
		}
	}

	// The parameter list is optional: an identifier opens it, anything
	// else leaves it empty.
	if s.cur().Type == TokenIdentifier {
		for {
			param, err := s.parseParameterDeclaration()
			if err := s.resync(err, TokenComma, TokenRightParen, TokenEquals); err != nil {
				return nil, err
			}
			if param != nil {
				decl.Parameters = append(decl.Parameters, param)
			}
			if s.cur().Type != TokenComma {
				break
			}
			s.match()
		}
	}

	if _, err := s.expect(TokenRightParen); err != nil {
		if err := s.resync(err, TokenColon, TokenEquals); err != nil {
			return nil, err
		}
	}

	if _, err := s.expect(TokenColon); err != nil {
		if err := s.resync(err, TokenEquals); err != nil {
			return nil, err
		}
	}
	returnType, err := s.parseType()
	if err := s.resync(err, TokenEquals); err != nil {
		return nil, err
	}
	decl.ReturnType = returnType

	if _, err := s.expect(TokenEquals); err != nil {
		if err := s.resync(err); err != nil {
			return nil, err
		}
	}

	body, err := s.parseExpression()
	if err := s.resync(err); err != nil {
		return nil, err
	}
	decl.Body = body
	return decl, nil
}

// parseParameterDeclaration parses "name: type"
func (s *state) parseParameterDeclaration() (*ast.ParameterDeclaration, error) {
	name, err := s.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := s.expect(TokenColon); err != nil {
		return nil, err
	}
	typ, err := s.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.ParameterDeclaration{Name: name.Value, Type: typ, Pos: name.Pos()}, nil
}

// parseType parses one of the type keywords
func (s *state) parseType() (ast.Type, error) {
	if t, ok := typeOf(s.cur().Type); ok {
		s.match()
		return t, nil
	}

	if err := s.report(s.mismatch(TokenNumberType, TokenIntegerType, TokenStringType)); err != nil {
		return ast.TypeInvalid, err
	}
	if t, ok := typeOf(s.stream.Peek(1).Type); ok && !s.stream.AtEOF() {
		s.skip()
		s.match()
		return t, nil
	}
	return ast.TypeInvalid, errRecovered
}

// parseExpression parses an expression
func (s *state) parseExpression() (ast.Expression, error) {
	return s.parseAddExpression()
}

// parseAddExpression parses multiplyExpression (addOperator expression)*.
// The right operand is a full expression, which makes the additive level
// right associative; the recursive call consumes every following
// additive operator.
func (s *state) parseAddExpression() (ast.Expression, error) {
	left, err := s.parseMultiplyExpression()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := additiveOperators[s.cur().Type]
		if !ok {
			return left, nil
		}
		opTok := s.match()

		right, err := s.parseExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right, Pos: opTok.Pos()}
	}
}

// parseMultiplyExpression parses literalExpression (multiplyOperator
// literalExpression)* as a loop, which makes the multiplicative level left
// associative
func (s *state) parseMultiplyExpression() (ast.Expression, error) {
	left, err := s.parseLiteralExpression()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := multiplicativeOperators[s.cur().Type]
		if !ok {
			return left, nil
		}
		opTok := s.match()

		right, err := s.parseLiteralExpression()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Op: op, Left: left, Right: right, Pos: opTok.Pos()}
	}
}

// parseLiteralExpression parses an operand
func (s *state) parseLiteralExpression() (ast.Expression, error) {
	if isOperand(s.cur().Type) {
		return operand(s.match()), nil
	}

	if err := s.report(s.mismatch(TokenNumber, TokenInteger, TokenString, TokenIdentifier)); err != nil {
		return nil, err
	}
	if isOperand(s.stream.Peek(1).Type) && !s.stream.AtEOF() {
		s.skip()
		return operand(s.match()), nil
	}
	return nil, errRecovered
}

// ----------------------------------------------------------------------------
// Token helpers
// ----------------------------------------------------------------------------

func (s *state) cur() Token {
	return s.stream.Current()
}

// match consumes the current token as part of the tree and leaves
// recovery mode
func (s *state) match() Token {
	tok, _ := s.stream.Advance()
	s.recovering = false
	return tok
}

// skip discards the current token
func (s *state) skip() {
	_, _ = s.stream.Advance()
}

// skipTo discards tokens until one of types or EOF is current
func (s *state) skipTo(types ...TokenType) {
	for !s.stream.AtEOF() && !isOneOf(s.cur().Type, types) {
		s.skip()
	}
}

// expect consumes a token of type tt. On a mismatch it reports the error
// and tries single-token deletion, then single-token insertion of fixed
// punctuation; if neither applies it returns errRecovered.
func (s *state) expect(tt TokenType) (Token, error) {
	if tok := s.cur(); tok.Type == tt {
		return s.match(), nil
	}

	if err := s.report(s.mismatch(tt)); err != nil {
		return Token{}, err
	}

	if s.stream.Peek(1).Type == tt && !s.stream.AtEOF() {
		s.skip()
		return s.match(), nil
	}

	if insertable[tt] {
		at := s.cur()
		spelling, _ := tt.Spelling()
		return Token{Type: tt, Value: spelling, Offset: at.Offset, Line: at.Line, Column: at.Column}, nil
	}
	return Token{}, errRecovered
}

// resync handles the result of a sub-rule at a rule boundary: errRecovered
// skips to the follow set and clears the error, anything else is returned
// unchanged. EOF always belongs to the follow set.
func (s *state) resync(err error, follow ...TokenType) error {
	if !errors.Is(err, errRecovered) {
		return err
	}
	s.skipTo(follow...)
	return nil
}

// report records err unless an earlier error is still being recovered
// from. It returns errBail when parsing must stop.
func (s *state) report(err *SyntaxError) error {
	if s.recovering {
		return nil
	}
	s.errors.Add(err)
	s.recovering = true

	if s.mode == FailFast || len(s.errors) >= s.maxErrors {
		return errBail
	}
	return nil
}

func (s *state) mismatch(expected ...TokenType) *SyntaxError {
	tok := s.cur()
	kind := UnexpectedToken
	if tok.Type == TokenEOF {
		kind = UnexpectedEndOfInput
	}
	return &SyntaxError{
		Kind:     kind,
		Message:  fmt.Sprintf("expected %s, found %s", describeTypes(expected), tok.Describe()),
		Pos:      tok.Pos(),
		Expected: expected,
		Found:    tok,
	}
}

func (s *state) noViableAlternative() *SyntaxError {
	tok := s.cur()
	expected := []TokenType{TokenFun, TokenNumber, TokenInteger, TokenString}
	return &SyntaxError{
		Kind: NoViableAlternative,
		Message: fmt.Sprintf("no viable alternative at %s: expected a function declaration or an expression starting with %s",
			tok.Describe(), describeTypes(expected)),
		Pos:      tok.Pos(),
		Expected: expected,
		Found:    tok,
	}
}

// ----------------------------------------------------------------------------
// Tables
// ----------------------------------------------------------------------------

var additiveOperators = map[TokenType]ast.Operator{
	TokenPlus:  ast.OpPlus,
	TokenMinus: ast.OpMinus,
}

var multiplicativeOperators = map[TokenType]ast.Operator{
	TokenStar:  ast.OpMul,
	TokenSlash: ast.OpDiv,
}

// insertable lists the punctuation expect may synthesize when missing
var insertable = map[TokenType]bool{
	TokenLeftParen:  true,
	TokenRightParen: true,
	TokenColon:      true,
	TokenEquals:     true,
}

func typeOf(tt TokenType) (ast.Type, bool) {
	switch tt {
	case TokenNumberType:
		return ast.TypeNumber, true
	case TokenIntegerType:
		return ast.TypeInteger, true
	case TokenStringType:
		return ast.TypeString, true
	default:
		return ast.TypeInvalid, false
	}
}

func isOperand(tt TokenType) bool {
	switch tt {
	case TokenNumber, TokenInteger, TokenString, TokenIdentifier:
		return true
	default:
		return false
	}
}

// operand builds the leaf node for an operand token
func operand(tok Token) ast.Expression {
	switch tok.Type {
	case TokenNumber:
		return &ast.Literal{Kind: ast.LiteralNumber, Text: tok.Value, Pos: tok.Pos()}
	case TokenInteger:
		return &ast.Literal{Kind: ast.LiteralInteger, Text: tok.Value, Pos: tok.Pos()}
	case TokenString:
		return &ast.Literal{Kind: ast.LiteralString, Text: tok.Value[1 : len(tok.Value)-1], Pos: tok.Pos()}
	default:
		return &ast.Reference{Name: tok.Value, Pos: tok.Pos()}
	}
}

func isOneOf(tt TokenType, types []TokenType) bool {
	for _, t := range types {
		if t == tt {
			return true
		}
	}
	return false
}

func constructName(file *ast.File) string {
	if _, ok := file.Declaration(); ok {
		return "function"
	}
	return "expression"
}
