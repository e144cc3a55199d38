// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     ast
// Description: AST node definitions produced by the glottony parser
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package ast

import (
	"fmt"
	"strings"
)

// Position represents a position in the source text
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number in code points (1-based)
	Offset int // Byte offset (0-based)
}

// IsValid reports whether the position was set by the parser
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns "line:column"
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is implemented by every AST node. The set of implementations is closed.
type Node interface {
	// Position returns the source position of the node
	Position() Position

	// String returns a compact structural representation of the node
	String() string

	node()
}

// Construct is the content of a File: a *FunctionDeclaration or an Expression
type Construct interface {
	Node
	construct()
}

// Expression is implemented by *Literal, *Reference and *BinaryOp
type Expression interface {
	Construct
	expr()
}

// Type is the declared type of a parameter or function result
type Type int

const (
	TypeInvalid Type = iota
	TypeNumber
	TypeInteger
	TypeString
)

// String returns the source spelling of the type
func (t Type) String() string {
	switch t {
	case TypeNumber:
		return "num"
	case TypeInteger:
		return "int"
	case TypeString:
		return "string"
	default:
		return "invalid"
	}
}

// Name returns the type tag name
func (t Type) Name() string {
	switch t {
	case TypeNumber:
		return "Number"
	case TypeInteger:
		return "Integer"
	case TypeString:
		return "String"
	default:
		return "Invalid"
	}
}

// LiteralKind classifies a literal
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralInteger
	LiteralString
)

// String returns the kind name
func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "Number"
	case LiteralInteger:
		return "Integer"
	case LiteralString:
		return "String"
	default:
		return "Unknown"
	}
}

// Operator is a binary operator
type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpMul
	OpDiv
)

// String returns the operator name used in the structural notation
func (o Operator) String() string {
	switch o {
	case OpPlus:
		return "Plus"
	case OpMinus:
		return "Minus"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	default:
		return "Unknown"
	}
}

// Symbol returns the source spelling of the operator
func (o Operator) Symbol() string {
	switch o {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// IsAdditive reports whether the operator belongs to the additive level
func (o Operator) IsAdditive() bool {
	return o == OpPlus || o == OpMinus
}

// File is the root of every tree. Content is never nil in a parsed tree.
type File struct {
	Content Construct // *FunctionDeclaration or Expression
	Pos     Position  // Position of the first token
}

// FunctionDeclaration represents "fun name(params): type = body"
type FunctionDeclaration struct {
	Name       string                  // Function name
	Parameters []*ParameterDeclaration // Ordered, possibly empty
	ReturnType Type                    // Declared result type
	Body       Expression              // Function body
	Pos        Position                // Position of 'fun'
	NamePos    Position                // Position of the name
}

// ParameterDeclaration represents "name: type"
type ParameterDeclaration struct {
	Name string   // Parameter name
	Type Type     // Declared type
	Pos  Position // Position of the name
}

// Literal is a number, integer or string literal. Text holds the lexeme
// without surrounding quotes and is never converted to a value.
type Literal struct {
	Kind LiteralKind
	Text string
	Pos  Position
}

// Reference is an identifier used as an operand
type Reference struct {
	Name string
	Pos  Position
}

// BinaryOp is "left op right"
type BinaryOp struct {
	Op    Operator
	Left  Expression
	Right Expression
	Pos   Position // Position of the operator
}

// Declaration returns the function declaration held by the file, if any
func (f *File) Declaration() (*FunctionDeclaration, bool) {
	decl, ok := f.Content.(*FunctionDeclaration)
	return decl, ok
}

// Expression returns the bare expression held by the file, if any
func (f *File) Expression() (Expression, bool) {
	expr, ok := f.Content.(Expression)
	return expr, ok
}

// Position implementations

func (f *File) Position() Position                 { return f.Pos }
func (d *FunctionDeclaration) Position() Position  { return d.Pos }
func (p *ParameterDeclaration) Position() Position { return p.Pos }
func (l *Literal) Position() Position              { return l.Pos }
func (r *Reference) Position() Position            { return r.Pos }
func (b *BinaryOp) Position() Position             { return b.Pos }

// String implementations

func (f *File) String() string {
	if f.Content == nil {
		return "File{}"
	}
	return "File{" + f.Content.String() + "}"
}

func (d *FunctionDeclaration) String() string {
	params := make([]string, len(d.Parameters))
	for i, p := range d.Parameters {
		params[i] = p.String()
	}
	body := "<nil>"
	if d.Body != nil {
		body = d.Body.String()
	}
	return fmt.Sprintf("Function(%s, [%s], %s, %s)",
		d.Name, strings.Join(params, ", "), d.ReturnType, body)
}

func (p *ParameterDeclaration) String() string {
	return p.Name + ": " + p.Type.String()
}

func (l *Literal) String() string {
	if l.Kind == LiteralString {
		return `"` + l.Text + `"`
	}
	return l.Text
}

func (r *Reference) String() string {
	return r.Name
}

func (b *BinaryOp) String() string {
	left, right := "<nil>", "<nil>"
	if b.Left != nil {
		left = b.Left.String()
	}
	if b.Right != nil {
		right = b.Right.String()
	}
	return fmt.Sprintf("%s(%s, %s)", b.Op, left, right)
}

// Marker methods close the node set.

func (*File) node()                 {}
func (*FunctionDeclaration) node()  {}
func (*ParameterDeclaration) node() {}
func (*Literal) node()              {}
func (*Reference) node()            {}
func (*BinaryOp) node()             {}

func (*FunctionDeclaration) construct() {}
func (*Literal) construct()             {}
func (*Reference) construct()           {}
func (*BinaryOp) construct()            {}

func (*Literal) expr()   {}
func (*Reference) expr() {}
func (*BinaryOp) expr()  {}
