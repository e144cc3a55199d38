// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     ast
// Description: Unit tests for nodes, traversal, equality and printing
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package ast

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

func lit(kind LiteralKind, text string) *Literal {
	return &Literal{Kind: kind, Text: text}
}

func bin(op Operator, left, right Expression) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right}
}

// add(a: num, b: num): num = a + b * 2
func sampleDeclaration() *FunctionDeclaration {
	return &FunctionDeclaration{
		Name: "add",
		Parameters: []*ParameterDeclaration{
			{Name: "a", Type: TypeNumber},
			{Name: "b", Type: TypeNumber},
		},
		ReturnType: TypeNumber,
		Body: bin(OpPlus,
			&Reference{Name: "a"},
			bin(OpMul, &Reference{Name: "b"}, lit(LiteralInteger, "2"))),
	}
}

func TestNode_String(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"Integer literal", lit(LiteralInteger, "42"), "42"},
		{"String literal", lit(LiteralString, "hi"), `"hi"`},
		{"Reference", &Reference{Name: "x"}, "x"},
		{"Nested binary", bin(OpPlus, lit(LiteralInteger, "2"), bin(OpMul, lit(LiteralInteger, "3"), lit(LiteralInteger, "4"))), "Plus(2, Mul(3, 4))"},
		{"Parameter", &ParameterDeclaration{Name: "s", Type: TypeString}, "s: string"},
		{"Declaration", sampleDeclaration(), "Function(add, [a: num, b: num], num, Plus(a, Mul(b, 2)))"},
		{"File", &File{Content: lit(LiteralNumber, "1.5")}, "File{1.5}"},
		{"Empty file", &File{}, "File{}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestEnums_String(t *testing.T) {
	if TypeInteger.String() != "int" || TypeInteger.Name() != "Integer" {
		t.Errorf("Unexpected type rendering %s/%s", TypeInteger, TypeInteger.Name())
	}
	if LiteralNumber.String() != "Number" {
		t.Errorf("Expected Number, got %s", LiteralNumber)
	}
	if OpDiv.String() != "Div" || OpDiv.Symbol() != "/" || OpDiv.IsAdditive() {
		t.Errorf("Unexpected operator rendering %s/%s", OpDiv, OpDiv.Symbol())
	}
	if !OpMinus.IsAdditive() {
		t.Error("Expected Minus to be additive")
	}
	if (Position{}).String() != "-" {
		t.Errorf("Expected '-' for an unset position, got %s", Position{})
	}
}

func TestFile_Content(t *testing.T) {
	file := &File{Content: sampleDeclaration()}
	if _, ok := file.Declaration(); !ok {
		t.Error("Expected a declaration")
	}
	if _, ok := file.Expression(); ok {
		t.Error("Expected no bare expression")
	}

	file = &File{Content: lit(LiteralString, "x")}
	if _, ok := file.Expression(); !ok {
		t.Error("Expected a bare expression")
	}
}

type collector struct {
	visited []string
}

func (c *collector) Visit(node Node) Visitor {
	if node == nil {
		c.visited = append(c.visited, "<end>")
		return nil
	}
	c.visited = append(c.visited, strings.SplitN(node.String(), "(", 2)[0])
	return c
}

func TestWalk(t *testing.T) {
	c := &collector{}
	Walk(c, &File{Content: bin(OpMinus, lit(LiteralInteger, "1"), &Reference{Name: "x"})})

	expected := []string{"File{Minus", "Minus", "1", "<end>", "x", "<end>", "<end>", "<end>"}
	if strings.Join(c.visited, " ") != strings.Join(expected, " ") {
		t.Errorf("Expected visit order %v, got %v", expected, c.visited)
	}
}

func TestInspect(t *testing.T) {
	var params, refs int
	Inspect(&File{Content: sampleDeclaration()}, func(n Node) bool {
		switch n.(type) {
		case *ParameterDeclaration:
			params++
		case *Reference:
			refs++
		}
		return true
	})
	if params != 2 || refs != 2 {
		t.Errorf("Expected 2 parameters and 2 references, got %d and %d", params, refs)
	}

	var visited int
	Inspect(sampleDeclaration(), func(n Node) bool {
		if n != nil {
			visited++
		}
		_, isDecl := n.(*FunctionDeclaration)
		return isDecl
	})
	if visited != 4 {
		t.Errorf("Expected pruned walk to visit 4 nodes, got %d", visited)
	}
}

func TestFold(t *testing.T) {
	// 1 - 2 - 3 grouped to the right evaluates to 2
	expr := bin(OpMinus, lit(LiteralInteger, "1"), bin(OpMinus, lit(LiteralInteger, "2"), lit(LiteralInteger, "3")))

	eval := Folder[int]{
		Literal: func(l *Literal) int {
			n, _ := strconv.Atoi(l.Text)
			return n
		},
		Reference: func(*Reference) int { return 0 },
		Binary: func(op *BinaryOp, left, right int) int {
			switch op.Op {
			case OpPlus:
				return left + right
			case OpMinus:
				return left - right
			case OpMul:
				return left * right
			default:
				return left / right
			}
		},
	}
	if got := Fold(expr, eval); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}

	depth := Folder[int]{
		Literal:   func(*Literal) int { return 1 },
		Reference: func(*Reference) int { return 1 },
		Binary: func(_ *BinaryOp, left, right int) int {
			return 1 + max(left, right)
		},
	}
	if got := Fold(expr, depth); got != 3 {
		t.Errorf("Expected depth 3, got %d", got)
	}
}

func TestEqual(t *testing.T) {
	positioned := sampleDeclaration()
	positioned.Pos = Position{Line: 3, Column: 1, Offset: 20}
	positioned.Parameters[0].Pos = Position{Line: 3, Column: 9, Offset: 28}

	renamed := sampleDeclaration()
	renamed.Parameters[1].Name = "c"

	retyped := sampleDeclaration()
	retyped.ReturnType = TypeInteger

	tests := []struct {
		name     string
		a, b     Node
		expected bool
	}{
		{"Positions are ignored", sampleDeclaration(), positioned, true},
		{"Parameter names differ", sampleDeclaration(), renamed, false},
		{"Return types differ", sampleDeclaration(), retyped, false},
		{"Literal kinds differ", lit(LiteralInteger, "1"), lit(LiteralNumber, "1"), false},
		{"Operators differ", bin(OpPlus, lit(LiteralInteger, "1"), lit(LiteralInteger, "2")), bin(OpMinus, lit(LiteralInteger, "1"), lit(LiteralInteger, "2")), false},
		{"Variants differ", lit(LiteralString, "x"), &Reference{Name: "x"}, false},
		{"Both nil", nil, nil, true},
		{"Typed nil equals nil", (*File)(nil), nil, true},
		{"Files", &File{Content: lit(LiteralInteger, "1")}, &File{Content: lit(LiteralInteger, "1")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.expected {
				t.Errorf("Equal = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		expected string
	}{
		{"Declaration", &File{Content: sampleDeclaration()}, "fun add(a: num, b: num): num = a + b * 2"},
		{"No parameters", &FunctionDeclaration{Name: "f", ReturnType: TypeString, Body: lit(LiteralString, "s")}, `fun f(): string = "s"`},
		{"Right nested subtraction", bin(OpMinus, lit(LiteralInteger, "1"), bin(OpMinus, lit(LiteralInteger, "2"), lit(LiteralInteger, "3"))), "1 - 2 - 3"},
		{"Left nested division", bin(OpDiv, bin(OpDiv, lit(LiteralInteger, "6"), lit(LiteralInteger, "3")), lit(LiteralInteger, "2")), "6 / 3 / 2"},
		{"File with a trailing identifier", &File{Content: bin(OpMul, lit(LiteralInteger, "2"), &Reference{Name: "x"})}, "2 * x"},
		{"Product on the left of a sum", bin(OpPlus, bin(OpMul, lit(LiteralInteger, "2"), lit(LiteralInteger, "3")), lit(LiteralNumber, "4.5")), "2 * 3 + 4.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Format(tt.node)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormat_NotRepresentable(t *testing.T) {
	one, two, three := lit(LiteralInteger, "1"), lit(LiteralInteger, "2"), lit(LiteralInteger, "3")

	tests := []struct {
		name string
		node Node
	}{
		{"Left nested subtraction", bin(OpMinus, bin(OpMinus, one, two), three)},
		{"Sum under a product", bin(OpMul, bin(OpPlus, one, two), three)},
		{"Product on the right of a product", bin(OpMul, one, bin(OpMul, two, three))},
		{"Quote inside a string", lit(LiteralString, `say "hi"`)},
		{"Empty file", &File{}},
		{"Missing body", &FunctionDeclaration{Name: "f", ReturnType: TypeInteger}},
		{"Invalid type", &FunctionDeclaration{Name: "f", Body: one}},
		{"File starting with an identifier", &File{Content: &Reference{Name: "x"}}},
		{"File starting with a nested identifier", &File{Content: bin(OpPlus, bin(OpMul, &Reference{Name: "x"}, two), three)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.node)
			if !errors.Is(err, ErrNotRepresentable) {
				t.Errorf("Expected ErrNotRepresentable, got %v", err)
			}
		})
	}
}
