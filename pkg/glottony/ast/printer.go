// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     ast
// Description: Canonical source printer. Output re-parses to an equal tree.
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package ast

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotRepresentable is returned by Format for trees the grammar cannot
// express without grouping, e.g. a subtraction as the left operand of a
// subtraction.
var ErrNotRepresentable = errors.New("tree has no source representation")

// Format renders node as canonical source text
func Format(node Node) (string, error) {
	var b strings.Builder
	if err := format(&b, node); err != nil {
		return "", err
	}
	return b.String(), nil
}

func format(b *strings.Builder, node Node) error {
	switch n := node.(type) {
	case *File:
		if n.Content == nil {
			return fmt.Errorf("%w: empty file", ErrNotRepresentable)
		}
		if e, ok := n.Content.(Expression); ok {
			if ref, ok := leftmost(e).(*Reference); ok {
				return fmt.Errorf("%w: file starts with identifier %s", ErrNotRepresentable, ref.Name)
			}
		}
		return format(b, n.Content)

	case *FunctionDeclaration:
		b.WriteString("fun ")
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, p := range n.Parameters {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := format(b, p); err != nil {
				return err
			}
		}
		b.WriteString("): ")
		if err := formatType(b, n.ReturnType); err != nil {
			return err
		}
		b.WriteString(" = ")
		if n.Body == nil {
			return fmt.Errorf("%w: function %s has no body", ErrNotRepresentable, n.Name)
		}
		return formatExpr(b, n.Body)

	case *ParameterDeclaration:
		b.WriteString(n.Name)
		b.WriteString(": ")
		return formatType(b, n.Type)

	case Expression:
		return formatExpr(b, n)
	}

	return fmt.Errorf("%w: unexpected node %T", ErrNotRepresentable, node)
}

func formatType(b *strings.Builder, t Type) error {
	if t == TypeInvalid {
		return fmt.Errorf("%w: invalid type", ErrNotRepresentable)
	}
	b.WriteString(t.String())
	return nil
}

// leftmost returns the operand that is printed first
func leftmost(e Expression) Expression {
	for {
		n, ok := e.(*BinaryOp)
		if !ok || n.Left == nil {
			return e
		}
		e = n.Left
	}
}

// formatExpr writes an expression. An additive node takes a non-additive
// left operand and any right operand; a multiplicative node takes a
// non-additive left operand and a leaf right operand.
func formatExpr(b *strings.Builder, e Expression) error {
	switch n := e.(type) {
	case *Literal:
		if n.Kind == LiteralString {
			if strings.ContainsRune(n.Text, '"') {
				return fmt.Errorf("%w: string literal contains a quote", ErrNotRepresentable)
			}
			b.WriteByte('"')
			b.WriteString(n.Text)
			b.WriteByte('"')
			return nil
		}
		b.WriteString(n.Text)
		return nil

	case *Reference:
		b.WriteString(n.Name)
		return nil

	case *BinaryOp:
		if n.Left == nil || n.Right == nil {
			return fmt.Errorf("%w: incomplete %s", ErrNotRepresentable, n.Op)
		}
		if left, ok := n.Left.(*BinaryOp); ok && left.Op.IsAdditive() {
			return fmt.Errorf("%w: %s as left operand of %s", ErrNotRepresentable, left.Op, n.Op)
		}
		if !n.Op.IsAdditive() {
			if right, ok := n.Right.(*BinaryOp); ok {
				return fmt.Errorf("%w: %s as right operand of %s", ErrNotRepresentable, right.Op, n.Op)
			}
		}
		if err := formatExpr(b, n.Left); err != nil {
			return err
		}
		b.WriteByte(' ')
		b.WriteString(n.Op.Symbol())
		b.WriteByte(' ')
		return formatExpr(b, n.Right)
	}

	return fmt.Errorf("%w: unexpected expression %T", ErrNotRepresentable, e)
}
