// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     ast
// Description: Traversal, folding and structural equality over the AST
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package ast

import "fmt"

// Visitor is called by Walk for every node. If Visit returns a non-nil
// visitor w, Walk visits the children of node with w and then calls
// w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree rooted at node in depth-first order
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *File:
		if n.Content != nil {
			Walk(v, n.Content)
		}
	case *FunctionDeclaration:
		for _, p := range n.Parameters {
			Walk(v, p)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *BinaryOp:
		if n.Left != nil {
			Walk(v, n.Left)
		}
		if n.Right != nil {
			Walk(v, n.Right)
		}
	case *ParameterDeclaration, *Literal, *Reference:
		// leaves
	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect calls f for every node in depth-first order, followed by f(nil)
// after the children of a node were visited. Returning false from f skips
// the children of that node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Folder reduces an expression tree bottom-up. Every field must be set.
type Folder[T any] struct {
	Literal   func(*Literal) T
	Reference func(*Reference) T
	Binary    func(op *BinaryOp, left, right T) T
}

// Fold applies the folder to expr, combining children before parents
func Fold[T any](expr Expression, f Folder[T]) T {
	switch e := expr.(type) {
	case *Literal:
		return f.Literal(e)
	case *Reference:
		return f.Reference(e)
	case *BinaryOp:
		left := Fold(e.Left, f)
		right := Fold(e.Right, f)
		return f.Binary(e, left, right)
	default:
		panic(fmt.Sprintf("ast.Fold: unexpected expression type %T", e))
	}
}

// Equal reports whether a and b have the same shape and content.
// Source positions are ignored.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return isNil(a) && isNil(b)
	}

	switch x := a.(type) {
	case *File:
		y, ok := b.(*File)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return Equal(x.Content, y.Content)

	case *FunctionDeclaration:
		y, ok := b.(*FunctionDeclaration)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		if x.Name != y.Name || x.ReturnType != y.ReturnType || len(x.Parameters) != len(y.Parameters) {
			return false
		}
		for i := range x.Parameters {
			if !Equal(x.Parameters[i], y.Parameters[i]) {
				return false
			}
		}
		return Equal(x.Body, y.Body)

	case *ParameterDeclaration:
		y, ok := b.(*ParameterDeclaration)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return x.Name == y.Name && x.Type == y.Type

	case *Literal:
		y, ok := b.(*Literal)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return x.Kind == y.Kind && x.Text == y.Text

	case *Reference:
		y, ok := b.(*Reference)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return x.Name == y.Name

	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}
		return x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	}

	return false
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *File:
		return v == nil
	case *FunctionDeclaration:
		return v == nil
	case *ParameterDeclaration:
		return v == nil
	case *Literal:
		return v == nil
	case *Reference:
		return v == nil
	case *BinaryOp:
		return v == nil
	}
	return false
}
