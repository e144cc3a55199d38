// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     render
// Description: AST output as tree, s-expression, JSON and YAML
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/glottony/pkg/glottony/ast"
)

// Format selects the AST output format
type Format string

const (
	FormatTree  Format = "tree"
	FormatSExpr Format = "sexpr"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTree, FormatSExpr, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTree, nil
	}
	return "", fmt.Errorf("unknown output format %q (want tree, sexpr, json or yaml)", s)
}

// NodeDump is the serializable form of a node
type NodeDump struct {
	Kind       string      `json:"kind" yaml:"kind"`
	Pos        string      `json:"pos" yaml:"pos"`
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Type       string      `json:"type,omitempty" yaml:"type,omitempty"`
	Value      string      `json:"value,omitempty" yaml:"value,omitempty"`
	Op         string      `json:"op,omitempty" yaml:"op,omitempty"`
	Parameters []*NodeDump `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Children   []*NodeDump `json:"children,omitempty" yaml:"children,omitempty"`
}

// label is the one-line description used by the tree format
func (d *NodeDump) label(s Styles) string {
	var parts []string
	parts = append(parts, s.Node.Render(d.Kind))
	switch {
	case d.Op != "":
		parts = append(parts, s.Value.Render(d.Op))
	case d.Value != "":
		parts = append(parts, s.Value.Render(d.Value))
	case d.Name != "" && d.Type != "":
		parts = append(parts, s.Value.Render(d.Name+": "+d.Type))
	case d.Name != "":
		parts = append(parts, s.Value.Render(d.Name))
	}
	return strings.Join(parts, " ") + " " + s.Muted.Render("@"+d.Pos)
}

// Dump converts a tree into its serializable form
func Dump(node ast.Node) *NodeDump {
	switch n := node.(type) {
	case *ast.File:
		d := &NodeDump{Kind: "File", Pos: n.Pos.String()}
		if n.Content != nil {
			d.Children = []*NodeDump{Dump(n.Content)}
		}
		return d

	case *ast.FunctionDeclaration:
		d := &NodeDump{
			Kind: "Function",
			Pos:  n.Pos.String(),
			Name: n.Name,
			Type: n.ReturnType.String(),
		}
		for _, p := range n.Parameters {
			d.Parameters = append(d.Parameters, Dump(p))
		}
		if n.Body != nil {
			d.Children = []*NodeDump{Dump(n.Body)}
		}
		return d

	case *ast.ParameterDeclaration:
		return &NodeDump{
			Kind: "Parameter",
			Pos:  n.Pos.String(),
			Name: n.Name,
			Type: n.Type.String(),
		}

	case ast.Expression:
		return ast.Fold(n, dumpFolder)
	}
	return &NodeDump{Kind: "Unknown", Pos: "-"}
}

var dumpFolder = ast.Folder[*NodeDump]{
	Literal: func(l *ast.Literal) *NodeDump {
		return &NodeDump{Kind: l.Kind.String(), Pos: l.Pos.String(), Value: l.String()}
	},
	Reference: func(r *ast.Reference) *NodeDump {
		return &NodeDump{Kind: "Reference", Pos: r.Pos.String(), Name: r.Name}
	},
	Binary: func(b *ast.BinaryOp, left, right *NodeDump) *NodeDump {
		return &NodeDump{
			Kind:     b.Op.String(),
			Pos:      b.Pos.String(),
			Op:       b.Op.Symbol(),
			Children: []*NodeDump{left, right},
		}
	},
}

// AST writes file in the given format. Styles only affect the tree format.
func AST(w io.Writer, file *ast.File, format Format, s Styles) error {
	switch format {
	case FormatSExpr:
		_, err := fmt.Fprintln(w, file.String())
		return err

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Dump(file))

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Dump(file)); err != nil {
			return err
		}
		return enc.Close()

	case FormatTree, "":
		var b strings.Builder
		writeTree(&b, Dump(file), "", "", s)
		_, err := io.WriteString(w, b.String())
		return err
	}
	return fmt.Errorf("unknown output format %q", format)
}

// writeTree draws d with box characters; prefix continues the parent's
// branches and childPrefix is used for d's own children
func writeTree(b *strings.Builder, d *NodeDump, prefix, childPrefix string, s Styles) {
	b.WriteString(prefix)
	b.WriteString(d.label(s))
	b.WriteByte('\n')

	children := append(append([]*NodeDump{}, d.Parameters...), d.Children...)
	for i, child := range children {
		branch, indent := "├── ", "│   "
		if i == len(children)-1 {
			branch, indent = "└── ", "    "
		}
		writeTree(b,
			child,
			childPrefix+s.Muted.Render(branch),
			childPrefix+s.Muted.Render(indent),
			s)
	}
}
