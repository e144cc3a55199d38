// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     render
// Description: Line diff between source and its canonical form
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff writes a line diff from before to after. It writes nothing and
// returns false when both are equal.
func Diff(w io.Writer, name, before, after string, s Styles) (bool, error) {
	if before == after {
		return false, nil
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	out.WriteString(s.Location.Render("--- "+name) + "\n")
	out.WriteString(s.Location.Render("+++ "+name+" (formatted)") + "\n")

	for _, d := range diffs {
		prefix, style := " ", s.Source
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, style = "-", s.Error
		case diffmatchpatch.DiffInsert:
			prefix, style = "+", s.OK
		}
		for _, line := range splitLines(d.Text) {
			out.WriteString(style.Render(prefix+line) + "\n")
		}
	}

	if _, err := io.WriteString(w, out.String()); err != nil {
		return true, fmt.Errorf("write diff: %w", err)
	}
	return true, nil
}

// splitLines splits text into lines; a final newline does not start
// another line
func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
