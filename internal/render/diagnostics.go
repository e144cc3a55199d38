// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     render
// Description: Diagnostic, token and summary output for the glot tool
// Created:     2026-10-17
// License:     MIT
// ============================================================================

// Package render writes parse results to a terminal: diagnostics with the
// offending source line, token listings, check summaries and AST dumps.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/msto63/glottony/internal/source"
	"github.com/msto63/glottony/pkg/glottony/parser"
)

// tabWidth is the number of columns a tab expands to in quoted source lines
const tabWidth = 4

// Diagnostics writes one block per error:
//
//	main.glot:1:10: error[UnexpectedToken]: expected ':', found '='
//	  1 | fun f(x) = 1
//	    |          ^
func Diagnostics(w io.Writer, unit *source.Unit, errs parser.ErrorList, s Styles) error {
	for _, e := range errs {
		if err := diagnostic(w, unit, e, s); err != nil {
			return err
		}
	}
	return nil
}

func diagnostic(w io.Writer, unit *source.Unit, e *parser.SyntaxError, s Styles) error {
	location := fmt.Sprintf("%s:%d:%d:", unit.Name, e.Pos.Line, e.Pos.Column)
	header := fmt.Sprintf("%s %s %s\n",
		s.Location.Render(location),
		s.Error.Render("error["+e.Kind.String()+"]:"),
		s.Message.Render(e.Message))
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	line := unit.Line(e.Pos.Line)
	if line == "" && e.Pos.Column <= 1 {
		return nil
	}

	number := strconv.Itoa(e.Pos.Line)
	gutter := strings.Repeat(" ", len(number))
	prefix, _ := splitAtColumn(line, e.Pos.Column)

	quoted := fmt.Sprintf("  %s %s\n  %s %s%s\n",
		s.Gutter.Render(number+" |"),
		s.Source.Render(expandTabs(line)),
		s.Gutter.Render(gutter+" |"),
		strings.Repeat(" ", runewidth.StringWidth(expandTabs(prefix))),
		s.Caret.Render(strings.Repeat("^", caretWidth(e.Found))))
	_, err := io.WriteString(w, quoted)
	return err
}

// splitAtColumn splits line before the 1-based code point column
func splitAtColumn(line string, column int) (string, string) {
	runes := []rune(line)
	i := column - 1
	if i < 0 {
		i = 0
	}
	if i > len(runes) {
		i = len(runes)
	}
	return string(runes[:i]), string(runes[i:])
}

// caretWidth covers the first line of the offending token
func caretWidth(tok parser.Token) int {
	value := tok.Value
	if i := strings.IndexByte(value, '\n'); i >= 0 {
		value = value[:i]
	}
	if n := runewidth.StringWidth(expandTabs(value)); n > 0 {
		return n
	}
	return 1
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Failure writes a non-syntax failure of a result, e.g. an unreadable file
func Failure(w io.Writer, res source.Result, s Styles) error {
	_, err := fmt.Fprintf(w, "%s %s %s\n",
		s.Location.Render(res.Path+":"),
		s.Error.Render("error:"),
		s.Message.Render(res.Err.Error()))
	return err
}

// Result writes the diagnostics of a check result, or nothing if it passed
func Result(w io.Writer, res source.Result, s Styles) error {
	if res.Err != nil {
		return Failure(w, res, s)
	}
	if res.Unit == nil {
		return nil
	}
	return Diagnostics(w, res.Unit, res.Errors, s)
}

// Summary writes the closing line of a multi-file check
func Summary(w io.Writer, sum source.Summary, s Styles) error {
	files := plural(sum.Files, "file")
	if sum.Failed == 0 {
		_, err := fmt.Fprintln(w, s.OK.Render(files+" checked, no errors"))
		return err
	}
	_, err := fmt.Fprintln(w, s.Error.Render(fmt.Sprintf("%s checked, %d failed, %s",
		files, sum.Failed, plural(sum.Errors, "error"))))
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// Tokens writes one token per line as "line:col  TYPE  value"
func Tokens(w io.Writer, tokens []parser.Token, s Styles) error {
	for _, tok := range tokens {
		position := fmt.Sprintf("%d:%d", tok.Line, tok.Column)
		line := fmt.Sprintf("%s %s %s\n",
			s.Muted.Render(fmt.Sprintf("%-7s", position)),
			s.Node.Render(fmt.Sprintf("%-12s", tok.Type)),
			s.Value.Render(strconv.Quote(tok.Value)))
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
