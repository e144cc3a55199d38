// Package tui is the interactive parser REPL: every submitted line is
// parsed and its tree or diagnostics are appended to a scrollback.
package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/glottony/internal/render"
	"github.com/msto63/glottony/internal/source"
	"github.com/msto63/glottony/pkg/glottony/ast"
	"github.com/msto63/glottony/pkg/glottony/parser"
)

// unitName names REPL input in diagnostics
const unitName = "<repl>"

// Entry is one evaluated input in the scrollback
type Entry struct {
	Input     string
	Tree      string // s-expression of the parsed tree
	Canonical string // canonical source, empty if not representable
	Errors    string // rendered diagnostics
}

// Failed reports whether the input did not parse
func (e Entry) Failed() bool {
	return e.Errors != ""
}

// Model is the REPL model
type Model struct {
	// State
	width  int
	height int
	ready  bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Session
	entries []Entry
	history []string
	histPos int // index into history while browsing, len(history) otherwise
	options parser.Options
	styles  render.Styles

	// Content buffer
	content string
}

// NewModel creates a REPL model parsing with the given options
func NewModel(options parser.Options, color bool) Model {
	ti := textinput.New()
	ti.Placeholder = "fun f(x: int): int = x * 2"
	ti.Prompt = "» "
	ti.Focus()
	ti.CharLimit = 4000
	ti.Width = 76

	return Model{
		input:   ti,
		options: options,
		styles:  render.NewStyles(color),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// FailFast reports whether the REPL currently parses in fail-fast mode
func (m Model) FailFast() bool {
	return m.options.Mode == parser.FailFast
}

// Entries returns the evaluated inputs, oldest first
func (m Model) Entries() []Entry {
	return m.entries
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				return m, nil
			}
			m.entries = append(m.entries, m.evaluate(input))
			m.remember(input)
			m.input.Reset()
			m.updateContent()
			return m, nil

		case "up":
			if m.histPos > 0 {
				m.histPos--
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if m.histPos < len(m.history) {
				m.histPos++
			}
			if m.histPos == len(m.history) {
				m.input.Reset()
			} else {
				m.input.SetValue(m.history[m.histPos])
				m.input.CursorEnd()
			}
			return m, nil

		case "ctrl+f":
			if m.FailFast() {
				m.options.Mode = parser.RecoverErrors
			} else {
				m.options.Mode = parser.FailFast
			}
			return m, nil

		case "ctrl+l":
			m.entries = nil
			m.updateContent()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := max(1, msg.Height-7)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.input.Width = max(10, msg.Width-8)
		m.updateContent()
	}

	// Update components
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// evaluate parses input with the current options
func (m *Model) evaluate(input string) Entry {
	entry := Entry{Input: input}

	file, err := parser.New(m.options).Parse(input)
	if err != nil {
		var buf bytes.Buffer
		if errs := parser.Errors(err); errs != nil {
			render.Diagnostics(&buf, &source.Unit{Name: unitName, Text: input}, errs, m.styles)
		} else {
			fmt.Fprintf(&buf, "%s\n", err)
		}
		entry.Errors = strings.TrimRight(buf.String(), "\n")
		return entry
	}

	entry.Tree = file.String()
	if canonical, err := ast.Format(file); err == nil {
		entry.Canonical = canonical
	}
	return entry
}

// remember appends input to the history unless it repeats the last entry
func (m *Model) remember(input string) {
	if n := len(m.history); n == 0 || m.history[n-1] != input {
		m.history = append(m.history, input)
	}
	m.histPos = len(m.history)
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder

	// Header
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		TitleStyle.Render("glottony"),
		" ",
		SubtitleStyle.Render("parse expressions and declarations")))
	s.WriteString("\n")

	// Scrollback
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	// Input area
	s.WriteString(FocusedInputStyle.Render(m.input.View()))
	s.WriteString("\n")

	// Footer
	s.WriteString(m.renderFooter())

	return s.String()
}

func (m *Model) renderFooter() string {
	help := "Enter: Parse • ↑/↓: History • Ctrl+F: Mode • Ctrl+L: Clear • Esc: Quit"
	mode := "Mode: " + RenderMode(m.FailFast())

	return StatusBarStyle.Width(m.width).Render(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			help,
			strings.Repeat(" ", max(0, m.width-lipgloss.Width(help)-lipgloss.Width(mode)-4)),
			mode,
		),
	)
}

// renderEntry renders one scrollback entry
func (m *Model) renderEntry(e Entry) string {
	var s strings.Builder
	s.WriteString(PromptStyle.Render("» "))
	s.WriteString(e.Input)
	s.WriteString("\n")

	if e.Failed() {
		s.WriteString(ErrorMessageStyle.Render(e.Errors))
		return s.String()
	}

	s.WriteString(TreeStyle.Render(e.Tree))
	if e.Canonical != "" && e.Canonical != e.Input {
		s.WriteString("\n")
		s.WriteString(CanonicalStyle.Render("= " + e.Canonical))
	}
	return s.String()
}

func (m *Model) updateContent() {
	var content strings.Builder

	for _, e := range m.entries {
		content.WriteString(m.renderEntry(e))
		content.WriteString("\n\n")
	}

	m.content = content.String()
	if m.ready {
		m.viewport.SetContent(m.content)
		m.viewport.GotoBottom()
	}
}

// Run starts the REPL on the terminal and blocks until it quits
func Run(options parser.Options, color bool) error {
	p := tea.NewProgram(NewModel(options, color), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
