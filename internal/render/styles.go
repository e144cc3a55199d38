// ============================================================================
// glottony - Expression Language Front End
// ============================================================================
//
// Package:     render
// Description: Terminal styles for diagnostics and tree output
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#F59E0B")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles holds the styles used by the renderers
type Styles struct {
	Location lipgloss.Style // file:line:col
	Error    lipgloss.Style // "error" label and kind
	Message  lipgloss.Style // diagnostic text
	Gutter   lipgloss.Style // line numbers and bars
	Source   lipgloss.Style // quoted source line
	Caret    lipgloss.Style // ^^^ marker
	OK       lipgloss.Style // success summary
	Node     lipgloss.Style // tree node labels
	Value    lipgloss.Style // names, literals, types
	Muted    lipgloss.Style // positions and tree branches
}

// DefaultStyles returns the colored styles
func DefaultStyles() Styles {
	return Styles{
		Location: lipgloss.NewStyle().Bold(true).Foreground(colorFg),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Message:  lipgloss.NewStyle().Foreground(colorFg),
		Gutter:   lipgloss.NewStyle().Foreground(colorMuted),
		Source:   lipgloss.NewStyle(),
		Caret:    lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		OK:       lipgloss.NewStyle().Foreground(colorSecondary),
		Node:     lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Value:    lipgloss.NewStyle().Foreground(colorSecondary),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Location: plain,
		Error:    plain,
		Message:  plain,
		Gutter:   plain,
		Source:   plain,
		Caret:    plain,
		OK:       plain,
		Node:     plain,
		Value:    plain,
		Muted:    plain,
	}
}

// NewStyles returns colored or plain styles
func NewStyles(color bool) Styles {
	if color {
		return DefaultStyles()
	}
	return PlainStyles()
}
