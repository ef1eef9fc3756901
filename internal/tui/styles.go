// ============================================================================
// exprfront - Expression language front end
// ============================================================================
//
// Package:     tui
// Description: Shared lipgloss palette and renderers for parse results
// Author:      msto63
// Created:     2025-06-02
// License:     MIT
// ============================================================================

package tui

import (
	"fmt"
	"strings"

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

// Styles
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	// Entry styles
	SourceStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	StatementStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	TreeStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			PaddingLeft(4)

	ScanErrorStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	SyntaxErrorStyle = lipgloss.NewStyle().
				Foreground(colorError)

	PositionStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Status styles
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(colorFg).
			Padding(0, 1)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(colorError)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Diagnostic kinds as rendered by DiagnosticKind.String
const (
	KindScan   = "scan"
	KindSyntax = "syntax"
)

// Helper functions
func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

func RenderError(err string) string {
	return StatusErrorStyle.Render("error: " + err)
}

func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}

// RenderStatement renders one parsed statement, optionally followed by its
// indented tree dump
func RenderStatement(text, tree string) string {
	line := StatusOKStyle.Render("✓ ") + StatementStyle.Render(text)
	if tree == "" {
		return line
	}
	return line + "\n" + TreeStyle.Render(strings.TrimRight(tree, "\n"))
}

// RenderDiagnostic renders one diagnostic as "✗ line:col kind: message"
func RenderDiagnostic(kind, message string, line, column int) string {
	style := SyntaxErrorStyle
	if kind == KindScan {
		style = ScanErrorStyle
	}
	pos := PositionStyle.Render(fmt.Sprintf("%d:%d", line, column))
	return style.Render("✗ ") + pos + " " + style.Render(kind+": "+message)
}

// RenderSummary renders the statement and diagnostic counts
func RenderSummary(statements, diagnostics int) string {
	text := fmt.Sprintf("%d statement(s), %d diagnostic(s)", statements, diagnostics)
	if diagnostics > 0 {
		return StatusErrorStyle.Render(text)
	}
	return StatusOKStyle.Render(text)
}
