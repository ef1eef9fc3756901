// ============================================================================
// exprfront - Expression language front end
// ============================================================================
//
// Package:     repl
// Description: Bubbletea model for the interactive expression shell
// Author:      msto63
// Created:     2025-06-02
// License:     MIT
// ============================================================================

package repl

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/exprfront/foundation/exprlang"
	mdwast "github.com/msto63/exprfront/foundation/exprlang/ast"
	"github.com/msto63/exprfront/internal/tui"
	"github.com/msto63/exprfront/pkg/core/version"
)

// Config holds REPL configuration
type Config struct {
	Prompt     string
	HistoryMax int
	Engine     *exprlang.Engine
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Prompt:     "expr> ",
		HistoryMax: 200,
	}
}

// entry is one submitted line and what parsing it produced
type entry struct {
	source  string
	program *exprlang.Program
	err     error
}

// Model is the Bubbletea model for the REPL
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	showTree bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	// Session state
	entries     []entry
	history     []string
	histIndex   int
	statements  int
	diagnostics int

	// Configuration
	engine     *exprlang.Engine
	historyMax int
}

// New creates a new REPL model
func New(cfg Config) Model {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultConfig().Prompt
	}
	if cfg.HistoryMax <= 0 {
		cfg.HistoryMax = DefaultConfig().HistoryMax
	}
	if cfg.Engine == nil {
		cfg.Engine = exprlang.NewEngine()
	}

	ti := textinput.New()
	ti.Prompt = cfg.Prompt
	ti.PromptStyle = tui.SourceStyle
	ti.Placeholder = "let x = 1 + 2;"
	ti.CharLimit = 4000
	ti.Focus()

	return Model{
		input:      ti,
		engine:     cfg.Engine,
		historyMax: cfg.HistoryMax,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			m.submit()
			return m, nil

		case tea.KeyCtrlL:
			m.entries = nil
			m.statements, m.diagnostics = 0, 0
			m.updateViewportContent()
			return m, nil

		case tea.KeyCtrlT:
			m.showTree = !m.showTree
			m.updateViewportContent()
			return m, nil

		case tea.KeyUp:
			m.recall(-1)
			return m, nil

		case tea.KeyDown:
			m.recall(1)
			return m, nil

		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 2 // Title + blank line
		footerHeight := 4 // Input + status bar + help
		viewportHeight := msg.Height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(msg.Width, viewportHeight)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		m.updateViewportContent()
	}

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit parses the current input line with a fresh parser
func (m *Model) submit() {
	source := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if source == "" {
		return
	}

	prog, err := m.engine.ParseAll(context.Background(), source)
	m.entries = append(m.entries, entry{source: source, program: prog, err: err})
	if len(m.entries) > m.historyMax {
		m.entries = m.entries[len(m.entries)-m.historyMax:]
	}
	if prog != nil {
		m.statements += len(prog.Statements)
		m.diagnostics += len(prog.Diagnostics)
	}

	if n := len(m.history); n == 0 || m.history[n-1] != source {
		m.history = append(m.history, source)
		if len(m.history) > m.historyMax {
			m.history = m.history[1:]
		}
	}
	m.histIndex = len(m.history)

	m.updateViewportContent()
}

// recall moves through previously submitted lines
func (m *Model) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	idx := m.histIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.history) {
		m.histIndex = len(m.history)
		m.input.SetValue("")
		return
	}
	m.histIndex = idx
	m.input.SetValue(m.history[idx])
	m.input.CursorEnd()
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderEntries())
	m.viewport.GotoBottom()
}

func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return tui.SubtitleStyle.Render("Enter statements terminated by ';'. Ctrl+T toggles trees.")
	}

	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(tui.SourceStyle.Render(m.input.Prompt + e.source))
		b.WriteString("\n")
		b.WriteString(renderEntry(e, m.showTree))
	}
	return b.String()
}

func renderEntry(e entry, showTree bool) string {
	if e.err != nil {
		return tui.RenderError(e.err.Error())
	}

	var lines []string
	for _, stmt := range e.program.Statements {
		tree := ""
		if showTree {
			tree = mdwast.Dump(stmt)
		}
		lines = append(lines, tui.RenderStatement(stmt.String(), tree))
	}
	for _, d := range e.program.Diagnostics {
		lines = append(lines, tui.RenderDiagnostic(d.Kind.String(), d.Message, d.Line, d.Column))
	}
	if len(lines) == 0 {
		lines = append(lines, tui.HelpStyle.Render("(nothing parsed)"))
	}
	return strings.Join(lines, "\n")
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Starting REPL..."
	}

	var b strings.Builder
	b.WriteString(tui.RenderTitle("exprfront " + version.REPL))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(tui.RenderHelp("enter parse • ↑/↓ history • pgup/pgdn scroll • ctrl+t trees • ctrl+l clear • esc quit"))
	return b.String()
}

func (m Model) renderStatusBar() string {
	tree := "off"
	if m.showTree {
		tree = "on"
	}
	text := fmt.Sprintf("%d entries • trees %s • ", len(m.entries), tree)
	return tui.StatusBarStyle.Render(text) + " " + tui.RenderSummary(m.statements, m.diagnostics)
}

// Run starts the REPL in the alternate screen and blocks until it exits
func Run(cfg Config) error {
	p := tea.NewProgram(New(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
