package repl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	mdwlog "github.com/msto63/exprfront/foundation/core/log"
	"github.com/msto63/exprfront/foundation/exprlang"
)

func newTestModel(t *testing.T, cfg Config) Model {
	t.Helper()
	cfg.Engine = exprlang.NewEngine(exprlang.Options{Logger: mdwlog.Discard()})
	m := New(cfg)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func typeLine(m Model, line string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestNew_Defaults(t *testing.T) {
	m := New(Config{Engine: exprlang.NewEngine(exprlang.Options{Logger: mdwlog.Discard()})})
	if m.input.Prompt != "expr> " {
		t.Errorf("prompt = %q, want \"expr> \"", m.input.Prompt)
	}
	if m.historyMax != 200 {
		t.Errorf("historyMax = %d, want 200", m.historyMax)
	}
	if m.View() != "Starting REPL..." {
		t.Errorf("View() before resize = %q", m.View())
	}
}

func TestSubmitParsesLine(t *testing.T) {
	tests := []struct {
		name            string
		line            string
		wantStatements  int
		wantDiagnostics int
		wantInView      string
	}{
		{"declaration", "let x: number = 1 + 2;", 1, 0, "let x: number = (1 + 2)"},
		{"two statements", "a = 1; f(a);", 2, 0, "f(a: a)"},
		{"syntax error", "let = 1;", 0, 1, "syntax:"},
		{"scan error", "x = 1 #;", 1, 1, "scan:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := typeLine(newTestModel(t, Config{}), tt.line)

			if len(m.entries) != 1 {
				t.Fatalf("entries = %d, want 1", len(m.entries))
			}
			if m.statements != tt.wantStatements || m.diagnostics != tt.wantDiagnostics {
				t.Errorf("counts = %d/%d, want %d/%d",
					m.statements, m.diagnostics, tt.wantStatements, tt.wantDiagnostics)
			}
			if m.input.Value() != "" {
				t.Errorf("input not reset: %q", m.input.Value())
			}
			if view := m.renderEntries(); !strings.Contains(view, tt.wantInView) {
				t.Errorf("view missing %q:\n%s", tt.wantInView, view)
			}
		})
	}
}

func TestEmptyLineIgnored(t *testing.T) {
	m := typeLine(newTestModel(t, Config{}), "   ")
	if len(m.entries) != 0 || len(m.history) != 0 {
		t.Errorf("entries = %d, history = %d, want none", len(m.entries), len(m.history))
	}
}

func TestHistoryRecall(t *testing.T) {
	m := newTestModel(t, Config{})
	m = typeLine(m, "a = 1;")
	m = typeLine(m, "b = 2;")
	m = typeLine(m, "b = 2;")

	if len(m.history) != 2 {
		t.Fatalf("history = %v, want duplicates collapsed", m.history)
	}

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "b = 2;"},
		{tea.KeyUp, "a = 1;"},
		{tea.KeyUp, "a = 1;"},
		{tea.KeyDown, "b = 2;"},
		{tea.KeyDown, ""},
	}
	for i, step := range steps {
		updated, _ := m.Update(tea.KeyMsg{Type: step.key})
		m = updated.(Model)
		if m.input.Value() != step.want {
			t.Errorf("step %d: input = %q, want %q", i, m.input.Value(), step.want)
		}
	}
}

func TestHistoryMax(t *testing.T) {
	m := newTestModel(t, Config{HistoryMax: 2})
	for _, line := range []string{"a;", "b;", "c;"} {
		m = typeLine(m, line)
	}
	if len(m.entries) != 2 || m.entries[0].source != "b;" {
		t.Errorf("entries = %+v, want last two", m.entries)
	}
	if len(m.history) != 2 || m.history[0] != "b;" {
		t.Errorf("history = %v, want last two", m.history)
	}
}

func TestClearAndTreeToggle(t *testing.T) {
	m := typeLine(newTestModel(t, Config{}), "x = 1 * 2;")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	if !m.showTree {
		t.Fatal("ctrl+t should enable trees")
	}
	if view := m.renderEntries(); !strings.Contains(view, "Binary") {
		t.Errorf("tree dump missing:\n%s", view)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(Model)
	if len(m.entries) != 0 || m.statements != 0 {
		t.Errorf("ctrl+l left %d entries, %d statements", len(m.entries), m.statements)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := newTestModel(t, Config{}).Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Fatalf("%v: expected quit command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: command did not quit", key)
		}
	}
}

func TestView(t *testing.T) {
	m := typeLine(newTestModel(t, Config{Prompt: "> "}), "let y = 2;")
	view := m.View()
	for _, want := range []string{"exprfront", "> let y = 2;", "1 statement(s), 0 diagnostic(s)", "ctrl+l clear"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
