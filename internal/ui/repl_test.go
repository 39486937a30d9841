package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestReplEvaluatesPattern(t *testing.T) {
	m := NewReplModel()
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = typeText(m, "^hello$")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	if !strings.Contains(view, "^hello$") {
		t.Errorf("view missing emitted pattern:\n%s", view)
	}
}

func TestReplShowsDiagnostics(t *testing.T) {
	m := NewReplModel()
	m = typeText(m, "(oops")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	if !strings.Contains(view, "Unterminated group") {
		t.Errorf("view missing error message:\n%s", view)
	}
	if !strings.Contains(view, "hint:") {
		t.Errorf("view missing hint:\n%s", view)
	}
}

func TestReplLivePreview(t *testing.T) {
	m := NewReplModel()
	m = typeText(m, "(oops")

	// No Enter yet: the in-progress line is compiled on every keystroke.
	view := m.View()
	if !strings.Contains(view, "Unterminated group") {
		t.Errorf("view missing live diagnostic:\n%s", view)
	}
}

func TestReplDirectiveShortcut(t *testing.T) {
	e := evaluate(`%flags i\nabc`)
	if e.err != nil {
		t.Fatalf("evaluate failed: %v", e.err)
	}
	if e.artifact.Pattern != "(?i)abc" {
		t.Errorf("pattern = %q, want (?i)abc", e.artifact.Pattern)
	}
}

func TestReplQuitKeys(t *testing.T) {
	m := NewReplModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if cmd == nil {
		t.Fatal("ctrl-d did not produce a command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("ctrl-d produced %v, want quit", msg)
	}
}
