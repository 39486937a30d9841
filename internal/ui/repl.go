// Package ui implements the interactive pattern console.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"strl/internal/diag"
	"strl/internal/driver"
)

var (
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	patternStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	featureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
)

// entry is one evaluated pattern in the session transcript.
type entry struct {
	input    string
	artifact *driver.Artifact
	err      error
}

type replModel struct {
	input   textinput.Model
	history []entry
	width   int
	quit    bool
}

// NewReplModel returns a Bubble Tea model for the interactive console.
func NewReplModel() tea.Model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render("strl> ")
	ti.Placeholder = `pattern, e.g. %flags i\n^\w+$`
	ti.Focus()
	ti.CharLimit = 0
	return &replModel{input: ti, width: 80}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if text == "exit" || text == "quit" {
				m.quit = true
				return m, tea.Quit
			}
			m.history = append(m.history, evaluate(text))
			m.input.SetValue("")
			return m, nil
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.Width = msg.Width - len("strl> ") - 1
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate compiles one console line. A literal "\n" lets a directive line
// precede the pattern in single-line input.
func evaluate(text string) entry {
	src := strings.ReplaceAll(text, `\n`, "\n")
	art, err := driver.Compile(src)
	return entry{input: text, artifact: art, err: err}
}

func (m *replModel) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("strl console"))
	b.WriteString("  ")
	b.WriteString(featureStyle.Render("(enter a pattern; exit or ctrl-d to leave)"))
	b.WriteString("\n\n")

	for _, e := range m.history {
		b.WriteString(promptStyle.Render("strl> "))
		b.WriteString(e.input)
		b.WriteString("\n")
		b.WriteString(renderResult(e))
		b.WriteString("\n")
	}

	if !m.quit {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		// Live preview: recompile the in-progress line on every keystroke.
		if text := strings.TrimSpace(m.input.Value()); text != "" && text != "exit" && text != "quit" {
			b.WriteString(renderResult(evaluate(text)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderResult(e entry) string {
	if e.err != nil {
		var b strings.Builder
		if d, ok := e.err.(*diag.Diagnostic); ok {
			b.WriteString(errorStyle.Render("error: " + d.Message))
			if d.Hint != "" {
				b.WriteString("\n")
				b.WriteString(hintStyle.Render("hint: " + d.Hint))
			}
		} else {
			b.WriteString(errorStyle.Render("error: " + e.err.Error()))
		}
		return b.String()
	}

	out := patternStyle.Render(e.artifact.Pattern)
	if len(e.artifact.Features) > 0 {
		out += "  " + featureStyle.Render("["+strings.Join(e.artifact.Features, ", ")+"]")
	}
	return out
}

// RunRepl starts the interactive console and blocks until it exits.
func RunRepl() error {
	_, err := tea.NewProgram(NewReplModel()).Run()
	return err
}
