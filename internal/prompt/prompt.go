// Package prompt provides small line prompts with editable default values
// for interactive use. It is self-contained: nothing in here shares state
// with the scan pipeline.
package prompt

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user cancels a prompt with Esc or Ctrl+C.
var ErrAborted = errors.New("prompt aborted")

var labelStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#7D56F4")).
	Bold(true)

type model struct {
	label   string
	input   textinput.Model
	done    bool
	aborted bool
}

func newModel(label, def string) model {
	ti := textinput.New()
	ti.SetValue(def)
	ti.Focus()
	ti.CursorEnd()
	return model{label: label, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.aborted {
		// Leave the answered value on screen when the program exits.
		return fmt.Sprintf("%s %s\n", labelStyle.Render(m.label+":"), m.input.Value())
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(m.label+":"), m.input.View())
}

// Ask displays a single-line prompt pre-filled with def and returns the
// edited value. Enter accepts, Esc or Ctrl+C aborts with ErrAborted.
func Ask(label, def string) (string, error) {
	p := tea.NewProgram(newModel(label, def))
	out, err := p.Run()
	if err != nil {
		return "", err
	}
	m := out.(model)
	if m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}
