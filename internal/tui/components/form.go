// Package components contains the interactive widgets the TUI composes.
package components

import (
	"strings"

	"divvy/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FieldSpec describes one text field in a form.
type FieldSpec struct {
	Label       string
	Placeholder string
	Value       string
	Secret      bool
}

// FormModel is a vertical stack of labeled text inputs with focus
// cycling. Enter on the last field submits, Esc cancels; the parent model
// reads IsSubmitted/IsCanceled after each Update.
type FormModel struct {
	theme     themes.Theme
	title     string
	errText   string
	labels    []string
	inputs    []textinput.Model
	focus     int
	submitted bool
	canceled  bool
}

// NewFormModel creates a form with the given fields, focusing the first.
func NewFormModel(title string, fields []FieldSpec, theme themes.Theme) FormModel {
	inputs := make([]textinput.Model, len(fields))
	labels := make([]string, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Placeholder = f.Placeholder
		ti.CharLimit = 128
		ti.Width = 40
		ti.SetValue(f.Value)
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
		labels[i] = f.Label
	}

	return FormModel{
		theme:  theme,
		title:  title,
		labels: labels,
		inputs: inputs,
	}
}

// Update handles messages.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc":
		m.canceled = true
		return m, nil
	case "enter":
		if m.focus == len(m.inputs)-1 {
			m.submitted = true
			return m, nil
		}
		return m.setFocus(m.focus + 1), nil
	case "tab", "down":
		return m.setFocus((m.focus + 1) % len(m.inputs)), nil
	case "shift+tab", "up":
		return m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs)), nil
	}

	return m.updateInputs(msg)
}

func (m FormModel) updateInputs(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m FormModel) setFocus(i int) FormModel {
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
	return m
}

// IsSubmitted reports whether the user submitted the form.
func (m FormModel) IsSubmitted() bool {
	return m.submitted
}

// IsCanceled reports whether the user dismissed the form.
func (m FormModel) IsCanceled() bool {
	return m.canceled
}

// ClearSubmitted rearms the form after a rejected submission.
func (m FormModel) ClearSubmitted() FormModel {
	m.submitted = false
	return m
}

// Values returns the current field values in declaration order.
func (m FormModel) Values() []string {
	values := make([]string, len(m.inputs))
	for i := range m.inputs {
		values[i] = strings.TrimSpace(m.inputs[i].Value())
	}
	return values
}

// SetError displays an inline error under the form.
func (m FormModel) SetError(text string) FormModel {
	m.errText = text
	return m
}

// View renders the form.
func (m FormModel) View() string {
	var rows []string
	if m.title != "" {
		rows = append(rows, m.theme.Title.Render(m.title))
	}
	for i, input := range m.inputs {
		label := m.theme.Subtitle.Render(m.labels[i])
		rows = append(rows, label, input.View(), "")
	}
	if m.errText != "" {
		rows = append(rows, m.theme.StatusError.Render(m.errText))
	}
	rows = append(rows, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("enter submit · esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
