package components

import (
	"fmt"

	"divvy/internal/tui/themes"
	"divvy/internal/workspace"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Sections of the expense form, traversed with tab.
const (
	sectionTitle = iota
	sectionAmount
	sectionPayer
	sectionInvolved
	sectionCount
)

// ExpenseFormModel is the expense creation form. The canonical draft
// lives in the composer; this component owns only the cursor and input
// widgets, writing every change through to the composer so the draft the
// submit path validates is the draft on screen.
type ExpenseFormModel struct {
	composer  *workspace.Composer
	theme     themes.Theme
	errText   string
	title     textinput.Model
	amount    textinput.Model
	section   int
	payerIdx  int
	cursor    int
	submitted bool
	canceled  bool
}

// NewExpenseFormModel creates the form over an opened composer.
func NewExpenseFormModel(composer *workspace.Composer, theme themes.Theme) ExpenseFormModel {
	title := textinput.New()
	title.Placeholder = "Dinner, taxi, groceries..."
	title.CharLimit = 128
	title.Width = 40
	title.Focus()

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 16
	amount.Width = 16

	return ExpenseFormModel{
		composer: composer,
		theme:    theme,
		title:    title,
		amount:   amount,
	}
}

// Update handles messages.
func (m ExpenseFormModel) Update(msg tea.Msg) (ExpenseFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "esc":
		m.canceled = true
		return m, nil
	case "enter":
		m.submitted = true
		return m, nil
	case "tab":
		m.section = (m.section + 1) % sectionCount
		return m.syncFocus(), nil
	case "shift+tab":
		m.section = (m.section - 1 + sectionCount) % sectionCount
		return m.syncFocus(), nil
	}

	participants := m.composer.Participants()
	switch m.section {
	case sectionPayer:
		switch keyMsg.String() {
		case "left", "h":
			if m.payerIdx > 0 {
				m.payerIdx--
			}
		case "right", "l":
			if m.payerIdx < len(participants)-1 {
				m.payerIdx++
			}
		}
		if len(participants) > 0 {
			m.composer.SetPayer(participants[m.payerIdx].ID)
		}
		return m, nil

	case sectionInvolved:
		switch keyMsg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(participants)-1 {
				m.cursor++
			}
		case " ", "x":
			if m.cursor < len(participants) {
				m.composer.ToggleInvolved(participants[m.cursor].ID)
			}
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m ExpenseFormModel) updateInputs(msg tea.Msg) (ExpenseFormModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	cmds = append(cmds, cmd)
	m.amount, cmd = m.amount.Update(msg)
	cmds = append(cmds, cmd)

	m.composer.SetTitle(m.title.Value())
	m.composer.SetAmount(m.amount.Value())

	return m, tea.Batch(cmds...)
}

func (m ExpenseFormModel) syncFocus() ExpenseFormModel {
	m.title.Blur()
	m.amount.Blur()
	switch m.section {
	case sectionTitle:
		m.title.Focus()
	case sectionAmount:
		m.amount.Focus()
	}
	return m
}

// IsSubmitted reports whether the user asked to submit.
func (m ExpenseFormModel) IsSubmitted() bool {
	return m.submitted
}

// IsCanceled reports whether the form was dismissed.
func (m ExpenseFormModel) IsCanceled() bool {
	return m.canceled
}

// ClearSubmitted rearms the form after a rejected submission.
func (m ExpenseFormModel) ClearSubmitted() ExpenseFormModel {
	m.submitted = false
	return m
}

// SetError displays an inline error under the form.
func (m ExpenseFormModel) SetError(text string) ExpenseFormModel {
	m.errText = text
	return m
}

// View renders the form.
func (m ExpenseFormModel) View() string {
	participants := m.composer.Participants()

	payerName := "-"
	if len(participants) > 0 && m.payerIdx < len(participants) {
		payerName = participants[m.payerIdx].Name
	}
	payerLine := fmt.Sprintf("◀ %s ▶", payerName)
	if m.section == sectionPayer {
		payerLine = m.theme.Selected.Render(payerLine)
	}

	var involved []string
	for i, p := range participants {
		mark := "[ ]"
		if m.composer.Involved(p.ID) {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, p.Name)
		if m.section == sectionInvolved && i == m.cursor {
			line = m.theme.Highlighted.Render(line)
		}
		involved = append(involved, line)
	}

	rows := []string{
		m.theme.Title.Render("New Expense"),
		m.theme.Subtitle.Render("Title"),
		m.title.View(),
		"",
		m.theme.Subtitle.Render("Amount"),
		m.amount.View(),
		"",
		m.theme.Subtitle.Render("Paid by"),
		payerLine,
		"",
		m.theme.Subtitle.Render("Split between"),
	}
	rows = append(rows, involved...)
	if m.errText != "" {
		rows = append(rows, "", m.theme.StatusError.Render(m.errText))
	}
	rows = append(rows, "", lipgloss.NewStyle().Foreground(m.theme.Muted).Render("tab section · space toggle · enter save · esc cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
