package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"divvy/internal/router"
	"divvy/internal/tui/viewmodel"
)

// View renders the active view.
func (m Model) View() string {
	var body string
	switch m.router.View() {
	case router.ViewBooting:
		body = m.viewBooting()
	case router.ViewLanding:
		body = m.viewLanding()
	case router.ViewLogin, router.ViewRegister, router.ViewForgotPassword, router.ViewResetPassword:
		body = m.form.View()
	case router.ViewHome:
		body = m.viewHome()
	case router.ViewGroup:
		body = m.viewGroup()
	case router.ViewProfile:
		body = m.viewProfile()
	case router.ViewAdmin:
		body = m.viewAdmin()
	}

	return m.theme.Box.Render(lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine()))
}

func (m Model) viewBooting() string {
	return fmt.Sprintf("%s Starting up...", m.spinner.View())
}

func (m Model) viewLanding() string {
	rows := []string{
		m.theme.Title.Render("divvy"),
		m.theme.Subtitle.Render("Split expenses with your people"),
		"",
		fmt.Sprintf("%s log in", m.theme.Bold.Render("l")),
		fmt.Sprintf("%s create an account", m.theme.Bold.Render("r")),
		fmt.Sprintf("%s forgot password", m.theme.Bold.Render("f")),
		fmt.Sprintf("%s quit", m.theme.Bold.Render("q")),
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewHome() string {
	if m.groupFormOpen {
		return m.form.View()
	}

	rows := []string{m.theme.Title.Render("Your Groups")}

	if m.loading && len(m.groups) == 0 {
		rows = append(rows, fmt.Sprintf("%s Loading...", m.spinner.View()))
	} else if len(m.groups) == 0 {
		rows = append(rows, m.theme.Subtitle.Render("No groups yet. Press n to create one."))
	}

	for i, g := range m.groups {
		line := fmt.Sprintf("%s  %s", g.Name, m.theme.Subtitle.Render(g.Currency))
		if i == m.groupCursor {
			line = m.theme.Selected.Render("> " + g.Name + "  " + g.Currency)
		}
		rows = append(rows, line)
	}

	rows = append(rows, "", m.helpLine("enter open · n new group · p profile · L log out"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewGroup() string {
	if m.composer.IsOpen() {
		return m.expenseForm.View()
	}

	title := "Group"
	if m.workspace.Ready() {
		title = m.workspace.Group().Name
	}

	rows := []string{
		m.theme.Title.Render(title),
		m.tabBar(),
		"",
	}

	if !m.workspace.Ready() {
		rows = append(rows, fmt.Sprintf("%s Loading...", m.spinner.View()))
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	switch m.router.Tab() {
	case router.TabExpenses:
		rows = append(rows, m.expenseRows()...)
		rows = append(rows, "", m.helpLine("n new expense · b balances · esc back"))
	case router.TabBalances:
		rows = append(rows, m.balanceRows()...)
		rows = append(rows, "", m.helpLine("e expenses · esc back"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// tabBar renders the expenses/balances tab selector.
func (m Model) tabBar() string {
	expenses := " Expenses "
	balances := " Balances "
	if m.router.Tab() == router.TabExpenses {
		expenses = m.theme.Selected.Render(expenses)
		balances = m.theme.Subtitle.Render(balances)
	} else {
		expenses = m.theme.Subtitle.Render(expenses)
		balances = m.theme.Selected.Render(balances)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, expenses, balances)
}

func (m Model) expenseRows() []string {
	expenses, loaded := m.workspace.Expenses()
	if !loaded {
		return []string{fmt.Sprintf("%s Loading expenses...", m.spinner.View())}
	}
	if len(expenses) == 0 {
		return []string{m.theme.Subtitle.Render("No expenses yet. Press n to add one.")}
	}

	rendered := viewmodel.RenderExpenses(expenses, m.workspace.Participants(), m.workspace.Currency())
	rows := make([]string, 0, len(rendered))
	for _, row := range rendered {
		rows = append(rows, fmt.Sprintf("%s  %s  %s",
			m.theme.Normal.Render(viewmodel.TruncateString(row.Title, 32)),
			m.theme.Bold.Render(row.Amount),
			m.theme.Subtitle.Render(fmt.Sprintf("%s · %s", row.Detail, row.Date)),
		))
	}
	return rows
}

func (m Model) balanceRows() []string {
	sheet := m.workspace.Balance()
	if sheet == nil {
		return []string{fmt.Sprintf("%s Loading balances...", m.spinner.View())}
	}

	view := viewmodel.RenderBalances(*sheet, m.workspace.Participants(), m.workspace.Currency())
	if view.AllSettled {
		return []string{m.theme.StatusSuccess.Render("All settled up 🎉")}
	}

	rows := []string{m.theme.Subtitle.Render("Suggested payments")}
	for _, s := range view.Settlements {
		rows = append(rows, m.theme.Normal.Render(s.Line))
	}
	if view.SkippedEdges > 0 {
		rows = append(rows, m.theme.StatusWarning.Render(
			fmt.Sprintf("%d payment(s) hidden: unknown participant", view.SkippedEdges)))
	}

	rows = append(rows, "", m.theme.Subtitle.Render("Net balances"))
	for _, n := range view.Net {
		style := m.theme.Neutral
		switch n.Class {
		case viewmodel.SignCredit:
			style = m.theme.Credit
		case viewmodel.SignDebit:
			style = m.theme.Debit
		}
		rows = append(rows, fmt.Sprintf("%s  %s", m.theme.Normal.Render(n.Name), style.Render(n.Amount)))
	}
	return rows
}

func (m Model) viewProfile() string {
	rows := []string{m.form.View()}
	if user := m.session.User(); user != nil && user.AvatarPath != "" {
		rows = append(rows, "", m.theme.Subtitle.Render("Avatar: "+user.AvatarPath))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) viewAdmin() string {
	rows := []string{m.theme.Title.Render("Administration"), m.adminTabBar(), ""}

	switch m.router.AdminTab() {
	case router.AdminTabUsers:
		users := m.adminPanel.Users()
		if len(users) == 0 {
			rows = append(rows, m.theme.Subtitle.Render("No users loaded."))
		}
		for i, u := range users {
			label := fmt.Sprintf("%s  %s", u.Name, m.theme.Subtitle.Render(u.Email))
			if u.IsAdmin {
				label += "  " + m.theme.StatusInfo.Render("admin")
			}
			if i == m.adminCursor {
				label = m.theme.Selected.Render("> ") + label
			}
			rows = append(rows, label)
		}
	case router.AdminTabGroups:
		groups := m.adminPanel.Groups()
		if len(groups) == 0 {
			rows = append(rows, m.theme.Subtitle.Render("No groups loaded."))
		}
		for i, g := range groups {
			label := fmt.Sprintf("%s  %s", g.Name,
				m.theme.Subtitle.Render(fmt.Sprintf("%d participants · by %s", g.ParticipantCount, g.CreatedByName)))
			if i == m.adminCursor {
				label = m.theme.Selected.Render("> ") + label
			}
			rows = append(rows, label)
		}
	}

	rows = append(rows, "", m.helpLine("tab switch · d delete · esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) adminTabBar() string {
	users := " Users "
	groups := " Groups "
	if m.router.AdminTab() == router.AdminTabUsers {
		users = m.theme.Selected.Render(users)
		groups = m.theme.Subtitle.Render(groups)
	} else {
		users = m.theme.Subtitle.Render(users)
		groups = m.theme.Selected.Render(groups)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, users, groups)
}

// statusLine renders the one-line footer: an error wins over a status
// message, and a spinner shows while a request is in flight.
func (m Model) statusLine() string {
	var parts []string
	if m.loading {
		parts = append(parts, m.spinner.View())
	}
	switch {
	case m.inlineErr != "":
		parts = append(parts, m.theme.StatusError.Render(m.inlineErr))
	case m.statusMsg != "":
		parts = append(parts, m.theme.StatusInfo.Render(m.statusMsg))
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n" + strings.Join(parts, " ")
}

func (m Model) helpLine(text string) string {
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(text)
}
