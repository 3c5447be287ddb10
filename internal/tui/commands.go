package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"divvy/internal/router"
)

const requestTimeout = 30 * time.Second

func withTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// resolveSession recovers a saved identity, if any.
func (m Model) resolveSession() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		return sessionResolvedMsg{authed: m.session.Resolve(ctx)}
	}
}

func (m Model) login(email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		_, err := m.session.Login(ctx, email, password)
		return loginResultMsg{err: err}
	}
}

func (m Model) register(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		return registerResultMsg{err: m.session.Register(ctx, name, email, password)}
	}
}

func (m Model) requestPasswordReset(email string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		message, err := m.session.RequestPasswordReset(ctx, email)
		return resetRequestedMsg{message: message, err: err}
	}
}

func (m Model) resetPassword(token, newPassword string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		message, err := m.session.ResetPassword(ctx, token, newPassword)
		return resetDoneMsg{message: message, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		m.session.Logout(ctx)
		return loggedOutMsg{}
	}
}

func (m Model) loadGroups() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		groups, err := m.api.Groups(ctx)
		return groupsLoadedMsg{groups: groups, err: err}
	}
}

func (m Model) createGroup(name string, participants []string, currency string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		group, err := m.api.CreateGroup(ctx, name, participants, currency)
		return groupCreatedMsg{group: group, err: err}
	}
}

// loadWorkspaceMeta fetches group metadata and participants, tagged with
// the generation the load was issued under.
func (m Model) loadWorkspaceMeta(groupID int64, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		group, participants, err := m.api.Group(ctx, groupID)
		return workspaceMetaMsg{gen: gen, group: group, participants: participants, err: err}
	}
}

func (m Model) loadExpenses(groupID int64, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		expenses, err := m.api.Expenses(ctx, groupID)
		return expensesLoadedMsg{gen: gen, expenses: expenses, err: err}
	}
}

func (m Model) loadBalances(groupID int64, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		sheet, err := m.api.Balance(ctx, groupID)
		return balanceLoadedMsg{gen: gen, sheet: sheet, err: err}
	}
}

// submitExpense validates and sends the composer draft. Validation
// happens inside Submit, before any network call.
func (m Model) submitExpense(groupID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		return expenseSubmittedMsg{err: m.composer.Submit(ctx, groupID)}
	}
}

func (m Model) saveProfile(name, currentPassword, newPassword string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		return profileSavedMsg{err: m.session.UpdateProfile(ctx, name, currentPassword, newPassword)}
	}
}

func (m Model) loadAdminUsers() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		users, err := m.api.AdminUsers(ctx)
		return adminUsersMsg{users: users, err: err}
	}
}

func (m Model) loadAdminGroups() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := withTimeout()
		defer cancel()

		groups, err := m.api.AdminGroups(ctx)
		return adminGroupsMsg{groups: groups, err: err}
	}
}

func (m Model) deleteAdminRow() tea.Cmd {
	tab := m.router.AdminTab()
	switch tab {
	case router.AdminTabUsers:
		users := m.adminPanel.Users()
		if m.adminCursor >= len(users) {
			return nil
		}
		user := users[m.adminCursor]
		return func() tea.Msg {
			ctx, cancel := withTimeout()
			defer cancel()

			return adminDeletedMsg{tab: tab, err: m.adminPanel.DeleteUser(ctx, user)}
		}
	default:
		groups := m.adminPanel.Groups()
		if m.adminCursor >= len(groups) {
			return nil
		}
		id := groups[m.adminCursor].ID
		return func() tea.Msg {
			ctx, cancel := withTimeout()
			defer cancel()

			return adminDeletedMsg{tab: tab, err: m.adminPanel.DeleteGroup(ctx, id)}
		}
	}
}
