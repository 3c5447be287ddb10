// Package tui implements the terminal user interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"divvy/internal/admin"
	"divvy/internal/api"
	"divvy/internal/common"
	"divvy/internal/model"
	"divvy/internal/router"
	"divvy/internal/session"
	"divvy/internal/tui/components"
	"divvy/internal/tui/themes"
	"divvy/internal/workspace"
)

// Model is the main application model. Navigation state lives in the
// router, cached data in the workspace and admin panel; the model wires
// messages between them and owns only presentation state.
type Model struct {
	api        *api.Client
	session    *session.Controller
	router     *router.Router
	workspace  *workspace.Workspace
	composer   *workspace.Composer
	adminPanel *admin.Panel

	theme themes.Theme
	keys  KeyMap

	groups      []model.Group
	groupCursor int
	adminCursor int

	form          components.FormModel
	expenseForm   components.ExpenseFormModel
	groupFormOpen bool

	spinner   spinner.Model
	loading   bool
	statusMsg string
	inlineErr string

	resetToken string
	width      int
	height     int
}

// NewModel creates the application model.
func NewModel(client *api.Client, sess *session.Controller, theme themes.Theme, resetToken string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	m := Model{
		api:        client,
		session:    sess,
		router:     router.New(),
		workspace:  workspace.New(),
		composer:   workspace.NewComposer(client),
		adminPanel: admin.NewPanel(client),
		theme:      theme,
		keys:       DefaultKeyMap(),
		spinner:    s,
		resetToken: resetToken,
	}

	// A reset token skips session resolution and lands directly on the
	// token-redemption form.
	if resetToken != "" {
		m, _ = m.navigate(m.router.ShowResetPassword())
	}
	return m
}

// Init starts session resolution unless the client was started with a
// reset token, in which case the reset form is already active.
func (m Model) Init() tea.Cmd {
	if m.router.View() == router.ViewResetPassword {
		return m.spinner.Tick
	}
	return tea.Batch(m.spinner.Tick, m.resolveSession())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading && m.router.View() != router.ViewBooting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.handleResult(msg)
}

// handleKey dispatches a key press to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.ClearScreen) {
		return m, tea.ClearScreen
	}

	switch m.router.View() {
	case router.ViewBooting:
		return m, nil
	case router.ViewLanding:
		return m.updateLanding(msg)
	case router.ViewLogin, router.ViewRegister, router.ViewForgotPassword, router.ViewResetPassword:
		return m.updateAuthForm(msg)
	case router.ViewHome:
		return m.updateHome(msg)
	case router.ViewGroup:
		return m.updateGroup(msg)
	case router.ViewProfile:
		return m.updateProfile(msg)
	case router.ViewAdmin:
		return m.updateAdmin(msg)
	}
	return m, nil
}

func (m Model) updateLanding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Login):
		return m.navigate(m.router.ShowLogin())
	case key.Matches(msg, m.keys.Register):
		return m.navigate(m.router.ShowRegister())
	case key.Matches(msg, m.keys.ForgotPassword):
		return m.navigate(m.router.ShowForgotPassword())
	}
	return m, nil
}

// updateAuthForm drives the login, register and password reset forms.
// All key input goes to the form; cancel returns to the landing view.
func (m Model) updateAuthForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	if m.form.IsCanceled() {
		return m.navigate(m.router.ShowLanding())
	}
	if !m.form.IsSubmitted() {
		return m, cmd
	}

	values := m.form.Values()
	m.form = m.form.ClearSubmitted()
	m.loading = true

	switch m.router.View() {
	case router.ViewLogin:
		return m, tea.Batch(cmd, m.login(values[0], values[1]))
	case router.ViewRegister:
		return m, tea.Batch(cmd, m.register(values[0], values[1], values[2]))
	case router.ViewForgotPassword:
		return m, tea.Batch(cmd, m.requestPasswordReset(values[0]))
	case router.ViewResetPassword:
		return m, tea.Batch(cmd, m.resetPassword(m.resetToken, values[0]))
	}
	return m, cmd
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.groupFormOpen {
		return m.updateGroupForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.groupCursor > 0 {
			m.groupCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.groupCursor < len(m.groups)-1 {
			m.groupCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.groupCursor < len(m.groups) {
			return m.navigate(m.router.EnterGroup(m.session.Session(), m.groups[m.groupCursor].ID))
		}
	case key.Matches(msg, m.keys.NewGroup):
		m.groupFormOpen = true
		m.form = components.NewFormModel("New Group", []components.FieldSpec{
			{Label: "Name", Placeholder: "Trip to Mendoza"},
			{Label: "Participants", Placeholder: "Ana, Beto, Carla"},
			{Label: "Currency", Value: "USD"},
		}, m.theme)
	case key.Matches(msg, m.keys.Profile):
		return m.navigate(m.router.ShowProfile(m.session.Session()))
	case key.Matches(msg, m.keys.Admin):
		return m.navigate(m.router.ShowAdmin(m.session.Session()))
	case key.Matches(msg, m.keys.Logout):
		m.loading = true
		return m, m.logout()
	}
	return m, nil
}

func (m Model) updateGroupForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	if m.form.IsCanceled() {
		m.groupFormOpen = false
		return m, nil
	}
	if !m.form.IsSubmitted() {
		return m, cmd
	}

	values := m.form.Values()
	participants := splitParticipants(values[1])
	if values[0] == "" || len(participants) == 0 {
		m.form = m.form.ClearSubmitted().SetError("Name and at least one participant are required")
		return m, cmd
	}

	currency := strings.ToUpper(values[2])
	if currency == "" {
		currency = "USD"
	}
	m.form = m.form.ClearSubmitted()
	m.loading = true
	return m, tea.Batch(cmd, m.createGroup(values[0], participants, currency))
}

func (m Model) updateGroup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.composer.IsOpen() {
		return m.updateExpenseForm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.navigate(m.router.ShowHome(m.session.Session()))
	case key.Matches(msg, m.keys.Expenses):
		cmd := m.runEffect(m.router.SelectTab(router.TabExpenses))
		return m, cmd
	case key.Matches(msg, m.keys.Balances):
		cmd := m.runEffect(m.router.SelectTab(router.TabBalances))
		return m, cmd
	case key.Matches(msg, m.keys.NextTab):
		next := router.TabBalances
		if m.router.Tab() == router.TabBalances {
			next = router.TabExpenses
		}
		cmd := m.runEffect(m.router.SelectTab(next))
		return m, cmd
	case key.Matches(msg, m.keys.NewExpense):
		if m.workspace.Ready() {
			m.composer.Open(m.workspace.Participants())
			m.expenseForm = components.NewExpenseFormModel(m.composer, m.theme)
		}
	case key.Matches(msg, m.keys.Logout):
		m.loading = true
		return m, m.logout()
	}
	return m, nil
}

// updateExpenseForm drives the expense creation form. Submission is
// gated on a complete draft; an incomplete one surfaces inline and no
// request is issued.
func (m Model) updateExpenseForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.expenseForm, cmd = m.expenseForm.Update(msg)

	if m.expenseForm.IsCanceled() {
		m.composer.Close()
		return m, nil
	}
	if !m.expenseForm.IsSubmitted() {
		return m, cmd
	}

	if err := workspace.Validate(m.composer.Draft()); err != nil {
		m.expenseForm = m.expenseForm.ClearSubmitted().
			SetError(common.UserMessage(err, "Please fill in every field"))
		return m, cmd
	}

	m.expenseForm = m.expenseForm.ClearSubmitted()
	m.loading = true
	return m, tea.Batch(cmd, m.submitExpense(m.router.GroupID()))
}

func (m Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	if m.form.IsCanceled() {
		return m.navigate(m.router.ShowHome(m.session.Session()))
	}
	if !m.form.IsSubmitted() {
		return m, cmd
	}

	values := m.form.Values()
	m.form = m.form.ClearSubmitted()
	m.loading = true
	return m, tea.Batch(cmd, m.saveProfile(values[0], values[1], values[2]))
}

func (m Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		return m.navigate(m.router.ShowHome(m.session.Session()))
	case key.Matches(msg, m.keys.NextTab):
		next := router.AdminTabGroups
		if m.router.AdminTab() == router.AdminTabGroups {
			next = router.AdminTabUsers
		}
		m.adminCursor = 0
		cmd := m.runEffect(m.router.SelectAdminTab(next))
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		if m.adminCursor > 0 {
			m.adminCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.adminCursor < m.adminRowCount()-1 {
			m.adminCursor++
		}
	case key.Matches(msg, m.keys.Delete):
		if cmd := m.deleteAdminRow(); cmd != nil {
			m.loading = true
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) adminRowCount() int {
	if m.router.AdminTab() == router.AdminTabUsers {
		return len(m.adminPanel.Users())
	}
	return len(m.adminPanel.Groups())
}

// handleResult applies command results to the cached state.
func (m Model) handleResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionResolvedMsg:
		if msg.authed {
			return m.navigate(m.router.Resolve(m.session.Session()))
		}
		return m.navigate(m.router.ShowLanding())

	case loginResultMsg:
		m.loading = false
		if msg.err != nil {
			m.form = m.form.SetError(common.UserMessage(msg.err, "Login failed"))
			return m, nil
		}
		return m.navigate(m.router.ShowHome(m.session.Session()))

	case registerResultMsg:
		m.loading = false
		if msg.err != nil {
			m.form = m.form.SetError(common.UserMessage(msg.err, "Registration failed"))
			return m, nil
		}
		next, cmd := m.navigate(m.router.ShowLogin())
		next.statusMsg = "Account created. Log in to continue."
		return next, cmd

	case resetRequestedMsg:
		m.loading = false
		if msg.err != nil {
			m.form = m.form.SetError(common.UserMessage(msg.err, "Request failed"))
			return m, nil
		}
		m.statusMsg = msg.message
		return m, nil

	case resetDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.form = m.form.SetError(common.UserMessage(msg.err, "Password reset failed"))
			return m, nil
		}
		m.resetToken = ""
		next, cmd := m.navigate(m.router.ShowLogin())
		next.statusMsg = "Password updated. Log in with the new one."
		return next, cmd

	case loggedOutMsg:
		m.loading = false
		m.groups = nil
		m.groupCursor = 0
		return m.navigate(m.router.ShowLanding())

	case groupsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.inlineErr = common.UserMessage(msg.err, "Could not load groups")
			return m, nil
		}
		m.groups = msg.groups
		if m.groupCursor >= len(m.groups) {
			m.groupCursor = 0
		}
		return m, nil

	case groupCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.form = m.form.SetError(common.UserMessage(msg.err, "Could not create group"))
			return m, nil
		}
		m.groupFormOpen = false
		m.statusMsg = fmt.Sprintf("Group %q created", msg.group.Name)
		return m, m.loadGroups()

	// Workspace load results from a superseded generation are dropped
	// wholesale: a failed load for a group no longer on screen must not
	// surface its error or touch the spinner either.
	case workspaceMetaMsg:
		if msg.gen != m.workspace.Generation() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.inlineErr = common.UserMessage(msg.err, "Could not load group")
			return m, nil
		}
		m.workspace.ApplyMeta(msg.gen, msg.group, msg.participants)
		return m, nil

	case expensesLoadedMsg:
		if msg.gen != m.workspace.Generation() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.inlineErr = common.UserMessage(msg.err, "Could not load expenses")
			return m, nil
		}
		m.workspace.ApplyExpenses(msg.gen, msg.expenses)
		return m, nil

	case balanceLoadedMsg:
		if msg.gen != m.workspace.Generation() {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.inlineErr = common.UserMessage(msg.err, "Could not load balances")
			return m, nil
		}
		m.workspace.ApplyBalance(msg.gen, msg.sheet)
		return m, nil

	// A saved expense reloads only the expense list; the composer is
	// only reachable from the expenses tab, and the balances tab fetches
	// fresh data on every selection.
	case expenseSubmittedMsg:
		m.loading = false
		if msg.err != nil {
			m.expenseForm = m.expenseForm.SetError(common.UserMessage(msg.err, "Could not save expense"))
			return m, nil
		}
		m.statusMsg = "Expense saved"
		return m, m.loadExpenses(m.router.GroupID(), m.workspace.Generation())

	case profileSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.form = m.form.SetError(common.UserMessage(msg.err, "Could not save profile"))
			return m, nil
		}
		next, cmd := m.navigate(m.router.ShowHome(m.session.Session()))
		next.statusMsg = "Profile saved"
		return next, cmd

	case avatarUploadedMsg:
		m.loading = false
		if msg.err != nil {
			m.inlineErr = common.UserMessage(msg.err, "Avatar upload failed")
			return m, nil
		}
		m.session.SetAvatarPath(msg.path)
		m.statusMsg = "Avatar updated"
		return m, nil

	case adminUsersMsg:
		m.loading = false
		if msg.err != nil {
			m.inlineErr = common.UserMessage(msg.err, "Could not load users")
			return m, nil
		}
		m.adminPanel.SetUsers(msg.users)
		if m.adminCursor >= len(msg.users) {
			m.adminCursor = 0
		}
		return m, nil

	case adminGroupsMsg:
		m.loading = false
		if msg.err != nil {
			m.inlineErr = common.UserMessage(msg.err, "Could not load groups")
			return m, nil
		}
		m.adminPanel.SetGroups(msg.groups)
		if m.adminCursor >= len(msg.groups) {
			m.adminCursor = 0
		}
		return m, nil

	case adminDeletedMsg:
		m.loading = false
		if msg.err != nil {
			m.inlineErr = common.UserMessage(msg.err, "Delete failed")
			return m, nil
		}
		if msg.tab == router.AdminTabUsers {
			return m, m.loadAdminUsers()
		}
		return m, m.loadAdminGroups()
	}

	return m, nil
}

// navigate applies a completed transition: it rebuilds the destination
// view's form, tears down state the previous view owned, and turns the
// transition's effect into its single data load.
func (m Model) navigate(eff router.Effect) (Model, tea.Cmd) {
	m.inlineErr = ""
	m.statusMsg = ""
	m.groupFormOpen = false

	view := m.router.View()
	if view != router.ViewGroup {
		m.workspace.Reset()
		m.composer.Close()
	}
	if view != router.ViewAdmin {
		m.adminPanel.Reset()
		m.adminCursor = 0
	}

	switch view {
	case router.ViewLogin:
		m.form = components.NewFormModel("Log In", []components.FieldSpec{
			{Label: "Email", Placeholder: "you@example.com"},
			{Label: "Password", Secret: true},
		}, m.theme)
	case router.ViewRegister:
		m.form = components.NewFormModel("Create Account", []components.FieldSpec{
			{Label: "Name"},
			{Label: "Email", Placeholder: "you@example.com"},
			{Label: "Password", Secret: true},
		}, m.theme)
	case router.ViewForgotPassword:
		m.form = components.NewFormModel("Forgot Password", []components.FieldSpec{
			{Label: "Email", Placeholder: "you@example.com"},
		}, m.theme)
	case router.ViewResetPassword:
		m.form = components.NewFormModel("Reset Password", []components.FieldSpec{
			{Label: "New Password", Secret: true},
		}, m.theme)
	case router.ViewProfile:
		name := ""
		if user := m.session.User(); user != nil {
			name = user.Name
		}
		m.form = components.NewFormModel("Profile", []components.FieldSpec{
			{Label: "Name", Value: name},
			{Label: "Current Password", Secret: true},
			{Label: "New Password", Secret: true},
		}, m.theme)
	}

	cmd := m.runEffect(eff)
	return m, cmd
}

// runEffect turns a transition effect into its data load. Workspace
// loads are tagged with the generation in force when they were issued.
func (m *Model) runEffect(eff router.Effect) tea.Cmd {
	switch eff.Load {
	case router.LoadGroups:
		m.loading = true
		return m.loadGroups()
	case router.LoadWorkspace:
		gen := m.workspace.Begin(eff.GroupID)
		m.loading = true
		return tea.Batch(
			m.loadWorkspaceMeta(eff.GroupID, gen),
			m.loadExpenses(eff.GroupID, gen),
		)
	case router.LoadExpenses:
		m.loading = true
		return m.loadExpenses(eff.GroupID, m.workspace.Generation())
	case router.LoadBalances:
		m.loading = true
		return m.loadBalances(eff.GroupID, m.workspace.Generation())
	case router.LoadAdminUsers:
		m.loading = true
		return m.loadAdminUsers()
	case router.LoadAdminGroups:
		m.loading = true
		return m.loadAdminGroups()
	}
	return nil
}

// splitParticipants parses a comma separated name list, dropping blanks.
func splitParticipants(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
