package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divvy/internal/api"
	"divvy/internal/common"
	"divvy/internal/model"
	"divvy/internal/router"
	"divvy/internal/session"
	"divvy/internal/tui/themes"
)

type fakeSessionBackend struct {
	user  model.User
	token string
}

func (f *fakeSessionBackend) Me(_ context.Context) (model.User, error) { return f.user, nil }
func (f *fakeSessionBackend) Login(_ context.Context, _, _ string) (model.User, error) {
	f.token = "tok"
	return f.user, nil
}
func (f *fakeSessionBackend) Logout(_ context.Context) error                  { return nil }
func (f *fakeSessionBackend) Register(_ context.Context, _, _, _ string) error { return nil }
func (f *fakeSessionBackend) RequestPasswordReset(_ context.Context, _ string) (string, error) {
	return "", nil
}
func (f *fakeSessionBackend) ResetPassword(_ context.Context, _, _ string) (string, error) {
	return "", nil
}
func (f *fakeSessionBackend) UpdateProfile(_ context.Context, name, _, _ string) (string, error) {
	return name, nil
}
func (f *fakeSessionBackend) Token() string         { return f.token }
func (f *fakeSessionBackend) SetToken(token string) { f.token = token }

// testModel returns a model with an authenticated session. The API
// client points nowhere; tests never execute the returned commands.
func testModel(t *testing.T) Model {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	controller := session.NewController(&fakeSessionBackend{user: model.User{ID: 1, Name: "Ana"}})
	_, err := controller.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)

	return NewModel(api.New("http://127.0.0.1:0"), controller, themes.Default, "")
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModel_SessionResolution(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	controller := session.NewController(&fakeSessionBackend{})
	m := NewModel(api.New("http://127.0.0.1:0"), controller, themes.Default, "")

	assert.Equal(t, router.ViewBooting, m.router.View())

	updated, _ := m.Update(sessionResolvedMsg{authed: false})
	m = updated.(Model)

	assert.Equal(t, router.ViewLanding, m.router.View())
}

func TestModel_SessionResolution_Authenticated(t *testing.T) {
	m := testModel(t)

	updated, cmd := m.Update(sessionResolvedMsg{authed: true})
	m = updated.(Model)

	assert.Equal(t, router.ViewHome, m.router.View())
	assert.NotNil(t, cmd, "landing on home owes the group-list load")
}

// A late response from a previous group's loads must never surface in the
// group entered afterwards.
func TestModel_StaleWorkspaceResponseDiscarded(t *testing.T) {
	m := testModel(t)
	sess := m.session.Session()

	m, _ = m.navigate(m.router.EnterGroup(sess, 1))
	oldGen := m.workspace.Generation()

	m, _ = m.navigate(m.router.EnterGroup(sess, 2))

	updated, _ := m.Update(expensesLoadedMsg{
		gen:      oldGen,
		expenses: []model.Expense{{ID: 9, Title: "Stale dinner"}},
	})
	m = updated.(Model)

	_, loaded := m.workspace.Expenses()
	assert.False(t, loaded, "the old group's expenses must not appear in the new group")

	updated, _ = m.Update(expensesLoadedMsg{
		gen:      m.workspace.Generation(),
		expenses: []model.Expense{{ID: 10, Title: "Fresh dinner"}},
	})
	m = updated.(Model)

	expenses, loaded := m.workspace.Expenses()
	require.True(t, loaded)
	assert.Equal(t, "Fresh dinner", expenses[0].Title)
}

// A failed load from a previous group is as stale as a successful one:
// its error must not surface in the group entered afterwards, and it
// must not stop the spinner while the new group's loads are in flight.
func TestModel_StaleLoadFailureDiscarded(t *testing.T) {
	m := testModel(t)
	sess := m.session.Session()

	m, _ = m.navigate(m.router.EnterGroup(sess, 1))
	oldGen := m.workspace.Generation()

	m, _ = m.navigate(m.router.EnterGroup(sess, 2))
	require.True(t, m.loading)

	updated, _ := m.Update(expensesLoadedMsg{gen: oldGen, err: common.ErrNetwork})
	m = updated.(Model)

	assert.Empty(t, m.inlineErr, "a stale failure must not surface its error")
	assert.True(t, m.loading, "a stale failure must not stop the spinner")

	updated, _ = m.Update(workspaceMetaMsg{gen: oldGen, err: common.ErrNetwork})
	m = updated.(Model)
	assert.Empty(t, m.inlineErr)

	updated, _ = m.Update(balanceLoadedMsg{gen: oldGen, err: common.ErrNetwork})
	m = updated.(Model)
	assert.Empty(t, m.inlineErr)

	// A failure for the live generation still surfaces.
	updated, _ = m.Update(expensesLoadedMsg{gen: m.workspace.Generation(), err: common.ErrNetwork})
	m = updated.(Model)
	assert.Equal(t, "Could not reach the server", m.inlineErr)
	assert.False(t, m.loading)
}

func TestModel_TabReselectDoesNotReload(t *testing.T) {
	m := testModel(t)
	m, _ = m.navigate(m.router.EnterGroup(m.session.Session(), 1))
	require.Equal(t, router.TabExpenses, m.router.Tab())

	updated, cmd := m.Update(keyMsg('e'))
	m = updated.(Model)

	assert.Nil(t, cmd, "reselecting the active tab must not issue a fetch")
	assert.Equal(t, router.TabExpenses, m.router.Tab())
}

func TestModel_TabSwitchLoadsBalances(t *testing.T) {
	m := testModel(t)
	m, _ = m.navigate(m.router.EnterGroup(m.session.Session(), 1))

	updated, cmd := m.Update(keyMsg('b'))
	m = updated.(Model)

	assert.Equal(t, router.TabBalances, m.router.Tab())
	assert.NotNil(t, cmd, "switching tabs owes exactly one load")
}

// A saved expense reloads the expense list and nothing else; the
// balances tab fetches on its own selection.
func TestModel_ExpenseSubmitReloadsOnlyExpenses(t *testing.T) {
	m := testModel(t)
	m, _ = m.navigate(m.router.EnterGroup(m.session.Session(), 1))
	require.Equal(t, router.TabExpenses, m.router.Tab())

	updated, cmd := m.Update(expenseSubmittedMsg{})
	m = updated.(Model)

	assert.Equal(t, "Expense saved", m.statusMsg)
	require.NotNil(t, cmd)

	// The command's result type identifies the load it issued. The API
	// client points nowhere, so it resolves immediately with an error.
	msg := cmd()
	_, ok := msg.(expensesLoadedMsg)
	assert.True(t, ok, "submit success owes exactly the expense-list reload, got %T", msg)
}

func TestModel_LeavingGroupResetsWorkspace(t *testing.T) {
	m := testModel(t)
	sess := m.session.Session()

	m, _ = m.navigate(m.router.EnterGroup(sess, 1))
	gen := m.workspace.Generation()
	m.workspace.ApplyMeta(gen, model.Group{ID: 1, Name: "Trip"}, []model.Participant{{ID: 1, Name: "Ana"}})
	require.True(t, m.workspace.Ready())

	m, _ = m.navigate(m.router.ShowHome(sess))

	assert.False(t, m.workspace.Ready(), "leaving the group view discards its cache")
}

func TestModel_ResetTokenStartsOnResetForm(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	controller := session.NewController(&fakeSessionBackend{})

	m := NewModel(api.New("http://127.0.0.1:0"), controller, themes.Default, "token-from-email")

	assert.Equal(t, router.ViewResetPassword, m.router.View())
}

func TestModel_NonAdminCannotReachAdminView(t *testing.T) {
	m := testModel(t)
	m, _ = m.navigate(m.router.ShowHome(m.session.Session()))

	updated, _ := m.Update(keyMsg('a'))
	m = updated.(Model)

	assert.Equal(t, router.ViewHome, m.router.View())
}
