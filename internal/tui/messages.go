package tui

import (
	"divvy/internal/model"
	"divvy/internal/router"
)

// Session lifecycle messages.
type sessionResolvedMsg struct {
	authed bool
}

type loginResultMsg struct {
	err error
}

type registerResultMsg struct {
	err error
}

type resetRequestedMsg struct {
	err     error
	message string
}

type resetDoneMsg struct {
	err     error
	message string
}

type loggedOutMsg struct{}

// Home view messages.
type groupsLoadedMsg struct {
	err    error
	groups []model.Group
}

type groupCreatedMsg struct {
	err   error
	group model.Group
}

// Workspace load messages. Each carries the generation captured when the
// request was issued; stale generations are discarded on arrival.
type workspaceMetaMsg struct {
	err          error
	participants []model.Participant
	group        model.Group
	gen          uint64
}

type expensesLoadedMsg struct {
	err      error
	expenses []model.Expense
	gen      uint64
}

type balanceLoadedMsg struct {
	err   error
	sheet model.BalanceSheet
	gen   uint64
}

type expenseSubmittedMsg struct {
	err error
}

// Profile messages.
type profileSavedMsg struct {
	err error
}

type avatarUploadedMsg struct {
	err  error
	path string
}

// Admin messages.
type adminUsersMsg struct {
	err   error
	users []model.AdminUser
}

type adminGroupsMsg struct {
	err    error
	groups []model.AdminGroup
}

type adminDeletedMsg struct {
	err error
	tab router.AdminTab
}
