// Package router implements the view-navigation state machine. It is
// deliberately free of any terminal or network dependency: transitions
// mutate one view field and return an effect descriptor the caller turns
// into the single data load that transition owes.
package router

import (
	"fmt"

	"divvy/internal/model"
)

// View is one of the mutually-exclusive top-level screens.
type View int

const (
	// ViewBooting is the pseudo-state before session resolution.
	ViewBooting View = iota
	// ViewLanding is the unauthenticated landing screen.
	ViewLanding
	// ViewLogin is the login form.
	ViewLogin
	// ViewRegister is the account creation form.
	ViewRegister
	// ViewForgotPassword is the reset-request form.
	ViewForgotPassword
	// ViewResetPassword is the token-redemption form.
	ViewResetPassword
	// ViewHome is the authenticated group list.
	ViewHome
	// ViewGroup is the active-group workspace.
	ViewGroup
	// ViewProfile is the profile editor.
	ViewProfile
	// ViewAdmin is the administrator panel.
	ViewAdmin
)

// String returns a string representation of the view.
func (v View) String() string {
	switch v {
	case ViewBooting:
		return "booting"
	case ViewLanding:
		return "landing"
	case ViewLogin:
		return "login"
	case ViewRegister:
		return "register"
	case ViewForgotPassword:
		return "forgotPassword"
	case ViewResetPassword:
		return "resetPassword"
	case ViewHome:
		return "home"
	case ViewGroup:
		return "group"
	case ViewProfile:
		return "profile"
	case ViewAdmin:
		return "admin"
	default:
		return fmt.Sprintf("Unknown(%d)", v)
	}
}

// RequiresSession reports whether the view is gated behind authentication.
func (v View) RequiresSession() bool {
	switch v {
	case ViewHome, ViewGroup, ViewProfile, ViewAdmin:
		return true
	default:
		return false
	}
}

// Tab is the sub-state inside the group view.
type Tab int

const (
	// TabExpenses shows the expense list.
	TabExpenses Tab = iota
	// TabBalances shows the settlement result.
	TabBalances
)

// AdminTab is the sub-state inside the admin view.
type AdminTab int

const (
	// AdminTabUsers shows the user listing.
	AdminTabUsers AdminTab = iota
	// AdminTabGroups shows the group listing.
	AdminTabGroups
)

// Load identifies the data fetch a transition owes. Every transition into
// a data-bearing view yields exactly one.
type Load int

const (
	// LoadNone means the transition carries no fetch.
	LoadNone Load = iota
	// LoadGroups fetches the home group list.
	LoadGroups
	// LoadWorkspace fetches group metadata and participants.
	LoadWorkspace
	// LoadExpenses fetches the expense list for the active group.
	LoadExpenses
	// LoadBalances fetches the settlement result for the active group.
	LoadBalances
	// LoadAdminUsers fetches the admin user listing.
	LoadAdminUsers
	// LoadAdminGroups fetches the admin group listing.
	LoadAdminGroups
)

// Effect describes the side effect a transition owes its destination.
type Effect struct {
	GroupID int64
	Load    Load
}

// Router is the finite-state machine over views. Exactly one view is
// active at any time; activation is a single field assignment, so no
// intermediate zero-or-two-active state is ever observable.
type Router struct {
	view     View
	tab      Tab
	adminTab AdminTab
	groupID  int64
}

// New creates a router in the booting pseudo-state.
func New() *Router {
	return &Router{view: ViewBooting}
}

// View returns the active view.
func (r *Router) View() View {
	return r.view
}

// Tab returns the active group sub-tab.
func (r *Router) Tab() Tab {
	return r.tab
}

// AdminTab returns the active admin sub-tab.
func (r *Router) AdminTab() AdminTab {
	return r.adminTab
}

// GroupID returns the active group reference, or zero when no group is
// active.
func (r *Router) GroupID() int64 {
	return r.groupID
}

// setView activates v and deactivates everything else. Leaving the group
// view clears the group reference; the next entry reloads fully.
func (r *Router) setView(v View) {
	if r.view == ViewGroup && v != ViewGroup {
		r.groupID = 0
	}
	r.view = v
}

// Resolve leaves the booting pseudo-state once the session check has
// completed: home when an identity was recovered, landing otherwise.
func (r *Router) Resolve(sess model.Session) Effect {
	if sess.Authenticated() {
		return r.ShowHome(sess)
	}
	r.setView(ViewLanding)
	return Effect{}
}

// ShowLanding activates the landing view.
func (r *Router) ShowLanding() Effect {
	r.setView(ViewLanding)
	return Effect{}
}

// ShowLogin activates the login view.
func (r *Router) ShowLogin() Effect {
	r.setView(ViewLogin)
	return Effect{}
}

// ShowRegister activates the registration view.
func (r *Router) ShowRegister() Effect {
	r.setView(ViewRegister)
	return Effect{}
}

// ShowForgotPassword activates the reset-request view.
func (r *Router) ShowForgotPassword() Effect {
	r.setView(ViewForgotPassword)
	return Effect{}
}

// ShowResetPassword activates the token-redemption view. Reachable
// without a session; the client lands here directly when started with a
// reset token.
func (r *Router) ShowResetPassword() Effect {
	r.setView(ViewResetPassword)
	return Effect{}
}

// ShowHome activates the home view and schedules the group-list load.
// Without a session this is a redirect to landing, not an error.
func (r *Router) ShowHome(sess model.Session) Effect {
	if !sess.Authenticated() {
		r.setView(ViewLanding)
		return Effect{}
	}
	r.setView(ViewHome)
	return Effect{Load: LoadGroups}
}

// EnterGroup activates the group view for groupID, defaulting to the
// expenses sub-tab, and schedules the workspace load.
func (r *Router) EnterGroup(sess model.Session, groupID int64) Effect {
	if !sess.Authenticated() {
		r.setView(ViewLanding)
		return Effect{}
	}
	r.groupID = groupID
	r.tab = TabExpenses
	r.setView(ViewGroup)
	return Effect{Load: LoadWorkspace, GroupID: groupID}
}

// ShowProfile activates the profile view. Profile data comes from the
// session itself, so no load is owed.
func (r *Router) ShowProfile(sess model.Session) Effect {
	if !sess.Authenticated() {
		r.setView(ViewLanding)
		return Effect{}
	}
	r.setView(ViewProfile)
	return Effect{}
}

// ShowAdmin activates the admin view, defaulting to the users tab. A
// missing session redirects to landing; a non-admin session is a no-op,
// never the admin view.
func (r *Router) ShowAdmin(sess model.Session) Effect {
	if !sess.Authenticated() {
		r.setView(ViewLanding)
		return Effect{}
	}
	if !sess.IsAdmin() {
		return Effect{}
	}
	r.adminTab = AdminTabUsers
	r.setView(ViewAdmin)
	return Effect{Load: LoadAdminUsers}
}

// SelectTab switches the group sub-tab. Re-selecting the active tab is a
// no-op re-render, not a re-fetch; a change schedules exactly one load.
func (r *Router) SelectTab(tab Tab) Effect {
	if r.view != ViewGroup || tab == r.tab {
		return Effect{}
	}
	r.tab = tab
	load := LoadExpenses
	if tab == TabBalances {
		load = LoadBalances
	}
	return Effect{Load: load, GroupID: r.groupID}
}

// SelectAdminTab switches the admin sub-tab with the same idempotency
// rule as the group tabs.
func (r *Router) SelectAdminTab(tab AdminTab) Effect {
	if r.view != ViewAdmin || tab == r.adminTab {
		return Effect{}
	}
	r.adminTab = tab
	load := LoadAdminUsers
	if tab == AdminTabGroups {
		load = LoadAdminGroups
	}
	return Effect{Load: load}
}
