// Package admin holds the administrator panel's list state. It is
// deliberately simple request/refresh glue: exactly one tab's data is
// loaded at a time, and every mutation is followed by a full list reload.
package admin

import (
	"context"

	"divvy/internal/model"
)

// Backend is the slice of the API the panel needs.
type Backend interface {
	AdminUsers(ctx context.Context) ([]model.AdminUser, error)
	AdminGroups(ctx context.Context) ([]model.AdminGroup, error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteGroup(ctx context.Context, id int64) error
}

// Panel caches the rows for the currently selected admin tab.
type Panel struct {
	backend Backend
	users   []model.AdminUser
	groups  []model.AdminGroup
}

// NewPanel creates an admin panel over backend.
func NewPanel(backend Backend) *Panel {
	return &Panel{backend: backend}
}

// Reset drops both row sets, used when leaving the admin view.
func (p *Panel) Reset() {
	p.users = nil
	p.groups = nil
}

// Users returns the cached user rows.
func (p *Panel) Users() []model.AdminUser {
	return p.users
}

// Groups returns the cached group rows.
func (p *Panel) Groups() []model.AdminGroup {
	return p.groups
}

// SetUsers installs a freshly loaded user listing, dropping the group
// rows so only the active tab's data is held.
func (p *Panel) SetUsers(users []model.AdminUser) {
	p.users = users
	p.groups = nil
}

// SetGroups installs a freshly loaded group listing.
func (p *Panel) SetGroups(groups []model.AdminGroup) {
	p.groups = groups
	p.users = nil
}

// DeleteUser removes a user account. Administrator rows are never
// deletable from the panel.
func (p *Panel) DeleteUser(ctx context.Context, user model.AdminUser) error {
	if user.IsAdmin {
		return nil
	}
	return p.backend.DeleteUser(ctx, user.ID)
}

// DeleteGroup removes a group and its expenses.
func (p *Panel) DeleteGroup(ctx context.Context, id int64) error {
	return p.backend.DeleteGroup(ctx, id)
}
