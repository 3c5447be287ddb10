package api

import (
	"context"
	"fmt"
	"net/http"

	"divvy/internal/model"
)

// AdminUsers lists all registered users. Requires an administrator session.
func (c *Client) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AdminGroups lists all groups across users.
func (c *Client) AdminGroups(ctx context.Context) ([]model.AdminGroup, error) {
	var groups []model.AdminGroup
	if err := c.do(ctx, http.MethodGet, "/api/admin/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", id), nil, nil)
}

// DeleteGroup removes a group and all of its expenses.
func (c *Client) DeleteGroup(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/groups/%d", id), nil, nil)
}
