package api

import (
	"context"
	"fmt"
	"net/http"

	"divvy/internal/model"
)

// Groups lists the caller's groups, most recent first as delivered by the
// backend.
func (c *Client) Groups(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateGroup creates a group with the given participant names.
func (c *Client) CreateGroup(ctx context.Context, name string, participants []string, currency string) (model.Group, error) {
	body := map[string]any{
		"name":         name,
		"participants": participants,
		"currency":     currency,
	}
	var group model.Group
	if err := c.do(ctx, http.MethodPost, "/api/groups", body, &group); err != nil {
		return model.Group{}, err
	}
	return group, nil
}

// Group fetches one group's metadata together with its participant list.
func (c *Client) Group(ctx context.Context, id int64) (model.Group, []model.Participant, error) {
	var resp struct {
		Group        model.Group         `json:"group"`
		Participants []model.Participant `json:"participants"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/groups/%d", id), nil, &resp); err != nil {
		return model.Group{}, nil, err
	}
	return resp.Group, resp.Participants, nil
}

// Expenses lists a group's expenses.
func (c *Client) Expenses(ctx context.Context, groupID int64) ([]model.Expense, error) {
	var expenses []model.Expense
	path := fmt.Sprintf("/api/groups/%d/expenses", groupID)
	if err := c.do(ctx, http.MethodGet, path, nil, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// CreateExpense submits a validated draft. The returned record carries the
// server-assigned id and timestamp; callers reload the list rather than
// appending locally.
func (c *Client) CreateExpense(ctx context.Context, groupID int64, draft model.ExpenseDraft) (model.Expense, error) {
	amount, _ := draft.ParseAmount()
	body := map[string]any{
		"title":        draft.Title,
		"amount":       amount,
		"payer_id":     draft.PayerID,
		"involved_ids": draft.InvolvedIDs,
	}
	var expense model.Expense
	path := fmt.Sprintf("/api/groups/%d/expenses", groupID)
	if err := c.do(ctx, http.MethodPost, path, body, &expense); err != nil {
		return model.Expense{}, err
	}
	return expense, nil
}

// Balance fetches the settlement result for a group. The computation is
// entirely server-side; the sheet is rendered as delivered.
func (c *Client) Balance(ctx context.Context, groupID int64) (model.BalanceSheet, error) {
	var sheet model.BalanceSheet
	path := fmt.Sprintf("/api/groups/%d/balance", groupID)
	if err := c.do(ctx, http.MethodGet, path, nil, &sheet); err != nil {
		return model.BalanceSheet{}, err
	}
	return sheet, nil
}
