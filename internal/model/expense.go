package model

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Expense is a single expense record within a group. Expenses are rendered
// as delivered by the backend and never mutated client-side.
type Expense struct {
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	ID        int64     `json:"id"`
	PayerID   int64     `json:"payer_id"`
}

// ExpenseDraft is the transient form state for creating an expense. It
// exists only while the creation form is open and is discarded on submit
// or cancel.
type ExpenseDraft struct {
	Title       string
	Amount      string
	PayerID     int64
	InvolvedIDs []int64
}

// ParseAmount parses the draft amount as a finite number. The sign is not
// checked here; the backend is the authority on positivity.
func (d ExpenseDraft) ParseAmount() (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Complete reports whether the draft passes the client-side gate: title
// present, amount parseable, payer selected, and at least one involved
// participant. The payer need not be among the involved set.
func (d ExpenseDraft) Complete() bool {
	if strings.TrimSpace(d.Title) == "" {
		return false
	}
	if _, ok := d.ParseAmount(); !ok {
		return false
	}
	return d.PayerID != 0 && len(d.InvolvedIDs) > 0
}
