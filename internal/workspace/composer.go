package workspace

import (
	"context"
	"fmt"
	"slices"

	"divvy/internal/common"
	"divvy/internal/model"
)

// ExpenseCreator is the slice of the API the composer needs.
type ExpenseCreator interface {
	CreateExpense(ctx context.Context, groupID int64, draft model.ExpenseDraft) (model.Expense, error)
}

// Composer holds the transient form state for creating an expense. The
// draft exists only while the form is open and is discarded on submit or
// cancel; nothing here survives a group switch.
type Composer struct {
	creator      ExpenseCreator
	participants []model.Participant
	draft        model.ExpenseDraft
	open         bool
}

// NewComposer creates a composer that submits through creator.
func NewComposer(creator ExpenseCreator) *Composer {
	return &Composer{creator: creator}
}

// Open starts a fresh draft with participants as the payer and involved
// selection sources. Every participant starts involved; the first one is
// the default payer.
func (c *Composer) Open(participants []model.Participant) {
	involved := make([]int64, 0, len(participants))
	for _, p := range participants {
		involved = append(involved, p.ID)
	}

	c.participants = participants
	c.draft = model.ExpenseDraft{InvolvedIDs: involved}
	if len(participants) > 0 {
		c.draft.PayerID = participants[0].ID
	}
	c.open = true
}

// Close discards the draft.
func (c *Composer) Close() {
	c.open = false
	c.draft = model.ExpenseDraft{}
	c.participants = nil
}

// IsOpen reports whether the form is open.
func (c *Composer) IsOpen() bool {
	return c.open
}

// Draft returns the current draft value.
func (c *Composer) Draft() model.ExpenseDraft {
	return c.draft
}

// Participants returns the selection source for payer and involved.
func (c *Composer) Participants() []model.Participant {
	return c.participants
}

// SetTitle updates the draft title.
func (c *Composer) SetTitle(title string) {
	c.draft.Title = title
}

// SetAmount updates the draft amount text.
func (c *Composer) SetAmount(amount string) {
	c.draft.Amount = amount
}

// SetPayer selects the paying participant.
func (c *Composer) SetPayer(id int64) {
	c.draft.PayerID = id
}

// ToggleInvolved flips a participant in or out of the involved set.
func (c *Composer) ToggleInvolved(id int64) {
	if i := slices.Index(c.draft.InvolvedIDs, id); i >= 0 {
		c.draft.InvolvedIDs = slices.Delete(c.draft.InvolvedIDs, i, i+1)
		return
	}
	c.draft.InvolvedIDs = append(c.draft.InvolvedIDs, id)
}

// Involved reports whether a participant is in the involved set.
func (c *Composer) Involved(id int64) bool {
	return slices.Contains(c.draft.InvolvedIDs, id)
}

// Validate applies the client-side gate. Violations are ErrIncompleteForm
// and guarantee no network call is made.
func Validate(draft model.ExpenseDraft) error {
	if !draft.Complete() {
		return fmt.Errorf("expense draft: %w", common.ErrIncompleteForm)
	}
	return nil
}

// Submit validates the draft and, only if it passes, sends it. On success
// the form closes and the draft is discarded; the caller reloads the
// expense list so server-assigned fields stay authoritative.
func (c *Composer) Submit(ctx context.Context, groupID int64) error {
	if err := Validate(c.draft); err != nil {
		return err
	}
	if _, err := c.creator.CreateExpense(ctx, groupID, c.draft); err != nil {
		return err
	}
	c.Close()
	return nil
}
