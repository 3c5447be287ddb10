// Package workspace caches the active group's participants, currency and
// derived display data. The cache lives exactly as long as the group view:
// entering a group starts a fresh load generation, leaving discards
// everything. Responses from a superseded generation are detected and
// dropped, never applied.
package workspace

import (
	"divvy/internal/common"
	"divvy/internal/model"
)

// Workspace is the per-group cache. All mutation happens on the UI event
// loop, so no locking is needed; the only discipline is the generation
// check on every apply.
type Workspace struct {
	byID           map[int64]model.Participant
	sheet          *model.BalanceSheet
	participants   []model.Participant
	expenses       []model.Expense
	group          model.Group
	generation     uint64
	groupID        int64
	metaLoaded     bool
	expensesLoaded bool
}

// New creates an empty workspace.
func New() *Workspace {
	return &Workspace{}
}

// Begin starts a new load generation for groupID, discarding everything
// cached for any previous group. Returns the generation to tag the loads
// with.
func (w *Workspace) Begin(groupID int64) uint64 {
	w.generation++
	w.groupID = groupID
	w.group = model.Group{}
	w.participants = nil
	w.byID = nil
	w.expenses = nil
	w.sheet = nil
	w.metaLoaded = false
	w.expensesLoaded = false
	return w.generation
}

// Reset discards the cache entirely. Used when leaving the group view;
// the next entry reloads fully.
func (w *Workspace) Reset() {
	w.Begin(0)
	w.groupID = 0
}

// Generation returns the current load generation.
func (w *Workspace) Generation() uint64 {
	return w.generation
}

// GroupID returns the group this workspace is bound to, zero when none.
func (w *Workspace) GroupID() int64 {
	return w.groupID
}

// stale reports whether a response tagged with gen belongs to a
// superseded load sequence.
func (w *Workspace) stale(gen uint64, what string) bool {
	if gen != w.generation {
		common.LogDebug("Discarding stale response", common.Fields{
			"data":                what,
			"response_generation": gen,
			"current_generation":  w.generation,
		})
		return true
	}
	return false
}

// ApplyMeta installs group metadata and the participant list, replacing
// any previously cached set unconditionally. Returns false when the
// response was stale and nothing was applied.
func (w *Workspace) ApplyMeta(gen uint64, group model.Group, participants []model.Participant) bool {
	if w.stale(gen, "group metadata") {
		return false
	}
	w.group = group
	w.participants = participants
	w.byID = make(map[int64]model.Participant, len(participants))
	for _, p := range participants {
		w.byID[p.ID] = p
	}
	w.metaLoaded = true
	return true
}

// ApplyExpenses installs the expense list for the current generation.
func (w *Workspace) ApplyExpenses(gen uint64, expenses []model.Expense) bool {
	if w.stale(gen, "expenses") {
		return false
	}
	w.expenses = expenses
	w.expensesLoaded = true
	return true
}

// ApplyBalance installs the settlement result for the current generation.
func (w *Workspace) ApplyBalance(gen uint64, sheet model.BalanceSheet) bool {
	if w.stale(gen, "balance") {
		return false
	}
	w.sheet = &sheet
	return true
}

// Ready reports whether group metadata has arrived. Participant-dependent
// rendering never begins before this.
func (w *Workspace) Ready() bool {
	return w.metaLoaded
}

// Group returns the cached group metadata.
func (w *Workspace) Group() model.Group {
	return w.group
}

// Currency returns the group's currency code.
func (w *Workspace) Currency() string {
	return w.group.Currency
}

// Participants returns the cached participant set.
func (w *Workspace) Participants() []model.Participant {
	return w.participants
}

// Lookup resolves a participant by id within the current set.
func (w *Workspace) Lookup(id int64) (model.Participant, bool) {
	p, ok := w.byID[id]
	return p, ok
}

// Expenses returns the cached expense list and whether it has loaded.
func (w *Workspace) Expenses() ([]model.Expense, bool) {
	return w.expenses, w.expensesLoaded
}

// Balance returns the cached settlement result, nil before it loads.
func (w *Workspace) Balance() *model.BalanceSheet {
	return w.sheet
}
