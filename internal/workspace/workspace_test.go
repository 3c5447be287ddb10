package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divvy/internal/model"
)

func testParticipants() []model.Participant {
	return []model.Participant{
		{ID: 1, Name: "Ana"},
		{ID: 2, Name: "Beto"},
	}
}

func TestWorkspace_ApplyMeta(t *testing.T) {
	w := New()
	gen := w.Begin(10)

	ok := w.ApplyMeta(gen, model.Group{ID: 10, Name: "Trip", Currency: "EUR"}, testParticipants())

	require.True(t, ok)
	assert.True(t, w.Ready())
	assert.Equal(t, "EUR", w.Currency())
	assert.Len(t, w.Participants(), 2)

	p, found := w.Lookup(2)
	require.True(t, found)
	assert.Equal(t, "Beto", p.Name)
}

// Switching groups must not let any data from the previous group leak
// into the new one, even when the old group's responses arrive late.
func TestWorkspace_GroupSwitchIsolation(t *testing.T) {
	w := New()

	oldGen := w.Begin(10)
	w.ApplyMeta(oldGen, model.Group{ID: 10, Name: "Old"}, testParticipants())
	w.ApplyExpenses(oldGen, []model.Expense{{ID: 1, Title: "Dinner"}})

	newGen := w.Begin(20)

	assert.False(t, w.Ready(), "starting a new load must clear the previous group's cache")
	_, loaded := w.Expenses()
	assert.False(t, loaded)
	_, found := w.Lookup(1)
	assert.False(t, found)

	// Late responses from the old group's loads must be discarded.
	assert.False(t, w.ApplyExpenses(oldGen, []model.Expense{{ID: 9, Title: "Stale"}}))
	assert.False(t, w.ApplyMeta(oldGen, model.Group{ID: 10}, testParticipants()))
	assert.False(t, w.ApplyBalance(oldGen, model.BalanceSheet{}))

	_, loaded = w.Expenses()
	assert.False(t, loaded, "stale data must never be applied")

	// The new group's own responses still land.
	assert.True(t, w.ApplyMeta(newGen, model.Group{ID: 20, Name: "New"}, nil))
	assert.Equal(t, "New", w.Group().Name)
}

func TestWorkspace_Reset(t *testing.T) {
	w := New()
	gen := w.Begin(10)
	w.ApplyMeta(gen, model.Group{ID: 10}, testParticipants())

	w.Reset()

	assert.False(t, w.Ready())
	assert.Equal(t, int64(0), w.GroupID())
	assert.False(t, w.ApplyMeta(gen, model.Group{ID: 10}, nil), "pre-reset generation must be stale")
}

func TestWorkspace_ApplyBalance(t *testing.T) {
	w := New()
	gen := w.Begin(10)

	sheet := model.BalanceSheet{
		Settlements: []model.SettlementEdge{{From: 2, To: 1, Amount: 15}},
	}
	require.True(t, w.ApplyBalance(gen, sheet))

	got := w.Balance()
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.Settlements[0].From)
}

func TestWorkspace_GenerationMonotonic(t *testing.T) {
	w := New()
	first := w.Begin(1)
	second := w.Begin(2)
	assert.Greater(t, second, first)
}
