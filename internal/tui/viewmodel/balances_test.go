package viewmodel

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
		{ID: 3, Name: "Carla"},
	}
}

func TestClassifySign(t *testing.T) {
	tests := []struct {
		name   string
		want   SignClass
		amount float64
	}{
		{name: "positive is credit", amount: 12.50, want: SignCredit},
		{name: "negative is debit", amount: -7.00, want: SignDebit},
		{name: "zero is neutral", amount: 0.00, want: SignNeutral},
		{name: "tiny positive is still credit", amount: 0.0000001, want: SignCredit},
		{name: "negative zero is neutral", amount: -0.0, want: SignNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifySign(tt.amount))
		})
	}
}

func TestFormatNet(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		want   string
		amount float64
	}{
		{name: "credit gets explicit plus", symbol: "$", amount: 12.50, want: "+$12.50"},
		{name: "debit keeps numeric sign", symbol: "$", amount: -7.00, want: "$-7.00"},
		{name: "zero has no sign", symbol: "$", amount: 0.00, want: "$0.00"},
		{name: "euro credit", symbol: "€", amount: 3.25, want: "+€3.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNet(tt.symbol, tt.amount))
		})
	}
}

func TestRenderBalances(t *testing.T) {
	sheet := model.BalanceSheet{
		Settlements: []model.SettlementEdge{
			{From: 1, To: 2, Amount: 15.00},
		},
		Balances: []model.NetBalance{
			{ParticipantID: 1, Amount: -15.00},
			{ParticipantID: 2, Amount: 15.00},
			{ParticipantID: 3, Amount: 0.00},
		},
	}

	view := RenderBalances(sheet, testParticipants(), "USD")

	assert.False(t, view.AllSettled)
	require.Len(t, view.Settlements, 1)
	assert.Equal(t, "Ana → Beto: $15.00", view.Settlements[0].Line)

	require.Len(t, view.Net, 3)
	assert.Equal(t, "$-15.00", view.Net[0].Amount)
	assert.Equal(t, SignDebit, view.Net[0].Class)
	assert.Equal(t, "+$15.00", view.Net[1].Amount)
	assert.Equal(t, SignCredit, view.Net[1].Class)
	assert.Equal(t, "$0.00", view.Net[2].Amount)
	assert.Equal(t, SignNeutral, view.Net[2].Class)
}

// An empty settlement list means everyone is square, regardless of what
// the net balance rows say numerically.
func TestRenderBalances_AllSettled(t *testing.T) {
	sheet := model.BalanceSheet{
		Balances: []model.NetBalance{
			{ParticipantID: 1, Amount: 0},
			{ParticipantID: 2, Amount: 0},
		},
	}

	view := RenderBalances(sheet, testParticipants(), "USD")

	assert.True(t, view.AllSettled)
	assert.Empty(t, view.Settlements)
}

// A settlement edge naming a participant missing from the current set is
// skipped and counted; the remaining rows still render.
func TestRenderBalances_UnknownParticipantEdgeSkipped(t *testing.T) {
	sheet := model.BalanceSheet{
		Settlements: []model.SettlementEdge{
			{From: 99, To: 2, Amount: 5.00},
			{From: 1, To: 2, Amount: 15.00},
		},
		Balances: []model.NetBalance{
			{ParticipantID: 2, Amount: 20.00},
			{ParticipantID: 98, Amount: -20.00},
		},
	}

	view := RenderBalances(sheet, testParticipants(), "USD")

	assert.Equal(t, 1, view.SkippedEdges)
	require.Len(t, view.Settlements, 1)
	assert.Equal(t, "Ana → Beto: $15.00", view.Settlements[0].Line)

	require.Len(t, view.Net, 1, "unknown net balance ids are dropped silently")
	assert.Equal(t, "Beto", view.Net[0].Name)
}

func TestRenderBalances_KeepsDeliveryOrder(t *testing.T) {
	sheet := model.BalanceSheet{
		Settlements: []model.SettlementEdge{
			{From: 3, To: 1, Amount: 2.00},
			{From: 2, To: 1, Amount: 8.00},
		},
		Balances: []model.NetBalance{
			{ParticipantID: 3, Amount: -2.00},
			{ParticipantID: 1, Amount: 10.00},
			{ParticipantID: 2, Amount: -8.00},
		},
	}

	view := RenderBalances(sheet, testParticipants(), "USD")

	require.Len(t, view.Settlements, 2)
	assert.Equal(t, "Carla", view.Settlements[0].FromName)
	assert.Equal(t, "Beto", view.Settlements[1].FromName)

	require.Len(t, view.Net, 3)
	assert.Equal(t, []string{"Carla", "Ana", "Beto"},
		[]string{view.Net[0].Name, view.Net[1].Name, view.Net[2].Name})
}
