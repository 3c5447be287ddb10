package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceSheet_UnmarshalJSON(t *testing.T) {
	payload := `{
		"settlements": [{"from": 2, "to": 1, "amount": 15.0}],
		"balances": {"3": -2.5, "1": 17.5, "2": -15.0}
	}`

	var sheet BalanceSheet
	require.NoError(t, json.Unmarshal([]byte(payload), &sheet))

	require.Len(t, sheet.Settlements, 1)
	assert.Equal(t, int64(2), sheet.Settlements[0].From)
	assert.Equal(t, int64(1), sheet.Settlements[0].To)
	assert.InDelta(t, 15.0, sheet.Settlements[0].Amount, 0.001)

	// Balances must keep the delivery order, not sort by key.
	require.Len(t, sheet.Balances, 3)
	assert.Equal(t, int64(3), sheet.Balances[0].ParticipantID)
	assert.Equal(t, int64(1), sheet.Balances[1].ParticipantID)
	assert.Equal(t, int64(2), sheet.Balances[2].ParticipantID)
	assert.InDelta(t, -2.5, sheet.Balances[0].Amount, 0.001)
}

func TestBalanceSheet_UnmarshalJSON_Empty(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{name: "empty object", payload: `{}`},
		{name: "null balances", payload: `{"settlements": [], "balances": null}`},
		{name: "empty balances", payload: `{"settlements": [], "balances": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sheet BalanceSheet
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &sheet))
			assert.True(t, sheet.Settled())
			assert.Empty(t, sheet.Balances)
		})
	}
}

func TestBalanceSheet_UnmarshalJSON_BadKey(t *testing.T) {
	var sheet BalanceSheet
	err := json.Unmarshal([]byte(`{"balances": {"ana": 1.0}}`), &sheet)
	assert.Error(t, err)
}

func TestBalanceSheet_Settled(t *testing.T) {
	assert.True(t, BalanceSheet{}.Settled())
	assert.False(t, BalanceSheet{
		Settlements: []SettlementEdge{{From: 1, To: 2, Amount: 1}},
	}.Settled())
}
