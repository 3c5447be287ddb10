package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SettlementEdge is one payment instruction produced by the backend's
// netting computation: From pays To the given amount.
type SettlementEdge struct {
	From   int64   `json:"from"`
	To     int64   `json:"to"`
	Amount float64 `json:"amount"`
}

// NetBalance is one participant's signed running total. Positive means the
// participant is owed money, negative means they owe.
type NetBalance struct {
	ParticipantID int64
	Amount        float64
}

// BalanceSheet is the full settlement result for a group. Balances keep
// the order the backend delivered them in; the sheet is rendered as-is
// with no client-side reordering.
type BalanceSheet struct {
	Settlements []SettlementEdge
	Balances    []NetBalance
}

// UnmarshalJSON decodes the balance payload. The balances field arrives as
// a JSON object keyed by participant id; a plain map would lose delivery
// order, so the object is walked token by token instead.
func (b *BalanceSheet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Settlements []SettlementEdge `json:"settlements"`
		Balances    json.RawMessage  `json:"balances"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	b.Settlements = raw.Settlements
	b.Balances = nil

	if len(raw.Balances) == 0 || bytes.Equal(raw.Balances, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw.Balances))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("balances: expected object, got %v", tok)
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("balances: unexpected key %v", keyTok)
		}
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("balances: participant id %q: %w", key, err)
		}
		var amount float64
		if err := dec.Decode(&amount); err != nil {
			return fmt.Errorf("balances: amount for %q: %w", key, err)
		}
		b.Balances = append(b.Balances, NetBalance{ParticipantID: id, Amount: amount})
	}
	// Trailing '}'
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Settled reports whether the settlement list is empty, meaning no
// payments are needed to bring the group to zero.
func (b BalanceSheet) Settled() bool {
	return len(b.Settlements) == 0
}
