package viewmodel

import (
	"fmt"

	"divvy/internal/common"
	"divvy/internal/model"
)

// SignClass is the three-way styling classification for a net balance.
// Classification is exact-equality based: no epsilon tolerance is applied
// to floating-point drift from the settlement computation.
type SignClass int

const (
	// SignNeutral is a balance of exactly zero.
	SignNeutral SignClass = iota
	// SignCredit is a strictly positive balance (owed money).
	SignCredit
	// SignDebit is a strictly negative balance (owes money).
	SignDebit
)

// ClassifySign classifies a signed balance amount.
func ClassifySign(amount float64) SignClass {
	switch {
	case amount > 0:
		return SignCredit
	case amount < 0:
		return SignDebit
	default:
		return SignNeutral
	}
}

// SettlementRow is one rendered payment instruction.
type SettlementRow struct {
	FromName string
	ToName   string
	Amount   string
	Line     string
}

// NetRow is one rendered net balance.
type NetRow struct {
	Name   string
	Amount string
	Class  SignClass
}

// BalancesView is the full rendered settlement state for a group.
type BalancesView struct {
	Settlements  []SettlementRow
	Net          []NetRow
	SkippedEdges int
	AllSettled   bool
}

// RenderBalances projects a settlement result onto display rows.
//
// Settlement edges render in the order delivered; ordering is the
// settlement algorithm's responsibility and is treated as opaque here. An
// edge whose endpoints do not both resolve in the participant set is a
// malformed row: it is skipped and counted, and the rest of the render
// continues. Net balances likewise keep delivery order; unknown ids are
// skipped silently since a stale id after a participant removal must not
// take the whole view down.
func RenderBalances(sheet model.BalanceSheet, participants []model.Participant, currency string) BalancesView {
	byID := make(map[int64]model.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	symbol := Symbol(currency)

	view := BalancesView{AllSettled: sheet.Settled()}

	for _, edge := range sheet.Settlements {
		from, okFrom := byID[edge.From]
		to, okTo := byID[edge.To]
		if !okFrom || !okTo {
			view.SkippedEdges++
			common.LogError(common.ErrUnknownParticipant, "Skipping settlement edge", common.Fields{
				"from": edge.From,
				"to":   edge.To,
			})
			continue
		}
		amount := FormatAmount(symbol, edge.Amount)
		view.Settlements = append(view.Settlements, SettlementRow{
			FromName: from.Name,
			ToName:   to.Name,
			Amount:   amount,
			Line:     fmt.Sprintf("%s → %s: %s", from.Name, to.Name, amount),
		})
	}

	for _, nb := range sheet.Balances {
		p, ok := byID[nb.ParticipantID]
		if !ok {
			common.LogDebug("Skipping net balance for unknown participant", common.Fields{
				"id": nb.ParticipantID,
			})
			continue
		}
		view.Net = append(view.Net, NetRow{
			Name:   p.Name,
			Amount: FormatNet(symbol, nb.Amount),
			Class:  ClassifySign(nb.Amount),
		})
	}

	return view
}

// FormatNet renders a signed net balance: an explicit + prefix for
// credits, the numeric sign retained for debits, no prefix at zero.
func FormatNet(symbol string, amount float64) string {
	sign := ""
	if amount > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%s%.2f", sign, symbol, amount)
}
