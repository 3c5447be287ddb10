package viewmodel

import (
	"fmt"
	"time"

	"divvy/internal/model"
)

// UnknownPayerLabel stands in for a payer id that no longer resolves in
// the participant set. One bad record must not blank the list.
const UnknownPayerLabel = "Unknown"

// ExpenseRow is one rendered expense list entry.
type ExpenseRow struct {
	Title     string
	PayerName string
	Detail    string
	Amount    string
	Date      string
}

// RenderExpenses pairs each expense with its payer by participant-id
// lookup and formats amounts with the workspace currency. Rows keep the
// order delivered by the backend.
func RenderExpenses(expenses []model.Expense, participants []model.Participant, currency string) []ExpenseRow {
	byID := make(map[int64]model.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}
	symbol := Symbol(currency)

	rows := make([]ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		payerName := UnknownPayerLabel
		if payer, ok := byID[e.PayerID]; ok {
			payerName = payer.Name
		}
		amount := FormatAmount(symbol, e.Amount)
		rows = append(rows, ExpenseRow{
			Title:     e.Title,
			PayerName: payerName,
			Detail:    fmt.Sprintf("%s paid %s", payerName, amount),
			Amount:    amount,
			Date:      FormatDateShort(e.CreatedAt),
		})
	}
	return rows
}

// FormatDateShort formats a date in short form.
func FormatDateShort(t time.Time) string {
	return t.Format("Jan 02")
}

// TruncateString truncates a string to the specified length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
