// Package viewmodel computes pure render-output values from application
// state. Nothing in here touches the terminal; the presentation layer is
// a projection of these values, which keeps every rendering rule testable.
package viewmodel

import "fmt"

// currencySymbols maps supported currency codes to their display symbol.
// Codes are carried opaquely from the group record; no conversion is ever
// performed.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"ARS": "$",
	"MXN": "$",
	"COP": "$",
	"CLP": "$",
	"GTQ": "Q",
}

// Symbol returns the display symbol for a currency code, falling back to
// "$" for anything unrecognized.
func Symbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return "$"
}

// FormatAmount renders an amount with its currency symbol, always two
// decimal places. No locale-sensitive separators.
func FormatAmount(symbol string, amount float64) string {
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
