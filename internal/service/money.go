package service

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
}

// Money formats an amount in minor units, e.g. Money(1999, "GBP") == "£19.99".
// Unknown currencies are suffixed with their code.
func Money(cents int, currency string) string {
	amount := decimal.New(int64(cents), -2).StringFixed(2)
	code := strings.ToUpper(strings.TrimSpace(currency))
	if symbol, ok := currencySymbols[code]; ok {
		if strings.HasPrefix(amount, "-") {
			return "-" + symbol + amount[1:]
		}
		return symbol + amount
	}
	if code == "" {
		return amount
	}
	return amount + " " + code
}
