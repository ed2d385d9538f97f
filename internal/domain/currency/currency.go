// internal/domain/currency/currency.go
package currency

import "context"

// Default is what every resolution failure falls back to: base currency,
// identity rate.
var Default = Currency{Code: "EUR", Rate: 1, Symbol: "€"}

// AllowedCodes is the fixed set of display currencies the shop supports.
// A country whose currency is outside this set renders in EUR.
var AllowedCodes = []string{"USD", "EUR", "INR", "GBP"}

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"INR": "₹",
	"GBP": "£",
}

// Currency is a resolved display currency: ISO code plus the EUR→code
// exchange rate.
type Currency struct {
	Code   string  `json:"code"`
	Rate   float64 `json:"rate"`
	Symbol string  `json:"symbol"`
}

// SymbolFor returns the display symbol for an allowed code, defaulting
// to the EUR symbol.
func SymbolFor(code string) string {
	if s, ok := symbols[code]; ok {
		return s
	}
	return Default.Symbol
}

// IsAllowed reports whether code is one of the supported display
// currencies.
func IsAllowed(code string) bool {
	for _, c := range AllowedCodes {
		if c == code {
			return true
		}
	}
	return false
}

// Resolver maps a country name to a display currency. Implementations
// never return an error: any lookup failure degrades to Default.
type Resolver interface {
	Resolve(ctx context.Context, country string) Currency
}
