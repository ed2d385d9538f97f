// internal/domain/product/entity.go
package product

import (
	"errors"
	"fmt"
	"math"
	"strings"

	currencydom "myfootfirst/internal/domain/currency"
)

var (
	ErrInvalidCategory = errors.New("product: invalid category")
)

// Product is a catalog entry as stored under
// EcommerceProducts/{category}/products/{id}. Price and DiscountedPrice
// are base-currency (EUR) numerics; display prices are derived per
// request from the caller's resolved currency.
type Product struct {
	ID              string              `json:"id" firestore:"id"`
	Title           string              `json:"title" firestore:"title"`
	Description     string              `json:"description" firestore:"description"`
	Price           float64             `json:"price" firestore:"price"`
	DiscountedPrice *float64            `json:"discountedPrice,omitempty" firestore:"discountedPrice"`
	Image           string              `json:"image,omitempty" firestore:"image"`
	Colors          []string            `json:"colors,omitempty" firestore:"colors"`
	Sizes           []string            `json:"sizes,omitempty" firestore:"sizes"`
	ColorImages     map[string][]string `json:"colorImages,omitempty" firestore:"colorImages"`
}

// Priced is a Product decorated with display prices in the caller's
// currency. PriceValue keeps the converted numeric; NewPrice is the
// symbol-bearing display string shown (and charged) to the customer.
type Priced struct {
	Product

	Currency   string  `json:"currency"`
	NewPrice   string  `json:"newPrice"`
	PriceValue float64 `json:"priceValue"`

	DiscountedDisplay    string  `json:"discountedPriceDisplay,omitempty"`
	DiscountedPriceValue float64 `json:"discountedPriceValue,omitempty"`
}

// ApplyCurrency converts p's base prices into cur and formats the
// display strings ("SYM 12.34", two decimals).
func (p Product) ApplyCurrency(cur currencydom.Currency) Priced {
	value := round2(p.Price * cur.Rate)
	out := Priced{
		Product:    p,
		Currency:   cur.Code,
		PriceValue: value,
		NewPrice:   formatDisplay(cur.Symbol, value),
	}
	if p.DiscountedPrice != nil && *p.DiscountedPrice > 0 {
		dv := round2(*p.DiscountedPrice * cur.Rate)
		out.DiscountedPriceValue = dv
		out.DiscountedDisplay = formatDisplay(cur.Symbol, dv)
	}
	return out
}

func formatDisplay(symbol string, v float64) string {
	return fmt.Sprintf("%s %.2f", strings.TrimSpace(symbol), v)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
