// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")

	ErrLineMissingID         = errors.New("cart: line is missing id")
	ErrLineMissingTitle      = errors.New("cart: line is missing title")
	ErrLineInvalidPrice      = errors.New("cart: line price must be >= 0")
	ErrLineInvalidPriceValue = errors.New("cart: line priceValue must be >= 0")
	ErrLineInvalidQuantity   = errors.New("cart: line quantity must be >= 1")
)

// Line represents one line item in a user's cart.
//
// Price is the base (EUR) numeric price; PriceValue is the
// currency-converted numeric price used for display totals; NewPrice is
// the display string including the currency symbol. Identity is ID only:
// size/color variants that share an ID collapse into a single line.
type Line struct {
	ID         string  `json:"id" firestore:"id"`
	Title      string  `json:"title" firestore:"title"`
	Price      float64 `json:"price" firestore:"price"`
	NewPrice   string  `json:"newPrice" firestore:"newPrice"`
	PriceValue float64 `json:"priceValue" firestore:"priceValue"`
	Quantity   int     `json:"quantity" firestore:"quantity"`
	Image      string  `json:"image,omitempty" firestore:"image"`
	Size       string  `json:"size,omitempty" firestore:"size"`
	Color      string  `json:"color,omitempty" firestore:"color"`

	// Discounted display pair; zero values mean "no discount".
	DiscountedPrice      string  `json:"discountedPrice,omitempty" firestore:"discountedPrice"`
	DiscountedPriceValue float64 `json:"discountedPriceValue,omitempty" firestore:"discountedPriceValue"`
}

// LineInput is the validated construction input for a Line.
// Untyped product payloads are rejected here instead of producing
// half-empty lines downstream.
type LineInput struct {
	ID         string
	Title      string
	Price      float64
	NewPrice   string
	PriceValue float64
	Image      string
	Size       string
	Color      string

	DiscountedPrice      string
	DiscountedPriceValue float64
}

// NewLine validates in and returns a Line with Quantity=qty.
func NewLine(in LineInput, qty int) (Line, error) {
	id := strings.TrimSpace(in.ID)
	title := strings.TrimSpace(in.Title)

	if id == "" {
		return Line{}, ErrLineMissingID
	}
	if title == "" {
		return Line{}, ErrLineMissingTitle
	}
	if in.Price < 0 {
		return Line{}, ErrLineInvalidPrice
	}
	if in.PriceValue < 0 {
		return Line{}, ErrLineInvalidPriceValue
	}
	if qty < 1 {
		return Line{}, ErrLineInvalidQuantity
	}

	return Line{
		ID:                   id,
		Title:                title,
		Price:                in.Price,
		NewPrice:             strings.TrimSpace(in.NewPrice),
		PriceValue:           in.PriceValue,
		Quantity:             qty,
		Image:                strings.TrimSpace(in.Image),
		Size:                 strings.TrimSpace(in.Size),
		Color:                strings.TrimSpace(in.Color),
		DiscountedPrice:      strings.TrimSpace(in.DiscountedPrice),
		DiscountedPriceValue: in.DiscountedPriceValue,
	}, nil
}

// Cart represents the cart field of one user document.
//   - UserID = Firestore docId of users/{uid}
//   - Items: insertion order is display order
type Cart struct {
	UserID string `json:"userId" firestore:"userId"`
	Items  []Line `json:"items" firestore:"items"`
}

// NewCart creates a cart for uid. items can be nil (treated as empty).
func NewCart(uid string, items []Line) (*Cart, error) {
	id := strings.TrimSpace(uid)
	if id == "" {
		return nil, ErrInvalidCart
	}
	c := &Cart{
		UserID: id,
		Items:  cloneLines(items),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add merges line into the cart. If a line with the same ID already
// exists, its quantity is increased by line.Quantity and nothing else on
// the existing line changes (even when size/color differ); otherwise the
// line is appended.
func (c *Cart) Add(line Line) error {
	if c == nil {
		return ErrInvalidCart
	}
	if line.Quantity < 1 {
		return ErrLineInvalidQuantity
	}
	if strings.TrimSpace(line.ID) == "" {
		return ErrLineMissingID
	}

	if idx := c.indexOf(line.ID); idx >= 0 {
		c.Items[idx].Quantity += line.Quantity
		return c.validate()
	}

	c.Items = append(c.Items, line)
	return c.validate()
}

// SetQuantity sets the quantity of the line with id.
// qty < 1 is a no-op (the decrement-below-one UI path removes instead).
// A missing id is also a no-op.
func (c *Cart) SetQuantity(id string, qty int) error {
	if c == nil {
		return ErrInvalidCart
	}
	if qty < 1 {
		return nil
	}

	if idx := c.indexOf(id); idx >= 0 {
		c.Items[idx].Quantity = qty
	}
	return c.validate()
}

// Remove drops the line with id. Missing id is a no-op.
func (c *Cart) Remove(id string) error {
	if c == nil {
		return ErrInvalidCart
	}

	id = strings.TrimSpace(id)
	if idx := c.indexOf(id); idx >= 0 {
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
	}
	return c.validate()
}

// Clear empties the cart.
func (c *Cart) Clear() {
	if c == nil {
		return
	}
	c.Items = []Line{}
}

// Total returns the display total: sum of priceValue * quantity.
func (c *Cart) Total() float64 {
	if c == nil {
		return 0
	}
	return TotalOf(c.Items)
}

// Count returns the sum of quantities over all lines.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	return CountOf(c.Items)
}

// TotalOf sums priceValue * quantity, guarding against nil state.
func TotalOf(items []Line) float64 {
	total := 0.0
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		total += it.PriceValue * float64(it.Quantity)
	}
	return total
}

// CountOf sums quantities, guarding against nil state.
func CountOf(items []Line) int {
	n := 0
	for _, it := range items {
		if it.Quantity < 1 {
			continue
		}
		n += it.Quantity
	}
	return n
}

func (c *Cart) indexOf(id string) int {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.UserID) == "" {
		return ErrInvalidCart
	}

	if len(c.Items) == 0 {
		return nil
	}

	// normalize: drop malformed entries, merge duplicate IDs preserving
	// first-seen order (insertion order is display order)
	c.Items = normalizeAndMerge(c.Items)
	return nil
}

func normalizeAndMerge(src []Line) []Line {
	out := make([]Line, 0, len(src))
	index := map[string]int{}

	for _, it := range src {
		id := strings.TrimSpace(it.ID)
		if id == "" || it.Quantity < 1 {
			continue
		}
		it.ID = id

		if i, ok := index[id]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[id] = len(out)
		out = append(out, it)
	}
	return out
}

func cloneLines(src []Line) []Line {
	if len(src) == 0 {
		return []Line{}
	}
	cp := make([]Line, len(src))
	copy(cp, src)
	return normalizeAndMerge(cp)
}
