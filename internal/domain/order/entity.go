// internal/domain/order/entity.go
package order

import (
	"crypto/rand"
	"errors"
	"math"
	"strings"
	"time"

	cartdom "myfootfirst/internal/domain/cart"
	userdom "myfootfirst/internal/domain/user"
)

var (
	ErrInvalidOrderID  = errors.New("order: invalid orderId")
	ErrInvalidProducts = errors.New("order: order has no products")
)

// Status values. Orders are created "pending"; later transitions happen
// out-of-band in the fulfillment backend, never here.
const StatusPending = "pending"

// orderIDPool is the alphanumeric pool the 8-char order identifiers are
// drawn from.
const orderIDPool = "QWERTYUIOPASDFGHJKLZXCVBNM1234567890"

const orderIDLen = 8

// InsoleProductIDs is the fixed allow-list of subscription-like insole
// catalog ids. Everything else is general merchandise.
var InsoleProductIDs = map[string]bool{
	"insole-active":  true,
	"insole-comfort": true,
	"insole-sport":   true,
}

// Product is the per-line snapshot stored inside an order record.
type Product struct {
	ID              string  `json:"id" firestore:"id"`
	Title           string  `json:"title" firestore:"title"`
	Color           string  `json:"color,omitempty" firestore:"color"`
	Price           float64 `json:"price" firestore:"price"`
	PriceWithSymbol string  `json:"priceWithSymbol" firestore:"priceWithSymbol"`
	Quantity        int     `json:"quantity" firestore:"quantity"`
	Image           string  `json:"image,omitempty" firestore:"image"`
	TotalPrice      float64 `json:"totalPrice" firestore:"totalPrice"`
}

// Order is one persisted order record. General-merchandise orders live
// at usersOrders/{uid}/orders/{orderId}; insole orders are appended to
// the insoleOrders array on users/{uid} with the same shape.
type Order struct {
	OrderID         string          `json:"orderId" firestore:"orderId"`
	CustomerName    string          `json:"customerName" firestore:"customerName"`
	DateOfOrder     time.Time       `json:"dateOfOrder" firestore:"dateOfOrder"`
	Products        []Product       `json:"products" firestore:"products"`
	TotalAmount     float64         `json:"totalAmount" firestore:"totalAmount"`
	OrderStatus     string          `json:"orderStatus" firestore:"orderStatus"`
	ShippingAddress userdom.Address `json:"shippingAddress" firestore:"shippingAddress"`
}

// NewOrderID draws an 8-char identifier from the alphanumeric pool using
// crypto/rand. Uniqueness is ultimately guarded by create-not-overwrite
// semantics on the order document.
func NewOrderID() string {
	buf := make([]byte, orderIDLen)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read on supported platforms never fails; fall back to a
		// degenerate but non-empty id just in case.
		return strings.Repeat(string(orderIDPool[0]), orderIDLen)
	}
	out := make([]byte, orderIDLen)
	for i, b := range buf {
		out[i] = orderIDPool[int(b)%len(orderIDPool)]
	}
	return string(out)
}

// Partition splits cart lines into insole lines and general merchandise.
// The two sets are disjoint.
func Partition(items []cartdom.Line) (insoles, general []cartdom.Line) {
	for _, it := range items {
		if InsoleProductIDs[it.ID] {
			insoles = append(insoles, it)
		} else {
			general = append(general, it)
		}
	}
	return insoles, general
}

// Build assembles an order record from cart lines. Per-line prices use
// the converted priceValue (the amount the customer was shown and
// charged), with the symbol-bearing display string carried alongside.
func Build(orderID, customerName string, lines []cartdom.Line, addr userdom.Address, now time.Time) (Order, error) {
	id := strings.TrimSpace(orderID)
	if len(id) != orderIDLen {
		return Order{}, ErrInvalidOrderID
	}
	if len(lines) == 0 {
		return Order{}, ErrInvalidProducts
	}

	products := make([]Product, 0, len(lines))
	total := 0.0
	for _, it := range lines {
		lineTotal := round2(it.PriceValue * float64(it.Quantity))
		products = append(products, Product{
			ID:              it.ID,
			Title:           it.Title,
			Color:           it.Color,
			Price:           it.PriceValue,
			PriceWithSymbol: it.NewPrice,
			Quantity:        it.Quantity,
			Image:           it.Image,
			TotalPrice:      lineTotal,
		})
		total += lineTotal
	}

	name := strings.TrimSpace(customerName)
	if name == "" {
		name = "Anonymous"
	}

	return Order{
		OrderID:         id,
		CustomerName:    name,
		DateOfOrder:     now.UTC(),
		Products:        products,
		TotalAmount:     round2(total),
		OrderStatus:     StatusPending,
		ShippingAddress: addr,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
