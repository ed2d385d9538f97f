// internal/adapters/out/firestore/helper_repository_fs.go
package firestore

import (
	"fmt"
	"strings"
	"time"

	cartdom "myfootfirst/internal/domain/cart"
	orderdom "myfootfirst/internal/domain/order"
	userdom "myfootfirst/internal/domain/user"
)

// The user document accumulated schema drift over app versions (numbers
// stored as strings, missing fields, legacy key spellings), so array
// fields are hand-parsed instead of decoded via DataTo.

func asString(v any) string {
	if v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return fmt.Sprint(v)
	}
}

func asInt(v any) int {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return int(t)
	case float64:
		return int(t)
	case string:
		tt := strings.TrimSpace(t)
		if tt == "" {
			return 0
		}
		var n int
		_, _ = fmt.Sscanf(tt, "%d", &n)
		return n
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	if v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		tt := strings.TrimSpace(t)
		if tt == "" {
			return 0
		}
		var f float64
		_, _ = fmt.Sscanf(tt, "%f", &f)
		return f
	default:
		return 0
	}
}

// asTime returns (time, ok)
func asTime(v any) (time.Time, bool) {
	if v == nil {
		return time.Time{}, false
	}
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}

func lineFromMap(m map[string]any) cartdom.Line {
	return cartdom.Line{
		ID:                   asString(m["id"]),
		Title:                asString(m["title"]),
		Price:                asFloat(m["price"]),
		NewPrice:             asString(m["newPrice"]),
		PriceValue:           asFloat(m["priceValue"]),
		Quantity:             asInt(m["quantity"]),
		Image:                asString(m["image"]),
		Size:                 asString(m["size"]),
		Color:                asString(m["color"]),
		DiscountedPrice:      asString(m["discountedPrice"]),
		DiscountedPriceValue: asFloat(m["discountedPriceValue"]),
	}
}

// linesFromAny parses the cart array field. Non-map entries are dropped.
func linesFromAny(v any) []cartdom.Line {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]cartdom.Line, 0, len(arr))
	for _, e := range arr {
		if m := asMap(e); m != nil {
			out = append(out, lineFromMap(m))
		}
	}
	return out
}

func addressFromMap(m map[string]any) userdom.Address {
	return userdom.Address{
		Line1:       asString(m["line1"]),
		Line2:       asString(m["line2"]),
		City:        asString(m["city"]),
		Country:     asString(m["country"]),
		PinCode:     asString(m["pinCode"]),
		PhoneNumber: asString(m["phoneNumber"]),
	}
}

func orderProductFromMap(m map[string]any) orderdom.Product {
	return orderdom.Product{
		ID:              asString(m["id"]),
		Title:           asString(m["title"]),
		Color:           asString(m["color"]),
		Price:           asFloat(m["price"]),
		PriceWithSymbol: asString(m["priceWithSymbol"]),
		Quantity:        asInt(m["quantity"]),
		Image:           asString(m["image"]),
		TotalPrice:      asFloat(m["totalPrice"]),
	}
}

func orderFromMap(m map[string]any) orderdom.Order {
	o := orderdom.Order{
		OrderID:      asString(m["orderId"]),
		CustomerName: asString(m["customerName"]),
		TotalAmount:  asFloat(m["totalAmount"]),
		OrderStatus:  asString(m["orderStatus"]),
	}
	if t, ok := asTime(m["dateOfOrder"]); ok {
		o.DateOfOrder = t
	}
	if arr, ok := m["products"].([]any); ok {
		for _, e := range arr {
			if pm := asMap(e); pm != nil {
				o.Products = append(o.Products, orderProductFromMap(pm))
			}
		}
	}
	if am := asMap(m["shippingAddress"]); am != nil {
		o.ShippingAddress = addressFromMap(am)
	}
	return o
}

// ordersFromAny parses the insoleOrders array field.
func ordersFromAny(v any) []orderdom.Order {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]orderdom.Order, 0, len(arr))
	for _, e := range arr {
		if m := asMap(e); m != nil {
			out = append(out, orderFromMap(m))
		}
	}
	return out
}
