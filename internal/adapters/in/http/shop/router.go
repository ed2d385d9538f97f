// internal/adapters/in/http/shop/router.go
package shop

import (
	"log"
	"net/http"
)

// Deps is the shopper-facing handler set.
type Deps struct {
	Cart       http.Handler
	Checkout   http.Handler
	Order      http.Handler
	User       http.Handler
	Catalog    http.Handler
	Assessment http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so Cloud Run won't crash).
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[shop.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers shopper-facing routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// cart
	handleSafe(mux, "/shop/me/cart", deps.Cart, "Cart")
	handleSafe(mux, "/shop/me/cart/", deps.Cart, "Cart")

	// checkout
	handleSafe(mux, "/shop/checkout", deps.Checkout, "Checkout")
	handleSafe(mux, "/shop/checkout/", deps.Checkout, "Checkout")

	// orders
	handleSafe(mux, "/shop/me/orders", deps.Order, "Order")
	handleSafe(mux, "/shop/me/orders/", deps.Order, "Order")

	// profile / address / onboarding steps
	handleSafe(mux, "/shop/me/profile", deps.User, "User(profile)")
	handleSafe(mux, "/shop/me/address", deps.User, "User(address)")
	handleSafe(mux, "/shop/me/steps", deps.User, "User(steps)")

	// catalog
	handleSafe(mux, "/shop/products", deps.Catalog, "Catalog")

	// insole questionnaire
	handleSafe(mux, "/shop/assessment", deps.Assessment, "Assessment")
}
