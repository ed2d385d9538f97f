// internal/adapters/in/http/shop/handler/order_handler.go
package shopHandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"myfootfirst/internal/adapters/in/http/middleware"
	usecase "myfootfirst/internal/application/usecase"
	orderdom "myfootfirst/internal/domain/order"
)

// OrderHandler serves order history:
//
//   - GET /shop/me/orders          general orders, newest first
//   - GET /shop/me/orders/insoles  insole orders, append order
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

type orderResponse struct {
	OrderID         string            `json:"orderId"`
	CustomerName    string            `json:"customerName"`
	DateOfOrder     string            `json:"dateOfOrder"`
	Products        []orderdom.Product `json:"products"`
	TotalAmount     float64           `json:"totalAmount"`
	OrderStatus     string            `json:"orderStatus"`
	ShippingAddress any               `json:"shippingAddress"`
}

func ordersToResponse(orders []orderdom.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		products := o.Products
		if products == nil {
			products = []orderdom.Product{}
		}
		out = append(out, orderResponse{
			OrderID:         o.OrderID,
			CustomerName:    o.CustomerName,
			DateOfOrder:     toRFC3339(o.DateOfOrder),
			Products:        products,
			TotalAmount:     o.TotalAmount,
			OrderStatus:     o.OrderStatus,
			ShippingAddress: o.ShippingAddress,
		})
	}
	return out
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	log.Printf("[shop_order_handler] enter method=%s path=%q uid=%s", r.Method, path, maskUID(uid))

	if h.uc == nil {
		internalError(w, "order handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	var (
		orders []orderdom.Order
		err    error
	)
	if strings.HasSuffix(path, "/orders/insoles") {
		orders, err = h.uc.ListInsoleOrders(r.Context(), uid)
	} else {
		orders, err = h.uc.ListOrders(r.Context(), uid)
	}
	if err != nil {
		log.Printf("[shop_order_handler] exit status=500 err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to load orders")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": ordersToResponse(orders)})
}
