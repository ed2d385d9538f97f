// internal/adapters/in/http/shop/handler/cart_handler.go
package shopHandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"myfootfirst/internal/adapters/in/http/middleware"
	usecase "myfootfirst/internal/application/usecase"
	cartdom "myfootfirst/internal/domain/cart"
)

// CartHandler serves the shopper's cart endpoints:
//
//   - GET    /shop/me/cart          current cart
//   - DELETE /shop/me/cart          clear
//   - POST   /shop/me/cart/items    add line (merge by id)
//   - PUT    /shop/me/cart/items    set quantity
//   - DELETE /shop/me/cart/items    remove line
//   - GET    /shop/me/cart/stream   SSE stream of cart changes
type CartHandler struct {
	uc     *usecase.CartUsecase
	mirror *usecase.CartMirror
}

func NewCartHandler(uc *usecase.CartUsecase, mirror *usecase.CartMirror) http.Handler {
	return &CartHandler{uc: uc, mirror: mirror}
}

type cartResponse struct {
	UserID string        `json:"userId"`
	Items  []cartdom.Line `json:"items"`
	Total  float64       `json:"total"`
	Count  int           `json:"count"`
}

func cartToResponse(c *cartdom.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []cartdom.Line{}
	}
	return cartResponse{
		UserID: c.UserID,
		Items:  items,
		Total:  c.Total(),
		Count:  c.Count(),
	}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	log.Printf("[shop_cart_handler] enter method=%s path=%q uid=%s", r.Method, path, maskUID(uid))

	if h.uc == nil {
		log.Printf("[shop_cart_handler] exit status=500 reason=uc is nil elapsed=%s", time.Since(start))
		internalError(w, "cart handler is not configured")
		return
	}

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/cart/stream"):
		h.handleStream(w, r, uid)
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/cart"):
		h.handleGet(w, r, uid, start)
	case r.Method == http.MethodDelete && strings.HasSuffix(path, "/cart"):
		h.handleClear(w, r, uid, start)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/cart/items"):
		h.handleAddItem(w, r, uid, start)
	case r.Method == http.MethodPut && strings.HasSuffix(path, "/cart/items"):
		h.handleSetQty(w, r, uid, start)
	case r.Method == http.MethodDelete && strings.HasSuffix(path, "/cart/items"):
		h.handleRemove(w, r, uid, start)
	default:
		methodNotAllowed(w)
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	c, err := h.uc.Get(r.Context(), uid)
	if err != nil {
		log.Printf("[shop_cart_handler] exit status=500 op=get err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, cartToResponse(c))
}

type addItemRequest struct {
	ID                   string  `json:"id"`
	Title                string  `json:"title"`
	Price                float64 `json:"price"`
	NewPrice             string  `json:"newPrice"`
	PriceValue           float64 `json:"priceValue"`
	Image                string  `json:"image"`
	Size                 string  `json:"size"`
	Color                string  `json:"color"`
	DiscountedPrice      string  `json:"discountedPrice"`
	DiscountedPriceValue float64 `json:"discountedPriceValue"`
	Quantity             int     `json:"quantity"`
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var req addItemRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}

	c, err := h.uc.AddItem(r.Context(), uid, cartdom.LineInput{
		ID:                   req.ID,
		Title:                req.Title,
		Price:                req.Price,
		NewPrice:             req.NewPrice,
		PriceValue:           req.PriceValue,
		Image:                req.Image,
		Size:                 req.Size,
		Color:                req.Color,
		DiscountedPrice:      req.DiscountedPrice,
		DiscountedPriceValue: req.DiscountedPriceValue,
	}, qty)
	if err != nil {
		if isCartBadInput(err) {
			badRequest(w, err.Error())
			return
		}
		log.Printf("[shop_cart_handler] exit status=500 op=add err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to add item")
		return
	}

	log.Printf("[shop_cart_handler] item added uid=%s id=%s qty=%d elapsed=%s", maskUID(uid), req.ID, qty, time.Since(start))
	writeJSON(w, http.StatusOK, cartToResponse(c))
}

type setQtyRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

func (h *CartHandler) handleSetQty(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var req setQtyRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		badRequest(w, "id is required")
		return
	}

	c, err := h.uc.SetItemQty(r.Context(), uid, req.ID, req.Quantity)
	if err != nil {
		log.Printf("[shop_cart_handler] exit status=500 op=setqty err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to update quantity")
		return
	}
	writeJSON(w, http.StatusOK, cartToResponse(c))
}

func (h *CartHandler) handleRemove(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		var req struct {
			ID string `json:"id"`
		}
		if err := readJSON(r, &req); err == nil {
			id = strings.TrimSpace(req.ID)
		}
	}
	if id == "" {
		badRequest(w, "id is required")
		return
	}

	c, err := h.uc.RemoveItem(r.Context(), uid, id)
	if err != nil {
		log.Printf("[shop_cart_handler] exit status=500 op=remove err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to remove item")
		return
	}
	writeJSON(w, http.StatusOK, cartToResponse(c))
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	if err := h.uc.Clear(r.Context(), uid); err != nil {
		log.Printf("[shop_cart_handler] exit status=500 op=clear err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to clear cart")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

// handleStream pushes cart snapshots over SSE, fed by the document
// watcher. The connection ends when the client goes away.
func (h *CartHandler) handleStream(w http.ResponseWriter, r *http.Request, uid string) {
	if h.mirror == nil {
		internalError(w, "cart stream is not configured")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		internalError(w, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// The server's WriteTimeout is an absolute per-request deadline and
	// would cut a long-lived stream; lift it for this connection.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		log.Printf("[shop_cart_handler] WARN: clear write deadline uid=%s err=%v", maskUID(uid), err)
	}

	events := make(chan []cartdom.Line, 8)
	unsub, err := h.mirror.Subscribe(uid, func(items []cartdom.Line) {
		select {
		case events <- items:
		default: // drop when the client reads too slowly; next snapshot wins
		}
	})
	if err != nil {
		internalError(w, "failed to open cart stream")
		return
	}
	defer unsub()

	log.Printf("[shop_cart_handler] stream opened uid=%s", maskUID(uid))

	heartbeat := time.NewTicker(25 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Printf("[shop_cart_handler] stream closed uid=%s", maskUID(uid))
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case items := <-events:
			payload, err := json.Marshal(map[string]any{
				"items": items,
				"total": cartdom.TotalOf(items),
				"count": cartdom.CountOf(items),
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: cart\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func isCartBadInput(err error) bool {
	return errors.Is(err, cartdom.ErrLineMissingID) ||
		errors.Is(err, cartdom.ErrLineMissingTitle) ||
		errors.Is(err, cartdom.ErrLineInvalidPrice) ||
		errors.Is(err, cartdom.ErrLineInvalidPriceValue) ||
		errors.Is(err, cartdom.ErrLineInvalidQuantity) ||
		errors.Is(err, usecase.ErrCartInvalidArgument)
}
