// internal/adapters/in/http/shop/handler/checkout_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"myfootfirst/internal/adapters/in/http/middleware"
	usecase "myfootfirst/internal/application/usecase"
)

// CheckoutHandler serves the payment flow:
//
//   - POST /shop/checkout         open a hosted payment session
//   - POST /shop/checkout/events  report a hosted-page navigation
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := strings.TrimRight(r.URL.Path, "/")

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}

	log.Printf("[shop_checkout_handler] enter method=%s path=%q uid=%s", r.Method, path, maskUID(uid))

	if h.uc == nil {
		internalError(w, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	switch {
	case strings.HasSuffix(path, "/checkout/events"):
		h.handleEvent(w, r, uid, start)
	case strings.HasSuffix(path, "/checkout"):
		h.handleInitiate(w, r, uid, start)
	default:
		methodNotAllowed(w)
	}
}

func (h *CheckoutHandler) handleInitiate(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	res, err := h.uc.Initiate(r.Context(), uid)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCheckoutAddressMissing):
			// the client routes to the address form on this error code
			writeJSON(w, http.StatusConflict, map[string]string{"error": "address_required"})
		case errors.Is(err, usecase.ErrCheckoutEmptyCart):
			badRequest(w, "cart is empty")
		default:
			log.Printf("[shop_checkout_handler] exit status=500 op=initiate err=%v elapsed=%s", err, time.Since(start))
			internalError(w, "failed to start checkout")
		}
		return
	}

	log.Printf("[shop_checkout_handler] session opened uid=%s sessionId=%s elapsed=%s", maskUID(uid), res.SessionID, time.Since(start))
	writeJSON(w, http.StatusOK, res)
}

type checkoutEventRequest struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

func (h *CheckoutHandler) handleEvent(w http.ResponseWriter, r *http.Request, uid string, start time.Time) {
	var req checkoutEventRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	res, err := h.uc.ObserveNavigation(r.Context(), uid, req.SessionID, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCheckoutUnknownSession):
			writeErr(w, http.StatusNotFound, "unknown session")
		case errors.Is(err, usecase.ErrCheckoutInvalidArgument):
			badRequest(w, "sessionId and url are required")
		default:
			log.Printf("[shop_checkout_handler] exit status=500 op=event err=%v elapsed=%s", err, time.Since(start))
			internalError(w, "failed to process checkout event")
		}
		return
	}

	if res.Outcome != "" {
		log.Printf("[shop_checkout_handler] settled uid=%s outcome=%s orderId=%s elapsed=%s",
			maskUID(uid), res.Outcome, res.OrderID, time.Since(start))
	}
	writeJSON(w, http.StatusOK, res)
}
