// internal/adapters/in/http/shop/handler/catalog_handler.go
package shopHandler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"myfootfirst/internal/adapters/in/http/middleware"
	usecase "myfootfirst/internal/application/usecase"
	currencydom "myfootfirst/internal/domain/currency"
)

// CatalogHandler serves /shop/products?category=X: the category's
// products with display prices in the caller's currency.
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) http.Handler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	uid, ok := middleware.CurrentUserUID(r)
	if !ok {
		unauthorized(w)
		return
	}
	if h.uc == nil {
		internalError(w, "catalog handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	log.Printf("[shop_catalog_handler] enter uid=%s category=%q", maskUID(uid), category)

	products, err := h.uc.ListByCategory(r.Context(), uid, category)
	if err != nil {
		if errors.Is(err, usecase.ErrCatalogInvalidArgument) {
			badRequest(w, "category is required")
			return
		}
		log.Printf("[shop_catalog_handler] exit status=500 err=%v elapsed=%s", err, time.Since(start))
		internalError(w, "failed to load products")
		return
	}

	currency := currencydom.Default.Code
	if len(products) > 0 {
		currency = products[0].Currency
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"currency": currency,
		"products": products,
	})
}
