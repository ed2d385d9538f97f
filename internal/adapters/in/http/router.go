// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"

	"myfootfirst/internal/adapters/in/http/middleware"
	"myfootfirst/internal/adapters/in/http/shop"
	shopHandler "myfootfirst/internal/adapters/in/http/shop/handler"
	usecase "myfootfirst/internal/application/usecase"
)

// RouterDeps collects the usecases (and auth client) injected from DI.
type RouterDeps struct {
	CartUC       *usecase.CartUsecase
	CartMirror   *usecase.CartMirror
	CheckoutUC   *usecase.CheckoutUsecase
	OrderUC      *usecase.OrderUsecase
	UserUC       *usecase.UserUsecase
	CatalogUC    *usecase.CatalogUsecase
	AssessmentUC *usecase.AssessmentUsecase

	FirebaseAuth *middleware.FirebaseAuthClient
}

// NewRouter sets up HTTP routing for all shopper endpoints.
// Chain order: CORS (outermost, so even panics answer preflight) ->
// Recover -> auth -> mux.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on, outside auth)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	shopMux := http.NewServeMux()
	shop.Register(shopMux, shop.Deps{
		Cart:       shopHandler.NewCartHandler(deps.CartUC, deps.CartMirror),
		Checkout:   shopHandler.NewCheckoutHandler(deps.CheckoutUC),
		Order:      shopHandler.NewOrderHandler(deps.OrderUC),
		User:       shopHandler.NewUserHandler(deps.UserUC),
		Catalog:    shopHandler.NewCatalogHandler(deps.CatalogUC),
		Assessment: shopHandler.NewAssessmentHandler(deps.AssessmentUC),
	})

	userAuth := &middleware.UserAuthMiddleware{FirebaseAuth: deps.FirebaseAuth}
	mux.Handle("/shop/", userAuth.Handler(shopMux))

	return middleware.CORS(middleware.Recover(mux))
}
