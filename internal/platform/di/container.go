// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"log"
	"net/http"

	httpin "myfootfirst/internal/adapters/in/http"
	fsrepo "myfootfirst/internal/adapters/out/firestore"
	httpout "myfootfirst/internal/adapters/out/http"
	mailout "myfootfirst/internal/adapters/out/mail"
	usecase "myfootfirst/internal/application/usecase"
)

// Container wires repositories, outbound clients and usecases into the
// HTTP router. One container per process.
type Container struct {
	infra *Infra

	CartUC       *usecase.CartUsecase
	CartMirror   *usecase.CartMirror
	CheckoutUC   *usecase.CheckoutUsecase
	OrderUC      *usecase.OrderUsecase
	UserUC       *usecase.UserUsecase
	CatalogUC    *usecase.CatalogUsecase
	AssessmentUC *usecase.AssessmentUsecase

	Router http.Handler
}

// NewContainer builds the full dependency graph on top of infra.
func NewContainer(_ context.Context, infra *Infra) (*Container, error) {
	if infra == nil {
		return nil, errors.New("di.container: infra is nil")
	}
	fsClient := infra.FirestoreClient()
	if fsClient == nil {
		return nil, errors.New("di.container: firestore client is nil")
	}

	// out adapters
	cartRepo := fsrepo.NewCartRepositoryFS(fsClient)
	cartWatcher := fsrepo.NewCartWatcherFS(fsClient)
	userRepo := fsrepo.NewUserRepositoryFS(fsClient)
	orderRepo := fsrepo.NewOrderRepositoryFS(fsClient)
	productRepo := fsrepo.NewProductRepositoryFS(fsClient)

	currencyClient := httpout.NewCurrencyClient()
	paymentClient := httpout.NewPaymentSessionClient(infra.PaymentBaseURL)

	var mailer usecase.Mailer
	if infra.SendGridAPIKey != "" {
		mailer = mailout.NewSendGridClient(infra.SendGridAPIKey)
	} else {
		log.Printf("[di.container] mailer not configured (no SendGrid key)")
	}

	// usecases
	cartUC := usecase.NewCartUsecase(cartRepo)
	mirror := usecase.NewCartMirror(cartWatcher)
	orderUC := usecase.NewOrderUsecase(orderRepo, cartRepo, userRepo, mailer, infra.SendGridFrom)
	checkoutUC := usecase.NewCheckoutUsecase(cartRepo, userRepo, paymentClient, orderUC)
	userUC := usecase.NewUserUsecase(userRepo)
	catalogUC := usecase.NewCatalogUsecase(productRepo, userRepo, currencyClient)
	assessmentUC := usecase.NewAssessmentUsecase(userRepo)

	cont := &Container{
		infra:        infra,
		CartUC:       cartUC,
		CartMirror:   mirror,
		CheckoutUC:   checkoutUC,
		OrderUC:      orderUC,
		UserUC:       userUC,
		CatalogUC:    catalogUC,
		AssessmentUC: assessmentUC,
	}

	cont.Router = httpin.NewRouter(httpin.RouterDeps{
		CartUC:       cartUC,
		CartMirror:   mirror,
		CheckoutUC:   checkoutUC,
		OrderUC:      orderUC,
		UserUC:       userUC,
		CatalogUC:    catalogUC,
		AssessmentUC: assessmentUC,
		FirebaseAuth: infra.FirebaseAuth,
	})

	log.Printf("[di.container] container built (mailer=%t payment=%t)", mailer != nil, infra.PaymentBaseURL != "")
	return cont, nil
}

// Close stops background work owned by the container (cart watches).
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.CartMirror != nil {
		c.CartMirror.Close()
	}
	return nil
}
