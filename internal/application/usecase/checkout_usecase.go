// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	cartdom "myfootfirst/internal/domain/cart"
	userdom "myfootfirst/internal/domain/user"
)

// PaymentSessionClient is the outbound port to the hosted payment page
// provider. It returns the browser URL the customer must be sent to.
type PaymentSessionClient interface {
	CreateSession(ctx context.Context, name string, amount float64) (string, error)
}

var (
	ErrCheckoutInvalidArgument = errors.New("checkout_usecase: invalid argument")
	ErrCheckoutClientMissing   = errors.New("checkout_usecase: payment client is not configured")
	ErrCheckoutAddressMissing  = errors.New("checkout_usecase: shipping address is required")
	ErrCheckoutEmptyCart       = errors.New("checkout_usecase: cart is empty")
	ErrCheckoutUnknownSession  = errors.New("checkout_usecase: unknown session")
)

// Checkout outcomes reported after the hosted page navigates to a
// terminal URL.
const (
	OutcomePaid           = "paid"
	OutcomePaidUnrecorded = "paid_unrecorded"
	OutcomeCanceled       = "canceled"
)

// Session retention. Abandoned sessions (hosted page never reached a
// terminal URL) expire after sessionTTL; settled ones stay briefly so
// redirect-chain repeats of the terminal URL still get the empty
// result, then they are swept too.
const (
	sessionTTL          = 30 * time.Minute
	settledSessionGrace = 5 * time.Minute
)

// CheckoutUsecase orchestrates "cart -> hosted payment page -> order
// commit". The provider redirects the customer's browser on completion;
// the client reports each navigation here and the first terminal URL
// settles the session exactly once.
type CheckoutUsecase struct {
	carts   cartdom.Repository
	users   userdom.Repository
	client  PaymentSessionClient
	orderUC *OrderUsecase
	clock   Clock

	mu       sync.Mutex
	sessions map[string]*checkoutSession
}

type checkoutSession struct {
	userID    string
	createdAt time.Time
	settled   bool
	settledAt time.Time
}

func NewCheckoutUsecase(carts cartdom.Repository, users userdom.Repository, client PaymentSessionClient, orderUC *OrderUsecase) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		users:    users,
		client:   client,
		orderUC:  orderUC,
		clock:    systemClock{},
		sessions: make(map[string]*checkoutSession),
	}
}

// WithClock swaps the time source. Used by tests.
func (uc *CheckoutUsecase) WithClock(clock Clock) *CheckoutUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// InitiateResult carries what the client needs to open the hosted page.
type InitiateResult struct {
	SessionID  string  `json:"sessionId"`
	PaymentURL string  `json:"paymentUrl"`
	Amount     float64 `json:"amount"`
}

// Initiate validates preconditions and opens a payment session.
// A saved shipping address is checked before anything is charged; a
// missing one sends the client to the address form instead.
func (uc *CheckoutUsecase) Initiate(ctx context.Context, userID string) (InitiateResult, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return InitiateResult{}, ErrCheckoutInvalidArgument
	}
	if uc.client == nil {
		return InitiateResult{}, ErrCheckoutClientMissing
	}

	addr, err := uc.users.GetAddress(ctx, uid)
	if err != nil {
		return InitiateResult{}, fmt.Errorf("checkout_usecase: load address: %w", err)
	}
	if addr == nil || addr.Validate() != nil {
		return InitiateResult{}, ErrCheckoutAddressMissing
	}

	c, err := uc.carts.GetByUserID(ctx, uid)
	if err != nil {
		return InitiateResult{}, fmt.Errorf("checkout_usecase: load cart: %w", err)
	}
	if c == nil || len(c.Items) == 0 {
		return InitiateResult{}, ErrCheckoutEmptyCart
	}

	amount := c.Total()
	name := checkoutItemName(c.Items)

	paymentURL, err := uc.client.CreateSession(ctx, name, amount)
	if err != nil {
		return InitiateResult{}, fmt.Errorf("checkout_usecase: create session: %w", err)
	}

	sessionID := uuid.NewString()
	uc.mu.Lock()
	uc.pruneSessionsLocked()
	uc.sessions[sessionID] = &checkoutSession{userID: uid, createdAt: uc.clock.Now()}
	uc.mu.Unlock()

	log.Printf("[checkout_uc] session opened uid=%s sessionId=%s amount=%.2f", uid, sessionID, amount)

	return InitiateResult{
		SessionID:  sessionID,
		PaymentURL: paymentURL,
		Amount:     amount,
	}, nil
}

// NavigationResult is the settled state after a reported navigation.
// Outcome is empty while the hosted page is still mid-flow.
type NavigationResult struct {
	Outcome string `json:"outcome,omitempty"`
	OrderID string `json:"orderId,omitempty"`
}

// ObserveNavigation classifies a URL the hosted page navigated to.
// The first success URL commits the order; repeats of either terminal
// URL (redirect chains re-fire navigations) are ignored. The session
// must belong to userID; anyone else gets the unknown-session error.
func (uc *CheckoutUsecase) ObserveNavigation(ctx context.Context, userID, sessionID, rawURL string) (NavigationResult, error) {
	uid := strings.TrimSpace(userID)
	sid := strings.TrimSpace(sessionID)
	if uid == "" || sid == "" || strings.TrimSpace(rawURL) == "" {
		return NavigationResult{}, ErrCheckoutInvalidArgument
	}

	success, canceled := classifyNavigation(rawURL)
	if !success && !canceled {
		return NavigationResult{}, nil
	}

	uc.mu.Lock()
	uc.pruneSessionsLocked()
	sess, ok := uc.sessions[sid]
	if !ok || sess.userID != uid {
		uc.mu.Unlock()
		return NavigationResult{}, ErrCheckoutUnknownSession
	}
	if sess.settled {
		uc.mu.Unlock()
		return NavigationResult{}, nil
	}
	sess.settled = true
	sess.settledAt = uc.clock.Now()
	uc.mu.Unlock()

	if canceled {
		log.Printf("[checkout_uc] canceled uid=%s sessionId=%s", uid, sid)
		return NavigationResult{Outcome: OutcomeCanceled}, nil
	}

	res, err := uc.orderUC.Commit(ctx, uid)
	if err != nil {
		// Payment went through but recording failed. The cart is kept so
		// support or a retry can reconstruct the order.
		log.Printf("[checkout_uc] WARN: paid but order not recorded uid=%s sessionId=%s err=%v", uid, sid, err)
		return NavigationResult{Outcome: OutcomePaidUnrecorded}, nil
	}

	log.Printf("[checkout_uc] paid uid=%s sessionId=%s orderId=%s", uid, sid, res.OrderID)
	return NavigationResult{Outcome: OutcomePaid, OrderID: res.OrderID}, nil
}

// pruneSessionsLocked drops expired sessions so the map cannot grow for
// the life of the process. Caller holds uc.mu.
func (uc *CheckoutUsecase) pruneSessionsLocked() {
	now := uc.clock.Now()
	for sid, sess := range uc.sessions {
		if sess.settled {
			if now.Sub(sess.settledAt) > settledSessionGrace {
				delete(uc.sessions, sid)
			}
			continue
		}
		if now.Sub(sess.createdAt) > sessionTTL {
			log.Printf("[checkout_uc] session expired uid=%s sessionId=%s", sess.userID, sid)
			delete(uc.sessions, sid)
		}
	}
}

// classifyNavigation recognizes the provider's terminal URLs: a path
// containing /success or ?success=true means paid, /cancel or
// ?canceled=true means abandoned.
func classifyNavigation(rawURL string) (success, canceled bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, false
	}

	path := strings.ToLower(u.Path)
	q := u.Query()

	if strings.Contains(path, "/success") || q.Get("success") == "true" {
		return true, false
	}
	if strings.Contains(path, "/cancel") || q.Get("canceled") == "true" {
		return false, true
	}
	return false, false
}

// checkoutItemName labels the charge on the provider side: the first
// line's title, with "+N more" when the cart holds several.
func checkoutItemName(items []cartdom.Line) string {
	if len(items) == 0 {
		return "Order"
	}
	if len(items) == 1 {
		return items[0].Title
	}
	return fmt.Sprintf("%s +%d more", items[0].Title, len(items)-1)
}
