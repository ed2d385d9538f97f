// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	cartdom "myfootfirst/internal/domain/cart"
	orderdom "myfootfirst/internal/domain/order"
	userdom "myfootfirst/internal/domain/user"
)

var (
	ErrOrderInvalidArgument = errors.New("order_usecase: invalid argument")
	ErrOrderEmptyCart       = errors.New("order_usecase: cart is empty")
	ErrOrderInFlight        = errors.New("order_usecase: commit already in flight")
)

// Mailer is the outbound notification port (SendGrid in production).
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderUsecase turns a paid checkout into persisted order records.
//
// Insole lines and general merchandise lines are written separately:
// insoles append to the insoleOrders array on users/{uid}, general
// lines become one document under usersOrders/{uid}/orders. The cart
// is cleared only when every write succeeded, so a partial failure
// leaves the cart intact for retry.
type OrderUsecase struct {
	orders orderdom.Repository
	carts  cartdom.Repository
	users  userdom.Repository
	mailer Mailer
	from   string
	clock  Clock

	mu       sync.Mutex
	inFlight map[string]bool
}

func NewOrderUsecase(orders orderdom.Repository, carts cartdom.Repository, users userdom.Repository, mailer Mailer, fromAddr string) *OrderUsecase {
	return &OrderUsecase{
		orders:   orders,
		carts:    carts,
		users:    users,
		mailer:   mailer,
		from:     strings.TrimSpace(fromAddr),
		clock:    systemClock{},
		inFlight: make(map[string]bool),
	}
}

// WithClock swaps the time source (tests).
func (uc *OrderUsecase) WithClock(clock Clock) *OrderUsecase {
	if clock != nil {
		uc.clock = clock
	}
	return uc
}

// CommitResult reports what a commit produced.
type CommitResult struct {
	OrderID      string `json:"orderId"`
	InsoleLines  int    `json:"insoleLines"`
	GeneralLines int    `json:"generalLines"`
	CartCleared  bool   `json:"cartCleared"`
}

// Commit records the user's current cart as order records after a
// successful payment. At most one commit per uid runs at a time; a
// second call while the first is writing returns ErrOrderInFlight.
func (uc *OrderUsecase) Commit(ctx context.Context, userID string) (CommitResult, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return CommitResult{}, ErrOrderInvalidArgument
	}

	uc.mu.Lock()
	if uc.inFlight[uid] {
		uc.mu.Unlock()
		log.Printf("[order_uc] WARN: duplicate commit suppressed uid=%s", uid)
		return CommitResult{}, ErrOrderInFlight
	}
	uc.inFlight[uid] = true
	uc.mu.Unlock()
	defer func() {
		uc.mu.Lock()
		delete(uc.inFlight, uid)
		uc.mu.Unlock()
	}()

	c, err := uc.carts.GetByUserID(ctx, uid)
	if err != nil {
		return CommitResult{}, fmt.Errorf("order_usecase: load cart: %w", err)
	}
	if c == nil || len(c.Items) == 0 {
		return CommitResult{}, ErrOrderEmptyCart
	}

	profile, err := uc.users.GetProfile(ctx, uid)
	if err != nil {
		return CommitResult{}, fmt.Errorf("order_usecase: load profile: %w", err)
	}

	addr := userdom.Address{}
	if saved, err := uc.users.GetAddress(ctx, uid); err == nil && saved != nil {
		addr = *saved
	}

	orderID := orderdom.NewOrderID()
	now := uc.clock.Now()
	insoles, general := orderdom.Partition(c.Items)

	res := CommitResult{
		OrderID:      orderID,
		InsoleLines:  len(insoles),
		GeneralLines: len(general),
	}

	// Insole lines first, mirroring the client flow. dateOfOrder here is
	// app time; the general order document gets a server timestamp.
	if len(insoles) > 0 {
		o, err := orderdom.Build(orderID, profile.CustomerName(), insoles, addr, now)
		if err != nil {
			return res, fmt.Errorf("order_usecase: build insole order: %w", err)
		}
		if err := uc.orders.AppendInsole(ctx, uid, o); err != nil {
			return res, fmt.Errorf("order_usecase: append insole order: %w", err)
		}
		log.Printf("[order_uc] insole order recorded uid=%s orderId=%s lines=%d", uid, orderID, len(insoles))
	}

	if len(general) > 0 {
		o, err := orderdom.Build(orderID, profile.CustomerName(), general, addr, now)
		if err != nil {
			return res, fmt.Errorf("order_usecase: build order: %w", err)
		}
		if err := uc.orders.Create(ctx, uid, o); err != nil {
			// Insole lines may already be recorded; keeping the cart lets
			// the customer retry without losing it.
			return res, fmt.Errorf("order_usecase: create order: %w", err)
		}
		log.Printf("[order_uc] order recorded uid=%s orderId=%s lines=%d", uid, orderID, len(general))
	}

	if err := uc.carts.Clear(ctx, uid); err != nil {
		return res, fmt.Errorf("order_usecase: clear cart: %w", err)
	}
	res.CartCleared = true

	uc.sendConfirmation(ctx, profile, orderID)

	return res, nil
}

// ListOrders returns the user's general orders, newest first.
func (uc *OrderUsecase) ListOrders(ctx context.Context, userID string) ([]orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrOrderInvalidArgument
	}
	return uc.orders.ListByUser(ctx, uid)
}

// ListInsoleOrders returns the user's insole orders in append order.
func (uc *OrderUsecase) ListInsoleOrders(ctx context.Context, userID string) ([]orderdom.Order, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrOrderInvalidArgument
	}
	return uc.orders.ListInsole(ctx, uid)
}

// sendConfirmation is best effort: losing the mail never fails the
// commit.
func (uc *OrderUsecase) sendConfirmation(ctx context.Context, profile *userdom.Profile, orderID string) {
	if uc.mailer == nil || uc.from == "" || profile == nil {
		return
	}
	to := strings.TrimSpace(profile.Email)
	if to == "" {
		return
	}

	subject := fmt.Sprintf("Your order %s is confirmed", orderID)
	body := fmt.Sprintf("Hi %s,\n\nThanks for your purchase. Your order %s has been received and is being prepared.\n\nMyFootFirst",
		profile.CustomerName(), orderID)
	if err := uc.mailer.Send(ctx, uc.from, to, subject, body); err != nil {
		log.Printf("[order_uc] WARN: confirmation mail failed orderId=%s err=%v", orderID, err)
	}
}
