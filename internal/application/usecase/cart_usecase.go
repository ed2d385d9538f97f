// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	cartdom "myfootfirst/internal/domain/cart"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
)

// Clock provides current time (for testability).
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// CartUsecase coordinates cart operations against the users/{uid}
// cart field. All mutations go through repo.Mutate so concurrent
// writers see read-transform-write atomicity.
type CartUsecase struct {
	repo  cartdom.Repository
	clock Clock
}

func NewCartUsecase(repo cartdom.Repository) *CartUsecase {
	return &CartUsecase{
		repo:  repo,
		clock: systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(repo cartdom.Repository, clock Clock) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	return &CartUsecase{repo: repo, clock: clock}
}

// Get returns the cart for uid. An absent cart reads as empty: the
// client renders an empty cart either way, so absence is not an error.
func (uc *CartUsecase) Get(ctx context.Context, userID string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	c, err := uc.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return cartdom.NewCart(uid, nil)
	}
	return c, nil
}

// AddItem merges a validated line into the cart. qty must be >= 1.
// Lines sharing an id collapse into one regardless of size/color.
func (uc *CartUsecase) AddItem(ctx context.Context, userID string, in cartdom.LineInput, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, ErrCartInvalidArgument
	}

	line, err := cartdom.NewLine(in, qty)
	if err != nil {
		return nil, err
	}

	return uc.repo.Mutate(ctx, uid, func(c *cartdom.Cart) error {
		return c.Add(line)
	})
}

// SetItemQty sets the quantity of the line with id. qty < 1 is a
// no-op; decrementing below one goes through RemoveItem instead.
func (uc *CartUsecase) SetItemQty(ctx context.Context, userID, id string, qty int) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(id)
	if uid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	return uc.repo.Mutate(ctx, uid, func(c *cartdom.Cart) error {
		return c.SetQuantity(pid, qty)
	})
}

// RemoveItem removes the line with id. A missing id is a no-op.
func (uc *CartUsecase) RemoveItem(ctx context.Context, userID, id string) (*cartdom.Cart, error) {
	uid := strings.TrimSpace(userID)
	pid := strings.TrimSpace(id)
	if uid == "" || pid == "" {
		return nil, ErrCartInvalidArgument
	}

	return uc.repo.Mutate(ctx, uid, func(c *cartdom.Cart) error {
		return c.Remove(pid)
	})
}

// Clear empties the cart field.
func (uc *CartUsecase) Clear(ctx context.Context, userID string) error {
	uid := strings.TrimSpace(userID)
	if uid == "" {
		return ErrCartInvalidArgument
	}
	return uc.repo.Clear(ctx, uid)
}
