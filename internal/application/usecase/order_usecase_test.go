// internal/application/usecase/order_usecase_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userdom "myfootfirst/internal/domain/user"
)

func newOrderFixture() (*OrderUsecase, *fakeOrderRepo, *fakeCartRepo, *fakeUserRepo, *fakeMailer) {
	orders := newFakeOrderRepo()
	carts := newFakeCartRepo()
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	uc := NewOrderUsecase(orders, carts, users, mailer, "orders@myfootfirst.com").
		WithClock(fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
	return uc, orders, carts, users, mailer
}

func TestOrderCommitPartitionsAndClears(t *testing.T) {
	uc, orders, carts, users, mailer := newOrderFixture()
	ctx := context.Background()

	carts.seed("u1", testLines())
	users.profiles["u1"] = &userdom.Profile{ID: "u1", FirstName: "Ada", Email: "ada@example.com"}
	users.addresses["u1"] = &userdom.Address{Line1: "1 Main St", City: "Cork", Country: "Ireland", PinCode: "T12", PhoneNumber: "+353"}

	res, err := uc.Commit(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, res.OrderID, 8)
	assert.Equal(t, 1, res.InsoleLines)
	assert.Equal(t, 1, res.GeneralLines)
	assert.True(t, res.CartCleared)

	require.Len(t, orders.insoles["u1"], 1)
	require.Len(t, orders.orders["u1"], 1)

	ins := orders.insoles["u1"][0]
	gen := orders.orders["u1"][0]
	assert.Equal(t, res.OrderID, ins.OrderID)
	assert.Equal(t, res.OrderID, gen.OrderID)
	assert.Equal(t, "Ada", gen.CustomerName)
	assert.Equal(t, "pending", gen.OrderStatus)
	assert.Equal(t, "insole-sport", ins.Products[0].ID)
	assert.Equal(t, "shoe-1", gen.Products[0].ID)
	assert.InDelta(t, 88.0, gen.TotalAmount, 0.001)
	assert.InDelta(t, 88.0, ins.TotalAmount, 0.001)
	assert.Equal(t, "Cork", gen.ShippingAddress.City)

	c, err := carts.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	assert.Equal(t, []string{"ada@example.com"}, mailer.sent)
}

func TestOrderCommitEmptyCart(t *testing.T) {
	uc, _, _, _, _ := newOrderFixture()

	_, err := uc.Commit(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrOrderEmptyCart)
}

func TestOrderCommitRequiresUID(t *testing.T) {
	uc, _, _, _, _ := newOrderFixture()

	_, err := uc.Commit(context.Background(), " ")
	assert.ErrorIs(t, err, ErrOrderInvalidArgument)
}

func TestOrderCommitPartialFailureKeepsCart(t *testing.T) {
	uc, orders, carts, users, _ := newOrderFixture()
	ctx := context.Background()

	carts.seed("u1", testLines())
	users.profiles["u1"] = &userdom.Profile{ID: "u1", FirstName: "Ada"}
	orders.createErr = errors.New("firestore: unavailable")

	res, err := uc.Commit(ctx, "u1")
	require.Error(t, err)
	assert.False(t, res.CartCleared)

	// insole half went through, general half did not, cart survives
	assert.Len(t, orders.insoles["u1"], 1)
	assert.Empty(t, orders.orders["u1"])
	c, err := carts.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestOrderCommitAnonymousWithoutProfile(t *testing.T) {
	uc, orders, carts, _, mailer := newOrderFixture()
	ctx := context.Background()

	carts.seed("u1", testLines()[:1])

	res, err := uc.Commit(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, res.InsoleLines)
	assert.Equal(t, "Anonymous", orders.orders["u1"][0].CustomerName)
	// no email on file: no mail attempted
	assert.Zero(t, mailer.calls)
}

func TestOrderCommitMailFailureIsBestEffort(t *testing.T) {
	uc, _, carts, users, mailer := newOrderFixture()
	ctx := context.Background()

	carts.seed("u1", testLines()[:1])
	users.profiles["u1"] = &userdom.Profile{ID: "u1", Email: "x@example.com"}
	mailer.fail = true

	res, err := uc.Commit(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, res.CartCleared)
	assert.Equal(t, 1, mailer.calls)
}

func TestOrderCommitInFlightGuard(t *testing.T) {
	uc, _, carts, _, _ := newOrderFixture()
	carts.seed("u1", testLines()[:1])

	uc.mu.Lock()
	uc.inFlight["u1"] = true
	uc.mu.Unlock()

	_, err := uc.Commit(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrOrderInFlight)
}

func TestOrderListOrdersNewestFirst(t *testing.T) {
	uc, _, carts, _, _ := newOrderFixture()
	ctx := context.Background()

	carts.seed("u1", testLines()[:1])
	first, err := uc.Commit(ctx, "u1")
	require.NoError(t, err)

	carts.seed("u1", testLines()[:1])
	second, err := uc.Commit(ctx, "u1")
	require.NoError(t, err)

	got, err := uc.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.OrderID, got[0].OrderID)
	assert.Equal(t, first.OrderID, got[1].OrderID)
}
