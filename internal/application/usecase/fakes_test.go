// internal/application/usecase/fakes_test.go
package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	cartdom "myfootfirst/internal/domain/cart"
	orderdom "myfootfirst/internal/domain/order"
	userdom "myfootfirst/internal/domain/user"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// steppingClock is a fixedClock the test can move forward.
type steppingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *steppingClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fakeCartRepo keeps carts in a map and applies Mutate under a lock.
type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*cartdom.Cart

	getErr   error
	saveErr  error
	clearErr error

	clears int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*cartdom.Cart)}
}

func (r *fakeCartRepo) GetByUserID(_ context.Context, uid string) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.carts[uid]
	if !ok {
		return nil, nil
	}
	copied, err := cartdom.NewCart(c.UserID, c.Items)
	if err != nil {
		return nil, err
	}
	return copied, nil
}

func (r *fakeCartRepo) Save(_ context.Context, c *cartdom.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.carts[c.UserID] = c
	return nil
}

func (r *fakeCartRepo) Mutate(ctx context.Context, uid string, mutate func(c *cartdom.Cart) error) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.carts[uid]
	if !ok {
		var err error
		c, err = cartdom.NewCart(uid, nil)
		if err != nil {
			return nil, err
		}
	}
	if err := mutate(c); err != nil {
		return nil, err
	}
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	r.carts[uid] = c
	return c, nil
}

func (r *fakeCartRepo) Clear(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clearErr != nil {
		return r.clearErr
	}
	r.clears++
	if c, ok := r.carts[uid]; ok {
		c.Clear()
	}
	return nil
}

func (r *fakeCartRepo) seed(uid string, items []cartdom.Line) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, _ := cartdom.NewCart(uid, items)
	r.carts[uid] = c
}

// fakeUserRepo holds one profile/address per uid.
type fakeUserRepo struct {
	mu        sync.Mutex
	profiles  map[string]*userdom.Profile
	addresses map[string]*userdom.Address
	answers   map[string]userdom.InsoleAnswers
	steps     map[string]int

	getErr    error
	answerErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		profiles:  make(map[string]*userdom.Profile),
		addresses: make(map[string]*userdom.Address),
		answers:   make(map[string]userdom.InsoleAnswers),
		steps:     make(map[string]int),
	}
}

func (r *fakeUserRepo) GetProfile(_ context.Context, uid string) (*userdom.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.profiles[uid], nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, uid string, patch userdom.ProfilePatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.profiles[uid]
	if p == nil {
		p = &userdom.Profile{ID: uid}
		r.profiles[uid] = p
	}
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.Surname != nil {
		p.Surname = *patch.Surname
	}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Gender != nil {
		p.Gender = *patch.Gender
	}
	if patch.Country != nil {
		p.Country = *patch.Country
	}
	if patch.Phone != nil {
		p.Phone = *patch.Phone
	}
	if patch.DOB != nil {
		p.DOB = *patch.DOB
	}
	return nil
}

func (r *fakeUserRepo) GetAddress(_ context.Context, uid string) (*userdom.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addresses[uid], nil
}

func (r *fakeUserRepo) SaveAddress(_ context.Context, uid string, addr userdom.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses[uid] = &addr
	return nil
}

func (r *fakeUserRepo) SaveInsoleAnswers(_ context.Context, uid string, a userdom.InsoleAnswers) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.answerErr != nil {
		return r.answerErr
	}
	r.answers[uid] = a
	return nil
}

func (r *fakeUserRepo) SetMaxStep(_ context.Context, uid string, step int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[uid] = step
	p := r.profiles[uid]
	if p == nil {
		p = &userdom.Profile{ID: uid}
		r.profiles[uid] = p
	}
	p.MaxStepReached = step
	return nil
}

// fakeOrderRepo records writes in memory.
type fakeOrderRepo struct {
	mu      sync.Mutex
	orders  map[string][]orderdom.Order
	insoles map[string][]orderdom.Order

	createErr error
	insoleErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:  make(map[string][]orderdom.Order),
		insoles: make(map[string][]orderdom.Order),
	}
}

func (r *fakeOrderRepo) Create(_ context.Context, uid string, o orderdom.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.orders[uid] {
		if existing.OrderID == o.OrderID {
			return orderdom.ErrConflict
		}
	}
	r.orders[uid] = append(r.orders[uid], o)
	return nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, uid string) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]orderdom.Order, len(r.orders[uid]))
	copy(out, r.orders[uid])
	// newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *fakeOrderRepo) AppendInsole(_ context.Context, uid string, o orderdom.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insoleErr != nil {
		return r.insoleErr
	}
	r.insoles[uid] = append(r.insoles[uid], o)
	return nil
}

func (r *fakeOrderRepo) ListInsole(_ context.Context, uid string) ([]orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]orderdom.Order, len(r.insoles[uid]))
	copy(out, r.insoles[uid])
	return out, nil
}

// fakeMailer records sends.
type fakeMailer struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	calls int
}

func (m *fakeMailer) Send(_ context.Context, _, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail {
		return errors.New("mail: boom")
	}
	m.sent = append(m.sent, to)
	return nil
}

// fakePaymentClient returns a fixed hosted-page URL.
type fakePaymentClient struct {
	url  string
	err  error
	name string
	amt  float64
}

func (c *fakePaymentClient) CreateSession(_ context.Context, name string, amount float64) (string, error) {
	c.name = name
	c.amt = amount
	if c.err != nil {
		return "", c.err
	}
	return c.url, nil
}

func testLines() []cartdom.Line {
	return []cartdom.Line{
		{ID: "shoe-1", Title: "Runner", Price: 80, NewPrice: "$ 88.00", PriceValue: 88, Quantity: 1},
		{ID: "insole-sport", Title: "Sport Insole", Price: 40, NewPrice: "$ 44.00", PriceValue: 44, Quantity: 2},
	}
}
