// internal/adapters/in/http/shop/handler/cart_handler_test.go
package shopHandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myfootfirst/internal/adapters/in/http/middleware"
	usecase "myfootfirst/internal/application/usecase"
	cartdom "myfootfirst/internal/domain/cart"
)

// memCartRepo backs the handler tests.
type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*cartdom.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*cartdom.Cart)}
}

func (r *memCartRepo) GetByUserID(_ context.Context, uid string) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[uid]
	if !ok {
		return nil, nil
	}
	return cartdom.NewCart(c.UserID, c.Items)
}

func (r *memCartRepo) Save(_ context.Context, c *cartdom.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[c.UserID] = c
	return nil
}

func (r *memCartRepo) Mutate(_ context.Context, uid string, mutate func(c *cartdom.Cart) error) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
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
	r.carts[uid] = c
	return c, nil
}

func (r *memCartRepo) Clear(_ context.Context, uid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[uid]; ok {
		c.Clear()
	}
	return nil
}

func newCartTestHandler() (http.Handler, *memCartRepo) {
	repo := newMemCartRepo()
	return NewCartHandler(usecase.NewCartUsecase(repo), nil), repo
}

func doCart(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req = req.WithContext(middleware.WithUser(req.Context(), "u1", "u1@example.com"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCartHandlerRequiresAuth(t *testing.T) {
	h, _ := newCartTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/shop/me/cart", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCartHandlerGetEmpty(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodGet, "/shop/me/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		UserID string         `json:"userId"`
		Items  []cartdom.Line `json:"items"`
		Total  float64        `json:"total"`
		Count  int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.UserID)
	assert.NotNil(t, body.Items)
	assert.Empty(t, body.Items)
}

func TestCartHandlerAddAndMerge(t *testing.T) {
	h, _ := newCartTestHandler()

	payload := `{"id":"shoe-1","title":"Runner","price":80,"newPrice":"$ 88.00","priceValue":88,"quantity":1}`
	rec := doCart(t, h, http.MethodPost, "/shop/me/cart/items", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	// same id again: quantities merge
	rec = doCart(t, h, http.MethodPost, "/shop/me/cart/items", payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []cartdom.Line `json:"items"`
		Total float64        `json:"total"`
		Count int            `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.InDelta(t, 176.0, body.Total, 0.001)
	assert.Equal(t, 2, body.Count)
}

func TestCartHandlerAddDefaultsQuantity(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodPost, "/shop/me/cart/items",
		`{"id":"shoe-1","title":"Runner","priceValue":88}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []cartdom.Line `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Items, 1)
	assert.Equal(t, 1, body.Items[0].Quantity)
}

func TestCartHandlerAddRejectsBadLine(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodPost, "/shop/me/cart/items", `{"title":"no id"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doCart(t, h, http.MethodPost, "/shop/me/cart/items", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandlerSetQtyAndRemove(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodPost, "/shop/me/cart/items",
		`{"id":"shoe-1","title":"Runner","priceValue":88,"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doCart(t, h, http.MethodPut, "/shop/me/cart/items", `{"id":"shoe-1","quantity":4}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []cartdom.Line `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Items[0].Quantity)

	rec = doCart(t, h, http.MethodDelete, "/shop/me/cart/items?id=shoe-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Items)
}

func TestCartHandlerRemoveRequiresID(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodDelete, "/shop/me/cart/items", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandlerClear(t *testing.T) {
	h, repo := newCartTestHandler()

	rec := doCart(t, h, http.MethodPost, "/shop/me/cart/items",
		`{"id":"shoe-1","title":"Runner","priceValue":88,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doCart(t, h, http.MethodDelete, "/shop/me/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	c, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCartHandlerMethodNotAllowed(t *testing.T) {
	h, _ := newCartTestHandler()

	rec := doCart(t, h, http.MethodPatch, "/shop/me/cart", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// streamRecorder is a concurrency-safe ResponseWriter for the SSE tests.
// It records write deadlines the way a real *http.response would accept
// them through http.ResponseController.
type streamRecorder struct {
	mu        sync.Mutex
	header    http.Header
	body      strings.Builder
	deadlines []time.Time
}

func newStreamRecorder() *streamRecorder {
	return &streamRecorder{header: make(http.Header)}
}

func (w *streamRecorder) Header() http.Header {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.header
}

func (w *streamRecorder) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.body.Write(p)
}

func (w *streamRecorder) WriteHeader(int) {}

func (w *streamRecorder) Flush() {}

func (w *streamRecorder) SetWriteDeadline(t time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.deadlines = append(w.deadlines, t)
	return nil
}

func (w *streamRecorder) bodyString() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.body.String()
}

// streamWatcher hands the delivery callback to the test and signals
// when the stream handler has subscribed.
type streamWatcher struct {
	mu       sync.Mutex
	fn       func(items []cartdom.Line)
	watching chan struct{}
}

func newStreamWatcher() *streamWatcher {
	return &streamWatcher{watching: make(chan struct{})}
}

func (w *streamWatcher) Watch(_ context.Context, _ string, fn func(items []cartdom.Line)) (func(), error) {
	w.mu.Lock()
	w.fn = fn
	w.mu.Unlock()
	close(w.watching)
	return func() {}, nil
}

func (w *streamWatcher) push(items []cartdom.Line) {
	w.mu.Lock()
	fn := w.fn
	w.mu.Unlock()
	if fn != nil {
		fn(items)
	}
}

func TestCartHandlerStreamLiftsWriteDeadline(t *testing.T) {
	watcher := newStreamWatcher()
	mirror := usecase.NewCartMirror(watcher)
	defer mirror.Close()

	repo := newMemCartRepo()
	h := NewCartHandler(usecase.NewCartUsecase(repo), mirror)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/shop/me/cart/stream", nil)
	req = req.WithContext(middleware.WithUser(ctx, "u1", "u1@example.com"))

	rec := newStreamRecorder()
	done := make(chan struct{})
	go func() {
		h.ServeHTTP(rec, req)
		close(done)
	}()

	<-watcher.watching
	watcher.push([]cartdom.Line{{ID: "shoe-1", Title: "Runner", PriceValue: 88, Quantity: 1}})

	require.Eventually(t, func() bool {
		return strings.Contains(rec.bodyString(), "event: cart")
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	// a long-lived stream must not die on the server's absolute write
	// deadline, so the handler clears it for this connection
	require.NotEmpty(t, rec.deadlines)
	assert.True(t, rec.deadlines[0].IsZero())
	assert.Contains(t, rec.bodyString(), `"total":88`)
}
