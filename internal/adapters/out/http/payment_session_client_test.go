// internal/adapters/out/http/payment_session_client_test.go
package httpout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentSessionClientFollowsRedirects(t *testing.T) {
	var got paymentSessionPayload

	mux := http.NewServeMux()
	mux.HandleFunc("/create-checkout-session", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		http.Redirect(w, r, "/hosted/session-42", http.StatusSeeOther)
	})
	mux.HandleFunc("/hosted/session-42", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c := NewPaymentSessionClient(srv.URL)
	url, err := c.CreateSession(context.Background(), "Runner +1 more", 176.0)
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/hosted/session-42", url)
	assert.Equal(t, "Runner +1 more", got.Name)
	assert.InDelta(t, 176.0, got.Price, 0.001)
}

func TestPaymentSessionClientNoRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewPaymentSessionClient(srv.URL)
	url, err := c.CreateSession(context.Background(), "Runner", 10)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/create-checkout-session", url)
}

func TestPaymentSessionClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no capacity", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewPaymentSessionClient(srv.URL)
	_, err := c.CreateSession(context.Background(), "Runner", 10)
	assert.ErrorContains(t, err, "status=502")
}

func TestPaymentSessionClientValidation(t *testing.T) {
	c := NewPaymentSessionClient("")
	_, err := c.CreateSession(context.Background(), "Runner", 10)
	assert.ErrorContains(t, err, "baseURL is empty")

	c = NewPaymentSessionClient("http://localhost:5000")
	_, err = c.CreateSession(context.Background(), "Runner", 0)
	assert.ErrorContains(t, err, "amount must be > 0")
}
