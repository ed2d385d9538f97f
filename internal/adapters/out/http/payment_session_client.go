// internal/adapters/out/http/payment_session_client.go
package httpout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// PaymentSessionClient implements CheckoutUsecase's outbound port
// against the hosted payment page service. The service answers the
// create call with a redirect chain ending at the hosted page; the URL
// the chain resolves to is what the customer's browser must open.
type PaymentSessionClient struct {
	baseURL string
	client  *http.Client
}

type paymentSessionPayload struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// baseURL example:
// - production: https://pay.myfootfirst.com
// - local: http://localhost:5000
func NewPaymentSessionClient(baseURL string) *PaymentSessionClient {
	return &PaymentSessionClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateSession opens a payment session for one charge and returns the
// hosted page URL after following redirects.
func (c *PaymentSessionClient) CreateSession(ctx context.Context, name string, amount float64) (string, error) {
	if c == nil {
		return "", fmt.Errorf("payment session client is nil")
	}
	if c.baseURL == "" {
		return "", fmt.Errorf("payment session client baseURL is empty")
	}
	if amount <= 0 {
		return "", fmt.Errorf("payment session amount must be > 0, got %.2f", amount)
	}

	payload := paymentSessionPayload{
		Name:  strings.TrimSpace(name),
		Price: amount,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create-checkout-session", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<20))
		return "", fmt.Errorf("payment session call failed status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	// res.Request carries the final request of the redirect chain; its
	// URL is the hosted page the client must open.
	final := res.Request.URL.String()
	if final == "" {
		return "", fmt.Errorf("payment session resolved to an empty URL")
	}
	return final, nil
}
