// internal/adapters/out/http/currency_client.go
package httpout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	currencydom "myfootfirst/internal/domain/currency"
)

const (
	restCountriesBase = "https://restcountries.com/v3.1/name"
	frankfurterBase   = "https://api.frankfurter.app/latest"
)

// CurrencyClient implements currency.Resolver over two public APIs:
// RestCountries maps a country name to its ISO currency code, and
// Frankfurter supplies the EUR exchange rate. Results are cached per
// country; every failure degrades to EUR at rate 1, never an error.
type CurrencyClient struct {
	countriesBase string
	ratesBase     string
	client        *http.Client

	mu    sync.Mutex
	cache map[string]currencydom.Currency
}

func NewCurrencyClient() *CurrencyClient {
	return &CurrencyClient{
		countriesBase: restCountriesBase,
		ratesBase:     frankfurterBase,
		client:        &http.Client{Timeout: 5 * time.Second},
		cache:         make(map[string]currencydom.Currency),
	}
}

// NewCurrencyClientWithBases overrides the API endpoints (tests).
func NewCurrencyClientWithBases(countriesBase, ratesBase string) *CurrencyClient {
	c := NewCurrencyClient()
	c.countriesBase = strings.TrimRight(strings.TrimSpace(countriesBase), "/")
	c.ratesBase = strings.TrimRight(strings.TrimSpace(ratesBase), "/")
	return c
}

// Resolve maps country to a display currency. Codes outside the
// supported set, unknown countries and transport failures all land on
// the EUR default.
func (c *CurrencyClient) Resolve(ctx context.Context, country string) currencydom.Currency {
	name := strings.TrimSpace(country)
	if name == "" {
		return currencydom.Default
	}

	c.mu.Lock()
	if cur, ok := c.cache[name]; ok {
		c.mu.Unlock()
		return cur
	}
	c.mu.Unlock()

	cur := c.resolve(ctx, name)

	c.mu.Lock()
	c.cache[name] = cur
	c.mu.Unlock()
	return cur
}

func (c *CurrencyClient) resolve(ctx context.Context, name string) currencydom.Currency {
	code, err := c.currencyCode(ctx, name)
	if err != nil {
		log.Printf("[currency_client] WARN: country lookup failed country=%q err=%v", name, err)
		return currencydom.Default
	}
	if !currencydom.IsAllowed(code) {
		return currencydom.Default
	}
	if code == currencydom.Default.Code {
		return currencydom.Default
	}

	rate, err := c.eurRate(ctx, code)
	if err != nil {
		log.Printf("[currency_client] WARN: rate lookup failed code=%s err=%v", code, err)
		return currencydom.Default
	}

	return currencydom.Currency{
		Code:   code,
		Rate:   rate,
		Symbol: currencydom.SymbolFor(code),
	}
}

// currencyCode asks RestCountries for the country's currency code. The
// response is an array of country matches, each carrying a currencies
// map keyed by ISO code.
func (c *CurrencyClient) currencyCode(ctx context.Context, name string) (string, error) {
	u := fmt.Sprintf("%s/%s?fields=currencies&fullText=true", c.countriesBase, url.PathEscape(name))

	var matches []struct {
		Currencies map[string]json.RawMessage `json:"currencies"`
	}
	if err := c.getJSON(ctx, u, &matches); err != nil {
		return "", err
	}
	if len(matches) == 0 || len(matches[0].Currencies) == 0 {
		return "", fmt.Errorf("currency_client: no currency for country %q", name)
	}

	for code := range matches[0].Currencies {
		return strings.ToUpper(code), nil
	}
	return "", fmt.Errorf("currency_client: no currency for country %q", name)
}

// eurRate asks Frankfurter for the EUR -> code rate.
func (c *CurrencyClient) eurRate(ctx context.Context, code string) (float64, error) {
	u := fmt.Sprintf("%s?from=EUR&to=%s", c.ratesBase, url.QueryEscape(code))

	var out struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := c.getJSON(ctx, u, &out); err != nil {
		return 0, err
	}

	rate, ok := out.Rates[code]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("currency_client: no rate for %s", code)
	}
	return rate, nil
}

func (c *CurrencyClient) getJSON(ctx context.Context, rawURL string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1<<10))
		return fmt.Errorf("currency_client: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(res.Body).Decode(into)
}
