// internal/application/usecase/catalog_usecase_test.go
package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	currencydom "myfootfirst/internal/domain/currency"
	productdom "myfootfirst/internal/domain/product"
	userdom "myfootfirst/internal/domain/user"
)

type fakeProductRepo struct {
	byCategory map[string][]productdom.Product
	err        error
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, category string) ([]productdom.Product, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.byCategory[category], nil
}

type fakeResolver struct {
	byCountry map[string]currencydom.Currency
}

func (r *fakeResolver) Resolve(_ context.Context, country string) currencydom.Currency {
	if c, ok := r.byCountry[country]; ok {
		return c
	}
	return currencydom.Default
}

func newCatalogFixture() (*CatalogUsecase, *fakeUserRepo) {
	products := &fakeProductRepo{byCategory: map[string][]productdom.Product{
		"Shoes": {
			{ID: "shoe-1", Title: "Runner", Price: 80},
			{ID: "shoe-2", Title: "Walker", Price: 60},
		},
	}}
	users := newFakeUserRepo()
	resolver := &fakeResolver{byCountry: map[string]currencydom.Currency{
		"United States": {Code: "USD", Rate: 1.1, Symbol: "$"},
	}}
	return NewCatalogUsecase(products, users, resolver), users
}

func TestCatalogListAppliesUserCurrency(t *testing.T) {
	uc, users := newCatalogFixture()
	users.profiles["u1"] = &userdom.Profile{ID: "u1", Country: "United States"}

	got, err := uc.ListByCategory(context.Background(), "u1", "Shoes")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "USD", got[0].Currency)
	assert.InDelta(t, 88.0, got[0].PriceValue, 0.001)
	assert.Equal(t, "$ 88.00", got[0].NewPrice)
}

func TestCatalogListDefaultsToEUR(t *testing.T) {
	uc, users := newCatalogFixture()
	ctx := context.Background()

	// no profile at all
	got, err := uc.ListByCategory(ctx, "u-none", "Shoes")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got[0].Currency)
	assert.Equal(t, "€ 80.00", got[0].NewPrice)

	// profile without a country
	users.profiles["u1"] = &userdom.Profile{ID: "u1"}
	got, err = uc.ListByCategory(ctx, "u1", "Shoes")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got[0].Currency)

	// country the resolver cannot map
	users.profiles["u2"] = &userdom.Profile{ID: "u2", Country: "Atlantis"}
	got, err = uc.ListByCategory(ctx, "u2", "Shoes")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got[0].Currency)
}

func TestCatalogListUnknownCategoryIsEmpty(t *testing.T) {
	uc, _ := newCatalogFixture()

	got, err := uc.ListByCategory(context.Background(), "u1", "Hats")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCatalogListRequiresCategory(t *testing.T) {
	uc, _ := newCatalogFixture()

	_, err := uc.ListByCategory(context.Background(), "u1", "  ")
	assert.ErrorIs(t, err, ErrCatalogInvalidArgument)
}

func TestCatalogCurrencyForProfileError(t *testing.T) {
	uc, users := newCatalogFixture()
	users.getErr = assert.AnError

	cur := uc.CurrencyFor(context.Background(), "u1")
	assert.Equal(t, currencydom.Default, cur)
}
