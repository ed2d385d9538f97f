// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	currencydom "myfootfirst/internal/domain/currency"
	productdom "myfootfirst/internal/domain/product"
	userdom "myfootfirst/internal/domain/user"
)

var (
	ErrCatalogInvalidArgument = errors.New("catalog_usecase: invalid argument")
)

// CatalogUsecase serves category listings priced in the caller's
// display currency. The currency comes from the profile country via the
// resolver; any failure along that chain degrades to EUR.
type CatalogUsecase struct {
	products productdom.Repository
	users    userdom.Repository
	resolver currencydom.Resolver
}

func NewCatalogUsecase(products productdom.Repository, users userdom.Repository, resolver currencydom.Resolver) *CatalogUsecase {
	return &CatalogUsecase{
		products: products,
		users:    users,
		resolver: resolver,
	}
}

// ListByCategory returns the category's products with display prices in
// the user's currency. An unknown category yields an empty list.
func (uc *CatalogUsecase) ListByCategory(ctx context.Context, userID, category string) ([]productdom.Priced, error) {
	cat := strings.TrimSpace(category)
	if cat == "" {
		return nil, ErrCatalogInvalidArgument
	}

	items, err := uc.products.ListByCategory(ctx, cat)
	if err != nil {
		return nil, err
	}

	cur := uc.CurrencyFor(ctx, userID)

	out := make([]productdom.Priced, 0, len(items))
	for _, p := range items {
		out = append(out, p.ApplyCurrency(cur))
	}
	return out, nil
}

// CurrencyFor resolves the display currency for uid. Every failure mode
// (no uid, no profile, no country, resolver miss) lands on EUR.
func (uc *CatalogUsecase) CurrencyFor(ctx context.Context, userID string) currencydom.Currency {
	uid := strings.TrimSpace(userID)
	if uid == "" || uc.resolver == nil {
		return currencydom.Default
	}

	p, err := uc.users.GetProfile(ctx, uid)
	if err != nil {
		log.Printf("[catalog_uc] WARN: profile load failed uid=%s err=%v", uid, err)
		return currencydom.Default
	}
	if p == nil || strings.TrimSpace(p.Country) == "" {
		return currencydom.Default
	}

	return uc.resolver.Resolve(ctx, p.Country)
}
