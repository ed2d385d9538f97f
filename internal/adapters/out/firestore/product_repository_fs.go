// internal/adapters/out/firestore/product_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productdom "myfootfirst/internal/domain/product"
)

// ProductRepositoryFS implements product.Repository over the catalog at
// EcommerceProducts/{category}/products/{id}. Prices are stored in the
// base currency; conversion happens in the application layer.
type ProductRepositoryFS struct {
	Client *firestore.Client
}

func NewProductRepositoryFS(client *firestore.Client) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client}
}

// ListByCategory returns every product in the category. An unknown
// category is just an empty subcollection, so it reads as an empty
// slice.
func (r *ProductRepositoryFS) ListByCategory(ctx context.Context, category string) ([]productdom.Product, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("product_repository_fs: firestore client is nil")
	}

	cat := strings.TrimSpace(category)
	if cat == "" {
		return nil, productdom.ErrInvalidCategory
	}

	iter := r.Client.Collection("EcommerceProducts").Doc(cat).Collection("products").Documents(ctx)
	defer iter.Stop()

	out := []productdom.Product{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return out, nil
			}
			return nil, err
		}
		out = append(out, productFromSnapshot(snap))
	}
	return out, nil
}

func productFromSnapshot(snap *firestore.DocumentSnapshot) productdom.Product {
	data := snap.Data()

	p := productdom.Product{
		ID:          snap.Ref.ID,
		Title:       asString(data["title"]),
		Description: asString(data["description"]),
		Price:       asFloat(data["price"]),
		Image:       asString(data["image"]),
	}
	if id := asString(data["id"]); id != "" {
		p.ID = id
	}
	if v, ok := data["discountedPrice"]; ok {
		if dp := asFloat(v); dp > 0 {
			p.DiscountedPrice = &dp
		}
	}
	if arr, ok := data["colors"].([]any); ok {
		for _, e := range arr {
			p.Colors = append(p.Colors, asString(e))
		}
	}
	if arr, ok := data["sizes"].([]any); ok {
		for _, e := range arr {
			p.Sizes = append(p.Sizes, asString(e))
		}
	}
	if m := asMap(data["colorImages"]); m != nil {
		p.ColorImages = make(map[string][]string, len(m))
		for color, v := range m {
			urls, ok := v.([]any)
			if !ok {
				continue
			}
			for _, u := range urls {
				p.ColorImages[color] = append(p.ColorImages[color], asString(u))
			}
		}
	}
	return p
}
