// internal/domain/product/repository_port.go
package product

import "context"

// Repository defines the read-only catalog port.
type Repository interface {
	// ListByCategory returns the products under
	// EcommerceProducts/{category}/products. An unknown category yields
	// an empty slice, not an error.
	ListByCategory(ctx context.Context, category string) ([]Product, error)
}
