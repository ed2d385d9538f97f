// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository defines the persistence port for Cart.
//
// The cart lives as an array field on users/{uid}; there is no separate
// cart collection.
type Repository interface {
	// GetByUserID returns (nil, nil) if the user document or its cart
	// field does not exist (nil policy).
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Save merge-writes the whole cart array back onto the user document.
	Save(ctx context.Context, c *Cart) error

	// Mutate runs mutate against the latest remote cart inside a
	// transaction and writes the result back. The read-transform-write
	// sequence is atomic with respect to concurrent Mutate calls.
	Mutate(ctx context.Context, userID string, mutate func(c *Cart) error) (*Cart, error)

	// Clear unconditionally overwrites the cart field with an empty
	// array. Creating the field on a missing document counts as success.
	Clear(ctx context.Context, userID string) error
}

// Watcher is the subscribe-for-changes port over the user document.
// fn is invoked with the current cart lines on every remote change; a
// broken stream degrades to a final fn(nil) call rather than an error.
type Watcher interface {
	Watch(ctx context.Context, userID string, fn func(items []Line)) (stop func(), err error)
}
