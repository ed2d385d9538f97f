// internal/domain/order/repository_port.go
package order

import (
	"context"
	"errors"
)

// Standard repository errors
var (
	ErrNotFound = errors.New("order: not found")
	ErrConflict = errors.New("order: conflict")
)

// Repository defines the persistence port for order records.
//
// General-merchandise orders are documents in a per-user subcollection;
// insole orders are an append-only array field on the user document.
type Repository interface {
	// Create writes a new general order document keyed by o.OrderID.
	// An existing document with the same id returns ErrConflict (the id
	// generator is random; collisions must not silently overwrite).
	// DateOfOrder is replaced by a server timestamp on write.
	Create(ctx context.Context, userID string, o Order) error

	// ListByUser returns the user's general orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)

	// AppendInsole appends o to the insoleOrders array on users/{uid},
	// merge-writing the whole array back.
	AppendInsole(ctx context.Context, userID string, o Order) error

	// ListInsole returns the insoleOrders array, oldest first
	// (array append order).
	ListInsole(ctx context.Context, userID string) ([]Order, error)
}
