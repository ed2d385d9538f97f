// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "myfootfirst/internal/domain/order"
)

// OrderRepositoryFS implements order.Repository.
//
// Collection design:
// - general orders: usersOrders/{uid}/orders/{orderId}
// - insole orders:  insoleOrders array field on users/{uid}
//
// General orders get a server timestamp as dateOfOrder; insole entries
// keep the app-side time they were built with.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) ordersCol(uid string) *firestore.CollectionRef {
	return r.Client.Collection("usersOrders").Doc(uid).Collection("orders")
}

func (r *OrderRepositoryFS) userDoc(uid string) *firestore.DocumentRef {
	return r.Client.Collection("users").Doc(uid)
}

// Create writes a new order document keyed by o.OrderID. Create (not
// Set) so a random-id collision surfaces as ErrConflict instead of
// silently overwriting someone's order.
func (r *OrderRepositoryFS) Create(ctx context.Context, userID string, o orderdom.Order) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	oid := strings.TrimSpace(o.OrderID)
	if uid == "" || oid == "" {
		return errors.New("order_repository_fs: userID and orderID are required")
	}

	doc := map[string]any{
		"orderId":         o.OrderID,
		"customerName":    o.CustomerName,
		"dateOfOrder":     firestore.ServerTimestamp,
		"products":        o.Products,
		"totalAmount":     o.TotalAmount,
		"orderStatus":     o.OrderStatus,
		"shippingAddress": o.ShippingAddress,
	}

	if _, err := r.ordersCol(uid).Doc(oid).Create(ctx, doc); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return orderdom.ErrConflict
		}
		return err
	}
	return nil
}

// ListByUser returns the user's general orders, newest first.
func (r *OrderRepositoryFS) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order_repository_fs: userID is empty")
	}

	iter := r.ordersCol(uid).OrderBy("dateOfOrder", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	var out []orderdom.Order
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		o := orderFromMap(snap.Data())
		if o.OrderID == "" {
			o.OrderID = snap.Ref.ID
		}
		out = append(out, o)
	}
	return out, nil
}

// AppendInsole appends o to the insoleOrders array, merge-writing the
// whole array back. The read-append-write runs in a transaction so two
// commits cannot drop each other's entries.
func (r *OrderRepositoryFS) AppendInsole(ctx context.Context, userID string, o orderdom.Order) error {
	if r == nil || r.Client == nil {
		return errors.New("order_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("order_repository_fs: userID is empty")
	}

	ref := r.userDoc(uid)
	return r.Client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		var existing []orderdom.Order

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else {
			existing = ordersFromAny(snap.Data()["insoleOrders"])
		}

		return tx.Set(ref, map[string]any{
			"insoleOrders": append(existing, o),
		}, firestore.MergeAll)
	})
}

// ListInsole returns the insoleOrders array in append order.
func (r *OrderRepositoryFS) ListInsole(ctx context.Context, userID string) ([]orderdom.Order, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("order_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("order_repository_fs: userID is empty")
	}

	snap, err := r.userDoc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	return ordersFromAny(snap.Data()["insoleOrders"]), nil
}
