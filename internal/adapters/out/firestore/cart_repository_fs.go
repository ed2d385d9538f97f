// internal/adapters/out/firestore/cart_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "myfootfirst/internal/domain/cart"
)

// CartRepositoryFS implements cart.Repository using Firestore.
//
// Collection design:
// - collection: users
// - docId: Firebase auth uid ✅ (docId is the source of truth)
// - field: cart = array of line maps
//
// The cart shares its document with profile, address and order fields,
// so every write is a merge on the "cart" field only.
type CartRepositoryFS struct {
	Client *firestore.Client
}

func NewCartRepositoryFS(client *firestore.Client) *CartRepositoryFS {
	return &CartRepositoryFS{Client: client}
}

func (r *CartRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("users")
}

// GetByUserID returns (nil, nil) if the document or its cart field does
// not exist (nil policy).
func (r *CartRepositoryFS) GetByUserID(ctx context.Context, userID string) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_fs: userID is empty")
	}

	snap, err := r.col().Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	raw, ok := snap.Data()["cart"]
	if !ok {
		return nil, nil
	}

	return cartdom.NewCart(uid, linesFromAny(raw))
}

// Save merge-writes the whole cart array back onto the user document.
func (r *CartRepositoryFS) Save(ctx context.Context, c *cartdom.Cart) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}
	if c == nil {
		return errors.New("cart_repository_fs: cart is nil")
	}

	uid := strings.TrimSpace(c.UserID)
	if uid == "" {
		return errors.New("cart_repository_fs: Save requires cart.UserID (= uid) as docId")
	}

	_, err := r.col().Doc(uid).Set(ctx, map[string]any{
		"cart": c.Items,
	}, firestore.MergeAll)
	return err
}

// Mutate runs the read-transform-write sequence inside a Firestore
// transaction so two devices editing the same cart cannot lose updates.
func (r *CartRepositoryFS) Mutate(ctx context.Context, userID string, mutate func(c *cartdom.Cart) error) (*cartdom.Cart, error) {
	if r == nil || r.Client == nil {
		return nil, errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_repository_fs: userID is empty")
	}

	ref := r.col().Doc(uid)

	var out *cartdom.Cart
	err := r.Client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		var items []cartdom.Line

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return err
			}
		} else if raw, ok := snap.Data()["cart"]; ok {
			items = linesFromAny(raw)
		}

		c, err := cartdom.NewCart(uid, items)
		if err != nil {
			return err
		}
		if err := mutate(c); err != nil {
			return err
		}

		out = c
		return tx.Set(ref, map[string]any{
			"cart": c.Items,
		}, firestore.MergeAll)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Clear overwrites the cart field with an empty array. Merge semantics
// create the field (and the document) when missing.
func (r *CartRepositoryFS) Clear(ctx context.Context, userID string) error {
	if r == nil || r.Client == nil {
		return errors.New("cart_repository_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return errors.New("cart_repository_fs: userID is empty")
	}

	_, err := r.col().Doc(uid).Set(ctx, map[string]any{
		"cart": []cartdom.Line{},
	}, firestore.MergeAll)
	return err
}
