// internal/adapters/out/firestore/cart_watcher_fs.go
package firestore

import (
	"context"
	"errors"
	"log"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartdom "myfootfirst/internal/domain/cart"
)

// CartWatcherFS implements cart.Watcher over a Firestore document
// snapshot stream on users/{uid}. Every remote write to the document
// (cart edits included) produces one callback with the parsed cart
// lines.
type CartWatcherFS struct {
	Client *firestore.Client
}

func NewCartWatcherFS(client *firestore.Client) *CartWatcherFS {
	return &CartWatcherFS{Client: client}
}

// Watch starts the snapshot listener in a goroutine and returns a stop
// func that tears it down. A deleted or missing document delivers an
// empty cart; a broken stream delivers a final fn(nil) and ends.
func (w *CartWatcherFS) Watch(ctx context.Context, userID string, fn func(items []cartdom.Line)) (func(), error) {
	if w == nil || w.Client == nil {
		return nil, errors.New("cart_watcher_fs: firestore client is nil")
	}

	uid := strings.TrimSpace(userID)
	if uid == "" {
		return nil, errors.New("cart_watcher_fs: userID is empty")
	}
	if fn == nil {
		return nil, errors.New("cart_watcher_fs: callback is nil")
	}

	ctx, cancel := context.WithCancel(ctx)
	iter := w.Client.Collection("users").Doc(uid).Snapshots(ctx)

	go func() {
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err != nil {
				if ctx.Err() == nil && status.Code(err) != codes.Canceled {
					log.Printf("[cart_watcher_fs] stream ended uid=%s err=%v", uid, err)
					fn(nil)
				}
				return
			}
			if !snap.Exists() {
				fn([]cartdom.Line{})
				continue
			}
			fn(linesFromAny(snap.Data()["cart"]))
		}
	}()

	return cancel, nil
}
