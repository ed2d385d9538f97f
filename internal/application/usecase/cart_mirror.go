// internal/application/usecase/cart_mirror.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	cartdom "myfootfirst/internal/domain/cart"
)

var (
	ErrMirrorInvalidArgument = errors.New("cart_mirror: invalid argument")
	ErrMirrorWatcherMissing  = errors.New("cart_mirror: watcher is not configured")
)

// CartMirror maintains an in-memory copy of each subscribed user's cart,
// fed by the document watcher. Subscribers get the current items
// immediately and every remote change afterwards, so a cart edited on
// one device shows up on the other without polling.
type CartMirror struct {
	watcher cartdom.Watcher

	mu      sync.Mutex
	streams map[string]*mirrorStream
}

type mirrorStream struct {
	stop   func()
	cancel context.CancelFunc
	items  []cartdom.Line

	nextID int
	subs   map[int]func(items []cartdom.Line)
}

func (st *mirrorStream) shutdown() {
	if st.stop != nil {
		st.stop()
	}
	if st.cancel != nil {
		st.cancel()
	}
}

func NewCartMirror(watcher cartdom.Watcher) *CartMirror {
	return &CartMirror{
		watcher: watcher,
		streams: make(map[string]*mirrorStream),
	}
}

// Subscribe registers fn for uid's cart changes and returns an
// unsubscribe func. fn is called once with the current items as soon as
// the watcher delivers its first snapshot. A watcher failure degrades to
// an empty cart rather than an error reaching subscribers.
//
// The underlying watch is shared by every subscriber of uid and runs on
// a mirror-owned context, so one subscriber disconnecting never tears
// down the stream for the others. It stops when the last subscriber
// leaves or the mirror closes.
func (m *CartMirror) Subscribe(userID string, fn func(items []cartdom.Line)) (func(), error) {
	uid := strings.TrimSpace(userID)
	if uid == "" || fn == nil {
		return nil, ErrMirrorInvalidArgument
	}
	if m.watcher == nil {
		return nil, ErrMirrorWatcherMissing
	}

	m.mu.Lock()
	st, ok := m.streams[uid]
	if !ok {
		watchCtx, cancel := context.WithCancel(context.Background())
		st = &mirrorStream{cancel: cancel, subs: make(map[int]func(items []cartdom.Line))}
		m.streams[uid] = st

		stop, err := m.watcher.Watch(watchCtx, uid, func(items []cartdom.Line) {
			m.deliver(uid, items)
		})
		if err != nil {
			delete(m.streams, uid)
			m.mu.Unlock()
			cancel()
			log.Printf("[cart_mirror] watch failed uid=%s err=%v", uid, err)
			return nil, err
		}
		st.stop = stop
	}

	id := st.nextID
	st.nextID++
	st.subs[id] = fn
	current := st.items
	m.mu.Unlock()

	// First delivery happens outside the lock; nil means "no snapshot
	// yet", in which case the watcher callback covers it.
	if current != nil {
		fn(current)
	}

	return func() { m.unsubscribe(uid, id) }, nil
}

// Items returns the last observed cart for uid, or nil when nobody is
// subscribed.
func (m *CartMirror) Items(userID string) []cartdom.Line {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.streams[strings.TrimSpace(userID)]; ok {
		return st.items
	}
	return nil
}

// Close stops every active watch. Used on shutdown.
func (m *CartMirror) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for uid, st := range m.streams {
		st.shutdown()
		delete(m.streams, uid)
	}
}

func (m *CartMirror) deliver(userID string, items []cartdom.Line) {
	if items == nil {
		items = []cartdom.Line{}
	}

	m.mu.Lock()
	st, ok := m.streams[userID]
	if !ok {
		m.mu.Unlock()
		return
	}
	st.items = items
	fns := make([]func(items []cartdom.Line), 0, len(st.subs))
	for _, fn := range st.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(items)
	}
}

func (m *CartMirror) unsubscribe(userID string, id int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.streams[userID]
	if !ok {
		return
	}
	delete(st.subs, id)
	if len(st.subs) == 0 {
		st.shutdown()
		delete(m.streams, userID)
	}
}
