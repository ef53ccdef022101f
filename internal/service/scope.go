package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// View names, one per page.
const (
	ViewDashboard = "dashboard"
	ViewUploads   = "uploads"
	ViewProducts  = "products"
	ViewOrders    = "orders"
	ViewSupport   = "support"
	ViewAnalytics = "analytics"
)

// Views lists every page whose fetches run in a scope.
var Views = []string{ViewDashboard, ViewUploads, ViewProducts, ViewOrders, ViewSupport, ViewAnalytics}

// Cancellation causes. Both wrap context.Canceled.
var (
	ErrViewClosed = fmt.Errorf("view torn down: %w", context.Canceled)
	ErrSuperseded = fmt.Errorf("superseded by a newer fetch: %w", context.Canceled)
)

type scope struct {
	id     uint64
	cancel context.CancelCauseFunc
}

// Scopes tracks the in-flight fetch of each view. Beginning a fetch cancels
// the previous fetch of the same view, and tearing a view down cancels its
// fetch, so a stale response never lands in a discarded view.
type Scopes struct {
	mu     sync.Mutex
	seq    uint64
	active map[string]scope
}

// NewScopes returns an empty scope registry.
func NewScopes() *Scopes {
	return &Scopes{active: make(map[string]scope)}
}

// Begin starts a fetch of view. The returned context is cancelled by
// Teardown, by a later Begin for the same view, or when ctx ends. done must
// be called when the fetch completes.
func (s *Scopes) Begin(ctx context.Context, view string) (context.Context, func()) {
	scoped, cancel := context.WithCancelCause(ctx)

	s.mu.Lock()
	s.seq++
	id := s.seq
	if prev, ok := s.active[view]; ok {
		prev.cancel(ErrSuperseded)
	}
	s.active[view] = scope{id: id, cancel: cancel}
	s.mu.Unlock()

	done := func() {
		s.mu.Lock()
		if cur, ok := s.active[view]; ok && cur.id == id {
			delete(s.active, view)
		}
		s.mu.Unlock()
		cancel(nil)
	}
	return scoped, done
}

// Teardown cancels the in-flight fetch of view. It reports whether one was
// running.
func (s *Scopes) Teardown(view string) bool {
	s.mu.Lock()
	cur, ok := s.active[view]
	if ok {
		delete(s.active, view)
	}
	s.mu.Unlock()

	if ok {
		cur.cancel(ErrViewClosed)
	}
	return ok
}

// TeardownAll cancels every in-flight fetch, e.g. on logout or shutdown.
func (s *Scopes) TeardownAll() {
	s.mu.Lock()
	active := s.active
	s.active = make(map[string]scope)
	s.mu.Unlock()

	for _, cur := range active {
		cur.cancel(ErrViewClosed)
	}
}

// Active lists views with a fetch in flight, sorted.
func (s *Scopes) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	views := make([]string, 0, len(s.active))
	for v := range s.active {
		views = append(views, v)
	}
	sort.Strings(views)
	return views
}

// IsView reports whether name is a known view.
func IsView(name string) bool {
	for _, v := range Views {
		if v == name {
			return true
		}
	}
	return false
}

// discarded returns the cancellation cause when ctx was cancelled, so a
// result fetched under it is dropped instead of returned.
func discarded(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return ctx.Err()
}
