// Package tenantx carries the authenticated tenant scope of a request
// through context.Context.
//
// A scope is attached once per request and released when the request
// finishes. Release is visible through every context derived from the
// attaching one, so work that outlives the request (goroutines holding
// the context) observes "no tenant" rather than a stale scope.
package tenantx

import (
	"context"
	"sync/atomic"
)

// Scope is the identity a request acts as.
type Scope struct {
	AccountID string
	TenantID  string
	Role      string
}

type ctxKey struct{}

type holder struct {
	scope atomic.Pointer[Scope]
}

// Attach returns a context carrying s and a release func that clears it.
// Callers should defer release immediately.
func Attach(ctx context.Context, s Scope) (context.Context, func()) {
	h := &holder{}
	h.scope.Store(&s)
	return context.WithValue(ctx, ctxKey{}, h), func() { h.scope.Store(nil) }
}

// FromContext returns the attached scope, if any is still live.
func FromContext(ctx context.Context) (Scope, bool) {
	h, ok := ctx.Value(ctxKey{}).(*holder)
	if !ok {
		return Scope{}, false
	}
	s := h.scope.Load()
	if s == nil {
		return Scope{}, false
	}
	return *s, true
}

// TenantID returns the active tenant, or "" when none is attached.
func TenantID(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.TenantID
}

// AccountID returns the acting account, or "" when none is attached.
func AccountID(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.AccountID
}

// Clear drops the scope held by ctx. It is a no-op when nothing is
// attached.
func Clear(ctx context.Context) {
	if h, ok := ctx.Value(ctxKey{}).(*holder); ok {
		h.scope.Store(nil)
	}
}
