package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"github.com/aussiebroadwan/roster/pkg/tenantx"
)

// TokenVerifier resolves a bearer token to the identity it asserts.
type TokenVerifier interface {
	Verify(token string) (jwtx.Identity, error)
}

// Gate performs optional bearer authentication. A valid token attaches a
// tenant scope for the rest of the request; a missing or invalid one lets
// the request through unauthenticated so public endpoints keep working.
// Endpoints that need a caller add RequireAuth.
//
// The scope is released when the handler returns, including by panic.
func Gate(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			id, err := v.Verify(raw)
			if err != nil {
				log.Debug("bearer token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx, release := tenantx.Attach(ctx, tenantx.Scope{
				AccountID: id.AccountID,
				TenantID:  id.TenantID,
				Role:      id.Role,
			})
			defer release()

			ctx = context.WithValue(ctx, CtxKeyUserID, id.AccountID)
			ctx = slogx.WithContext(ctx, log.With("account_id", id.AccountID, "tenant_id", id.TenantID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireAuth rejects requests that Gate did not authenticate.
func RequireAuth() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := tenantx.FromContext(r.Context()); !ok {
				writeBearerError(w, "missing or invalid bearer token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole the caller must hold at least one of the provided roles
// in the tenant the token was issued for.
func RequireAnyRole(roles ...string) Middleware {
	want := make(map[string]struct{}, len(roles))
	for _, s := range roles {
		want[s] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scope, ok := tenantx.FromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing or invalid bearer token")
				return
			}

			if _, ok := want[scope.Role]; !ok {
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
				WriteError(w, http.StatusForbidden, CodeForbidden, "insufficient role for this operation", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, CodeUnauthenticated, desc, nil)
}
