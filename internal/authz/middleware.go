package authz

import (
	"log/slog"
	"net/http"
)

// DecisionRecorder receives the outcome of middleware authorization checks.
// The observability package provides the production implementation.
type DecisionRecorder interface {
	RecordDecision(permission string, allowed bool)
}

// Middleware wires capability checks into HTTP handlers. Every check resolves
// the principal fresh so a role change is honored on the next request.
type Middleware struct {
	Resolver *Resolver
	Logger   *slog.Logger
	Metrics  DecisionRecorder
}

// RequireAny ensures the caller holds at least one of the permissions.
func (m Middleware) RequireAny(codes ...string) func(http.Handler) http.Handler {
	return m.require(codes, func(caps Capabilities) bool {
		return caps.HasAnyPermission(codes...)
	})
}

// RequireAll ensures the caller holds every listed permission.
func (m Middleware) RequireAll(codes ...string) func(http.Handler) http.Handler {
	return m.require(codes, func(caps Capabilities) bool {
		for _, code := range codes {
			if !caps.HasPermission(code) {
				return false
			}
		}
		return true
	})
}

func (m Middleware) require(codes []string, allowed func(Capabilities) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(codes) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			principal := IdentityFromContext(r.Context())
			if principal == nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			caps, err := m.Resolver.Resolve(r.Context(), principal)
			if err != nil {
				// Fail closed: a broken store never grants access.
				if m.Logger != nil {
					m.Logger.Error("authz resolve", slog.Int64("user_id", principal.ID), slog.Any("error", err))
				}
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			ok := allowed(caps)
			if m.Metrics != nil {
				m.Metrics.RecordDecision(codes[0], ok)
			}
			if !ok {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
