package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/brightcart/brightcart/internal/authz"
)

// Principal resolves the bearer token to an identity and stores it in the
// request context. Requests without a valid token pass through anonymously;
// rejecting them is the job of downstream capability checks.
func Principal(sessions *SessionStore, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := sessions.Lookup(r.Context(), token)
			if err != nil {
				if !errors.Is(err, ErrSessionNotFound) {
					if logger != nil {
						logger.Error("session lookup", slog.Any("error", err))
					}
					http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := authz.ContextWithIdentity(r.Context(), &authz.Identity{ID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
