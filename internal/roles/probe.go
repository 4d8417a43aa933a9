package roles

import (
	"context"
	"net/http"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/brightcart/brightcart/internal/authz"
	"github.com/brightcart/brightcart/internal/platform/httpx"
)

// ProbeHandler serves the capability probe consumed by UI route guards.
// Concurrent probes for the same principal share one store read via
// singleflight; nothing is cached once the flight completes, so a role change
// is visible on the very next request.
type ProbeHandler struct {
	resolver *authz.Resolver
	group    singleflight.Group
}

// NewProbeHandler constructs a ProbeHandler.
func NewProbeHandler(resolver *authz.Resolver) *ProbeHandler {
	return &ProbeHandler{resolver: resolver}
}

// ServeHTTP resolves the caller's capabilities. Anonymous callers get the
// Guest snapshot with a 200; only a broken store yields an error status.
func (h *ProbeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	principal := authz.IdentityFromContext(r.Context())
	caps, err := h.resolve(r.Context(), principal)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, caps)
}

func (h *ProbeHandler) resolve(ctx context.Context, principal *authz.Identity) (authz.Capabilities, error) {
	if principal == nil {
		return h.resolver.Resolve(ctx, nil)
	}
	v, err, _ := h.group.Do(strconv.FormatInt(principal.ID, 10), func() (any, error) {
		return h.resolver.Resolve(ctx, principal)
	})
	if err != nil {
		return authz.Capabilities{}, err
	}
	return v.(authz.Capabilities), nil
}
