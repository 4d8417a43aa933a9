package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightcart/brightcart/internal/authz"
	"github.com/brightcart/brightcart/internal/platform/httpx"
)

// Handler exposes the read-only audit query endpoint.
type Handler struct {
	service *Service
	guard   authz.Middleware
}

// NewHandler constructs a Handler.
func NewHandler(service *Service, guard authz.Middleware) *Handler {
	return &Handler{service: service, guard: guard}
}

// MountRoutes registers audit routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(authz.PermManageRoles, authz.PermAccessSystemSettings))
		r.Get("/", h.list)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		ResourceType: r.URL.Query().Get("resourceType"),
	}
	if raw := r.URL.Query().Get("actorId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "actorId must be an integer")
			return
		}
		filter.ActorID = id
	}
	for name, dst := range map[string]*time.Time{"from": &filter.From, "to": &filter.To} {
		if raw := r.URL.Query().Get(name); raw != "" {
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				httpx.Problem(w, http.StatusBadRequest, "Validation Failed", name+" must be RFC3339")
				return
			}
			*dst = ts
		}
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	filter.PageSize, _ = strconv.Atoi(r.URL.Query().Get("pageSize"))

	result, err := h.service.Query(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
