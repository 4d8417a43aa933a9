package roles

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightcart/brightcart/internal/authz"
	"github.com/brightcart/brightcart/internal/platform/httpx"
)

// PermissionsHandler serves the permission catalog grouped by category.
type PermissionsHandler struct {
	catalog *authz.Catalog
	guard   authz.Middleware
}

// NewPermissionsHandler builds PermissionsHandler instance.
func NewPermissionsHandler(catalog *authz.Catalog, guard authz.Middleware) *PermissionsHandler {
	return &PermissionsHandler{catalog: catalog, guard: guard}
}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.RequireAny(authz.PermManageRoles, authz.PermManageUsers))
		r.Get("/", h.listPermissions)
	})
}

type permissionGroup struct {
	Category    authz.Category     `json:"category"`
	Permissions []authz.Permission `json:"permissions"`
}

func (h *PermissionsHandler) listPermissions(w http.ResponseWriter, r *http.Request) {
	groups := make([]permissionGroup, 0, len(authz.Categories()))
	for _, cat := range authz.Categories() {
		perms := h.catalog.ByCategory(cat)
		if len(perms) == 0 {
			continue
		}
		groups = append(groups, permissionGroup{Category: cat, Permissions: perms})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": groups})
}
