package roles

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brightcart/brightcart/internal/authz"
)

func probeRequest(t *testing.T, h *ProbeHandler, principal *authz.Identity) authz.Capabilities {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/me/capabilities", nil)
	if principal != nil {
		req = req.WithContext(authz.ContextWithIdentity(req.Context(), principal))
	}
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	if res.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.Code)
	}
	var caps authz.Capabilities
	if err := json.Unmarshal(res.Body.Bytes(), &caps); err != nil {
		t.Fatalf("decode capabilities: %v", err)
	}
	return caps
}

func TestProbeAnonymousGetsGuest(t *testing.T) {
	store := newMemoryStore()
	h := NewProbeHandler(authz.NewResolver(store))

	caps := probeRequest(t, h, nil)
	if caps.Role != authz.GuestRoleName {
		t.Fatalf("userRole = %q, want %q", caps.Role, authz.GuestRoleName)
	}
	if len(caps.Permissions) != 0 {
		t.Fatalf("guest should hold no permissions, got %v", caps.Permissions)
	}
}

func TestProbeReflectsAssignedRole(t *testing.T) {
	store := newMemoryStore()
	roleID := int64(2)
	store.addUser(10, &roleID)
	h := NewProbeHandler(authz.NewResolver(store))

	caps := probeRequest(t, h, &authz.Identity{ID: 10})
	if caps.Role != "Admin" {
		t.Fatalf("userRole = %q, want Admin", caps.Role)
	}
	if !caps.CanManageUsers {
		t.Fatal("admin probe should report canManageUsers")
	}
}

func TestProbeSeesRoleChangeImmediately(t *testing.T) {
	store := newMemoryStore()
	adminID := int64(2)
	store.addUser(10, &adminID)
	h := NewProbeHandler(authz.NewResolver(store))

	before := probeRequest(t, h, &authz.Identity{ID: 10})
	if before.Role != "Admin" {
		t.Fatalf("userRole = %q, want Admin", before.Role)
	}

	userID := int64(5)
	store.addUser(10, &userID)

	after := probeRequest(t, h, &authz.Identity{ID: 10})
	if after.Role != "User" {
		t.Fatalf("userRole = %q after reassignment, want User", after.Role)
	}
	if after.CanManageUsers {
		t.Fatal("reassigned user should no longer manage users")
	}
}
