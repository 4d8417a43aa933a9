package authz

import (
	"reflect"
	"testing"
)

func TestViewerRoleYieldsSinglePermission(t *testing.T) {
	role := Role{ID: 5, Name: RoleUser, DisplayName: "User", Level: 5}
	caps := NewCapabilities(role, []string{PermViewProducts})

	if caps.CanManageUsers || caps.CanManageProducts || caps.CanManageOrders ||
		caps.CanManageBlog || caps.CanManageNewsletter || caps.CanViewAnalytics ||
		caps.CanManageRoles || caps.CanAccessSystemSettings {
		t.Fatalf("expected every derived boolean false, got %+v", caps)
	}
	if !reflect.DeepEqual(caps.Permissions, []string{PermViewProducts}) {
		t.Fatalf("expected permissions [VIEW_PRODUCTS], got %v", caps.Permissions)
	}
}

func TestSuperAdminHoldsEveryCapability(t *testing.T) {
	role := Role{ID: 1, Name: RoleSuperAdmin, DisplayName: "Super Admin", Level: LevelSuperAdmin}
	all := make([]string, 0, len(SeedPermissions()))
	for _, p := range SeedPermissions() {
		all = append(all, p.Code)
	}
	caps := NewCapabilities(role, all)

	for name, value := range map[string]bool{
		"canManageUsers":          caps.CanManageUsers,
		"canManageProducts":       caps.CanManageProducts,
		"canManageOrders":         caps.CanManageOrders,
		"canManageBlog":           caps.CanManageBlog,
		"canManageNewsletter":     caps.CanManageNewsletter,
		"canViewAnalytics":        caps.CanViewAnalytics,
		"canManageRoles":          caps.CanManageRoles,
		"canAccessSystemSettings": caps.CanAccessSystemSettings,
	} {
		if !value {
			t.Fatalf("expected %s true for super admin", name)
		}
	}
	if len(caps.Permissions) != 18 {
		t.Fatalf("expected 18 permissions, got %d", len(caps.Permissions))
	}
}

func TestProductAliasesAnyOf(t *testing.T) {
	role := Role{DisplayName: "Editor", Level: 3}
	for _, code := range []string{PermCreateProducts, PermEditProducts, PermManageProducts} {
		caps := NewCapabilities(role, []string{code})
		if !caps.CanManageProducts {
			t.Fatalf("expected CanManageProducts true for %s alone", code)
		}
		if !caps.HasAnyPermission(PermCreateProducts, PermEditProducts, PermManageProducts) {
			t.Fatalf("expected HasAnyPermission true for %s", code)
		}
	}
	caps := NewCapabilities(role, []string{PermViewProducts})
	if caps.CanManageProducts {
		t.Fatalf("VIEW_PRODUCTS must not grant CanManageProducts")
	}
	if caps.HasAnyPermission(PermCreateProducts, PermEditProducts, PermManageProducts) {
		t.Fatalf("expected HasAnyPermission false without any alias")
	}
}

func TestPermissionsSortedAndDeduplicated(t *testing.T) {
	caps := NewCapabilities(Role{}, []string{PermViewOrders, PermManageOrders, PermViewOrders})
	want := []string{PermManageOrders, PermViewOrders}
	if !reflect.DeepEqual(caps.Permissions, want) {
		t.Fatalf("expected %v, got %v", want, caps.Permissions)
	}
}

func TestGuestAndUnassignedSnapshots(t *testing.T) {
	guest := GuestCapabilities()
	unassigned := UnassignedCapabilities()

	if guest.Role != "Guest" || unassigned.Role != "User" {
		t.Fatalf("unexpected role labels: %q / %q", guest.Role, unassigned.Role)
	}
	if guest.Level != LevelRestricted || unassigned.Level != LevelRestricted {
		t.Fatalf("expected lowest privilege level for both snapshots")
	}
	if len(guest.Permissions) != 0 || len(unassigned.Permissions) != 0 {
		t.Fatalf("expected empty permission lists")
	}

	// Apart from the label the two snapshots must stay identical.
	unassigned.Role = guest.Role
	if !reflect.DeepEqual(guest, unassigned) {
		t.Fatalf("guest and unassigned snapshots diverge beyond the role label")
	}
}

func TestIsAdminEquivalent(t *testing.T) {
	if !(Capabilities{Level: LevelSuperAdmin}).IsAdminEquivalent() {
		t.Fatalf("level 1 should be admin equivalent")
	}
	if !(Capabilities{Level: LevelAdmin}).IsAdminEquivalent() {
		t.Fatalf("level 2 should be admin equivalent")
	}
	if (Capabilities{Level: 3}).IsAdminEquivalent() {
		t.Fatalf("level 3 should not be admin equivalent")
	}
}
