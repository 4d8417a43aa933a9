package authz

import "testing"

func TestCheckAssignRequiresManageRoles(t *testing.T) {
	g := NewGuard(DefaultGuardConfig())
	actor := Capabilities{Level: LevelAdmin, Permissions: []string{PermManageUsers}}
	err := g.CheckAssign(actor, Role{Name: RoleUser, Level: 5})
	if !IsDenied(err) {
		t.Fatalf("expected PERMISSION_DENIED without MANAGE_ROLES, got %v", err)
	}
}

func TestCheckAssignBlocksPrivilegeEscalation(t *testing.T) {
	g := NewGuard(DefaultGuardConfig())
	admin := NewCapabilities(Role{Name: RoleAdmin, DisplayName: "Admin", Level: LevelAdmin}, []string{PermManageRoles})

	err := g.CheckAssign(admin, Role{Name: RoleSuperAdmin, Level: LevelSuperAdmin})
	if !IsDenied(err) {
		t.Fatalf("expected admin (level 2) denied assigning super admin (level 1), got %v", err)
	}
}

func TestCheckAssignLevelInvariant(t *testing.T) {
	g := NewGuard(DefaultGuardConfig())
	for actorLevel := 1; actorLevel <= 5; actorLevel++ {
		for roleLevel := 1; roleLevel <= 5; roleLevel++ {
			actor := NewCapabilities(Role{DisplayName: "Actor", Level: actorLevel}, []string{PermManageRoles})
			err := g.CheckAssign(actor, Role{Name: "TARGET", Level: roleLevel})
			allowed := err == nil
			if allowed && actorLevel > roleLevel {
				t.Fatalf("actor level %d must not grant role level %d", actorLevel, roleLevel)
			}
			if !allowed && actorLevel <= roleLevel {
				t.Fatalf("actor level %d should grant role level %d, got %v", actorLevel, roleLevel, err)
			}
		}
	}
}

func TestCheckAssignSameLevelAllowed(t *testing.T) {
	g := NewGuard(DefaultGuardConfig())
	super := NewCapabilities(Role{DisplayName: "Super Admin", Level: LevelSuperAdmin}, []string{PermManageRoles})
	if err := g.CheckAssign(super, Role{Name: RoleSuperAdmin, Level: LevelSuperAdmin}); err != nil {
		t.Fatalf("super admin should grant super admin: %v", err)
	}
}
