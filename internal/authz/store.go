package authz

import "context"

// Permission is an atomic, named capability.
type Permission struct {
	Code        string
	DisplayName string
	Description string
	Category    Category
}

// Role bundles permissions under a privilege level. Lower level means more
// privilege; level 1 is the ceiling.
type Role struct {
	ID          int64
	Name        string
	DisplayName string
	Description string
	Level       int
}

// Identity is the authenticated principal as seen by the engine. Credential
// verification happens elsewhere; the engine only consumes the ID. A nil
// *Identity means an anonymous caller.
type Identity struct {
	ID    int64
	Email string
}

// RoleStore is the persistence boundary for roles, permissions and the
// one-role-per-user assignment. Implementations must serialize SetUserRole per
// target user (row lock or equivalent) so concurrent assignments cannot race.
type RoleStore interface {
	FindRoleByID(ctx context.Context, id int64) (Role, error)
	FindRoleByName(ctx context.Context, name string) (Role, error)
	FindPermissionByName(ctx context.Context, code string) (Permission, error)
	// GetUserRole returns nil with no error when the user exists but holds no
	// role. A missing user is NOT_FOUND.
	GetUserRole(ctx context.Context, userID int64) (*Role, error)
	ListRolePermissions(ctx context.Context, roleID int64) ([]string, error)
	// SetUserRole writes the assignment under a per-user lock and returns the
	// previous role (nil when the user had none).
	SetUserRole(ctx context.Context, userID, roleID int64) (*Role, error)
}
