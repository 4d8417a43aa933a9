package authz

// GuardConfig tunes the privilege guard.
type GuardConfig struct {
	// ProtectLastSuperAdmin rejects assignments that would leave the system
	// with zero holders of the ceiling role. The check itself runs inside the
	// store write (under the per-user lock); this flag only switches it on.
	ProtectLastSuperAdmin bool
}

// DefaultGuardConfig keeps the last-super-admin protection on.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{ProtectLastSuperAdmin: true}
}

// Guard validates requested role reassignments against the acting principal's
// own resolved capabilities before any mutation happens.
type Guard struct {
	cfg GuardConfig
}

// NewGuard constructs a Guard.
func NewGuard(cfg GuardConfig) *Guard {
	return &Guard{cfg: cfg}
}

// Config exposes the guard configuration to collaborating stores.
func (g *Guard) Config() GuardConfig {
	return g.cfg
}

// CheckAssign decides whether the actor may grant targetRole. A nil return
// means allowed; otherwise the error is PERMISSION_DENIED with the reason.
//
// The actor needs MANAGE_ROLES and must be at least as privileged as the role
// being granted (numerically, actor level <= target level). The second rule is
// what blocks a mid-level admin from handing out the top role.
func (g *Guard) CheckAssign(actor Capabilities, targetRole Role) error {
	if !actor.CanManageRoles {
		return Denied("requires %s permission", PermManageRoles)
	}
	if actor.Level > targetRole.Level {
		return Denied("cannot grant a role more privileged than your own (actor level %d, role level %d)", actor.Level, targetRole.Level)
	}
	return nil
}
