package authz

import "sort"

// Privilege level constants. Lower value means more privilege, level 1 is the
// ceiling held by exactly one role (SUPER_ADMIN). LevelRestricted is the
// lowest-privilege level used for Guest and unassigned snapshots. The legacy
// "level >= 100 is super admin" convention from the old backend is gone; these
// constants are the only source of truth.
const (
	LevelSuperAdmin = 1
	LevelAdmin      = 2
	LevelRestricted = 99
)

// Role labels used for the fixed snapshots.
const (
	GuestRoleName      = "Guest"
	UnassignedRoleName = "User"
)

// Capabilities is the resolved, per-request view of what a principal may do.
// The JSON shape is the capability probe contract consumed by UI route guards.
type Capabilities struct {
	CanManageUsers          bool `json:"canManageUsers"`
	CanManageProducts       bool `json:"canManageProducts"`
	CanManageOrders         bool `json:"canManageOrders"`
	CanManageBlog           bool `json:"canManageBlog"`
	CanManageNewsletter     bool `json:"canManageNewsletter"`
	CanViewAnalytics        bool `json:"canViewAnalytics"`
	CanManageRoles          bool `json:"canManageRoles"`
	CanAccessSystemSettings bool `json:"canAccessSystemSettings"`

	Role        string   `json:"userRole"`
	Level       int      `json:"userLevel"`
	Permissions []string `json:"permissions"`
}

// Alias lists for the derived booleans. Some legacy permission names are
// aliases of a canonical one; a capability is granted when the role holds ANY
// of its listed codes.
var (
	ManageUsersAliases          = []string{PermManageUsers}
	ManageProductsAliases       = []string{PermCreateProducts, PermEditProducts, PermManageProducts}
	ManageOrdersAliases         = []string{PermManageOrders, PermProcessRefunds}
	ManageBlogAliases           = []string{PermManageBlog, PermPublishPosts}
	ManageNewsletterAliases     = []string{PermManageNewsletter}
	ViewAnalyticsAliases        = []string{PermViewAnalytics, PermExportReports}
	ManageRolesAliases          = []string{PermManageRoles}
	AccessSystemSettingsAliases = []string{PermAccessSystemSettings, PermManageIntegrations}
)

// NewCapabilities builds the snapshot for a role and its permission codes.
// Codes are deduplicated and sorted so repeated resolution of an unchanged
// principal yields identical output.
func NewCapabilities(role Role, codes []string) Capabilities {
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	sorted := make([]string, 0, len(set))
	for code := range set {
		sorted = append(sorted, code)
	}
	sort.Strings(sorted)

	hasAny := func(aliases []string) bool {
		for _, code := range aliases {
			if _, ok := set[code]; ok {
				return true
			}
		}
		return false
	}

	return Capabilities{
		CanManageUsers:          hasAny(ManageUsersAliases),
		CanManageProducts:       hasAny(ManageProductsAliases),
		CanManageOrders:         hasAny(ManageOrdersAliases),
		CanManageBlog:           hasAny(ManageBlogAliases),
		CanManageNewsletter:     hasAny(ManageNewsletterAliases),
		CanViewAnalytics:        hasAny(ViewAnalyticsAliases),
		CanManageRoles:          hasAny(ManageRolesAliases),
		CanAccessSystemSettings: hasAny(AccessSystemSettingsAliases),
		Role:                    role.DisplayName,
		Level:                   role.Level,
		Permissions:             sorted,
	}
}

// GuestCapabilities is the snapshot for anonymous callers: no permissions,
// lowest privilege, every derived boolean false.
func GuestCapabilities() Capabilities {
	return Capabilities{Role: GuestRoleName, Level: LevelRestricted, Permissions: []string{}}
}

// UnassignedCapabilities is the snapshot for authenticated users without a
// role. Behaviorally identical to Guest; only the role label differs, and
// callers may branch on that label.
func UnassignedCapabilities() Capabilities {
	return Capabilities{Role: UnassignedRoleName, Level: LevelRestricted, Permissions: []string{}}
}

// HasPermission reports whether the resolved permission set contains code.
// Pure set membership, no store access.
func (c Capabilities) HasPermission(code string) bool {
	for _, p := range c.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether the resolved set contains at least one of
// the given codes.
func (c Capabilities) HasAnyPermission(codes ...string) bool {
	for _, code := range codes {
		if c.HasPermission(code) {
			return true
		}
	}
	return false
}

// IsAdminEquivalent derives the legacy boolean admin view from the level
// hierarchy. The old independently mutable isAdmin flag is not persisted.
func (c Capabilities) IsAdminEquivalent() bool {
	return c.Level <= LevelAdmin
}
