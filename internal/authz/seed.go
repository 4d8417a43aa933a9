package authz

// PermissionSeed describes one bootstrap catalog entry.
type PermissionSeed struct {
	Code        string
	DisplayName string
	Description string
	Category    Category
}

// RoleSeed describes one bootstrap role with its permission grants.
type RoleSeed struct {
	Name        string
	DisplayName string
	Description string
	Level       int
	Permissions []string
}

// Built-in role names.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleSupport    = "SUPPORT"
	RoleUser       = "USER"
)

// SeedPermissions returns the full platform catalog. Seeding is re-run on
// every bootstrap; Register is idempotent by code so this is safe.
func SeedPermissions() []PermissionSeed {
	return []PermissionSeed{
		{PermManageUsers, "Manage Users", "Create, edit and deactivate user accounts", CategoryUserManagement},
		{PermViewUsers, "View Users", "Browse user accounts", CategoryUserManagement},
		{PermManageRoles, "Manage Roles", "Assign roles and edit role permissions", CategoryUserManagement},

		{PermCreateProducts, "Create Products", "Add products to the storefront", CategoryProductManagement},
		{PermEditProducts, "Edit Products", "Change product details and pricing", CategoryProductManagement},
		{PermManageProducts, "Manage Products", "Full product lifecycle control", CategoryProductManagement},
		{PermViewProducts, "View Products", "Browse the product list", CategoryProductManagement},

		{PermManageOrders, "Manage Orders", "Update order state and fulfilment", CategoryOrderManagement},
		{PermViewOrders, "View Orders", "Browse customer orders", CategoryOrderManagement},
		{PermProcessRefunds, "Process Refunds", "Issue refunds on captured payments", CategoryOrderManagement},

		{PermManageBlog, "Manage Blog", "Edit blog content", CategoryContentManagement},
		{PermPublishPosts, "Publish Posts", "Publish and unpublish blog posts", CategoryContentManagement},
		{PermManageNewsletter, "Manage Newsletter", "Edit newsletter campaigns and subscribers", CategoryContentManagement},

		{PermViewAnalytics, "View Analytics", "Read sales and traffic dashboards", CategoryAnalytics},
		{PermExportReports, "Export Reports", "Download analytics exports", CategoryAnalytics},

		{PermAccessSystemSettings, "Access System Settings", "Read and change system configuration", CategorySystemManagement},
		{PermManageIntegrations, "Manage Integrations", "Configure third-party integrations", CategorySystemManagement},

		{PermViewSupportTickets, "View Support Tickets", "Read customer support tickets", CategoryCustomerSupport},
	}
}

// SeedRoles returns the bootstrap role ladder. SUPER_ADMIN holds every seeded
// permission and is the only role at the ceiling level.
func SeedRoles() []RoleSeed {
	all := make([]string, 0, len(SeedPermissions()))
	for _, p := range SeedPermissions() {
		all = append(all, p.Code)
	}
	return []RoleSeed{
		{
			Name:        RoleSuperAdmin,
			DisplayName: "Super Admin",
			Description: "Unrestricted access to every capability",
			Level:       LevelSuperAdmin,
			Permissions: all,
		},
		{
			Name:        RoleAdmin,
			DisplayName: "Admin",
			Description: "Day-to-day administration without system settings",
			Level:       LevelAdmin,
			Permissions: []string{
				PermManageUsers, PermViewUsers, PermManageRoles,
				PermCreateProducts, PermEditProducts, PermManageProducts, PermViewProducts,
				PermManageOrders, PermViewOrders, PermProcessRefunds,
				PermManageBlog, PermPublishPosts, PermManageNewsletter,
				PermViewAnalytics, PermExportReports,
				PermViewSupportTickets,
			},
		},
		{
			Name:        RoleManager,
			DisplayName: "Manager",
			Description: "Catalog and order operations",
			Level:       3,
			Permissions: []string{
				PermCreateProducts, PermEditProducts, PermViewProducts,
				PermManageOrders, PermViewOrders,
				PermViewAnalytics,
			},
		},
		{
			Name:        RoleSupport,
			DisplayName: "Support",
			Description: "Customer support and read access",
			Level:       4,
			Permissions: []string{
				PermViewUsers, PermViewOrders, PermViewProducts, PermViewSupportTickets,
			},
		},
		{
			Name:        RoleUser,
			DisplayName: "User",
			Description: "Storefront browsing only",
			Level:       5,
			Permissions: []string{PermViewProducts},
		},
	}
}
