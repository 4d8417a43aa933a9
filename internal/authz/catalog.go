package authz

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category groups permissions in the catalog. The set is fixed; permissions
// outside these categories are rejected at registration.
type Category string

const (
	CategoryUserManagement    Category = "USER_MANAGEMENT"
	CategoryProductManagement Category = "PRODUCT_MANAGEMENT"
	CategoryOrderManagement   Category = "ORDER_MANAGEMENT"
	CategoryContentManagement Category = "CONTENT_MANAGEMENT"
	CategoryAnalytics         Category = "ANALYTICS"
	CategorySystemManagement  Category = "SYSTEM_MANAGEMENT"
	CategoryCustomerSupport   Category = "CUSTOMER_SUPPORT"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryUserManagement,
		CategoryProductManagement,
		CategoryOrderManagement,
		CategoryContentManagement,
		CategoryAnalytics,
		CategorySystemManagement,
		CategoryCustomerSupport,
	}
}

// Platform permission codes. Codes are unique and immutable once registered.
const (
	PermManageUsers = "MANAGE_USERS"
	PermViewUsers   = "VIEW_USERS"
	PermManageRoles = "MANAGE_ROLES"

	PermCreateProducts = "CREATE_PRODUCTS"
	PermEditProducts   = "EDIT_PRODUCTS"
	PermManageProducts = "MANAGE_PRODUCTS"
	PermViewProducts   = "VIEW_PRODUCTS"

	PermManageOrders   = "MANAGE_ORDERS"
	PermViewOrders     = "VIEW_ORDERS"
	PermProcessRefunds = "PROCESS_REFUNDS"

	PermManageBlog       = "MANAGE_BLOG"
	PermPublishPosts     = "PUBLISH_POSTS"
	PermManageNewsletter = "MANAGE_NEWSLETTER"

	PermViewAnalytics = "VIEW_ANALYTICS"
	PermExportReports = "EXPORT_REPORTS"

	PermAccessSystemSettings = "ACCESS_SYSTEM_SETTINGS"
	PermManageIntegrations   = "MANAGE_INTEGRATIONS"

	PermViewSupportTickets = "VIEW_SUPPORT_TICKETS"
)

// Catalog is the static registry of permissions grouped by category. It is
// seeded at bootstrap and safe for concurrent reads afterwards. There is no
// deletion: retiring a live permission is not supported.
type Catalog struct {
	mu     sync.RWMutex
	byCode map[string]Permission
	order  []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byCode: make(map[string]Permission)}
}

// Register adds or updates a permission. Registering an existing code keeps its
// identity and refreshes metadata, so re-seeding on every boot is harmless.
func (c *Catalog) Register(code, displayName, description string, category Category) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return Invalid("permission code required")
	}
	if !validCategory(category) {
		return Invalid("unknown permission category %q", category)
	}
	if displayName == "" {
		displayName = displayNameFromCode(code)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byCode[code]; !exists {
		c.order = append(c.order, code)
	}
	c.byCode[code] = Permission{
		Code:        code,
		DisplayName: displayName,
		Description: description,
		Category:    category,
	}
	return nil
}

// All returns every registered permission in registration order.
func (c *Catalog) All() []Permission {
	c.mu.RLock()
	defer c.mu.RUnlock()
	perms := make([]Permission, 0, len(c.order))
	for _, code := range c.order {
		perms = append(perms, c.byCode[code])
	}
	return perms
}

// ByCategory returns the permissions in one category, sorted by code.
func (c *Catalog) ByCategory(category Category) []Permission {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var perms []Permission
	for _, code := range c.order {
		if p := c.byCode[code]; p.Category == category {
			perms = append(perms, p)
		}
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i].Code < perms[j].Code })
	return perms
}

// Lookup fetches a permission by code.
func (c *Catalog) Lookup(code string) (Permission, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.byCode[code]
	return p, ok
}

func validCategory(category Category) bool {
	for _, c := range Categories() {
		if c == category {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// displayNameFromCode turns MANAGE_USERS into "Manage Users".
func displayNameFromCode(code string) string {
	return titleCaser.String(strings.ReplaceAll(strings.ToLower(code), "_", " "))
}
