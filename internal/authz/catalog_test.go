package authz

import "testing"

func TestCatalogRegisterIdempotent(t *testing.T) {
	c := NewCatalog()
	if err := c.Register(PermManageUsers, "Manage Users", "v1", CategoryUserManagement); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := c.Register(PermManageUsers, "Manage Users", "v2", CategoryUserManagement); err != nil {
		t.Fatalf("re-register: %v", err)
	}
	all := c.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 permission, got %d", len(all))
	}
	if all[0].Description != "v2" {
		t.Fatalf("expected metadata refresh, got %q", all[0].Description)
	}
}

func TestCatalogRejectsUnknownCategory(t *testing.T) {
	c := NewCatalog()
	err := c.Register("SOMETHING", "", "", Category("BILLING"))
	if err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation kind, got %v", KindOf(err))
	}
}

func TestCatalogRejectsEmptyCode(t *testing.T) {
	c := NewCatalog()
	if err := c.Register("  ", "", "", CategoryAnalytics); err == nil {
		t.Fatalf("expected error for empty code")
	}
}

func TestCatalogByCategorySorted(t *testing.T) {
	c := NewCatalog()
	for _, seed := range SeedPermissions() {
		if err := c.Register(seed.Code, seed.DisplayName, seed.Description, seed.Category); err != nil {
			t.Fatalf("register %s: %v", seed.Code, err)
		}
	}
	perms := c.ByCategory(CategoryProductManagement)
	if len(perms) != 4 {
		t.Fatalf("expected 4 product permissions, got %d", len(perms))
	}
	for i := 1; i < len(perms); i++ {
		if perms[i-1].Code >= perms[i].Code {
			t.Fatalf("expected sorted codes, got %s before %s", perms[i-1].Code, perms[i].Code)
		}
	}
}

func TestCatalogDerivesDisplayName(t *testing.T) {
	c := NewCatalog()
	if err := c.Register(PermProcessRefunds, "", "", CategoryOrderManagement); err != nil {
		t.Fatalf("register: %v", err)
	}
	p, ok := c.Lookup(PermProcessRefunds)
	if !ok {
		t.Fatalf("expected permission registered")
	}
	if p.DisplayName != "Process Refunds" {
		t.Fatalf("expected derived display name, got %q", p.DisplayName)
	}
}
