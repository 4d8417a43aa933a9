package app_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/brightcart/brightcart/internal/app"
	_ "github.com/brightcart/brightcart/internal/testing/guard"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := app.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q, want :8080", cfg.AppAddr)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Fatalf("SessionTTL = %v, want 720h", cfg.SessionTTL)
	}
	if !cfg.ProtectLastSuperAdmin {
		t.Fatal("ProtectLastSuperAdmin should default to true")
	}
	if cfg.IsProduction() {
		t.Fatal("development config reported production")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("PROTECT_LAST_SUPER_ADMIN", "false")

	cfg, err := app.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production config")
	}
	if cfg.RateLimitRequests != 5 {
		t.Fatalf("RateLimitRequests = %d, want 5", cfg.RateLimitRequests)
	}
	if cfg.ProtectLastSuperAdmin {
		t.Fatal("ProtectLastSuperAdmin should be disabled")
	}
}

func TestInTestMode(t *testing.T) {
	t.Setenv("BRIGHTCART_TEST_MODE", "1")
	app.RefreshTestMode()
	if !app.InTestMode() {
		t.Fatal("expected test mode")
	}

	_ = os.Unsetenv("BRIGHTCART_TEST_MODE")
	app.RefreshTestMode()
	if app.InTestMode() {
		t.Fatal("expected test mode off after refresh")
	}
	t.Setenv("BRIGHTCART_TEST_MODE", "1")
	app.RefreshTestMode()
}

func TestMiddlewareStackBuilds(t *testing.T) {
	cfg := &app.Config{AppRequestTimeout: time.Second, RateLimitRequests: 10, RateLimitWindow: time.Minute}
	stack := app.MiddlewareStack(app.MiddlewareConfig{Logger: slog.Default(), Config: cfg})
	if len(stack) == 0 {
		t.Fatal("expected middleware stack")
	}
}
