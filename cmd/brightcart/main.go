package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/brightcart/brightcart/internal/app"
	"github.com/brightcart/brightcart/internal/audit"
	"github.com/brightcart/brightcart/internal/auth"
	"github.com/brightcart/brightcart/internal/authz"
	"github.com/brightcart/brightcart/internal/observability"
	"github.com/brightcart/brightcart/internal/platform/cache"
	"github.com/brightcart/brightcart/internal/platform/db"
	"github.com/brightcart/brightcart/internal/roles"
	"github.com/brightcart/brightcart/internal/users"
	"github.com/brightcart/brightcart/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	catalog := authz.NewCatalog()
	for _, seed := range authz.SeedPermissions() {
		if err := catalog.Register(seed.Code, seed.DisplayName, seed.Description, seed.Category); err != nil {
			logger.Error("register permission", slog.String("code", seed.Code), slog.Any("error", err))
			os.Exit(1)
		}
	}

	metrics := observability.NewMetrics()

	guardCfg := authz.GuardConfig{ProtectLastSuperAdmin: cfg.ProtectLastSuperAdmin}
	roleStore := roles.NewRepository(pool, guardCfg)
	resolver := authz.NewResolver(roleStore)
	guard := authz.NewGuard(guardCfg)
	authzMW := authz.Middleware{Resolver: resolver, Logger: logger, Metrics: metrics}

	auditService := audit.NewService(audit.NewRepository(pool))

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()
	auditRetry := jobs.NewEnqueuer(asynqClient)

	rolesService := roles.NewService(roleStore, resolver, guard, auditService, auditRetry, metrics, logger)
	rolesHandler := roles.NewHandler(logger, rolesService, authzMW)
	probeHandler := roles.NewProbeHandler(resolver)
	permissionsHandler := roles.NewPermissionsHandler(catalog, authzMW)

	usersHandler := users.NewHandler(users.NewService(users.NewRepository(pool)), authzMW)
	auditHandler := audit.NewHandler(auditService, authzMW)

	sessions := auth.NewSessionStore(redisClient, cfg.SessionPrefix, cfg.SessionTTL)
	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, sessions)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		Sessions:           sessions,
		AuthHandler:        authHandler,
		ProbeHandler:       probeHandler,
		RolesHandler:       rolesHandler,
		PermissionsHandler: permissionsHandler,
		UsersHandler:       usersHandler,
		AuditHandler:       auditHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
