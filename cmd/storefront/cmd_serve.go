package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/apidocs"
	"github.com/HerbHall/storefront/internal/auth"
	"github.com/HerbHall/storefront/internal/cart"
	"github.com/HerbHall/storefront/internal/catalog"
	"github.com/HerbHall/storefront/internal/config"
	"github.com/HerbHall/storefront/internal/contact"
	"github.com/HerbHall/storefront/internal/dashboard"
	"github.com/HerbHall/storefront/internal/event"
	"github.com/HerbHall/storefront/internal/server"
	"github.com/HerbHall/storefront/internal/services"
	"github.com/HerbHall/storefront/internal/settings"
	"github.com/HerbHall/storefront/internal/store"
	"github.com/HerbHall/storefront/internal/theme"
	"github.com/HerbHall/storefront/internal/version"
	"github.com/HerbHall/storefront/internal/webhook"
	"github.com/HerbHall/storefront/internal/ws"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the storefront HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}

	// Configuration comes first so the logger can be configured.
	viperCfg, err := server.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.New(viperCfg)

	logger, err := config.NewLogger(viperCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("storefront starting", zap.String("version", version.Short()))
	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded", zap.String("component", "config"), zap.String("source", f))
	} else {
		logger.Warn("no configuration file found, using defaults", zap.String("component", "config"))
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Database
	dbPath := viperCfg.GetString("database.path")
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	db, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.CheckVersion(ctx, version.Version); err != nil {
		return err
	}
	logger.Info("database initialized", zap.String("component", "database"), zap.String("path", dbPath))

	bus := event.NewBus(logger.Named("event"))

	settingsRepo, err := services.NewSQLiteSettingsRepository(ctx, db)
	if err != nil {
		return fmt.Errorf("initialize settings repository: %w", err)
	}

	// Theme engine
	sheet := theme.NewStyleSheet()
	engine, err := theme.New(ctx, theme.SettingsStore(settingsRepo), sheet,
		theme.WithLogger(logger.Named("theme")),
		theme.WithPublisher(bus),
	)
	if err != nil {
		return fmt.Errorf("initialize theme engine: %w", err)
	}
	activeID, _ := engine.Active()
	logger.Info("theme engine initialized", zap.String("component", "theme"), zap.String("theme_id", string(activeID)))

	// Catalog client
	catalogCfg := catalog.DefaultConfig()
	if err := cfg.Sub("catalog").Unmarshal(&catalogCfg); err != nil {
		return fmt.Errorf("decode catalog config: %w", err)
	}
	catalogOpts := []catalog.Option{catalog.WithLogger(logger.Named("catalog"))}
	if catalogCfg.Redis.Addr != "" {
		redisCache, err := catalog.NewRedisCache(ctx, catalogCfg.Redis, catalogCfg.CacheTTL, logger.Named("catalog"))
		if err != nil {
			return fmt.Errorf("initialize catalog cache: %w", err)
		}
		defer redisCache.Close()
		catalogOpts = append(catalogOpts, catalog.WithCache(redisCache))
	}
	catalogClient := catalog.NewClient(catalogCfg, catalogOpts...)
	logger.Info("catalog client configured",
		zap.String("component", "catalog"),
		zap.String("base_url", catalogCfg.BaseURL),
		zap.Duration("cache_ttl", catalogCfg.CacheTTL),
		zap.Bool("redis_cache", catalogCfg.Redis.Addr != ""),
	)
	if catalogCfg.WarmSchedule != "" {
		warmer, err := catalog.NewWarmer(catalogClient, catalogCfg.WarmSchedule, logger.Named("catalog"))
		if err != nil {
			return fmt.Errorf("initialize catalog warmer: %w", err)
		}
		warmer.Start()
		defer warmer.Stop()
	}

	// Contact form
	var contactCfg contact.Config
	if err := cfg.Sub("contact").Unmarshal(&contactCfg); err != nil {
		return fmt.Errorf("decode contact config: %w", err)
	}
	contactSvc, err := contact.NewService(ctx, db, contactCfg, bus, logger.Named("contact"))
	if err != nil {
		return fmt.Errorf("initialize contact service: %w", err)
	}

	cartSvc := cart.NewService(catalogClient, logger.Named("cart"))

	// Outbound notifications
	webhookCfg := webhook.DefaultConfig()
	if err := cfg.Sub("webhook").Unmarshal(&webhookCfg); err != nil {
		return fmt.Errorf("decode webhook config: %w", err)
	}
	notifier := webhook.New(webhookCfg, bus, logger.Named("webhook"))
	notifier.Start(ctx)
	defer notifier.Stop()

	// Admin auth
	var authCfg auth.Config
	if err := cfg.Sub("auth").Unmarshal(&authCfg); err != nil {
		return fmt.Errorf("decode auth config: %w", err)
	}
	authSvc, err := auth.NewService(authCfg, logger.Named("auth"))
	if err != nil {
		return fmt.Errorf("initialize auth: %w", err)
	}

	// HTTP handlers
	wsHandler := ws.NewHandler(engine, bus, logger.Named("ws"))
	defer wsHandler.Close()

	routes := []server.RouteRegistrar{
		auth.NewHandler(authSvc, logger.Named("auth")),
		settings.NewHandler(engine, sheet, settingsRepo, logger.Named("settings")),
		catalog.NewHandler(catalogClient, logger.Named("catalog")),
		contact.NewHandler(contactSvc, logger.Named("contact")),
		cart.NewHandler(cartSvc, logger.Named("cart")),
		wsHandler,
	}

	var srvCfg server.Config
	if err := cfg.Sub("server").Unmarshal(&srvCfg); err != nil {
		return fmt.Errorf("decode server config: %w", err)
	}
	readyCheck := server.ReadinessChecker(func(ctx context.Context) error {
		return db.DB().PingContext(ctx)
	})
	apidocs.SwaggerInfo.Version = version.Short()
	srv := server.New(srvCfg, logger, readyCheck, auth.Middleware(authSvc, auth.AdminRoutes), dashboard.Handler(), routes...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("storefront ready", zap.String("addr", srvCfg.Addr()))
	fmt.Fprintf(os.Stderr, "\n  Storefront %s is ready!\n  Open http://localhost:%d in your browser.\n\n", version.Short(), srvCfg.Port)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("storefront stopped")
	return nil
}
