package main

//	@title			brandkit API
//	@version		0.1.0
//	@description	Multi-tenant theme configuration: presets, per-tenant overrides, dark mode and live CSS variables.
//	@BasePath		/api/v1

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/HerbHall/brandkit/api/swagger"
	"github.com/HerbHall/brandkit/internal/config"
	"github.com/HerbHall/brandkit/internal/dashboard"
	"github.com/HerbHall/brandkit/internal/event"
	"github.com/HerbHall/brandkit/internal/server"
	"github.com/HerbHall/brandkit/internal/services"
	"github.com/HerbHall/brandkit/internal/settings"
	"github.com/HerbHall/brandkit/internal/store"
	"github.com/HerbHall/brandkit/internal/theme"
	"github.com/HerbHall/brandkit/internal/themestore"
	"github.com/HerbHall/brandkit/internal/version"
	"github.com/HerbHall/brandkit/internal/webhook"
	"github.com/HerbHall/brandkit/internal/ws"
)

func main() {
	// Subcommand dispatch (before flag.Parse).
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "serve":
			os.Args = append(os.Args[:1], os.Args[2:]...)
		case "resolve":
			os.Exit(runResolve(os.Args[2:], os.Stdout, os.Stderr))
		case "presets":
			os.Exit(runPresets(os.Args[2:], os.Stdout, os.Stderr))
		case "version":
			fmt.Println(version.Info())
			return
		}
	}

	configPath := flag.String("config", "", "path to configuration file")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Load configuration (before logger, so log level/format can be configured).
	viperCfg, err := server.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	cfg := config.New(viperCfg)

	logger, err := config.NewLogger(viperCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("brandkit server starting", zap.String("version", version.Short()))

	if f := viperCfg.ConfigFileUsed(); f != "" {
		logger.Info("configuration loaded",
			zap.String("component", "config"),
			zap.String("source", f),
		)
	} else {
		logger.Warn("no configuration file found, using defaults",
			zap.String("component", "config"),
		)
	}

	themeCfg, err := cfg.Theme()
	if err != nil {
		logger.Fatal("invalid theme configuration", zap.Error(err))
	}
	srvCfg, err := server.ServerConfig(viperCfg)
	if err != nil {
		logger.Fatal("invalid server configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Settings storage: SQLite by default, process memory on request.
	var (
		repo  services.SettingsRepository
		ready server.ReadinessChecker
	)
	switch themeCfg.Storage {
	case config.StorageMemory:
		repo = services.NewMemorySettingsRepository()
		logger.Warn("theme storage is in memory; choices are lost on restart",
			zap.String("component", "database"),
		)
	default:
		dbPath := cfg.DatabasePath()
		if dbPath == "" {
			dbPath = "brandkit.db"
		}
		db, err := store.New(dbPath)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		defer db.Close()

		if err := db.CheckVersion(ctx, version.Short()); err != nil {
			logger.Fatal("database version check failed", zap.Error(err))
		}
		sqliteRepo, err := services.NewSQLiteSettingsRepository(ctx, db)
		if err != nil {
			logger.Fatal("failed to initialize settings repository", zap.Error(err))
		}
		repo = sqliteRepo
		ready = func(ctx context.Context) error {
			return db.DB().PingContext(ctx)
		}
		logger.Info("database initialized",
			zap.String("component", "database"),
			zap.String("path", dbPath),
		)
	}

	bus := event.NewBus(logger.Named("event"))

	var hookCfg webhook.Config
	if err := viperCfg.UnmarshalKey("webhook", &hookCfg); err != nil {
		logger.Fatal("invalid webhook configuration", zap.Error(err))
	}
	if hookCfg.Enabled {
		notifier := webhook.New(hookCfg, logger.Named("webhook"))
		notifier.Subscribe(bus)
		defer notifier.Close()
	}

	// Preset registry: built-ins, then the seed file, then archived tenant presets.
	registry := theme.NewBuiltinRegistry()
	if themeCfg.PresetsFile != "" {
		seeded, err := config.LoadPresetsFile(themeCfg.PresetsFile)
		if err != nil {
			logger.Fatal("failed to load presets file", zap.String("path", themeCfg.PresetsFile), zap.Error(err))
		}
		for _, p := range seeded {
			if err := registry.Register(p); err != nil {
				logger.Fatal("invalid preset in presets file", zap.String("preset", p.ID), zap.Error(err))
			}
		}
		logger.Info("presets file loaded",
			zap.String("component", "theme"),
			zap.String("path", themeCfg.PresetsFile),
			zap.Int("presets", len(seeded)),
		)
	}

	manager := themestore.NewManager(
		theme.NewResolver(registry),
		repo,
		logger.Named("themestore"),
		themestore.WithMaxTenants(themeCfg.MaxTenants),
		themestore.WithApplier(themestore.NewBusApplier(bus)),
		themestore.WithEvents(bus),
	)
	archived, err := manager.LoadPresets(ctx)
	if err != nil {
		logger.Fatal("failed to load archived presets", zap.Error(err))
	}
	logger.Info("theme engine initialized",
		zap.String("component", "theme"),
		zap.Int("presets", registry.Len()),
		zap.Int("archived", archived),
	)

	settingsHandler := settings.NewHandler(manager, logger.Named("settings"))
	wsHandler := ws.NewHandler(manager, bus, logger.Named("ws"))
	defer wsHandler.Close()

	addr := srvCfg.Addr()
	logger.Info("HTTP server configured",
		zap.String("component", "server"),
		zap.String("addr", addr),
	)
	srv := server.New(addr, logger, ready, dashboard.Handler(), srvCfg.Options(), settingsHandler, wsHandler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	logger.Info("brandkit server ready", zap.String("addr", addr))
	fmt.Fprintf(os.Stderr, "\n  brandkit %s is ready!\n  Open http://localhost:%d/?tenant=default to preview a theme.\n\n", version.Short(), srvCfg.Port)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("brandkit server stopped")
}
