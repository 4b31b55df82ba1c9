package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirnagrma/console/internal/admin"
	"github.com/kirnagrma/console/internal/agent"
	"github.com/kirnagrma/console/internal/api"
	"github.com/kirnagrma/console/internal/config"
	"github.com/kirnagrma/console/internal/kvstore"
	"github.com/kirnagrma/console/internal/platform"
	"github.com/kirnagrma/console/internal/prompts"
	"github.com/kirnagrma/console/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open persistence store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	seed := agent.DefaultSeed()
	if cfg.SeedAgentsPath != "" {
		seed, err = agent.LoadSeedFile(cfg.SeedAgentsPath)
		if err != nil {
			slog.Error("failed to load agent seed file", "path", cfg.SeedAgentsPath, "error", err)
			os.Exit(1)
		}
		slog.Info("loaded agent seed file", "path", cfg.SeedAgentsPath, "agents", len(seed))
	}

	agents := agent.NewStore(store, seed)
	sessions := session.NewManager(store, agents)

	router := api.NewRouter(api.RouterDeps{
		AdminCredential: admin.Credential{
			Email:        cfg.AdminEmail,
			Password:     cfg.AdminPassword,
			PasswordHash: cfg.AdminPasswordHash,
		},
		Agents:         agents,
		Sessions:       sessions,
		Queue:          prompts.NewQueue(store),
		Platform:       platform.NewClient(cfg.PlatformAPIURL),
		Store:          store,
		Version:        cfg.Version,
		CORSOrigins:    cfg.CORSOrigins,
		LoginRateLimit: cfg.LoginRateLimit,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting console server", "port", cfg.Port, "version", cfg.Version, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

func openStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		return kvstore.NewSQLite(cfg.DataDir)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		return kvstore.NewPostgres(context.Background(), cfg.DatabaseURL)
	case "memory":
		return kvstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
