package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/dbalakin/notewall/internal/config"
	"github.com/dbalakin/notewall/internal/db"
	"github.com/dbalakin/notewall/internal/repo"
	"github.com/dbalakin/notewall/internal/scheduler"
)

func main() {

	// Load configuration
	cfg := config.Load()

	setupLogger(cfg.LogFormat)

	// A predictable signing secret in production means forgeable session
	// cookies, so refuse to start.
	if cfg.Env == "prod" && cfg.SessionSecret == "dev-secret" {
		slog.Error("SESSION_SECRET must be set in prod")
		os.Exit(1)
	}

	// Connect to database FIRST
	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	slog.Info("connected to the database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Migrate(database); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Background purge of expired session rows
	cronJobs, err := scheduler.Run(repo.NewSessionRepo(database), cfg.SessionPurgeSpec)
	if err != nil {
		slog.Error("scheduler failed to start", "error", err)
		os.Exit(1)
	}
	defer cronJobs.Stop()

	r := newRouter(database, cfg)

	// Start server LAST
	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
