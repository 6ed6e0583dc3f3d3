// Package main implements the entry point for the web GIS API server:
// account registration/login with JWT issuance and ownership-scoped CRUD of
// geographic point records.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/dkoru/webgis-api/internal/config"
	"github.com/dkoru/webgis-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run database migrations (up|down|status) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// run loads configuration, wires dependencies and either executes a
// migration command or starts the HTTP server.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				appLogger.Error("failed to close database connection", "error", cerr)
			}
		}()
		return runMigrations(db, migrateCmd)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return err
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
