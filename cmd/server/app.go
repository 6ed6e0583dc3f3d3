package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dkoru/webgis-api/internal/config"
	"github.com/dkoru/webgis-api/internal/platform/postgres"
	"github.com/dkoru/webgis-api/internal/service/auth"
	"github.com/dkoru/webgis-api/internal/service/points"
	"github.com/dkoru/webgis-api/internal/store"
)

// application holds all the shared application dependencies so everything is
// constructed once at startup and passed explicitly - no ambient singletons.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (interfaces for proper abstraction)
	userStore  store.UserStore
	pointStore store.PointStore

	// Services
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
	pointService     points.Service
}

// newApplication wires the stores and services over the given database
// connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	pointStore := postgres.NewPostgresPointStore(db, logger)

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        userStore,
		pointStore:       pointStore,
		jwtService:       jwtService,
		passwordHasher:   auth.NewBcryptHasher(),
		passwordVerifier: auth.NewBcryptVerifier(),
		pointService:     points.NewService(pointStore, userStore, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
