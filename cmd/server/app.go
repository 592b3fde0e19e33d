package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/profile-api/internal/config"
	"github.com/phrazzld/profile-api/internal/platform/memory"
	"github.com/phrazzld/profile-api/internal/platform/postgres"
	"github.com/phrazzld/profile-api/internal/service"
	"github.com/phrazzld/profile-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the memory driver is configured
	db *sql.DB

	userStore   store.UserStore
	userService service.UserService
}

// newApplication wires the store and service for the configured storage driver.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	switch cfg.Database.Driver {
	case config.DriverPostgres:
		if db == nil {
			return nil, fmt.Errorf("database connection is required for the %s driver", cfg.Database.Driver)
		}
		app.userStore = postgres.NewPostgresUserStore(db, logger)
	case config.DriverMemory:
		app.userStore = memory.NewUserStore()
		logger.Warn("Using in-memory user store; data is lost on shutdown")
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	app.userService = service.NewUserService(app.userStore, db, cfg.User.MinAge, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
}
