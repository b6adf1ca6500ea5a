package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/foliohub/folio-api/internal/config"
	"github.com/foliohub/folio-api/internal/platform/chrome"
	"github.com/foliohub/folio-api/internal/platform/postgres"
	"github.com/foliohub/folio-api/internal/service"
	"github.com/foliohub/folio-api/internal/service/auth"
	"github.com/foliohub/folio-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore    store.UserStore
	profileStore store.ProfileStore
	followStore  store.FollowStore
	postStore    store.PostStore

	// Platform services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	pdfRenderer      chrome.Renderer

	// Domain services
	accountService service.AccountService
	profileService service.ProfileService
	followService  service.FollowService
	postService    service.PostService
	adminService   service.AdminService
	exportService  service.ExportService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()
	app.pdfRenderer = chrome.NewChromeRenderer(
		logger.With("component", "pdf_renderer"),
		time.Duration(cfg.PDF.RenderTimeoutSeconds)*time.Second,
	)

	app.userStore = postgres.NewPostgresUserStore(db, logger, cfg.Auth.BcryptCost)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.followStore = postgres.NewPostgresFollowStore(db, logger)
	app.postStore = postgres.NewPostgresPostStore(db, logger)

	app.accountService, err = service.NewAccountService(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.profileService, err = service.NewProfileService(app.profileStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	app.followService, err = service.NewFollowService(app.followStore, app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create follow service: %w", err)
	}

	app.postService, err = service.NewPostService(app.postStore, app.followStore, app.userStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create post service: %w", err)
	}

	app.adminService, err = service.NewAdminService(app.userStore, app.postStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %w", err)
	}

	app.exportService, err = service.NewExportService(app.profileStore, app.pdfRenderer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create export service: %w", err)
	}

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
		closeDatabase(app.db, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}
