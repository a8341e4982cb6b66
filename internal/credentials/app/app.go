package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/credentials/internal/credentials/http"
	"github.com/aussiebroadwan/credentials/internal/credentials/observability"
	"github.com/aussiebroadwan/credentials/internal/credentials/service"
	"github.com/aussiebroadwan/credentials/internal/credentials/store"
	"github.com/aussiebroadwan/credentials/internal/credentials/store/drivers/postgres"
	"github.com/aussiebroadwan/credentials/internal/credentials/store/drivers/sqlite"
	"github.com/aussiebroadwan/credentials/pkg/cryptox"
	"github.com/aussiebroadwan/credentials/pkg/jwtx"
	"github.com/aussiebroadwan/credentials/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the credentials service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	db      store.Store
	tokens  *jwtx.HS256
	hasher  *cryptox.Hasher
	metrics *observability.Metrics

	rolesService        *service.RolesService
	registrationService *service.RegistrationService
	loginService        *service.LoginService
	userService         *service.UserService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// The database is migrated and the role allow-list seeded before it returns.
func New(ctx context.Context, cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg:     cfg,
		logger:  NewLogger(cfg),
		metrics: observability.NewMetrics(),
	}

	if cfg.UsingDefaultSecret {
		app.logger.Warn("JWT_SECRET is not set; signing tokens with the built-in development secret")
	}

	tokens, err := jwtx.NewHS256([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token signer: %w", err)
	}
	app.tokens = tokens

	pepper := ""
	if cfg.PepperFile != "" {
		if pepper, err = cryptox.LoadOrGeneratePepper(cfg.PepperFile); err != nil {
			return nil, fmt.Errorf("failed to load pepper: %w", err)
		}
	}
	app.hasher = cryptox.NewHasher(pepper)

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}

	app.initServices()

	if err := app.seedRoles(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initHTTP()

	return app, nil
}

// NewLogger builds the process logger from cfg.
func NewLogger(cfg Config) *slog.Logger {
	return slogx.New(slogx.Config{
		Service: "credentials-service",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("credentials service starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"driver", app.cfg.DatabaseDriver,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down credentials service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("credentials service stopped")
	return nil
}

// OpenStore connects to the configured database driver. Migrations are not
// applied.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.DatabaseDriver {
	case DriverSQLite:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverPostgres:
		db, err := postgres.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
}

// Migrate opens the configured database, applies all pending migrations and
// closes it again.
func Migrate(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	db, err := OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.ApplyMigrations(); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
	return nil
}

// initDatabase opens the store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	db, err := OpenStore(ctx, app.cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) seedRoles(ctx context.Context) error {
	ctx = slogx.WithContext(ctx, app.logger)

	created, err := app.rolesService.SeedRoles(ctx, app.cfg.Roles)
	if err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}

	app.logger.Info("role allow-list ready", "roles", app.cfg.Roles, "created", created)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.rolesService = &service.RolesService{Store: app.db}
	app.registrationService = &service.RegistrationService{
		Store:   app.db,
		Roles:   app.rolesService,
		Hasher:  app.hasher,
		Metrics: app.metrics,
	}
	app.loginService = &service.LoginService{
		Store:   app.db,
		Hasher:  app.hasher,
		Tokens:  app.tokens,
		Metrics: app.metrics,
	}
	app.userService = &service.UserService{Store: app.db}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)

	router.RegistrationService = app.registrationService
	router.LoginService = app.loginService
	router.UserService = app.userService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
