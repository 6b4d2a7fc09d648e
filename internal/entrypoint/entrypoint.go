package entrypoint

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrlokans/librarylite/internal/config"
	"github.com/mrlokans/librarylite/internal/database"
	"github.com/mrlokans/librarylite/internal/database/books"
	http_controllers "github.com/mrlokans/librarylite/internal/http"
	"github.com/mrlokans/librarylite/internal/logging"
	"github.com/mrlokans/librarylite/internal/session"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains in-flight
// requests within the configured shutdown timeout.
func Serve(router http.Handler, cfg *config.Config, logger zerolog.Logger, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Dur("timeout", timeout).Msg("Shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info().Msg("Server exiting")
	return nil
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) error {
	logger := logging.New(cfg.Log, nil)
	logger.Info().Str("version", version).Msg("Starting LibraryLite")

	db, err := database.NewDatabase(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing database")
		}
	}()

	repo := books.NewRepository(db)

	// Sessions share the SQLite file; other drivers keep them in memory
	var sqlDB *sql.DB
	if db.Driver == config.DriverSQLite {
		sqlDB, err = db.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
		}
	}
	sessions, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to initialize session manager: %w", err)
	}

	csrfSecret := decodeSecret(cfg.Security.CSRFSecret)
	if len(csrfSecret) == 0 {
		logger.Warn().Msg("CSRF_SECRET is not set, form routes are not CSRF protected")
	} else if len(csrfSecret) < 32 {
		logger.Warn().Int("bytes", len(csrfSecret)).Msg("CSRF_SECRET is shorter than 32 bytes")
	}

	if cfg.Security.ReadOnly {
		logger.Info().Msg("Read-only mode enabled, write operations will be blocked")
	}

	routerCfg := http_controllers.RouterConfig{
		BookStore:     repo,
		Database:      db,
		Logger:        &logger,
		Sessions:      sessions,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Session.SecureCookies,
		ReadOnly:      cfg.Security.ReadOnly,
		Version:       version,
	}

	router := http_controllers.NewRouter(routerCfg)

	return Serve(router, cfg, logger, nil)
}

// InitDB creates the schema and, when seed is set, fills an empty library
// with sample books.
func InitDB(cfg *config.Config, seed bool) error {
	logger := logging.New(cfg.Log, nil)

	db, err := database.NewDatabase(cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if !seed {
		logger.Info().Msg("Schema is up to date")
		return nil
	}

	created, err := books.NewRepository(db).Seed(context.Background(), books.SeedData())
	if err != nil {
		return fmt.Errorf("failed to seed books: %w", err)
	}
	if created == 0 {
		logger.Info().Msg("Library is not empty, skipping seed data")
		return nil
	}

	logger.Info().Int("books", created).Msg("Seeded library")
	return nil
}

// decodeSecret accepts a hex-encoded secret and falls back to the raw bytes.
func decodeSecret(secret string) []byte {
	if secret == "" {
		return nil
	}
	if decoded, err := hex.DecodeString(secret); err == nil {
		return decoded
	}
	return []byte(secret)
}
