package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/librarylite/internal/config"
	"github.com/mrlokans/librarylite/internal/entities"
	"github.com/mrlokans/librarylite/internal/logging"
)

// ErrUnsupportedDriver is returned for an unknown DATABASE_DRIVER value.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

type Database struct {
	DB     *gorm.DB
	Driver string
}

func NewDatabase(cfg config.Database, logger zerolog.Logger) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.GormLogger(logger, cfg.LogQueries),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == "" || cfg.Driver == config.DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql handle: %w", err)
		}
		// SQLite allows a single writer; in-memory databases are per connection.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&entities.Book{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db, Driver: cfg.Driver}
	if database.Driver == "" {
		database.Driver = config.DriverSQLite
	}

	logger.Info().Str("driver", database.Driver).Msg("Database initialized")

	return database, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", config.DriverSQLite:
		if cfg.Path == "" {
			return nil, errors.New("database path is required for sqlite")
		}
		return sqlite.Open(cfg.Path), nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, errors.New("database DSN is required for postgres")
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Session returns a handle scoped to ctx. Cancelling ctx aborts the
// statements issued through it.
func (d *Database) Session(ctx context.Context) *gorm.DB {
	return d.DB.WithContext(ctx)
}

// Ping checks that the store is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
