// Package app wires configuration to a storage backend and the service container.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/postal_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/postal_ledger/internal/platform/config"
	"github.com/SscSPs/postal_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/postal_ledger/internal/repositories/database/sqlite"
	"github.com/SscSPs/postal_ledger/pkg/database"
	migrate "github.com/golang-migrate/migrate/v4"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// ErrPendingMigrations is returned when the schema is behind and AUTO_MIGRATE is off.
var ErrPendingMigrations = errors.New("database has pending migrations, run `ledgerctl migrate up` or set AUTO_MIGRATE=true")

// Storage is an open backend and the repositories over it.
type Storage struct {
	Repos   portsrepo.RepositoryProvider
	Driver  string
	closeFn func()
}

// Close releases the backend connections.
func (s *Storage) Close() {
	if s != nil && s.closeFn != nil {
		s.closeFn()
	}
}

// OpenMigrator opens a dedicated connection for schema migrations of the configured backend.
// Closing the migrator closes that connection.
func OpenMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	var (
		sqlDB *sql.DB
		err   error
	)
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		sqlDB, err = sql.Open("pgx", cfg.DatabaseURL)
	case config.DriverSQLite:
		sqlDB, err = sql.Open("sqlite3", database.SQLiteDSN(cfg.SQLitePath))
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	m, err := database.NewMigrator(migrationDriver(cfg.StorageDriver), sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return m, nil
}

func migrationDriver(storageDriver string) string {
	if storageDriver == config.DriverPostgres {
		return database.MigrationsPostgres
	}
	return database.MigrationsSQLite
}

// MigrationStatus reports the schema state of the configured backend.
func MigrationStatus(cfg *config.Config) (database.MigrationStatus, error) {
	m, err := OpenMigrator(cfg)
	if err != nil {
		return database.MigrationStatus{}, err
	}
	defer closeMigrator(m)
	return database.Status(migrationDriver(cfg.StorageDriver), m)
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		slog.Error("Migration source error", slog.String("error", srcErr.Error()))
	}
	if dbErr != nil {
		slog.Error("Migration database error", slog.String("error", dbErr.Error()))
	}
}

// ensureSchema applies pending migrations when allowed, otherwise refuses to continue.
func ensureSchema(cfg *config.Config) error {
	m, err := OpenMigrator(cfg)
	if err != nil {
		return err
	}
	defer closeMigrator(m)

	status, err := database.Status(migrationDriver(cfg.StorageDriver), m)
	if err != nil {
		return err
	}
	if status.Dirty {
		return fmt.Errorf("database schema is dirty at version %d, fix it with `ledgerctl migrate force`", status.Current)
	}
	if !status.Pending() {
		return nil
	}
	if !cfg.AutoMigrate {
		slog.Error("Database schema is behind",
			slog.Uint64("current", uint64(status.Current)),
			slog.Uint64("latest", uint64(status.Latest)))
		return ErrPendingMigrations
	}
	slog.Info("Running database migrations...",
		slog.Uint64("current", uint64(status.Current)),
		slog.Uint64("latest", uint64(status.Latest)))
	return database.MigrateUp(m)
}

// OpenStorage checks the schema and opens the configured backend.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if err := ensureSchema(cfg); err != nil {
		return nil, err
	}

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Repos:   pgsql.NewRepositoryProvider(pool),
			Driver:  cfg.StorageDriver,
			closeFn: func() { database.ClosePgxPool(pool) },
		}, nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Storage{
			Repos:   sqlite.NewRepositoryProvider(db),
			Driver:  cfg.StorageDriver,
			closeFn: func() { database.CloseGorm(db) },
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
