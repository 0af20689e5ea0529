package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/SscSPs/postal_ledger/migrations"
	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migration sources, one per storage driver.
const (
	MigrationsPostgres = "postgres"
	MigrationsSQLite   = "sqlite"
)

// MigrationStatus describes where a database stands against the embedded migrations.
type MigrationStatus struct {
	Current uint // 0 when nothing was applied
	Latest  uint
	Dirty   bool
}

// Pending reports whether migrations still have to be applied.
func (s MigrationStatus) Pending() bool {
	return s.Dirty || s.Current < s.Latest
}

func migrationFS(driver string) (fs.FS, string, error) {
	switch driver {
	case MigrationsPostgres:
		return migrations.Postgres, "postgres", nil
	case MigrationsSQLite:
		return migrations.SQLite, "sqlite", nil
	default:
		return nil, "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

func newSource(driver string) (source.Driver, error) {
	fsys, dir, err := migrationFS(driver)
	if err != nil {
		return nil, err
	}
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	return src, nil
}

// NewMigrator binds the embedded migrations of driver to an open database handle.
// For postgres the handle should come from sql.Open("pgx", url).
// Closing the returned migrator closes db as well.
func NewMigrator(driver string, db *sql.DB) (*migrate.Migrate, error) {
	src, err := newSource(driver)
	if err != nil {
		return nil, err
	}

	var dbDriver migratedb.Driver
	switch driver {
	case MigrationsPostgres:
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
	case MigrationsSQLite:
		dbDriver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("could not create %s driver instance for migrations: %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration. No pending migration is not an error.
func MigrateUp(m *migrate.Migrate) error {
	err := m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Info("No new migrations to apply.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	slog.Info("Database migrations applied successfully.")
	return nil
}

// MigrateDown reverts the given number of migrations.
func MigrateDown(m *migrate.Migrate, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive")
	}
	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to revert migrations: %w", err)
	}
	return nil
}

// Status compares the database version with the newest embedded migration.
func Status(driver string, m *migrate.Migrate) (MigrationStatus, error) {
	var status MigrationStatus

	current, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
	case err != nil:
		return status, fmt.Errorf("failed to read migration version: %w", err)
	default:
		status.Current = current
		status.Dirty = dirty
	}

	latest, err := latestVersion(driver)
	if err != nil {
		return status, err
	}
	status.Latest = latest
	return status, nil
}

func latestVersion(driver string) (uint, error) {
	src, err := newSource(driver)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			slog.Warn("Failed to close migration source", slog.String("error", cerr.Error()))
		}
	}()

	version, err := src.First()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}
	for {
		next, err := src.Next(version)
		if errors.Is(err, os.ErrNotExist) {
			return version, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read migrations: %w", err)
		}
		version = next
	}
}
