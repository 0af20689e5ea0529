package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqliteParams enables foreign keys, waits on a busy database instead of failing,
// and uses WAL so readers do not block the single writer.
const sqliteParams = "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"

// SQLiteDSN builds the go-sqlite3 DSN for a database file.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + sqliteParams
}

// OpenSQLite opens the embedded database file through gorm.
func OpenSQLite(path string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("sqlite3", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite database %s: %w", path, err)
	}

	db, err := OpenGorm(sqlDB)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	slog.Info("Opened SQLite database.", slog.String("path", path))
	return db, nil
}

// OpenGorm wraps an open sqlite connection in gorm. Driver errors are translated
// so unique violations surface as gorm.ErrDuplicatedKey.
func OpenGorm(sqlDB *sql.DB) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.New(sqlite.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}
	return db, nil
}

// CloseGorm closes the connection underneath a gorm handle.
func CloseGorm(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Failed to get sqlite connection", slog.String("error", err.Error()))
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("Failed to close sqlite database", slog.String("error", err.Error()))
	}
}
