package database

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"billingform/internal/platform/config"
)

// Open connects to the SQLite issuance store, creating the parent directory
// of a file-backed database if needed. An in-memory path becomes a named
// shared-cache database so every pooled connection sees the same schema.
func Open(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := strings.TrimPrefix(cfg.Path, "file:")
	memory := dsn == ":memory:" || dsn == ""
	if memory {
		dsn = "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	} else if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	if memory {
		// The database is dropped once its last connection closes.
		db.SetConnMaxLifetime(0)
	} else {
		db.SetConnMaxLifetime(time.Hour)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

const issuanceSchemaUp = `
CREATE TABLE IF NOT EXISTS issuances (
	id TEXT PRIMARY KEY,
	client_id TEXT NOT NULL,
	action TEXT NOT NULL,
	subdomain TEXT NOT NULL,
	environment TEXT NOT NULL,
	signature TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_issuances_created_at ON issuances (created_at);
`

const issuanceSchemaDown = `
DROP INDEX IF EXISTS idx_issuances_created_at;
DROP TABLE IF EXISTS issuances;
`

// Migrate applies ("up") or reverts ("down") the issuance schema.
func Migrate(ctx context.Context, db *sql.DB, direction string) error {
	query := issuanceSchemaUp
	if direction == "down" {
		query = issuanceSchemaDown
	}
	_, err := db.ExecContext(ctx, query)
	return err
}
