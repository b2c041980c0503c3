package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billingform/internal/platform/config"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "issuances.db")
	db, err := Open(config.DatabaseConfig{Path: path, MaxConnections: 2})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, "up"))
	// Idempotent.
	require.NoError(t, Migrate(ctx, db, "up"))

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'issuances'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "issuances", name)

	require.NoError(t, Migrate(ctx, db, "down"))
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'issuances'`).Scan(&name)
	assert.Error(t, err)
}

func TestOpen_MemorySharedAcrossConnections(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Path: ":memory:", MaxConnections: 4})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db, "up"))

	conn1, err := db.Conn(ctx)
	require.NoError(t, err)
	defer conn1.Close()
	conn2, err := db.Conn(ctx)
	require.NoError(t, err)
	defer conn2.Close()

	for i, conn := range []*sql.Conn{conn1, conn2} {
		var n int
		err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM issuances`).Scan(&n)
		require.NoError(t, err, "conn %d", i+1)
		assert.Zero(t, n)
	}
}

func TestOpen_MemoryDatabasesAreIsolated(t *testing.T) {
	ctx := context.Background()
	a, err := Open(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer a.Close()
	b, err := Open(config.DatabaseConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, Migrate(ctx, a, "up"))

	var name string
	err = b.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'issuances'`).Scan(&name)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
