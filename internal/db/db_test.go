package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTodosTable(t *testing.T) {
	db := openTestDB(t)

	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='todos'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "todos", name)
}

func TestOpenDB_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todo.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, path)
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithinTx(ctx, db, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO todos (title) VALUES ('a')`)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM todos`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestWithinTx_Commits(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	err := WithinTx(ctx, db, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO todos (title) VALUES ('a')`)
		return err
	})
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM todos`).Scan(&n))
	assert.Equal(t, 1, n)
}
