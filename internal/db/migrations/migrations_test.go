package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestMigrateAppliesAllVersions(t *testing.T) {
	db := openTestDB(t)
	mgr := NewMigrationManager(db, nil)

	require.NoError(t, mgr.Migrate())

	version, err := mgr.GetCurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, mgr.GetTargetVersion(), version)

	history, err := mgr.GetMigrationHistory()
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	mgr := NewMigrationManager(db, nil)

	require.NoError(t, mgr.Migrate())
	require.NoError(t, mgr.Migrate())

	history, err := mgr.GetMigrationHistory()
	require.NoError(t, err)
	assert.Len(t, history, 2, "re-running Migrate must not reapply already-applied migrations")
}

func TestMigrateCreatesUsableTable(t *testing.T) {
	db := openTestDB(t)
	mgr := NewMigrationManager(db, nil)
	require.NoError(t, mgr.Migrate())

	_, err := db.Exec(`INSERT INTO permission_events (timestamp, object_name, kind, transient) VALUES (1, 'alice', 'node_set', 0)`)
	assert.NoError(t, err)
}
