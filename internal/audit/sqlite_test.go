package audit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/permlattice/permlattice/internal/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "audit.db")
	store, err := NewSQLiteStore(dbPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStoreLogAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.LogEvent(ctx, permission.Event{
		Kind:       permission.NodeSet,
		ObjectName: "alice",
		Node:       permission.NewNode("foo.bar", true),
	}))
	require.NoError(t, store.LogEvent(ctx, permission.Event{
		Kind:       permission.GroupRemove,
		ObjectName: "alice",
		GroupName:  "admins",
	}))

	logs, total, err := store.GetLogs(ctx, LogFilters{ObjectName: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, logs, 2)
	assert.Equal(t, "group_remove", logs[0].Kind, "most recent event first")
	assert.Equal(t, "admins", logs[0].GroupName)
}

func TestSQLiteStoreEmitDoesNotPanicOnClosedDB(t *testing.T) {
	store := newTestStore(t)
	store.Close()

	assert.NotPanics(t, func() {
		store.Emit(permission.Event{Kind: permission.NodeSet, ObjectName: "bob", Node: permission.NewNode("a", true)})
	})
}

func TestSQLiteStorePurgeLogs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.LogEvent(ctx, permission.Event{Kind: permission.NodeSet, ObjectName: "alice", Node: permission.NewNode("a", true)}))

	deleted, err := store.PurgeLogs(ctx, -1) // cutoff in the future: everything is "older"
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, total, err := store.GetLogs(ctx, LogFilters{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
