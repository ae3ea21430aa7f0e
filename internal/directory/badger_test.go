package directory

import (
	"testing"

	"github.com/permlattice/permlattice/internal/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBadgerDirectory(t *testing.T) *BadgerDirectory {
	t.Helper()
	d, err := NewBadgerDirectory(Options{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestBadgerDirectorySaveAndReload(t *testing.T) {
	d := newTestBadgerDirectory(t)

	alice, err := d.GetOrCreateUser("alice")
	require.NoError(t, err)
	require.NoError(t, alice.SetPermission(permission.Builder("foo.bar").Server("survival").Build()))
	require.NoError(t, d.Save(alice))

	// Drop the in-memory cache entry and force a reload from Badger,
	// resolving "alice" back to the same UUID-identified holder.
	d.cache.Delete(string(holderKey(permission.KindUser, alice.ObjectName())))

	reloadedAgain, err := d.GetOrCreateUser("alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ObjectName(), reloadedAgain.ObjectName())

	reloaded, ok := d.get(permission.KindUser, alice.ObjectName())
	require.True(t, ok)

	nodes := reloaded.Nodes()
	require.Len(t, nodes, 1)
	assert.Equal(t, "foo.bar", nodes[0].Permission())
	server, ok := nodes[0].Server()
	assert.True(t, ok)
	assert.Equal(t, "survival", server)
}

func TestBadgerDirectoryGroupLookupResolvesInheritance(t *testing.T) {
	d := newTestBadgerDirectory(t)

	admins, err := d.GetOrCreateGroup("admins")
	require.NoError(t, err)
	require.NoError(t, admins.SetPermission(permission.NewNode("server.manage", true)))
	require.NoError(t, d.Save(admins))

	alice, err := d.GetOrCreateUser("alice")
	require.NoError(t, err)
	require.NoError(t, alice.SetPermission(permission.NewNode("group.admins", true)))

	assert.Equal(t, permission.True, alice.HasPermission(permission.NewContext(), "server.manage"))
}
