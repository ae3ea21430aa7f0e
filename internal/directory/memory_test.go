package directory

import (
	"testing"

	"github.com/permlattice/permlattice/internal/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDirectoryGroupInheritance(t *testing.T) {
	dir := NewMemoryDirectory(nil)

	admins, err := dir.GetOrCreateGroup("admins")
	require.NoError(t, err)
	require.NoError(t, admins.SetPermission(permission.NewNode("server.manage", true)))

	alice, err := dir.GetOrCreateUser("alice")
	require.NoError(t, err)
	require.NoError(t, alice.SetPermission(permission.NewNode("group.admins", true)))

	ctx := permission.NewContext()
	assert.Equal(t, permission.True, alice.HasPermission(ctx, "server.manage"))
}

func TestMemoryDirectoryLookupGroupIsCaseInsensitive(t *testing.T) {
	dir := NewMemoryDirectory(nil)
	_, err := dir.GetOrCreateGroup("Admins")
	require.NoError(t, err)

	_, ok := dir.LookupGroup("admins")
	assert.True(t, ok)
}
