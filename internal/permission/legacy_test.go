package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyRoundTrip(t *testing.T) {
	original := Builder("foo.bar").Server("survival").World("nether").
		Expiry(12345).WithContext("gamemode", "creative").Build()

	serialized := original.ExportToLegacy()
	parsed, err := FromSerializedNode(serialized, original.Value())
	require.NoError(t, err)

	assert.True(t, original.EqualsIgnoringValueOrTemp(parsed))
	assert.Equal(t, original.ExpiresAt(), parsed.ExpiresAt())
}

func TestLegacyRoundTripGlobalScope(t *testing.T) {
	original := NewNode("foo.bar", true)
	serialized := original.ExportToLegacy()
	parsed, err := FromSerializedNode(serialized, true)
	require.NoError(t, err)

	_, hasServer := parsed.Server()
	assert.False(t, hasServer)
	assert.True(t, original.Equals(parsed))
}

func TestFromSerializedNodeRejectsMalformed(t *testing.T) {
	_, err := FromSerializedNode("not-enough-fields", true)
	assert.Error(t, err)
}

func TestExportToLegacyCollection(t *testing.T) {
	nodes := []Node{
		NewNode("a", true),
		Builder("b").Server("survival").Value(false).Build(),
	}

	out := ExportToLegacy(nodes)
	require.Len(t, out, 2)

	for _, n := range nodes {
		v, ok := out[n.ExportToLegacy()]
		require.True(t, ok)
		assert.Equal(t, n.Value(), v)

		parsed, err := FromSerializedNode(n.ExportToLegacy(), v)
		require.NoError(t, err)
		assert.True(t, n.EqualsIgnoringValueOrTemp(parsed))
	}
}
