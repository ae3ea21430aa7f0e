package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllNodesFilteredScoping(t *testing.T) {
	h := NewHolder(KindUser, "alice", nil, nil)
	h.SetNodes([]Node{
		Builder("a").Server("survival").Build(),
		NewNode("b", true), // global
	})

	ctx := NewContext().WithServer("survival")
	nodes := h.GetAllNodesFiltered(ctx)
	perms := permSet(nodes)
	assert.True(t, perms["a"])
	assert.True(t, perms["b"])

	ctx2 := NewContext().WithServer("creative")
	nodes2 := h.GetAllNodesFiltered(ctx2)
	perms2 := permSet(nodes2)
	assert.False(t, perms2["a"], "server-scoped node must not apply on a different server")
	assert.True(t, perms2["b"], "global node applies everywhere when IncludeGlobal is set")
}

func TestGetAllNodesFilteredExcludesGlobalWhenDisabled(t *testing.T) {
	h := NewHolder(KindUser, "alice", nil, nil)
	h.SetNodes([]Node{NewNode("b", true)})

	ctx := NewContext().WithServer("survival")
	ctx.IncludeGlobal = false

	nodes := h.GetAllNodesFiltered(ctx)
	assert.Empty(t, nodes, "global node must be dropped when IncludeGlobal is false")
}

func TestGetAllNodesFilteredDedupesByPriority(t *testing.T) {
	h := NewHolder(KindUser, "alice", nil, nil)
	h.SetNodes([]Node{
		NewNode("a", true),
		Builder("a").Server("survival").Value(false).Build(),
	})

	nodes := h.GetAllNodesFiltered(NewContext().WithServer("survival"))
	assert.Len(t, nodes, 1)
	assert.False(t, nodes[0].Value(), "server-scoped node must win dedup over global one")
}

func TestGetAllNodesFilteredLocalOutranksInheritedAtEqualSpecificity(t *testing.T) {
	lookup := newMemoryLookup()

	admins := NewHolder(KindGroup, "admins", nil, lookup)
	admins.SetNodes([]Node{NewNode("server.manage", true)})
	lookup.add(admins)

	alice := NewHolder(KindUser, "alice", nil, lookup)
	alice.SetNodes([]Node{
		NewNode("group.admins", true),
		NewNode("server.manage", false),
	})

	nodes := alice.GetAllNodesFiltered(NewContext())
	perms := map[string]LocalizedNode{}
	for _, n := range nodes {
		perms[n.Permission()] = n
	}
	require.Contains(t, perms, "server.manage")
	assert.False(t, perms["server.manage"].Value(), "alice's own deny must outrank the inherited allow at equal specificity")

	// Swap the values: the group now allows and alice's own node
	// denies. The outcome must still favor alice's own node — a
	// dedup rule that happens to pick whichever value sorts first
	// would flip here, which is exactly the bug this guards against.
	admins.SetNodes([]Node{NewNode("server.manage", false)})
	alice2 := NewHolder(KindUser, "alice", nil, lookup)
	alice2.SetNodes([]Node{
		NewNode("group.admins", true),
		NewNode("server.manage", true),
	})

	nodes2 := alice2.GetAllNodesFiltered(NewContext())
	var own LocalizedNode
	for _, n := range nodes2 {
		if n.Permission() == "server.manage" {
			own = n
		}
	}
	assert.True(t, own.Value(), "alice's own allow must still outrank the inherited deny once values are swapped")
}

func permSet(nodes []LocalizedNode) map[string]bool {
	out := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		out[n.Permission()] = true
	}
	return out
}
