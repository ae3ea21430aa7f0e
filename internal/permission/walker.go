package permission

import "strings"

// GetAllNodes implements the inheritance walker of §4.5: a depth-first
// traversal of the holder's own nodes plus every node inherited
// through "group.<name>" membership, recursively. excluded accumulates
// the names already visited on the current path (passed by value, so
// siblings never see each other's exclusions) and is how cycles in
// the group graph terminate a branch instead of looping forever.
//
// Whether a group membership itself is followed is governed by
// ApplyGlobalGroups/ApplyGlobalWorldGroups — deliberately distinct
// from the IncludeGlobal/IncludeGlobalWorld flags the final filter
// (GetAllNodesFiltered) applies to each resulting node. A holder can
// inherit from a world-unscoped group assignment while still having
// its own world-unscoped nodes dropped from the filtered view, or
// vice versa; the two stages ask different questions.
func (h *Holder) GetAllNodes(excluded []string, ctx Context) []LocalizedNode {
	if containsFold(excluded, h.objectName) {
		return nil
	}
	excluded = append(append([]string(nil), excluded...), h.objectName)

	server, _ := ctx.Server()
	world, _ := ctx.World()
	tags := ctx.strippedTags()

	own := h.GetPermissions(true)
	out := make([]LocalizedNode, 0, len(own))
	out = append(out, own...)

	if !ctx.ApplyGroups || h.lookup == nil {
		return out
	}

	for _, ln := range own {
		groupName, ok := ln.IsGroupNode()
		if !ok {
			continue
		}
		if !shouldApplyOnServer(ln.server, server, ctx.ApplyGlobalGroups, ctx.AllowRegex) {
			continue
		}
		if !shouldApplyOnWorld(ln.world, world, ctx.ApplyGlobalWorldGroups, ctx.AllowRegex) {
			continue
		}
		if !shouldApplyWithContext(ln.Context(), tags) {
			continue
		}
		group, ok := h.lookup.LookupGroup(groupName)
		if !ok {
			continue
		}
		for _, inherited := range group.GetAllNodes(excluded, ctx) {
			if containsAlmostEqual(out, inherited.Node) {
				continue
			}
			out = append(out, inherited)
		}
	}
	return out
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// containsAlmostEqual reports whether nodes already holds an entry
// AlmostEquals-equivalent to n, step 5's de-dup guard: an inherited
// node already present (from an earlier parent, or a shared ancestor
// reached by more than one path) is not added again.
func containsAlmostEqual(nodes []LocalizedNode, n Node) bool {
	for _, ln := range nodes {
		if ln.AlmostEquals(n) {
			return true
		}
	}
	return false
}
