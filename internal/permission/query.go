package permission

import "strings"

// HasPermission answers the single most common query: does this
// holder, after full inheritance and context filtering, grant or deny
// permission — or say nothing about it at all. A node whose
// permission is the universal wildcard ("*") answers for anything not
// otherwise matched; an exact match always takes priority, since
// GetAllNodesFiltered has already collapsed duplicates by
// CompareSpecificity.
func (h *Holder) HasPermission(ctx Context, perm string) Tristate {
	ln, ok := h.InheritsPermissionInfo(ctx, perm)
	if !ok {
		return Undefined
	}
	return tristateFromBool(ln.Value())
}

// HasOwnPermission implements §4.8's has_permission(node, transient): a
// direct, non-recursive scan of the holder's own chosen node set
// (permanent, or transient when transient is set) for the first
// AlmostEquals match. No inheritance walk, no context filtering —
// setOne/unsetOne run the same scan inline to detect an existing
// entry; this is that check exposed as a reusable, side-effect-free
// read.
func (h *Holder) HasOwnPermission(n Node, transient bool) Tristate {
	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.nodes
	if transient {
		set = h.transientNodes
	}
	for _, existing := range set {
		if existing.AlmostEquals(n) {
			return tristateFromBool(existing.Value())
		}
	}
	return Undefined
}

// HasOwnPermissionAttrs is HasOwnPermission's string+attribute
// convenience variant: it builds an ephemeral Node via Builder and
// delegates.
func (h *Holder) HasOwnPermissionAttrs(perm string, transient bool, server, world string) Tristate {
	n := Builder(perm).Server(server).World(world).Build()
	return h.HasOwnPermission(n, transient)
}

// InheritsPermissionInfo returns the LocalizedNode that answers perm
// for ctx, if any — an exact permission match if one exists, else the
// most specific universal wildcard ("*") node. Prefix wildcards such
// as "foo.*" are not consulted here. This is the query surface's
// "explain yourself" counterpart to HasPermission: callers that need
// to know which holder a decision actually came from use this instead.
func (h *Holder) InheritsPermissionInfo(ctx Context, perm string) (LocalizedNode, bool) {
	nodes := h.GetAllNodesFiltered(ctx)

	var exact, wildcard LocalizedNode
	haveExact, haveWildcard := false, false

	for _, ln := range nodes {
		if strings.EqualFold(ln.Permission(), perm) {
			if !haveExact || Less(ln.Node, exact.Node) {
				exact, haveExact = ln, true
			}
			continue
		}
		if ln.IsWildcard() {
			if !haveWildcard || Less(ln.Node, wildcard.Node) {
				wildcard, haveWildcard = ln, true
			}
		}
	}

	if haveExact {
		return exact, true
	}
	if haveWildcard {
		return wildcard, true
	}
	return LocalizedNode{}, false
}
