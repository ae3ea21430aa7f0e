package permission

import "strings"

// GetAllNodesFiltered implements §4.6: walk the full inheritance tree,
// keep only nodes applicable to ctx's server/world/tags — now under
// IncludeGlobal/IncludeGlobalWorld, the filter's own global-apply
// flags, not the walker's ApplyGlobalGroups/ApplyGlobalWorldGroups —
// then collapse same-permission duplicates to the single most
// specific node per CompareSpecificity. Two otherwise-equal candidates
// (differing only in value) are not broken by value at all: the one
// GetAllNodes visited first wins, which is always the holder's own
// node over one inherited from a group, since the walker appends its
// own nodes before any inherited ones. The result is an unordered set:
// callers that need a priority order re-sort it themselves via
// Compare.
func (h *Holder) GetAllNodesFiltered(ctx Context) []LocalizedNode {
	all := h.GetAllNodes(nil, ctx)

	server, _ := ctx.Server()
	world, _ := ctx.World()
	tags := ctx.strippedTags()

	applicable := make([]LocalizedNode, 0, len(all))
	for _, ln := range all {
		if !shouldApplyOnServer(ln.server, server, ctx.IncludeGlobal, ctx.AllowRegex) {
			continue
		}
		if !shouldApplyOnWorld(ln.world, world, ctx.IncludeGlobalWorld, ctx.AllowRegex) {
			continue
		}
		if !shouldApplyWithContext(ln.Context(), tags) {
			continue
		}
		applicable = append(applicable, ln)
	}

	best := make(map[string]LocalizedNode, len(applicable))
	for _, ln := range applicable {
		key := strings.ToLower(ln.Permission())
		current, ok := best[key]
		if !ok || LessSpecific(ln.Node, current.Node) {
			best[key] = ln
		}
	}

	out := make([]LocalizedNode, 0, len(best))
	for _, ln := range best {
		out = append(out, ln)
	}
	return out
}
