package permission

import (
	"sort"

	"github.com/permlattice/permlattice/internal/expand"
)

// ExportNodes implements §4.7: resolve ctx's filtered node set, expand
// every shorthand/wildcard permission against possible (the full set
// of permissions known to the system), and flatten the result to a
// plain permission->value map. Nodes are processed most specific
// first, so a literal node's value always wins over a wildcard
// expansion that also covers it, even though both arrive in the same
// filtered set with no inherent ordering.
func (h *Holder) ExportNodes(ctx Context, possible []string, lower bool, exp expand.Expander) map[string]bool {
	if exp == nil {
		exp = expand.Default{}
	}
	nodes := h.GetAllNodesFiltered(ctx)
	sort.Slice(nodes, func(i, j int) bool { return Less(nodes[i].Node, nodes[j].Node) })

	out := make(map[string]bool, len(nodes))
	for _, ln := range nodes {
		for _, concrete := range exp.Expand(ln.Permission(), possible, lower) {
			if _, already := out[concrete]; already {
				continue
			}
			out[concrete] = ln.Value()
		}
	}
	return out
}
