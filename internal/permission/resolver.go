package permission

import "sort"

// GetPermissions implements the local resolver of §4.4: union the
// holder's permanent and transient nodes unconditionally — mergeTemp
// never changes which sets participate, only how duplicates within
// the union collapse — sort the union by descending priority, then
// keep the first-seen entry of each duplicate-equivalence class. With
// mergeTemp true, duplicates are found via EqualsIgnoringValueOrTemp,
// so a temporary and permanent node of the same (permission, server,
// world, context) collapse into one entry; since an expiring node
// always sorts ahead of a non-expiring one (Compare's first
// criterion), the temporary entry wins whenever the two actually
// differ by expiry. With mergeTemp false, duplicates are found via
// the narrower AlmostEquals, which additionally requires equal
// expiry-presence — a permanent/temporary pair of the same permission
// is then never considered a duplicate of the other, so both would
// survive unless they're duplicates in their own right.
func (h *Holder) GetPermissions(mergeTemp bool) []LocalizedNode {
	h.mu.RLock()
	perm := append([]Node(nil), h.nodes...)
	trans := append([]Node(nil), h.transientNodes...)
	h.mu.RUnlock()

	candidates := make([]LocalizedNode, 0, len(perm)+len(trans))
	for _, n := range perm {
		candidates = append(candidates, LocalizedNode{Node: n, Origin: h.objectName})
	}
	for _, n := range trans {
		candidates = append(candidates, LocalizedNode{Node: n, Origin: h.objectName})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return Less(candidates[i].Node, candidates[j].Node)
	})

	out := make([]LocalizedNode, 0, len(candidates))
	for _, c := range candidates {
		duplicate := false
		for _, accepted := range out {
			if mergeTemp {
				duplicate = accepted.EqualsIgnoringValueOrTemp(c.Node)
			} else {
				duplicate = accepted.AlmostEquals(c.Node)
			}
			if duplicate {
				break
			}
		}
		if duplicate {
			continue
		}
		out = append(out, c)
	}
	return out
}
