package permission

import "time"

// AuditExpired removes every expired node from both the permanent and
// transient sets, emitting one NodeExpire event per removal (§4.3).
// It is safe to call repeatedly — a node already removed by a prior
// call simply won't be found again, so the audit is idempotent rather
// than needing its own "already audited" bookkeeping.
func (h *Holder) AuditExpired(now time.Time) (removed int) {
	removed += h.auditSet(now, false)
	removed += h.auditSet(now, true)
	return removed
}

func (h *Holder) auditSet(now time.Time, transient bool) int {
	h.mu.Lock()
	set := &h.nodes
	if transient {
		set = &h.transientNodes
	}
	var expired []Node
	out := make([]Node, 0, len(*set))
	for _, n := range *set {
		if n.IsExpired(now) {
			expired = append(expired, n)
			continue
		}
		out = append(out, n)
	}
	if len(expired) > 0 {
		*set = out
	}
	h.mu.Unlock()

	for _, n := range expired {
		h.sink.Emit(Event{Kind: NodeExpire, ObjectName: h.objectName, Node: n, Transient: transient})
	}
	return len(expired)
}
