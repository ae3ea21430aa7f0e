package permission

// EventKind distinguishes the permission lifecycle events a Holder
// emits to its EventSink. Bulk operations (SetNodes/SetTransientNodes)
// intentionally do not emit per-node events — see Holder.SetNodes.
type EventKind int

const (
	NodeSet EventKind = iota
	NodeUnset
	NodeExpire
	GroupRemove
)

func (k EventKind) String() string {
	switch k {
	case NodeSet:
		return "node_set"
	case NodeUnset:
		return "node_unset"
	case NodeExpire:
		return "node_expire"
	case GroupRemove:
		return "group_remove"
	default:
		return "unknown"
	}
}

// Event is a single permission lifecycle occurrence on a holder. For
// GroupRemove, GroupName carries the group's name and Node is the
// removed "group.<name>" node.
type Event struct {
	Kind       EventKind
	ObjectName string
	Node       Node
	Transient  bool
	GroupName  string
}

// EventSink receives lifecycle events as they occur. Implementations
// must not block the holder for long — internal/eventbus.Dispatcher
// is the reference implementation, fanning out to registered outputs
// via a lock-free snapshot so a slow output never stalls a writer.
type EventSink interface {
	Emit(Event)
}

// noopSink discards every event; it is the Holder zero value's sink so
// constructing a Holder without one never needs a nil check.
type noopSink struct{}

func (noopSink) Emit(Event) {}
