package permission

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// HolderKind distinguishes the two kinds of permission holder. Rather
// than modeling users and groups as separate types that duplicate
// every operation in §4, both are a Holder carrying a Kind tag —
// inheritance (group membership via "group.<name>" nodes) only
// resolves through a GroupLookup, so the distinction matters solely
// to that one collaborator, not to Holder's own methods.
type HolderKind int

const (
	KindUser HolderKind = iota
	KindGroup
)

// GroupLookup resolves a group name (as carried by a "group.<name>"
// node, case insensitive) to its Holder. internal/directory provides
// the Badger-backed and in-memory reference implementations.
type GroupLookup interface {
	LookupGroup(name string) (*Holder, bool)
}

// LocalizedNode pairs a Node with the name of the holder it was
// actually defined on — itself for a node owned directly, or an
// ancestor group's object name when it arrived via inheritance. The
// walker (§4.5) is the only place Origin is set to anything other
// than the queried holder's own name.
type LocalizedNode struct {
	Node
	Origin string
}

// Holder is a permission node store for one user or group (§4.2). All
// mutating methods take holder.mu for writing; reads take a copy of
// the relevant slice under a read lock so callers never observe a
// torn update and never hold a lock while iterating.
type Holder struct {
	mu sync.RWMutex

	kind       HolderKind
	objectName string

	nodes          []Node
	transientNodes []Node

	sink   EventSink
	lookup GroupLookup
	log    *logrus.Entry
}

// NewHolder constructs an empty Holder. sink and lookup may be nil;
// a nil sink discards events, a nil lookup makes group nodes resolve
// to "group not found" rather than panicking.
func NewHolder(kind HolderKind, objectName string, sink EventSink, lookup GroupLookup) *Holder {
	if sink == nil {
		sink = noopSink{}
	}
	return &Holder{
		kind:       kind,
		objectName: objectName,
		sink:       sink,
		lookup:     lookup,
		log:        logrus.WithFields(logrus.Fields{"component": "permission", "holder": objectName}),
	}
}

func (h *Holder) Kind() HolderKind  { return h.kind }
func (h *Holder) ObjectName() string { return h.objectName }

// SetLookup wires (or rewires) the GroupLookup used to resolve
// "group.<name>" nodes. Holders are typically constructed before the
// directory that will own them is fully populated, so this is set
// after the fact rather than required at construction.
func (h *Holder) SetLookup(lookup GroupLookup) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lookup = lookup
}

// Nodes returns a defensive copy of the holder's permanent nodes.
func (h *Holder) Nodes() []Node {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Node(nil), h.nodes...)
}

// TransientNodes returns a defensive copy of the holder's transient
// (session-scoped) nodes.
func (h *Holder) TransientNodes() []Node {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Node(nil), h.transientNodes...)
}

// SetNodes bulk-replaces the permanent node set. Per §4.2 this is a
// single atomic swap with no per-node Set/Unset events — only a
// resolver cache invalidation is implied, which callers perform by
// virtue of the swap itself being visible to the next read.
func (h *Holder) SetNodes(nodes []Node) {
	cp := append([]Node(nil), nodes...)
	h.mu.Lock()
	h.nodes = cp
	h.mu.Unlock()
}

// SetTransientNodes bulk-replaces the transient node set.
func (h *Holder) SetTransientNodes(nodes []Node) {
	cp := append([]Node(nil), nodes...)
	h.mu.Lock()
	h.transientNodes = cp
	h.mu.Unlock()
}

// SetPermission adds a single permanent node, returning ErrAlreadyHas
// if an AlmostEquals match is already present (§4.2: re-asserting an
// identical node, even with a different value, is a caller mistake
// to surface rather than silently coalesce).
func (h *Holder) SetPermission(n Node) error {
	return h.setOne(n, false)
}

// SetTransientPermission is SetPermission for the transient set.
func (h *Holder) SetTransientPermission(n Node) error {
	return h.setOne(n, true)
}

func (h *Holder) setOne(n Node, transient bool) error {
	h.mu.Lock()
	set := &h.nodes
	if transient {
		set = &h.transientNodes
	}
	for _, existing := range *set {
		if existing.AlmostEquals(n) {
			h.mu.Unlock()
			return ErrAlreadyHas
		}
	}
	*set = append(append([]Node(nil), *set...), n)
	h.mu.Unlock()

	h.sink.Emit(Event{Kind: NodeSet, ObjectName: h.objectName, Node: n, Transient: transient})
	return nil
}

// UnsetPermission removes every node AlmostEquals to n from the
// permanent set, returning ErrLacks if none matched.
func (h *Holder) UnsetPermission(n Node) error {
	return h.unsetOne(n, false)
}

// UnsetTransientPermission is UnsetPermission for the transient set.
func (h *Holder) UnsetTransientPermission(n Node) error {
	return h.unsetOne(n, true)
}

func (h *Holder) unsetOne(n Node, transient bool) error {
	h.mu.Lock()
	set := &h.nodes
	if transient {
		set = &h.transientNodes
	}
	out := make([]Node, 0, len(*set))
	removed := false
	for _, existing := range *set {
		if existing.AlmostEquals(n) {
			removed = true
			continue
		}
		out = append(out, existing)
	}
	if !removed {
		h.mu.Unlock()
		return ErrLacks
	}
	*set = out
	h.mu.Unlock()

	if group, ok := n.IsGroupNode(); ok {
		h.sink.Emit(Event{Kind: GroupRemove, ObjectName: h.objectName, Node: n, Transient: transient, GroupName: group})
		return nil
	}
	h.sink.Emit(Event{Kind: NodeUnset, ObjectName: h.objectName, Node: n, Transient: transient})
	return nil
}
