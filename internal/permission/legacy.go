package permission

import (
	"fmt"
	"strconv"
	"strings"
)

// legacyGlobal is the placeholder written for an unset server/world
// field in the legacy serialized form, matching how flat permission
// storage formats spell "no scope" instead of leaving a field empty.
const legacyGlobal = "global"

// ExportToLegacy serializes every field except value into the flat
// "$"-delimited form used by storage backends that keep value in its
// own column (internal/directory's Badger layout does this). It is
// deliberately distinct from canonicalString, which folds value in
// for the priority comparator's tiebreak and is never persisted.
func (n Node) ExportToLegacy() string {
	server := n.server
	if server == "" {
		server = legacyGlobal
	}
	world := n.world
	if world == "" {
		world = legacyGlobal
	}

	var ctx strings.Builder
	for i, k := range n.sortedContextKeys() {
		if i > 0 {
			ctx.WriteByte(',')
		}
		ctx.WriteString(k)
		ctx.WriteByte('=')
		ctx.WriteString(n.context[k])
	}

	return fmt.Sprintf("%s$%s$%s$%d$%s", n.permission, server, world, n.expiry, ctx.String())
}

// ExportToLegacy implements the collection-level export_to_legacy(nodes)
// operation of §6: each node's canonical legacy string (Node.
// ExportToLegacy) paired with its value, in a map that round-trips
// through FromSerializedNode. Storage backends that keep value in its
// own column (internal/directory's Badger layout) build their
// persisted record from this rather than composing it ad hoc.
func ExportToLegacy(nodes []Node) map[string]bool {
	out := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		out[n.ExportToLegacy()] = n.Value()
	}
	return out
}

// FromSerializedNode parses the legacy form back into a Node, with
// value supplied separately since the serialized string never
// contains it.
func FromSerializedNode(s string, value bool) (Node, error) {
	parts := strings.SplitN(s, "$", 5)
	if len(parts) != 5 {
		return Node{}, fmt.Errorf("permission: malformed legacy node %q: want 5 fields, got %d", s, len(parts))
	}

	perm, server, world, expiryStr, ctxStr := parts[0], parts[1], parts[2], parts[3], parts[4]
	if server == legacyGlobal {
		server = ""
	}
	if world == legacyGlobal {
		world = ""
	}

	expiry, err := strconv.ParseInt(expiryStr, 10, 64)
	if err != nil {
		return Node{}, fmt.Errorf("permission: malformed legacy node %q: bad expiry: %w", s, err)
	}

	var context map[string]string
	if ctxStr != "" {
		context = make(map[string]string)
		for _, pair := range strings.Split(ctxStr, ",") {
			kv := strings.SplitN(pair, "=", 2)
			if len(kv) != 2 {
				return Node{}, fmt.Errorf("permission: malformed legacy node %q: bad context pair %q", s, pair)
			}
			context[kv[0]] = kv[1]
		}
	}

	return Node{
		permission: perm,
		value:      value,
		server:     server,
		world:      world,
		expiry:     expiry,
		context:    context,
	}, nil
}
