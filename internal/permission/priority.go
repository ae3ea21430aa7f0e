package permission

import "strings"

// Compare implements the node specificity order of §4.1: it returns a
// negative number when a is strictly more specific than b, a positive
// number when b is more specific, and zero only when every tiebreak
// key (down to the canonical field dump) is equal. Resolvers iterate
// in ascending Compare order, i.e. most specific first ("descending
// specificity").
func Compare(a, b Node) int {
	if c := descBool(a.HasExpiry(), b.HasExpiry()); c != 0 {
		return c
	}
	if c := descBool(a.world != "", b.world != ""); c != 0 {
		return c
	}
	if c := descBool(a.server != "", b.server != ""); c != 0 {
		return c
	}
	if c := descBool(a.HasContext(), b.HasContext()); c != 0 {
		return c
	}
	if c := ascInt(a.wildcardSegments(), b.wildcardSegments()); c != 0 {
		return c
	}
	if c := strings.Compare(a.permission, b.permission); c != 0 {
		return c
	}
	// Final tiebreak: a stable canonicalized field dump, so ties on
	// every documented key above still produce a deterministic total
	// order instead of depending on slice/sort stability accidents.
	return strings.Compare(a.canonicalString(), b.canonicalString())
}

// Less reports whether a sorts strictly before b under Compare, i.e.
// a is at least as specific and not equal.
func Less(a, b Node) bool { return Compare(a, b) < 0 }

// CompareSpecificity orders a and b by every §4.1 criterion except the
// final value-dependent tiebreak Compare falls back to. Two nodes that
// differ only in value (e.g. a holder's own grant versus an inherited
// deny at otherwise identical specificity) compare as equal here,
// so a caller picking a winner on a genuine tie can apply its own
// tiebreak — such as locality, by keeping whichever entry it saw
// first — instead of inheriting Compare's arbitrary string ordering
// on "true" versus "false".
func CompareSpecificity(a, b Node) int {
	if c := descBool(a.HasExpiry(), b.HasExpiry()); c != 0 {
		return c
	}
	if c := descBool(a.world != "", b.world != ""); c != 0 {
		return c
	}
	if c := descBool(a.server != "", b.server != ""); c != 0 {
		return c
	}
	if c := descBool(a.HasContext(), b.HasContext()); c != 0 {
		return c
	}
	if c := ascInt(a.wildcardSegments(), b.wildcardSegments()); c != 0 {
		return c
	}
	if c := strings.Compare(a.permission, b.permission); c != 0 {
		return c
	}
	return strings.Compare(a.canonicalStringNoValue(), b.canonicalStringNoValue())
}

// LessSpecific reports whether a sorts strictly before b under
// CompareSpecificity.
func LessSpecific(a, b Node) bool { return CompareSpecificity(a, b) < 0 }

// descBool orders true before false (true = "more specific").
func descBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// ascInt orders smaller values first (fewer wildcard segments = more
// specific).
func ascInt(a, b int) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}
