package permission

import "testing"

func TestCompareSpecificityOrder(t *testing.T) {
	expiring := Builder("a").Expiry(100).Build()
	permanent := NewNode("a", true)
	if !Less(expiring, permanent) {
		t.Fatal("a node with expiry must be more specific than one without")
	}

	worldScoped := Builder("a").World("nether").Build()
	unscoped := NewNode("a", true)
	if !Less(worldScoped, unscoped) {
		t.Fatal("world-scoped node must be more specific than unscoped")
	}

	wildcard := NewNode("foo.*", true)
	literal := NewNode("foo.bar", true)
	if !Less(literal, wildcard) {
		t.Fatal("a literal permission must outrank a wildcard covering it")
	}
}

func TestCompareIsTotalOrder(t *testing.T) {
	a := NewNode("a", true)
	b := NewNode("a", false)
	// Same permission, differing only by value: Compare must still
	// resolve a strict order via the canonical-string tiebreak rather
	// than reporting equal.
	if Compare(a, b) == 0 {
		t.Fatal("Compare must not report two distinct nodes as equal")
	}
	if Compare(a, b) != -Compare(b, a) {
		t.Fatal("Compare must be antisymmetric")
	}
}
