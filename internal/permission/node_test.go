package permission

import "testing"

func TestNodeEquivalenceRelations(t *testing.T) {
	a := Builder("foo.bar").Server("s1").Build()
	b := Builder("foo.bar").Value(false).Server("s1").Build()

	if a.Equals(b) {
		t.Fatal("Equals should distinguish differing value")
	}
	if !a.AlmostEquals(b) {
		t.Fatal("AlmostEquals should ignore value")
	}
	if !a.EqualsIgnoringValueOrTemp(b) {
		t.Fatal("EqualsIgnoringValueOrTemp should ignore value")
	}

	perm := Builder("foo.bar").Server("s1").Expiry(100).Build()
	if perm.AlmostEquals(a) {
		t.Fatal("AlmostEquals must distinguish expiry presence")
	}
	if !perm.EqualsIgnoringValueOrTemp(a) {
		t.Fatal("EqualsIgnoringValueOrTemp must ignore expiry presence")
	}
}

func TestNodeGroupAndWildcard(t *testing.T) {
	n := NewNode("group.admins", true)
	name, ok := n.IsGroupNode()
	if !ok || name != "admins" {
		t.Fatalf("IsGroupNode = %q, %v; want admins, true", name, ok)
	}

	if !NewNode("*", true).IsWildcard() {
		t.Fatal("bare * should be wildcard")
	}
	if NewNode("foo.*", true).IsWildcard() {
		t.Fatal("foo.* is not the universal wildcard")
	}
}

func TestNodeContextIsolation(t *testing.T) {
	b := Builder("foo").WithContext("k", "v")
	n1 := b.Build()
	n2 := b.WithContext("k2", "v2").Build()

	if len(n1.Context()) != 1 {
		t.Fatalf("mutating a derived builder must not affect the original: got %v", n1.Context())
	}
	if len(n2.Context()) != 2 {
		t.Fatalf("expected 2 context keys, got %v", n2.Context())
	}
}
