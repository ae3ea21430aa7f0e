package expand

import (
	"reflect"
	"testing"
)

func TestShorthandCommaGroup(t *testing.T) {
	got := Shorthand("group.{admin,mod}")
	want := []string{"group.admin", "group.mod"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Shorthand = %v, want %v", got, want)
	}
}

func TestShorthandRange(t *testing.T) {
	got := Shorthand("world{1-3}.build")
	want := []string{"world1.build", "world2.build", "world3.build"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Shorthand = %v, want %v", got, want)
	}
}

func TestShorthandRangeZeroPadded(t *testing.T) {
	got := Shorthand("slot{08-10}")
	want := []string{"slot08", "slot09", "slot10"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Shorthand = %v, want %v", got, want)
	}
}

func TestShorthandNoBraces(t *testing.T) {
	got := Shorthand("foo.bar")
	if !reflect.DeepEqual(got, []string{"foo.bar"}) {
		t.Fatalf("Shorthand = %v", got)
	}
}
