package util

import (
	"strings"
	"testing"
)

func TestBulkKeyOrderInsensitive(t *testing.T) {
	a := BulkKey("docs:user", []string{"x", "y", "z"})
	b := BulkKey("docs:user", []string{"z", "x", "y"})
	if a != b {
		t.Fatalf("expected same key for permutations: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "docs:user:") || len(a) != len("docs:user:")+16 {
		t.Fatalf("unexpected shape %q", a)
	}
}

func TestBulkKeyMemberBoundaries(t *testing.T) {
	if BulkKey("p", []string{"a,b"}) == BulkKey("p", []string{"a", "b"}) {
		t.Fatalf("joined and split members must not collide")
	}
}

func TestBulkKeyDoesNotMutateInput(t *testing.T) {
	in := []string{"b", "a"}
	_ = BulkKey("p", in)
	if in[0] != "b" || in[1] != "a" {
		t.Fatalf("input reordered: %v", in)
	}
}
