package map1key_test

import (
	"testing"

	"github.com/lattice-substrate/map1/map1key"
)

func TestCompareUnsignedOctet(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"a", "a", 0},
		{"ab", "a", 1},
		{"a", "ab", -1},
	}
	for _, c := range cases {
		got := map1key.Compare([]byte(c.a), []byte(c.b))
		if sign(got) != c.want {
			t.Errorf("Compare(%q, %q) = %d, want sign %d", c.a, c.b, got, c.want)
		}
	}
}

// TestCompareHighBitBytes pins the single most common inter-implementation
// divergence for unsigned-octet ordering: on hosts where the default byte
// type is signed, a byte >= 0x80 compares as negative unless masked. Go's
// byte is unsigned, but the test pins the behavior anyway.
func TestCompareHighBitBytes(t *testing.T) {
	low := []byte{0x7F}
	high := []byte{0x80}
	if map1key.Compare(low, high) >= 0 {
		t.Fatalf("expected 0x7F < 0x80 under unsigned-octet order")
	}
	if !map1key.Less(low, high) {
		t.Fatalf("expected Less(0x7F, 0x80) == true")
	}
}

func TestIsSortedUnique(t *testing.T) {
	sorted := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	if !map1key.IsSortedUnique(sorted) {
		t.Fatal("expected sorted/unique keys to pass")
	}
	withDup := [][]byte{[]byte("a"), []byte("a")}
	if map1key.IsSortedUnique(withDup) {
		t.Fatal("expected duplicate keys to fail")
	}
	outOfOrder := [][]byte{[]byte("b"), []byte("a")}
	if map1key.IsSortedUnique(outOfOrder) {
		t.Fatal("expected out-of-order keys to fail")
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
