// Package map1key implements the unsigned-octet (memcmp) ordering that
// MAP v1.1 requires for MAP keys. This is deliberately not code-point
// order, not locale collation, and not UTF-16 code-unit order: every
// sort and every ordering check inside the core routes through Compare.
package map1key

import "bytes"

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater
// than b, comparing byte-by-byte as unsigned 8-bit integers and
// treating a shorter slice as less than a longer one that agrees on
// their common prefix. This is exactly bytes.Compare's contract; it is
// named and wrapped here because the comparator is a single named
// component that every caller must route through, for auditability.
func Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}

// Less reports whether a sorts strictly before b.
func Less(a, b []byte) bool {
	return Compare(a, b) < 0
}

// IsSortedUnique reports whether keys is in strictly ascending order
// with no duplicates.
func IsSortedUnique(keys [][]byte) bool {
	for i := 1; i < len(keys); i++ {
		if Compare(keys[i-1], keys[i]) >= 0 {
			return false
		}
	}
	return true
}
