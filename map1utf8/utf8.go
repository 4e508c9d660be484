// Package map1utf8 validates that a byte slice is well-formed UTF-8
// encoding only scalar code-points: every decoded rune must be valid
// and must not fall in the surrogate range U+D800..U+DFFF. Unlike a
// general JSON Canonicalization Scheme validator, this package does
// not reject Unicode noncharacters (U+FDD0..U+FDEF, U+xFFFE/U+xFFFF):
// MAP v1.1 treats those as ordinary scalar values.
package map1utf8

import (
	"unicode/utf8"

	"github.com/lattice-substrate/map1/map1err"
)

const (
	surrogateLow  = 0xD800
	surrogateHigh = 0xDFFF
)

// ValidateScalar walks b rune by rune and returns ErrUTF8 at the byte
// offset of the first malformed sequence or lone surrogate. A nil
// return means b is well-formed scalar UTF-8 in its entirety.
func ValidateScalar(b []byte) error {
	off := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			return map1err.New(map1err.ErrUTF8, off, "invalid UTF-8 byte sequence")
		}
		if r >= surrogateLow && r <= surrogateHigh {
			return map1err.New(map1err.ErrUTF8, off, "lone surrogate code point")
		}
		b = b[size:]
		off += size
	}
	return nil
}

// ValidateString is a convenience wrapper for Go strings, which are
// not guaranteed to hold valid UTF-8 (e.g. when built from arbitrary
// bytes via string([]byte)).
func ValidateString(s string) error {
	return ValidateScalar([]byte(s))
}
