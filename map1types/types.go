// Package map1types defines the fixed constants of the MAP v1.1 wire
// format: the canonical header, the six type tags, and the normative
// size/depth/count limits.
package map1types

// CanonHeader is the fixed 5-byte prefix of every CANON_BYTES stream:
// ASCII "MAP1" followed by a NUL byte. It never changes within major
// version 1.
var CanonHeader = [5]byte{'M', 'A', 'P', '1', 0x00}

// Tag identifies a canonical value's variant in the MCF wire framing.
type Tag byte

const (
	TagString  Tag = 0x01
	TagBytes   Tag = 0x02
	TagList    Tag = 0x03
	TagMap     Tag = 0x04
	TagBoolean Tag = 0x05
	TagInteger Tag = 0x06
)

func (t Tag) String() string {
	switch t {
	case TagString:
		return "STRING"
	case TagBytes:
		return "BYTES"
	case TagList:
		return "LIST"
	case TagMap:
		return "MAP"
	case TagBoolean:
		return "BOOLEAN"
	case TagInteger:
		return "INTEGER"
	default:
		return "UNKNOWN"
	}
}

const (
	// Int64Min is the minimum representable INTEGER value (-2^63).
	Int64Min int64 = -1 << 63
	// Int64Max is the maximum representable INTEGER value (2^63 - 1).
	Int64Max int64 = 1<<63 - 1

	// MaxCanonBytes is the maximum length, in bytes, of a CANON_BYTES
	// stream (header inclusive).
	MaxCanonBytes = 1 << 20 // 1 MiB

	// MaxDepth is the maximum container nesting depth. The root
	// container counts as depth 1.
	MaxDepth = 32

	// MaxMapEntries is the maximum number of (key, value) pairs in a
	// MAP.
	MaxMapEntries = 65535

	// MaxListEntries is the maximum number of elements in a LIST.
	MaxListEntries = 65535
)
