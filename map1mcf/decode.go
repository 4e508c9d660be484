package map1mcf

import (
	"encoding/binary"

	"github.com/lattice-substrate/map1/map1err"
	"github.com/lattice-substrate/map1/map1key"
	"github.com/lattice-substrate/map1/map1types"
	"github.com/lattice-substrate/map1/map1utf8"
	"github.com/lattice-substrate/map1/map1value"
)

// DecodeOne decodes exactly one MCF value from buf starting at off,
// tracking nesting depth the same way Encode does, and returns the
// value plus the offset immediately following it. It enforces every
// model invariant (UTF-8, key order, uniqueness, depth, counts) at
// decode time with the same precedence the encoder uses, so that
// crafted wire bytes that could never arise from Encode (e.g. keys out
// of order) are still rejected here.
func DecodeOne(buf []byte, off int, depth int) (*map1value.Value, int, error) {
	if off >= len(buf) {
		return nil, 0, map1err.New(map1err.ErrCanonMCF, off, "truncated tag")
	}
	tag := map1types.Tag(buf[off])
	off++

	switch tag {
	case map1types.TagString:
		n, next, err := readU32(buf, off)
		if err != nil {
			return nil, 0, err
		}
		off = next
		if off+n > len(buf) {
			return nil, 0, map1err.New(map1err.ErrCanonMCF, off, "truncated string payload")
		}
		raw := buf[off : off+n]
		off += n
		if err := map1utf8.ValidateScalar(raw); err != nil {
			return nil, 0, err
		}
		return map1value.String(string(raw)), off, nil

	case map1types.TagBytes:
		n, next, err := readU32(buf, off)
		if err != nil {
			return nil, 0, err
		}
		off = next
		if off+n > len(buf) {
			return nil, 0, map1err.New(map1err.ErrCanonMCF, off, "truncated bytes payload")
		}
		raw := buf[off : off+n]
		off += n
		return map1value.Bytes(raw), off, nil

	case map1types.TagList:
		if depth+1 > map1types.MaxDepth {
			return nil, 0, map1err.New(map1err.ErrLimitDepth, off, "depth exceeds MAX_DEPTH")
		}
		count, next, err := readU32(buf, off)
		if err != nil {
			return nil, 0, err
		}
		off = next
		if count > map1types.MaxListEntries {
			return nil, 0, map1err.New(map1err.ErrLimitSize, off, "list entry count exceeds limit")
		}
		elems := make([]*map1value.Value, 0, count)
		for i := 0; i < count; i++ {
			var item *map1value.Value
			item, off, err = DecodeOne(buf, off, depth+1)
			if err != nil {
				return nil, 0, err
			}
			elems = append(elems, item)
		}
		return map1value.List(elems...), off, nil

	case map1types.TagMap:
		if depth+1 > map1types.MaxDepth {
			return nil, 0, map1err.New(map1err.ErrLimitDepth, off, "depth exceeds MAX_DEPTH")
		}
		count, next, err := readU32(buf, off)
		if err != nil {
			return nil, 0, err
		}
		off = next
		if count > map1types.MaxMapEntries {
			return nil, 0, map1err.New(map1err.ErrLimitSize, off, "map entry count exceeds limit")
		}

		entries := make([]map1value.Entry, 0, count)
		var prevKey []byte
		for i := 0; i < count; i++ {
			if off >= len(buf) {
				return nil, 0, map1err.New(map1err.ErrCanonMCF, off, "truncated map key tag")
			}
			if map1types.Tag(buf[off]) != map1types.TagString {
				return nil, 0, map1err.New(map1err.ErrSchema, off, "map key must be STRING")
			}
			var keyVal *map1value.Value
			keyVal, off, err = DecodeOne(buf, off, depth+1)
			if err != nil {
				return nil, 0, err
			}
			keyBytes := []byte(keyVal.StringValue())

			if prevKey != nil {
				c := map1key.Compare(prevKey, keyBytes)
				if c == 0 {
					return nil, 0, map1err.New(map1err.ErrDupKey, off, "duplicate key in MCF")
				}
				if c > 0 {
					return nil, 0, map1err.New(map1err.ErrKeyOrder, off, "key order violation in MCF")
				}
			}
			prevKey = keyBytes

			var val *map1value.Value
			val, off, err = DecodeOne(buf, off, depth+1)
			if err != nil {
				return nil, 0, err
			}
			entries = append(entries, map1value.Entry{Key: keyVal.StringValue(), Value: val})
		}
		return map1value.Map(entries...), off, nil

	case map1types.TagBoolean:
		if off >= len(buf) {
			return nil, 0, map1err.New(map1err.ErrCanonMCF, off, "truncated boolean payload")
		}
		payload := buf[off]
		if payload != 0x00 && payload != 0x01 {
			return nil, 0, map1err.New(map1err.ErrCanonMCF, off, "invalid boolean payload")
		}
		return map1value.Bool(payload == 0x01), off + 1, nil

	case map1types.TagInteger:
		if off+8 > len(buf) {
			return nil, 0, map1err.New(map1err.ErrCanonMCF, off, "truncated integer payload")
		}
		n := int64(binary.BigEndian.Uint64(buf[off : off+8]))
		return map1value.Int(n), off + 8, nil
	}

	return nil, 0, map1err.New(map1err.ErrCanonMCF, off-1, "unknown MCF tag")
}

func readU32(buf []byte, off int) (int, int, error) {
	if off+4 > len(buf) {
		return 0, 0, map1err.New(map1err.ErrCanonMCF, off, "truncated u32")
	}
	return int(binary.BigEndian.Uint32(buf[off : off+4])), off + 4, nil
}

// ValidateStructure fully decodes canon's MCF body (after the header)
// and confirms there are no trailing bytes, returning the decoded
// value. Before decoding it checks the MAX_CANON_BYTES limit and the
// 5-byte header; the body is then validated by DecodeOne starting at
// depth 0. The fast-path MID composer only needs to know that the
// structure is valid; the decoded tree is returned as well because it
// costs nothing extra here and is useful for tests.
func ValidateStructure(canon []byte) (*map1value.Value, error) {
	if len(canon) > map1types.MaxCanonBytes {
		return nil, map1err.New(map1err.ErrLimitSize, -1, "canon bytes exceed MAX_CANON_BYTES")
	}
	if len(canon) < len(map1types.CanonHeader) || [5]byte(canon[:5]) != map1types.CanonHeader {
		return nil, map1err.New(map1err.ErrCanonHdr, 0, "bad CANON_HDR")
	}
	off := len(map1types.CanonHeader)
	val, end, err := DecodeOne(canon, off, 0)
	if err != nil {
		return nil, err
	}
	if end != len(canon) {
		return nil, map1err.New(map1err.ErrCanonMCF, end, "trailing bytes after MCF root")
	}
	return val, nil
}
