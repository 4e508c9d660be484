// Package map1mcf implements the Minimal Canonical Form binary codec:
// Encode turns a canonical-model value into MCF bytes (tag+length
// framing), and DecodeOne/ValidateStructure perform the matching
// structural validation used by the fast-path MID.
package map1mcf

import (
	"encoding/binary"
	"sort"

	"github.com/lattice-substrate/map1/map1err"
	"github.com/lattice-substrate/map1/map1key"
	"github.com/lattice-substrate/map1/map1types"
	"github.com/lattice-substrate/map1/map1utf8"
	"github.com/lattice-substrate/map1/map1value"
)

// Encode serializes v into MCF bytes (no header). depth is the
// caller's current nesting depth; top-level callers pass 0.
func Encode(v *map1value.Value, depth int) ([]byte, error) {
	switch v.Kind() {
	case map1value.KindBoolean:
		payload := byte(0x00)
		if v.BoolValue() {
			payload = 0x01
		}
		return []byte{byte(map1types.TagBoolean), payload}, nil

	case map1value.KindInteger:
		out := make([]byte, 9)
		out[0] = byte(map1types.TagInteger)
		binary.BigEndian.PutUint64(out[1:], uint64(v.IntValue()))
		return out, nil

	case map1value.KindString:
		raw := []byte(v.StringValue())
		if err := map1utf8.ValidateScalar(raw); err != nil {
			return nil, err
		}
		return encodeStringBytes(raw), nil

	case map1value.KindBytes:
		raw := v.BytesValue()
		out := make([]byte, 0, 5+len(raw))
		out = append(out, byte(map1types.TagBytes))
		out = appendU32(out, len(raw))
		out = append(out, raw...)
		return out, nil

	case map1value.KindList:
		elems := v.ListValue()
		if depth+1 > map1types.MaxDepth {
			return nil, map1err.New(map1err.ErrLimitDepth, -1, "depth exceeds MAX_DEPTH")
		}
		if len(elems) > map1types.MaxListEntries {
			return nil, map1err.New(map1err.ErrLimitSize, -1, "list entry count exceeds limit")
		}
		out := []byte{byte(map1types.TagList)}
		out = appendU32(out, len(elems))
		for _, e := range elems {
			enc, err := Encode(e, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil

	case map1value.KindMap:
		entries := v.MapValue()
		if depth+1 > map1types.MaxDepth {
			return nil, map1err.New(map1err.ErrLimitDepth, -1, "depth exceeds MAX_DEPTH")
		}
		if len(entries) > map1types.MaxMapEntries {
			return nil, map1err.New(map1err.ErrLimitSize, -1, "map entry count exceeds limit")
		}

		type kv struct {
			keyBytes []byte
			val      *map1value.Value
		}
		items := make([]kv, 0, len(entries))
		for _, e := range entries {
			kb := []byte(e.Key)
			if err := map1utf8.ValidateScalar(kb); err != nil {
				return nil, err
			}
			items = append(items, kv{keyBytes: kb, val: e.Value})
		}
		sort.Slice(items, func(i, j int) bool {
			return map1key.Less(items[i].keyBytes, items[j].keyBytes)
		})
		keys := make([][]byte, len(items))
		for i, it := range items {
			keys[i] = it.keyBytes
		}
		if err := ensureSortedUnique(keys); err != nil {
			return nil, err
		}

		out := []byte{byte(map1types.TagMap)}
		out = appendU32(out, len(items))
		for _, it := range items {
			out = append(out, encodeStringBytes(it.keyBytes)...)
			enc, err := Encode(it.val, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	}

	return nil, map1err.New(map1err.ErrSchema, -1, "unsupported value kind")
}

func encodeStringBytes(raw []byte) []byte {
	out := make([]byte, 0, 5+len(raw))
	out = append(out, byte(map1types.TagString))
	out = appendU32(out, len(raw))
	out = append(out, raw...)
	return out
}

func appendU32(out []byte, n int) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(n))
	return append(out, b[:]...)
}

// ensureSortedUnique asserts keys is strictly ascending by memcmp,
// raising ERR_DUP_KEY or ERR_KEY_ORDER on the first violation. After a
// sort-then-scan this branch is unreachable from Encode itself, but the
// check mirrors the decoder's wire-level enforcement of the same
// invariant.
func ensureSortedUnique(keys [][]byte) error {
	for i := 1; i < len(keys); i++ {
		c := map1key.Compare(keys[i-1], keys[i])
		if c == 0 {
			return map1err.New(map1err.ErrDupKey, -1, "duplicate key")
		}
		if c > 0 {
			return map1err.New(map1err.ErrKeyOrder, -1, "key order violation")
		}
	}
	return nil
}

// CanonBytes produces CANON_BYTES = header ‖ MCF(root) for v.
func CanonBytes(v *map1value.Value) ([]byte, error) {
	body, err := Encode(v, 0)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(map1types.CanonHeader)+len(body))
	out = append(out, map1types.CanonHeader[:]...)
	out = append(out, body...)
	if len(out) > map1types.MaxCanonBytes {
		return nil, map1err.New(map1err.ErrLimitSize, -1, "canon bytes exceed MAX_CANON_BYTES")
	}
	return out, nil
}
