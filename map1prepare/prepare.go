// Package map1prepare offers Prepare, a convenience normalizer that
// turns loosely-typed Go values (the kind produced by an ordinary
// encoding/json.Unmarshal into interface{}) into a map1value.Value
// ready for the deterministic core. It is not part of the wire format:
// nothing it does is observable in CANON_BYTES beyond the ordinary
// Value it produces, and its formatting choices (notably float
// precision) are a caller convenience, not a normative rule.
package map1prepare

import (
	"sort"
	"strconv"

	"github.com/lattice-substrate/map1/map1err"
	"github.com/lattice-substrate/map1/map1value"
)

// Options controls Prepare's handling of values MAP itself has no
// representation for.
type Options struct {
	// OmitNil, when true, drops map entries and list elements whose
	// value is nil instead of raising ERR_TYPE.
	OmitNil bool
	// FloatPrecision is the number of digits after the decimal point
	// used when formatting a float64 into a STRING. Zero means use
	// strconv's shortest round-trippable representation.
	FloatPrecision int
}

// Prepare normalizes v into a *map1value.Value. Supported inputs:
// string, []byte, bool, the signed/unsigned integer kinds (range
// checked against int64), float32/float64 (formatted to a decimal
// STRING), map[string]any (recursively prepared, nil values honor
// OmitNil), and []any (recursively prepared, same nil handling).
func Prepare(v any, opts Options) (*map1value.Value, error) {
	switch x := v.(type) {
	case nil:
		if opts.OmitNil {
			return nil, nil
		}
		return nil, map1err.New(map1err.ErrType, -1, "nil not allowed (set OmitNil to drop it)")

	case *map1value.Value:
		return x, nil

	case string:
		return map1value.String(x), nil

	case []byte:
		return map1value.Bytes(x), nil

	case bool:
		return map1value.Bool(x), nil

	case int:
		return map1value.Int(int64(x)), nil
	case int8:
		return map1value.Int(int64(x)), nil
	case int16:
		return map1value.Int(int64(x)), nil
	case int32:
		return map1value.Int(int64(x)), nil
	case int64:
		return map1value.Int(x), nil
	case uint:
		return prepareUint(uint64(x))
	case uint8:
		return map1value.Int(int64(x)), nil
	case uint16:
		return map1value.Int(int64(x)), nil
	case uint32:
		return map1value.Int(int64(x)), nil
	case uint64:
		return prepareUint(x)

	case float32:
		return map1value.String(formatFloat(float64(x), opts.FloatPrecision)), nil
	case float64:
		return map1value.String(formatFloat(x, opts.FloatPrecision)), nil

	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]map1value.Entry, 0, len(x))
		for _, k := range keys {
			child, err := Prepare(x[k], opts)
			if err != nil {
				return nil, err
			}
			if child == nil {
				continue // OmitNil dropped it
			}
			entries = append(entries, map1value.Entry{Key: k, Value: child})
		}
		return map1value.Map(entries...), nil

	case []any:
		elems := make([]*map1value.Value, 0, len(x))
		for _, item := range x {
			child, err := Prepare(item, opts)
			if err != nil {
				return nil, err
			}
			if child == nil {
				continue
			}
			elems = append(elems, child)
		}
		return map1value.List(elems...), nil

	default:
		return nil, map1err.New(map1err.ErrSchema, -1, "unsupported type for Prepare")
	}
}

func prepareUint(x uint64) (*map1value.Value, error) {
	if x > uint64(^uint64(0)>>1) {
		return nil, map1err.New(map1err.ErrSchema, -1, "uint value exceeds int64 range")
	}
	return map1value.Int(int64(x)), nil
}

func formatFloat(f float64, precision int) string {
	if precision <= 0 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', precision, 64)
}
