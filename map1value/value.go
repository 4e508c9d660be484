// Package map1value defines the canonical-model value: a tagged sum over
// exactly six variants (STRING, BYTES, LIST, MAP, BOOLEAN, INTEGER). No
// other value is representable.
package map1value

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindString Kind = iota
	KindBytes
	KindList
	KindMap
	KindBoolean
	KindInteger
)

// Entry is one (key, value) pair of a MAP value. Keys are always
// STRING-typed at the model level; Key holds the raw UTF-8 bytes.
type Entry struct {
	Key   string
	Value *Value
}

// Value is an immutable canonical-model value. Exactly one payload
// field is meaningful, selected by Kind. Values are constructed only
// through the functions below so that, unlike hosts where booleans are
// a subtype of integers, BOOLEAN and INTEGER can never be confused: a
// *Value built by Bool() has Kind == KindBoolean and nothing else can
// set that Kind.
type Value struct {
	kind Kind

	str     string
	bytes   []byte
	list    []*Value
	entries []Entry
	boolean bool
	integer int64
}

// Kind reports the variant held by v.
func (v *Value) Kind() Kind { return v.kind }

// String constructs a STRING value.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// StringValue returns the payload of a STRING value. Panics if Kind is
// not KindString.
func (v *Value) StringValue() string {
	mustKind(v, KindString)
	return v.str
}

// Bytes constructs a BYTES value.
func Bytes(b []byte) *Value { return &Value{kind: KindBytes, bytes: append([]byte(nil), b...)} }

// BytesValue returns the payload of a BYTES value.
func (v *Value) BytesValue() []byte {
	mustKind(v, KindBytes)
	return v.bytes
}

// List constructs a LIST value from elements in input order.
func List(elems ...*Value) *Value {
	return &Value{kind: KindList, list: append([]*Value(nil), elems...)}
}

// ListValue returns the elements of a LIST value in order.
func (v *Value) ListValue() []*Value {
	mustKind(v, KindList)
	return v.list
}

// Map constructs a MAP value from entries. Entries need not be
// presorted; callers that need a canonical-ordered Value should sort
// with map1key before encoding, but Map itself does not enforce
// ordering so that it can also represent an as-yet-unvalidated tree
// handed to the encoder.
func Map(entries ...Entry) *Value {
	return &Value{kind: KindMap, entries: append([]Entry(nil), entries...)}
}

// MapValue returns the entries of a MAP value in their stored order.
func (v *Value) MapValue() []Entry {
	mustKind(v, KindMap)
	return v.entries
}

// Bool constructs a BOOLEAN value.
func Bool(b bool) *Value { return &Value{kind: KindBoolean, boolean: b} }

// BoolValue returns the payload of a BOOLEAN value.
func (v *Value) BoolValue() bool {
	mustKind(v, KindBoolean)
	return v.boolean
}

// Int constructs an INTEGER value. The caller is responsible for range
// checking against [map1types.Int64Min, map1types.Int64Max]; Go's int64
// already enforces that range structurally.
func Int(i int64) *Value { return &Value{kind: KindInteger, integer: i} }

// IntValue returns the payload of an INTEGER value.
func (v *Value) IntValue() int64 {
	mustKind(v, KindInteger)
	return v.integer
}

func mustKind(v *Value, want Kind) {
	if v == nil || v.kind != want {
		panic("map1value: wrong Kind accessor")
	}
}
