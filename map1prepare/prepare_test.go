package map1prepare_test

import (
	"testing"

	"github.com/lattice-substrate/map1/map1err"
	"github.com/lattice-substrate/map1/map1prepare"
	"github.com/lattice-substrate/map1/map1value"
)

func TestPrepareScalars(t *testing.T) {
	v, err := map1prepare.Prepare("hi", map1prepare.Options{})
	if err != nil || v.Kind() != map1value.KindString || v.StringValue() != "hi" {
		t.Fatalf("string: v=%+v err=%v", v, err)
	}
	v, err = map1prepare.Prepare(true, map1prepare.Options{})
	if err != nil || v.Kind() != map1value.KindBoolean || !v.BoolValue() {
		t.Fatalf("bool: v=%+v err=%v", v, err)
	}
	v, err = map1prepare.Prepare(42, map1prepare.Options{})
	if err != nil || v.Kind() != map1value.KindInteger || v.IntValue() != 42 {
		t.Fatalf("int: v=%+v err=%v", v, err)
	}
}

func TestPrepareNilRejectedByDefault(t *testing.T) {
	_, err := map1prepare.Prepare(nil, map1prepare.Options{})
	if code, ok := map1err.CodeOf(err); !ok || code != map1err.ErrType {
		t.Fatalf("code = %v, want ERR_TYPE", err)
	}
}

func TestPrepareOmitNilDropsMapEntry(t *testing.T) {
	in := map[string]any{"a": 1, "b": nil}
	v, err := map1prepare.Prepare(in, map1prepare.Options{OmitNil: true})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	entries := v.MapValue()
	if len(entries) != 1 || entries[0].Key != "a" {
		t.Fatalf("expected only key a to survive OmitNil, got %+v", entries)
	}
}

func TestPrepareOmitNilDropsListElement(t *testing.T) {
	in := []any{1, nil, 2}
	v, err := map1prepare.Prepare(in, map1prepare.Options{OmitNil: true})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	elems := v.ListValue()
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements after OmitNil, got %+v", elems)
	}
}

func TestPrepareMapSortsKeys(t *testing.T) {
	in := map[string]any{"z": 1, "a": 2, "m": 3}
	v, err := map1prepare.Prepare(in, map1prepare.Options{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	entries := v.MapValue()
	if len(entries) != 3 || entries[0].Key != "a" || entries[1].Key != "m" || entries[2].Key != "z" {
		t.Fatalf("expected sorted keys, got %+v", entries)
	}
}

func TestPrepareUint64OverflowRejected(t *testing.T) {
	var huge uint64 = 1 << 63 // exceeds int64 max
	_, err := map1prepare.Prepare(huge, map1prepare.Options{})
	if code, ok := map1err.CodeOf(err); !ok || code != map1err.ErrSchema {
		t.Fatalf("code = %v, want ERR_SCHEMA", err)
	}
}

func TestPrepareFloatFormatsAsString(t *testing.T) {
	v, err := map1prepare.Prepare(3.5, map1prepare.Options{})
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if v.Kind() != map1value.KindString || v.StringValue() != "3.5" {
		t.Fatalf("got %+v, want STRING \"3.5\"", v)
	}
}

func TestPrepareUnsupportedTypeRejected(t *testing.T) {
	_, err := map1prepare.Prepare(struct{ X int }{1}, map1prepare.Options{})
	if code, ok := map1err.CodeOf(err); !ok || code != map1err.ErrSchema {
		t.Fatalf("code = %v, want ERR_SCHEMA", err)
	}
}
