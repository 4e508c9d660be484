package map1value_test

import (
	"bytes"
	"testing"

	"github.com/lattice-substrate/map1/map1value"
)

func TestConstructorsAndAccessors(t *testing.T) {
	if v := map1value.String("hi"); v.Kind() != map1value.KindString || v.StringValue() != "hi" {
		t.Fatalf("String round-trip failed: %+v", v)
	}
	if v := map1value.Bytes([]byte{1, 2, 3}); v.Kind() != map1value.KindBytes || !bytes.Equal(v.BytesValue(), []byte{1, 2, 3}) {
		t.Fatalf("Bytes round-trip failed: %+v", v)
	}
	if v := map1value.Bool(true); v.Kind() != map1value.KindBoolean || v.BoolValue() != true {
		t.Fatalf("Bool round-trip failed: %+v", v)
	}
	if v := map1value.Int(-7); v.Kind() != map1value.KindInteger || v.IntValue() != -7 {
		t.Fatalf("Int round-trip failed: %+v", v)
	}
	elems := map1value.List(map1value.Int(1), map1value.Int(2))
	if elems.Kind() != map1value.KindList || len(elems.ListValue()) != 2 {
		t.Fatalf("List round-trip failed: %+v", elems)
	}
	m := map1value.Map(map1value.Entry{Key: "k", Value: map1value.Int(9)})
	if m.Kind() != map1value.KindMap || len(m.MapValue()) != 1 || m.MapValue()[0].Key != "k" {
		t.Fatalf("Map round-trip failed: %+v", m)
	}
}

func TestBytesConstructorCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	v := map1value.Bytes(src)
	src[0] = 0xFF
	if v.BytesValue()[0] != 1 {
		t.Fatal("Bytes did not defensively copy its input slice")
	}
}

func TestWrongKindAccessorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic reading StringValue on a non-STRING Value")
		}
	}()
	map1value.Int(1).StringValue()
}

func TestBooleanNeverConfusedWithInteger(t *testing.T) {
	b := map1value.Bool(true)
	i := map1value.Int(1)
	if b.Kind() == i.Kind() {
		t.Fatal("BOOLEAN and INTEGER must be distinct Kinds")
	}
}
