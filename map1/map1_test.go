package map1_test

import (
	"testing"

	"github.com/lattice-substrate/map1/map1"
	"github.com/lattice-substrate/map1/map1err"
	"github.com/lattice-substrate/map1/map1value"
)

func TestMidFullMatchesSpecExample(t *testing.T) {
	v := map1value.Map(
		map1value.Entry{Key: "action", Value: map1value.String("deploy")},
		map1value.Entry{Key: "target", Value: map1value.String("prod")},
		map1value.Entry{Key: "version", Value: map1value.String("2.1.0")},
	)
	mid, err := map1.MidFull(v)
	if err != nil {
		t.Fatalf("MidFull: %v", err)
	}
	if mid[:5] != "map1:" {
		t.Fatalf("MID %q missing map1: prefix", mid)
	}
	if len(mid) != len("map1:")+64 {
		t.Fatalf("MID %q has wrong length", mid)
	}
	const want = "map1:02f660092e372c2da0f87cefdecd1de9476eba39be2222b30637ba72178c5e7e"
	if mid != want {
		t.Fatalf("MidFull = %s, want %s", mid, want)
	}
}

func TestMidFullReorderingInvariance(t *testing.T) {
	a := map1value.Map(
		map1value.Entry{Key: "a", Value: map1value.Int(1)},
		map1value.Entry{Key: "b", Value: map1value.Int(2)},
	)
	b := map1value.Map(
		map1value.Entry{Key: "b", Value: map1value.Int(2)},
		map1value.Entry{Key: "a", Value: map1value.Int(1)},
	)
	midA, err := map1.MidFull(a)
	if err != nil {
		t.Fatalf("MidFull a: %v", err)
	}
	midB, err := map1.MidFull(b)
	if err != nil {
		t.Fatalf("MidFull b: %v", err)
	}
	if midA != midB {
		t.Fatalf("reordering MAP entries changed MID: %s vs %s", midA, midB)
	}
}

func TestMidFromCanonBytesRoundTrip(t *testing.T) {
	v := map1value.Map(
		map1value.Entry{Key: "x", Value: map1value.Int(7)},
	)
	canon, err := map1.CanonicalBytesFull(v)
	if err != nil {
		t.Fatalf("CanonicalBytesFull: %v", err)
	}
	viaCanon, err := map1.MidFromCanonBytes(canon)
	if err != nil {
		t.Fatalf("MidFromCanonBytes: %v", err)
	}
	viaValue, err := map1.MidFull(v)
	if err != nil {
		t.Fatalf("MidFull: %v", err)
	}
	if viaCanon != viaValue {
		t.Fatalf("MidFromCanonBytes(CanonicalBytesFull(v)) = %s, want %s", viaCanon, viaValue)
	}
}

func TestMidFullJSONMatchesValueConstruction(t *testing.T) {
	fromJSON, err := map1.MidFullJSON([]byte(`{"a":1,"b":"x"}`))
	if err != nil {
		t.Fatalf("MidFullJSON: %v", err)
	}
	fromValue, err := map1.MidFull(map1value.Map(
		map1value.Entry{Key: "a", Value: map1value.Int(1)},
		map1value.Entry{Key: "b", Value: map1value.String("x")},
	))
	if err != nil {
		t.Fatalf("MidFull: %v", err)
	}
	if fromJSON != fromValue {
		t.Fatalf("MidFullJSON = %s, want %s", fromJSON, fromValue)
	}
}

func TestMidFullJSONDuplicateKeyRejected(t *testing.T) {
	_, err := map1.MidFullJSON([]byte(`{"a":1,"a":2}`))
	if code, ok := map1err.CodeOf(err); !ok || code != map1err.ErrDupKey {
		t.Fatalf("code = %v, want ERR_DUP_KEY", err)
	}
}

func TestMidFullJSONDuplicateKeyYieldsToFloatError(t *testing.T) {
	// The float token error takes precedence over the deferred
	// duplicate-key error per the fixed precedence order.
	_, err := map1.MidFullJSON([]byte(`{"a":1,"a":1.5}`))
	if code, ok := map1err.CodeOf(err); !ok || code != map1err.ErrType {
		t.Fatalf("code = %v, want ERR_TYPE", err)
	}
}

func TestMidBindJSON(t *testing.T) {
	mid, err := map1.MidBindJSON([]byte(`{"name":"alice","secret":"shh"}`), []string{"/name"})
	if err != nil {
		t.Fatalf("MidBindJSON: %v", err)
	}
	want, err := map1.MidFull(map1value.Map(map1value.Entry{Key: "name", Value: map1value.String("alice")}))
	if err != nil {
		t.Fatalf("MidFull: %v", err)
	}
	if mid != want {
		t.Fatalf("MidBindJSON = %s, want %s", mid, want)
	}
}

func TestMidFromCanonBytesRejectsBadHeader(t *testing.T) {
	_, err := map1.MidFromCanonBytes([]byte("XXXX\x00\x05\x01"))
	if code, ok := map1err.CodeOf(err); !ok || code != map1err.ErrCanonHdr {
		t.Fatalf("code = %v, want ERR_CANON_HDR", err)
	}
}
