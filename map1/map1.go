// Package map1 is the public facade for MAP v1.1: it composes the
// canonical encoder/decoder, the JSON-STRICT adapter, and the
// projection algebra into the six operations external callers use,
// plus the fast-path CANON_BYTES validator.
package map1

import (
	"encoding/hex"

	sha256 "github.com/minio/sha256-simd"

	"github.com/lattice-substrate/map1/map1err"
	"github.com/lattice-substrate/map1/map1mcf"
	"github.com/lattice-substrate/map1/map1proj"
	"github.com/lattice-substrate/map1/map1value"
	jsonadapter "github.com/lattice-substrate/map1/map1json"
)

// MidPrefix is the fixed string prefix of every MID.
const MidPrefix = "map1:"

func midFromCanon(canon []byte) string {
	sum := sha256.Sum256(canon)
	return MidPrefix + hex.EncodeToString(sum[:])
}

// CanonicalBytesFull encodes v under the FULL projection (identity)
// and returns CANON_BYTES.
func CanonicalBytesFull(v *map1value.Value) ([]byte, error) {
	return map1mcf.CanonBytes(map1proj.Full(v))
}

// CanonicalBytesBind projects root (which must be a MAP) through BIND
// over pointers and returns CANON_BYTES of the result.
func CanonicalBytesBind(root *map1value.Value, pointers []string) ([]byte, error) {
	projected, err := map1proj.Bind(root, pointers)
	if err != nil {
		return nil, err
	}
	return map1mcf.CanonBytes(projected)
}

// MidFull returns the MID of v under the FULL projection.
func MidFull(v *map1value.Value) (string, error) {
	canon, err := CanonicalBytesFull(v)
	if err != nil {
		return "", err
	}
	return midFromCanon(canon), nil
}

// MidBind returns the MID of root projected through BIND over
// pointers.
func MidBind(root *map1value.Value, pointers []string) (string, error) {
	canon, err := CanonicalBytesBind(root, pointers)
	if err != nil {
		return "", err
	}
	return midFromCanon(canon), nil
}

// MidFromCanonBytes validates canon's structure and returns its MID,
// hashing the caller's bytes directly rather than re-encoding through
// the model layer: re-encoding would mask non-canonical-but-parseable
// inputs such as trailing bytes or an alternate serialization of the
// same logical value.
func MidFromCanonBytes(canon []byte) (string, error) {
	if _, err := map1mcf.ValidateStructure(canon); err != nil {
		return "", err
	}
	return midFromCanon(canon), nil
}

// MidFullJSON parses raw JSON-STRICT bytes and returns the MID of the
// resulting value under FULL.
func MidFullJSON(raw []byte) (string, error) {
	v, err := parseJSONStrict(raw)
	if err != nil {
		return "", err
	}
	return MidFull(v)
}

// MidBindJSON parses raw JSON-STRICT bytes (which must decode to a
// MAP) and returns the MID of the result under BIND over pointers.
func MidBindJSON(raw []byte, pointers []string) (string, error) {
	v, err := parseJSONStrict(raw)
	if err != nil {
		return "", err
	}
	return MidBind(v, pointers)
}

// parseJSONStrict runs the JSON-STRICT adapter and applies the
// duplicate-key deferral policy: a duplicate key only surfaces as
// ERR_DUP_KEY if parsing otherwise completed cleanly, because a
// later, higher-precedence error (e.g. ERR_TYPE from a null or float
// token) must win instead.
func parseJSONStrict(raw []byte) (*map1value.Value, error) {
	v, dupFound, err := jsonadapter.Parse(raw)
	if err != nil {
		return nil, err
	}
	if dupFound {
		return nil, map1err.New(map1err.ErrDupKey, -1, "duplicate key in JSON object")
	}
	return v, nil
}
