// Package map1err defines the nine-code error taxonomy for MAP v1.1 and
// the fixed precedence used to choose which error to report when more
// than one violation is present in a single input.
package map1err

import (
	"errors"
	"fmt"
)

// Code is a stable MAP error category.
type Code string

const (
	// ErrCanonHdr indicates a malformed 5-byte CANON_BYTES header.
	ErrCanonHdr Code = "ERR_CANON_HDR"
	// ErrCanonMCF indicates malformed MCF structure: truncation, an
	// unknown tag, a bad BOOLEAN payload byte, trailing bytes, a JSON
	// parse failure, or an extension constant (NaN/Infinity).
	ErrCanonMCF Code = "ERR_CANON_MCF"
	// ErrSchema indicates a shape violation: a non-MAP BIND root, a
	// duplicate or malformed pointer, LIST traversal under BIND, a
	// leading BOM, or an unsupported host type handed to the encoder.
	ErrSchema Code = "ERR_SCHEMA"
	// ErrType indicates a present-but-forbidden value kind: null, a
	// float token, or an integer outside the int64 range.
	ErrType Code = "ERR_TYPE"
	// ErrUTF8 indicates invalid UTF-8 or an unpaired surrogate.
	ErrUTF8 Code = "ERR_UTF8"
	// ErrDupKey indicates a duplicate key in a MAP or JSON object.
	ErrDupKey Code = "ERR_DUP_KEY"
	// ErrKeyOrder indicates MCF bytes present MAP keys out of order.
	ErrKeyOrder Code = "ERR_KEY_ORDER"
	// ErrLimitDepth indicates nesting depth exceeding 32.
	ErrLimitDepth Code = "ERR_LIMIT_DEPTH"
	// ErrLimitSize indicates input or encoded output exceeding 1 MiB,
	// or a container exceeding 65,535 entries.
	ErrLimitSize Code = "ERR_LIMIT_SIZE"
)

// Precedence lists the nine codes from highest to lowest precedence.
// When multiple violations apply to one input, the reported code is
// the one appearing earliest in this list.
var Precedence = [9]Code{
	ErrCanonHdr,
	ErrCanonMCF,
	ErrSchema,
	ErrType,
	ErrUTF8,
	ErrDupKey,
	ErrKeyOrder,
	ErrLimitDepth,
	ErrLimitSize,
}

var precedenceIndex = func() map[Code]int {
	m := make(map[Code]int, len(Precedence))
	for i, c := range Precedence {
		m[c] = i
	}
	return m
}()

// Error is the structured error type for every MAP failure.
type Error struct {
	Code    Code
	Offset  int // byte offset into the original input, -1 if not applicable
	Message string
	Cause   error
}

func (e *Error) Error() string {
	var base string
	if e.Offset >= 0 {
		base = fmt.Sprintf("map1err: %s at byte %d: %s", e.Code, e.Offset, e.Message)
	} else {
		base = fmt.Sprintf("map1err: %s: %s", e.Code, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", base, e.Cause)
	}
	return base
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and message. Offset is -1
// when there is no meaningful byte position.
func New(code Code, offset int, message string) *Error {
	return &Error{Code: code, Offset: offset, Message: message}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, offset int, message string, cause error) *Error {
	return &Error{Code: code, Offset: offset, Message: message, Cause: cause}
}

// CodeOf extracts the Code carried by err, if any.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}

// Choose returns the error among errs whose Code has the lowest
// precedence index (i.e. the highest-precedence error), skipping nil
// entries. It returns nil if no non-nil errors are present. Errors that
// do not carry a *Error are treated as having the lowest possible
// precedence (reported only if nothing else qualifies).
func Choose(errs ...error) error {
	var best error
	bestIdx := len(Precedence) + 1
	for _, err := range errs {
		if err == nil {
			continue
		}
		idx := len(Precedence)
		if code, ok := CodeOf(err); ok {
			if i, ok := precedenceIndex[code]; ok {
				idx = i
			}
		}
		if idx < bestIdx {
			bestIdx = idx
			best = err
		}
	}
	return best
}
