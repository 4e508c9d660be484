// Package map1proj implements the two MAP v1.1 projections: FULL
// (identity) and BIND (RFC 6901 JSON Pointer field selection over a
// MAP descriptor).
package map1proj

import (
	"strings"

	"github.com/lattice-substrate/map1/map1err"
	"github.com/lattice-substrate/map1/map1value"
)

// Full is the identity projection.
func Full(descriptor *map1value.Value) *map1value.Value {
	return descriptor
}

// parsePointer parses one RFC 6901 pointer into reference tokens.
// "" parses to an empty token slice (the whole-document pointer).
// Tilde escapes are decoded character-by-character so that "~01"
// decodes to "~1", not "/": decoding "~1" before "~0" would get that
// case wrong.
func parsePointer(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, nil
	}
	if !strings.HasPrefix(ptr, "/") {
		return nil, map1err.New(map1err.ErrSchema, -1, "pointer must start with '/'")
	}
	var tokens []string
	for _, raw := range strings.Split(ptr, "/")[1:] {
		var b strings.Builder
		for i := 0; i < len(raw); i++ {
			if raw[i] != '~' {
				b.WriteByte(raw[i])
				continue
			}
			if i+1 >= len(raw) {
				return nil, map1err.New(map1err.ErrSchema, -1, "dangling ~ in pointer")
			}
			switch raw[i+1] {
			case '0':
				b.WriteByte('~')
			case '1':
				b.WriteByte('/')
			default:
				return nil, map1err.New(map1err.ErrSchema, -1, "bad ~ escape in pointer")
			}
			i++
		}
		tokens = append(tokens, b.String())
	}
	return tokens, nil
}

func entryByKey(entries []map1value.Entry, key string) (*map1value.Value, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Bind implements BIND: select fields of the MAP descriptor named by
// pointers, producing the minimal enclosing MAP structure.
//
// Rule ordering follows the reference implementation exactly,
// including one subtlety worth calling out: rule (c), fail-closed if
// any pointer is unmatched while at least one other matched, is
// evaluated before rule (e), the empty pointer subsumes everything.
// This means pointers=["", "/missing"] raises ERR_SCHEMA rather than
// returning the full descriptor, even though "" conceptually subsumes
// "/missing". That is the normative behavior, not an oversight.
func Bind(descriptor *map1value.Value, pointers []string) (*map1value.Value, error) {
	if descriptor.Kind() != map1value.KindMap {
		return nil, map1err.New(map1err.ErrSchema, -1, "BIND root must be a MAP")
	}

	// Rule (b): pointer strings must be pairwise distinct.
	seen := make(map[string]struct{}, len(pointers))
	for _, p := range pointers {
		if _, dup := seen[p]; dup {
			return nil, map1err.New(map1err.ErrSchema, -1, "duplicate pointers")
		}
		seen[p] = struct{}{}
	}

	// Rule (a): parse every pointer before traversing.
	type parsed struct {
		ptr    string
		tokens []string
	}
	all := make([]parsed, 0, len(pointers))
	for _, p := range pointers {
		tokens, err := parsePointer(p)
		if err != nil {
			return nil, err
		}
		all = append(all, parsed{ptr: p, tokens: tokens})
	}

	var matchedPaths [][]string
	anyMatch := false
	anyUnmatched := false
	anyEmpty := false

	for _, p := range all {
		if p.ptr == "" {
			anyMatch = true
			anyEmpty = true
			continue
		}

		cur := descriptor
		ok := true
		for _, tok := range p.tokens {
			if cur.Kind() == map1value.KindList {
				return nil, map1err.New(map1err.ErrSchema, -1, "BIND cannot traverse LIST")
			}
			if cur.Kind() != map1value.KindMap {
				ok = false
				break
			}
			next, found := entryByKey(cur.MapValue(), tok)
			if !found {
				ok = false
				break
			}
			cur = next
		}

		if ok {
			anyMatch = true
			matchedPaths = append(matchedPaths, p.tokens)
		} else {
			anyUnmatched = true
		}
	}

	// Rule (3) via rule (c): no pointer matched anything → empty MAP.
	if !anyMatch {
		return map1value.Map(), nil
	}
	// Rule (c): at least one matched, at least one did not → fail-closed.
	if anyUnmatched {
		return nil, map1err.New(map1err.ErrSchema, -1, "unmatched pointer in set")
	}

	// Rule (e): an empty pointer among the set is FULL-equivalent.
	if anyEmpty {
		return descriptor, nil
	}

	// Rule (d): drop pointers subsumed by a strictly shorter matched
	// prefix pointer.
	isSubsumed := func(toks []string) bool {
		for _, other := range matchedPaths {
			if len(other) < len(toks) && tokenPrefixEqual(toks, other) {
				return true
			}
		}
		return false
	}
	var effective [][]string
	for _, t := range matchedPaths {
		if !isSubsumed(t) {
			effective = append(effective, t)
		}
	}

	// Rules (1)/(2): rebuild the minimal enclosing MAP for the
	// effective (non-subsumed, matched) pointers.
	type mutMap struct {
		order []string
		vals  map[string]any // string key -> *mutMap or *map1value.Value leaf
	}
	newMutMap := func() *mutMap { return &mutMap{vals: make(map[string]any)} }
	root := newMutMap()

	for _, toks := range effective {
		cur := descriptor
		for _, tok := range toks {
			if cur.Kind() == map1value.KindList {
				return nil, map1err.New(map1err.ErrSchema, -1, "BIND cannot traverse LIST")
			}
			if cur.Kind() != map1value.KindMap {
				return nil, map1err.New(map1err.ErrSchema, -1, "cannot traverse non-MAP")
			}
			next, _ := entryByKey(cur.MapValue(), tok)
			cur = next
		}
		leaf := cur

		target := root
		for i, tok := range toks {
			if i == len(toks)-1 {
				if _, exists := target.vals[tok]; !exists {
					target.order = append(target.order, tok)
				}
				target.vals[tok] = leaf
				continue
			}
			existing, ok := target.vals[tok]
			var child *mutMap
			if !ok {
				child = newMutMap()
				target.vals[tok] = child
				target.order = append(target.order, tok)
			} else {
				child, ok = existing.(*mutMap)
				if !ok {
					return nil, map1err.New(map1err.ErrSchema, -1, "BIND path conflict")
				}
			}
			target = child
		}
	}

	var toValue func(m *mutMap) *map1value.Value
	toValue = func(m *mutMap) *map1value.Value {
		entries := make([]map1value.Entry, 0, len(m.order))
		for _, k := range m.order {
			switch v := m.vals[k].(type) {
			case *mutMap:
				entries = append(entries, map1value.Entry{Key: k, Value: toValue(v)})
			case *map1value.Value:
				entries = append(entries, map1value.Entry{Key: k, Value: v})
			}
		}
		return map1value.Map(entries...)
	}
	return toValue(root), nil
}

func tokenPrefixEqual(toks, prefix []string) bool {
	if len(prefix) > len(toks) {
		return false
	}
	for i := range prefix {
		if toks[i] != prefix[i] {
			return false
		}
	}
	return true
}
