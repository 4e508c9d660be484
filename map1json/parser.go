// Package map1json implements the JSON-STRICT ingestion adapter: raw
// JSON bytes in, a canonical-model value out. It is a hand-rolled
// recursive-descent parser: encoding/json cannot report the
// token-level float-vs-integer distinction MAP requires ("1.0" must be
// rejected as a float even though its value is integral), and it has no
// hook for MAP's duplicate-key deferral policy (continue parsing so a
// later, higher-precedence error can still surface).
package map1json

import (
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/lattice-substrate/map1/map1err"
	"github.com/lattice-substrate/map1/map1types"
	"github.com/lattice-substrate/map1/map1value"
)

const (
	surrogateLow  = 0xD800
	surrogateHigh = 0xDFFF
)

type parser struct {
	buf      []byte
	pos      int
	dupFound bool
}

// Parse converts raw JSON bytes into a canonical-model value under
// JSON-STRICT rules. dupFound reports whether a duplicate object key
// was seen anywhere in the input; the caller (map1, the public facade)
// raises ERR_DUP_KEY only if parsing otherwise completed without a
// higher-precedence error, matching the adapter's deferral policy.
func Parse(raw []byte) (val *map1value.Value, dupFound bool, err error) {
	if len(raw) > map1types.MaxCanonBytes {
		return nil, false, map1err.New(map1err.ErrLimitSize, -1, "input exceeds MAX_CANON_BYTES")
	}

	start := skipLeadingWhitespace(raw)
	if len(raw)-start >= 3 && raw[start] == 0xEF && raw[start+1] == 0xBB && raw[start+2] == 0xBF {
		return nil, false, map1err.New(map1err.ErrSchema, start, "UTF-8 BOM rejected")
	}
	if !utf8.Valid(raw) {
		return nil, false, map1err.New(map1err.ErrUTF8, -1, "invalid UTF-8 in JSON input")
	}

	p := &parser{buf: raw, pos: start}
	v, err := p.parseValue(1)
	if err != nil {
		return nil, p.dupFound, err
	}
	p.skipWhitespace()
	if p.pos != len(p.buf) {
		return nil, p.dupFound, map1err.New(map1err.ErrCanonMCF, p.pos, "trailing data after JSON value")
	}
	return v, p.dupFound, nil
}

func skipLeadingWhitespace(b []byte) int {
	i := 0
	for i < len(b) && isJSONWhitespace(b[i]) {
		i++
	}
	return i
}

func isJSONWhitespace(c byte) bool {
	return c == 0x20 || c == 0x09 || c == 0x0A || c == 0x0D
}

func (p *parser) skipWhitespace() {
	for p.pos < len(p.buf) && isJSONWhitespace(p.buf[p.pos]) {
		p.pos++
	}
}

func (p *parser) errHere(code map1err.Code, msg string) error {
	return map1err.New(code, p.pos, msg)
}

func (p *parser) parseValue(depth int) (*map1value.Value, error) {
	p.skipWhitespace()
	if p.pos >= len(p.buf) {
		return nil, p.errHere(map1err.ErrCanonMCF, "unexpected end of JSON input")
	}
	switch c := p.buf[p.pos]; {
	case c == '{':
		return p.parseObject(depth)
	case c == '[':
		return p.parseArray(depth)
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return map1value.String(s), nil
	case c == 't':
		return p.parseLiteral("true", map1value.Bool(true))
	case c == 'f':
		return p.parseLiteral("false", map1value.Bool(false))
	case c == 'n':
		if _, err := p.parseLiteral("null", nil); err != nil {
			return nil, err
		}
		return nil, map1err.New(map1err.ErrType, p.pos-len("null"), "JSON null not allowed")
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	default:
		return nil, p.errHere(map1err.ErrCanonMCF, "unexpected character in JSON value")
	}
}

func (p *parser) parseLiteral(lit string, val *map1value.Value) (*map1value.Value, error) {
	if p.pos+len(lit) > len(p.buf) || string(p.buf[p.pos:p.pos+len(lit)]) != lit {
		return nil, p.errHere(map1err.ErrCanonMCF, "invalid JSON literal")
	}
	p.pos += len(lit)
	return val, nil
}

func (p *parser) parseObject(depth int) (*map1value.Value, error) {
	if depth > map1types.MaxDepth {
		return nil, p.errHere(map1err.ErrLimitDepth, "exceeds MAX_DEPTH")
	}
	p.pos++ // consume '{'
	var entries []map1value.Entry
	seen := make(map[string]struct{})

	p.skipWhitespace()
	if p.pos < len(p.buf) && p.buf[p.pos] == '}' {
		p.pos++
		return map1value.Map(entries...), nil
	}

	for {
		p.skipWhitespace()
		if p.pos >= len(p.buf) || p.buf[p.pos] != '"' {
			return nil, p.errHere(map1err.ErrCanonMCF, "expected string key")
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		if err := ensureNoSurrogates(key, p.pos); err != nil {
			return nil, err
		}

		p.skipWhitespace()
		if p.pos >= len(p.buf) || p.buf[p.pos] != ':' {
			return nil, p.errHere(map1err.ErrCanonMCF, "expected ':' after object key")
		}
		p.pos++

		childDepth := depth
		// Peek ahead: only containers increment depth, matching the
		// reference adapter's depth model (scalars don't count).
		savedPos := p.pos
		p.skipWhitespace()
		if p.pos < len(p.buf) && (p.buf[p.pos] == '{' || p.buf[p.pos] == '[') {
			childDepth = depth + 1
		}
		p.pos = savedPos

		val, err := p.parseValue(childDepth)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[key]; dup {
			p.dupFound = true
			// Keep first occurrence per the reference adapter; do not
			// overwrite entries, and keep parsing.
		} else {
			seen[key] = struct{}{}
			entries = append(entries, map1value.Entry{Key: key, Value: val})
		}

		p.skipWhitespace()
		if p.pos >= len(p.buf) {
			return nil, p.errHere(map1err.ErrCanonMCF, "unterminated JSON object")
		}
		switch p.buf[p.pos] {
		case ',':
			p.pos++
			continue
		case '}':
			p.pos++
			return map1value.Map(entries...), nil
		default:
			return nil, p.errHere(map1err.ErrCanonMCF, "expected ',' or '}' in object")
		}
	}
}

func (p *parser) parseArray(depth int) (*map1value.Value, error) {
	if depth > map1types.MaxDepth {
		return nil, p.errHere(map1err.ErrLimitDepth, "exceeds MAX_DEPTH")
	}
	p.pos++ // consume '['
	var elems []*map1value.Value

	p.skipWhitespace()
	if p.pos < len(p.buf) && p.buf[p.pos] == ']' {
		p.pos++
		return map1value.List(elems...), nil
	}

	for {
		savedPos := p.pos
		p.skipWhitespace()
		childDepth := depth
		if p.pos < len(p.buf) && (p.buf[p.pos] == '{' || p.buf[p.pos] == '[') {
			childDepth = depth + 1
		}
		p.pos = savedPos

		val, err := p.parseValue(childDepth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, val)

		p.skipWhitespace()
		if p.pos >= len(p.buf) {
			return nil, p.errHere(map1err.ErrCanonMCF, "unterminated JSON array")
		}
		switch p.buf[p.pos] {
		case ',':
			p.pos++
			continue
		case ']':
			p.pos++
			return map1value.List(elems...), nil
		default:
			return nil, p.errHere(map1err.ErrCanonMCF, "expected ',' or ']' in array")
		}
	}
}

func (p *parser) parseString() (string, error) {
	p.pos++ // consume opening quote
	var sb []byte
	for {
		if p.pos >= len(p.buf) {
			return "", p.errHere(map1err.ErrCanonMCF, "unterminated JSON string")
		}
		c := p.buf[p.pos]
		if c == '"' {
			p.pos++
			return string(sb), nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.buf) {
				return "", p.errHere(map1err.ErrCanonMCF, "unterminated escape in JSON string")
			}
			esc := p.buf[p.pos]
			switch esc {
			case '"', '\\', '/':
				sb = append(sb, esc)
				p.pos++
			case 'b':
				sb = append(sb, '\b')
				p.pos++
			case 'f':
				sb = append(sb, '\f')
				p.pos++
			case 'n':
				sb = append(sb, '\n')
				p.pos++
			case 'r':
				sb = append(sb, '\r')
				p.pos++
			case 't':
				sb = append(sb, '\t')
				p.pos++
			case 'u':
				r, err := p.parseUnicodeEscape()
				if err != nil {
					return "", err
				}
				var rb [4]byte
				n := utf8.EncodeRune(rb[:], r)
				sb = append(sb, rb[:n]...)
			default:
				return "", p.errHere(map1err.ErrCanonMCF, "invalid escape in JSON string")
			}
			continue
		}
		if c < 0x20 {
			return "", p.errHere(map1err.ErrCanonMCF, "unescaped control character in JSON string")
		}
		sb = append(sb, c)
		p.pos++
	}
}

// parseUnicodeEscape decodes a \uXXXX escape, resolving a following
// \uXXXX low surrogate into a single rune when the first is a high
// surrogate. An unpaired surrogate half is rejected immediately with
// ERR_UTF8 rather than silently substituted with U+FFFD: Go cannot
// represent a lone surrogate inside a valid string, so the check must
// happen here, at decode time, not after the fact on the assembled
// string.
func (p *parser) parseUnicodeEscape() (rune, error) {
	escPos := p.pos - 1 // position of the backslash that introduced this escape
	hi, err := p.readHex4()
	if err != nil {
		return 0, err
	}
	if hi >= 0xD800 && hi <= 0xDBFF {
		if p.pos+1 < len(p.buf) && p.buf[p.pos] == '\\' && p.buf[p.pos+1] == 'u' {
			savedPos := p.pos
			p.pos++ // skip '\'; readHex4 consumes the 'u'
			lo, err := p.readHex4()
			if err == nil && lo >= 0xDC00 && lo <= 0xDFFF {
				r := utf16.DecodeRune(rune(hi), rune(lo))
				return r, nil
			}
			p.pos = savedPos
		}
		return 0, map1err.New(map1err.ErrUTF8, escPos, "unpaired high surrogate in JSON string")
	}
	if hi >= 0xDC00 && hi <= 0xDFFF {
		return 0, map1err.New(map1err.ErrUTF8, escPos, "unpaired low surrogate in JSON string")
	}
	return rune(hi), nil
}

func (p *parser) readHex4() (uint32, error) {
	p.pos++ // consume 'u'
	if p.pos+4 > len(p.buf) {
		return 0, p.errHere(map1err.ErrCanonMCF, "truncated unicode escape")
	}
	n, err := strconv.ParseUint(string(p.buf[p.pos:p.pos+4]), 16, 32)
	if err != nil {
		return 0, p.errHere(map1err.ErrCanonMCF, "invalid unicode escape")
	}
	p.pos += 4
	return uint32(n), nil
}

func ensureNoSurrogates(s string, pos int) error {
	for _, r := range s {
		if r >= surrogateLow && r <= surrogateHigh {
			return map1err.New(map1err.ErrUTF8, pos, "surrogate code point in JSON string")
		}
	}
	return nil
}

// parseNumber scans a JSON number token and classifies it: a token
// containing '.' or an exponent is a float and is always rejected
// (ERR_TYPE), even when its value is mathematically integral: "1.0"
// is a float token, not the integer 1. This classification happens on
// the raw token text, before any numeric conversion.
func (p *parser) parseNumber() (*map1value.Value, error) {
	start := p.pos
	isFloat := false

	if p.pos < len(p.buf) && p.buf[p.pos] == '-' {
		p.pos++
	}
	if p.pos >= len(p.buf) || p.buf[p.pos] < '0' || p.buf[p.pos] > '9' {
		return nil, p.errHere(map1err.ErrCanonMCF, "invalid number token")
	}
	if p.buf[p.pos] == '0' {
		p.pos++
	} else {
		for p.pos < len(p.buf) && p.buf[p.pos] >= '0' && p.buf[p.pos] <= '9' {
			p.pos++
		}
	}
	if p.pos < len(p.buf) && p.buf[p.pos] == '.' {
		isFloat = true
		p.pos++
		if p.pos >= len(p.buf) || p.buf[p.pos] < '0' || p.buf[p.pos] > '9' {
			return nil, p.errHere(map1err.ErrCanonMCF, "invalid number token")
		}
		for p.pos < len(p.buf) && p.buf[p.pos] >= '0' && p.buf[p.pos] <= '9' {
			p.pos++
		}
	}
	if p.pos < len(p.buf) && (p.buf[p.pos] == 'e' || p.buf[p.pos] == 'E') {
		isFloat = true
		p.pos++
		if p.pos < len(p.buf) && (p.buf[p.pos] == '+' || p.buf[p.pos] == '-') {
			p.pos++
		}
		if p.pos >= len(p.buf) || p.buf[p.pos] < '0' || p.buf[p.pos] > '9' {
			return nil, p.errHere(map1err.ErrCanonMCF, "invalid number token")
		}
		for p.pos < len(p.buf) && p.buf[p.pos] >= '0' && p.buf[p.pos] <= '9' {
			p.pos++
		}
	}

	token := string(p.buf[start:p.pos])
	if isFloat {
		return nil, map1err.New(map1err.ErrType, start, "JSON float not allowed: "+token)
	}

	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, map1err.New(map1err.ErrType, start, "integer overflow: "+token)
	}
	if n < map1types.Int64Min || n > map1types.Int64Max {
		return nil, map1err.New(map1err.ErrType, start, "integer overflow: "+token)
	}
	return map1value.Int(n), nil
}
