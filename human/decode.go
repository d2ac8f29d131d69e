package human

import (
	"math"
	"strconv"
	"strings"

	"github.com/synadia-labs/valuable-value-go/internal/cursor"
	"github.com/synadia-labs/valuable-value-go/value"
)

// Decoder parses the human-readable text encoding into value.Value
// trees. It accepts every spelling the grammar allows: decimal, hex
// (0x), and binary (0b) integer literals with optional '_' digit
// separators; NaN/Inf/-Inf/+Inf float keywords; quoted and raw strings and
// hex/binary byte-string literals (all of which decode to an array of
// per-byte Int values, since the value model has no string or
// byte-string kind of its own); arrays and maps with optional trailing
// commas and no comma required before a closing bracket on an empty
// collection; and the "@{...}" set shorthand for a map whose values
// are all Nil. Options and enum variants need no special-cased
// grammar: "None"/`["Some", x]`/`{"Some": x}`/`@{"Some"}` are all just
// ordinary strings, arrays, maps, and sets under these same rules —
// it's the adapter layer, not this decoder, that gives them meaning.
type Decoder struct {
	c *cursor.Cursor
}

// NewDecoder returns a Decoder over the given input text.
func NewDecoder(text string) *Decoder {
	return &Decoder{c: cursor.New([]byte(text))}
}

// Decode parses exactly one top-level value, ignoring leading and
// trailing whitespace, and requires nothing else to remain.
func Decode(text string) (value.Value, error) {
	d := NewDecoder(text)
	d.c.SkipSpace()
	v, err := d.parseValue()
	if err != nil {
		return value.Value{}, err
	}
	d.c.SkipSpace()
	if !d.c.AtEnd() {
		return value.Value{}, errAt(d.c, "trailing input after value")
	}
	return v, nil
}

func (d *Decoder) parseValue() (value.Value, error) {
	d.c.SkipSpace()
	b, ok := d.c.PeekOrEnd()
	if !ok {
		return value.Value{}, errAt(d.c, "%v", ErrUnexpectedByte)
	}
	switch {
	case b == 'n':
		return d.parseNil()
	case b == 't' || b == 'f':
		return d.parseBool()
	case b == '"':
		return d.parseQuotedString()
	case b == '[':
		return d.parseArray()
	case b == '{':
		return d.parseMap()
	case b == '@':
		return d.parseAt()
	case cursor.IsDigit(b) || b == '-' || b == '+' || b == 'N' || b == 'I':
		return d.parseNumber()
	default:
		return value.Value{}, errAt(d.c, "%v: %q", ErrUnexpectedByte, b)
	}
}

func (d *Decoder) parseNil() (value.Value, error) {
	if !d.c.AdvanceOver([]byte("nil")) {
		return value.Value{}, errAt(d.c, "expected 'nil'")
	}
	return value.Nil(), nil
}

func (d *Decoder) parseBool() (value.Value, error) {
	if d.c.AdvanceOver([]byte("true")) {
		return value.Bool(true), nil
	}
	if d.c.AdvanceOver([]byte("false")) {
		return value.Bool(false), nil
	}
	return value.Value{}, errAt(d.c, "expected 'true' or 'false'")
}

func stripUnderscores(s string) string {
	if !strings.ContainsRune(s, '_') {
		return s
	}
	return strings.ReplaceAll(s, "_", "")
}

func (d *Decoder) parseNumber() (value.Value, error) {
	if d.c.AdvanceOver([]byte("NaN")) {
		return value.Float(math.NaN()), nil
	}
	if d.c.AdvanceOver([]byte("-Inf")) {
		return value.Float(math.Inf(-1)), nil
	}
	if d.c.AdvanceOver([]byte("+Inf")) {
		return value.Float(math.Inf(1)), nil
	}
	if d.c.AdvanceOver([]byte("Inf")) {
		return value.Float(math.Inf(1)), nil
	}

	neg := false
	if b, ok := d.c.PeekOrEnd(); ok && (b == '+' || b == '-') {
		d.c.Advance(1)
		neg = b == '-'
	}

	if b, ok := d.c.PeekOrEnd(); ok && b == '0' {
		if b2, ok2 := d.c.PeekAt(1); ok2 && (b2 == 'x' || b2 == 'X') {
			d.c.Advance(2)
			start := d.c.Pos()
			n := d.c.SkipWhile(cursor.IsHexDigitOrUnderscore)
			if n == 0 {
				return value.Value{}, errAt(d.c, "%v: empty hex literal", ErrInvalidNumber)
			}
			raw := stripUnderscores(string(d.c.Slice(start, d.c.Pos())))
			u, err := strconv.ParseUint(raw, 16, 64)
			if err != nil {
				return value.Value{}, errAt(d.c, "%v: %v", ErrInvalidNumber, err)
			}
			v := int64(u)
			if neg {
				v = -v
			}
			return value.Int(v), nil
		}
		if b2, ok2 := d.c.PeekAt(1); ok2 && (b2 == 'b' || b2 == 'B') {
			d.c.Advance(2)
			start := d.c.Pos()
			n := d.c.SkipWhile(cursor.IsBinaryDigitOrUnderscore)
			if n == 0 {
				return value.Value{}, errAt(d.c, "%v: empty binary literal", ErrInvalidNumber)
			}
			raw := stripUnderscores(string(d.c.Slice(start, d.c.Pos())))
			u, err := strconv.ParseUint(raw, 2, 64)
			if err != nil {
				return value.Value{}, errAt(d.c, "%v: %v", ErrInvalidNumber, err)
			}
			v := int64(u)
			if neg {
				v = -v
			}
			return value.Int(v), nil
		}
	}

	start := d.c.Pos()
	if d.c.SkipWhile(cursor.IsDigitOrUnderscore) == 0 {
		return value.Value{}, errAt(d.c, "%v: expected digit", ErrInvalidNumber)
	}
	isFloat := false
	if b, ok := d.c.PeekOrEnd(); ok && b == '.' {
		save := d.c.Pos()
		d.c.Advance(1)
		if d.c.SkipWhile(cursor.IsDigitOrUnderscore) == 0 {
			// Not a valid fractional part (e.g. "1." followed by
			// something else); treat the '.' as not part of the number.
			d.restoreTo(save)
		} else {
			isFloat = true
		}
	}
	if b, ok := d.c.PeekOrEnd(); ok && (b == 'e' || b == 'E') {
		save := d.c.Pos()
		d.c.Advance(1)
		if b2, ok2 := d.c.PeekOrEnd(); ok2 && (b2 == '+' || b2 == '-') {
			d.c.Advance(1)
		}
		if d.c.SkipWhile(cursor.IsDigitOrUnderscore) == 0 {
			d.restoreTo(save)
		} else {
			isFloat = true
		}
	}

	raw := stripUnderscores(string(d.c.Slice(start, d.c.Pos())))
	if neg {
		raw = "-" + raw
	}
	if isFloat {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return value.Value{}, errAt(d.c, "%v: %v", ErrInvalidNumber, err)
		}
		return value.Float(f), nil
	}
	i, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return value.Value{}, errAt(d.c, "%v: %v", ErrInvalidNumber, err)
	}
	return value.Int(i), nil
}

// restoreTo rewinds the cursor to an earlier position. Only ever used
// to backtrack a speculative '.'/'e' lookahead within parseNumber.
func (d *Decoder) restoreTo(pos int) {
	d.c.SeekTo(pos)
}

func (d *Decoder) parseQuotedString() (value.Value, error) {
	bs, err := d.parseQuotedBytes()
	if err != nil {
		return value.Value{}, err
	}
	return bytesToIntArray(bs), nil
}

func (d *Decoder) parseQuotedBytes() ([]byte, error) {
	if err := d.c.Expect('"'); err != nil {
		return nil, wrap(err)
	}
	var out []byte
	for {
		b, ok := d.c.NextOrEnd()
		if !ok {
			return nil, errAt(d.c, "%v", ErrUnterminatedString)
		}
		if b == '"' {
			return out, nil
		}
		if b != '\\' {
			out = append(out, b)
			continue
		}
		esc, ok := d.c.NextOrEnd()
		if !ok {
			return nil, errAt(d.c, "%v", ErrUnterminatedString)
		}
		switch esc {
		case '"':
			out = append(out, '"')
		case '\\':
			out = append(out, '\\')
		case '/':
			out = append(out, '/')
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case 'r':
			out = append(out, '\r')
		case '0':
			out = append(out, 0)
		case 'x':
			if d.c.Len() < 2 {
				return nil, errAt(d.c, "%v: truncated \\x escape", ErrInvalidEscape)
			}
			hex := string(d.c.Advance(2))
			n, err := strconv.ParseUint(hex, 16, 8)
			if err != nil {
				return nil, errAt(d.c, "%v: %v", ErrInvalidEscape, err)
			}
			out = append(out, byte(n))
		default:
			return nil, errAt(d.c, "%v: \\%c", ErrInvalidEscape, esc)
		}
	}
}

func bytesToIntArray(bs []byte) value.Value {
	elems := make([]value.Value, len(bs))
	for i, b := range bs {
		elems[i] = value.Int(int64(b))
	}
	return value.Array(elems...)
}

// parseAt parses the "@"-prefixed lexemes: hex/binary/array byte
// strings, raw strings, and the set shorthand.
func (d *Decoder) parseAt() (value.Value, error) {
	if err := d.c.Expect('@'); err != nil {
		return value.Value{}, wrap(err)
	}
	b, ok := d.c.PeekOrEnd()
	if !ok {
		return value.Value{}, errAt(d.c, "%v", ErrUnexpectedByte)
	}
	switch b {
	case '[':
		return d.parseArray()
	case '{':
		return d.parseSet()
	case '"', '@':
		// Raw string: n '@'s, a quote, the bytes taken as-is, a quote,
		// then the same n '@'s.
		n := 1 + d.c.SkipWhile(func(c byte) bool { return c == '@' })
		if err := d.c.Expect('"'); err != nil {
			return value.Value{}, wrap(err)
		}
		closer := []byte(`"` + strings.Repeat("@", n))
		start := d.c.Pos()
		for !d.c.AdvanceOver(closer) {
			if _, ok := d.c.NextOrEnd(); !ok {
				return value.Value{}, errAt(d.c, "%v", ErrUnterminatedString)
			}
		}
		return bytesToIntArray(d.c.Slice(start, d.c.Pos()-len(closer))), nil
	case 'x', 'X':
		d.c.Advance(1)
		return d.parseDelimitedDigits('"', cursor.IsHexDigitOrUnderscore, 16, 2)
	case 'b', 'B':
		d.c.Advance(1)
		return d.parseDelimitedDigits('"', cursor.IsBinaryDigitOrUnderscore, 2, 8)
	default:
		return value.Value{}, errAt(d.c, "%v: '@%c'", ErrUnexpectedByte, b)
	}
}

// parseDelimitedDigits parses a quote-delimited run of digits in the
// given base, grouping every groupSize digits into one decoded byte
// (2 hex digits, 8 binary digits), producing an Int-array value.
func (d *Decoder) parseDelimitedDigits(quote byte, isDigit func(byte) bool, base int, groupSize int) (value.Value, error) {
	if err := d.c.Expect(quote); err != nil {
		return value.Value{}, wrap(err)
	}
	start := d.c.Pos()
	d.c.SkipWhile(isDigit)
	raw := stripUnderscores(string(d.c.Slice(start, d.c.Pos())))
	if err := d.c.Expect(quote); err != nil {
		return value.Value{}, wrap(err)
	}
	if len(raw)%groupSize != 0 {
		return value.Value{}, errAt(d.c, "%v: digit count not a multiple of %d", ErrInvalidNumber, groupSize)
	}
	n := len(raw) / groupSize
	elems := make([]value.Value, n)
	for i := 0; i < n; i++ {
		chunk := raw[i*groupSize : (i+1)*groupSize]
		v, err := strconv.ParseUint(chunk, base, 8)
		if err != nil {
			return value.Value{}, errAt(d.c, "%v: %v", ErrInvalidNumber, err)
		}
		elems[i] = value.Int(int64(v))
	}
	return value.Array(elems...), nil
}

func (d *Decoder) parseArray() (value.Value, error) {
	if err := d.c.Expect('['); err != nil {
		return value.Value{}, wrap(err)
	}
	elems, err := d.parseCommaSeparated(']', func() (value.Value, error) {
		return d.parseValue()
	})
	if err != nil {
		return value.Value{}, err
	}
	return value.Array(elems...), nil
}

func (d *Decoder) parseMap() (value.Value, error) {
	if err := d.c.Expect('{'); err != nil {
		return value.Value{}, wrap(err)
	}
	var entries []value.MapEntry
	_, err := d.parseCommaSeparated('}', func() (value.Value, error) {
		k, err := d.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		d.c.SkipSpace()
		if err := d.c.Expect(':'); err != nil {
			return value.Value{}, errAt(d.c, "%v", ErrExpectedColon)
		}
		d.c.SkipSpace()
		v, err := d.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		entries = append(entries, value.MapEntry{Key: k, Val: v})
		return value.Value{}, nil
	})
	if err != nil {
		return value.Value{}, err
	}
	return value.Map(entries...), nil
}

func (d *Decoder) parseSet() (value.Value, error) {
	if err := d.c.Expect('{'); err != nil {
		return value.Value{}, wrap(err)
	}
	elems, err := d.parseCommaSeparated('}', func() (value.Value, error) {
		return d.parseValue()
	})
	if err != nil {
		return value.Value{}, err
	}
	entries := make([]value.MapEntry, len(elems))
	for i, e := range elems {
		entries[i] = value.MapEntry{Key: e, Val: value.Nil()}
	}
	return value.Map(entries...), nil
}

// parseCommaSeparated implements the shared comma grammar for arrays,
// maps, and sets: comma-separated elements, an optional trailing
// comma before the closer, and no comma required (or allowed) before
// the closer on an empty collection. elem is called once per element;
// for maps it appends to an outer slice itself and its return value is
// ignored.
func (d *Decoder) parseCommaSeparated(closer byte, elem func() (value.Value, error)) ([]value.Value, error) {
	var out []value.Value
	first := true
	for {
		d.c.SkipSpace()
		b, ok := d.c.PeekOrEnd()
		if !ok {
			return nil, errAt(d.c, "unterminated collection, expected %q", closer)
		}
		if b == closer {
			d.c.Advance(1)
			return out, nil
		}
		if b == ',' {
			if first {
				return nil, errAt(d.c, "%v", ErrEmptyCollectionComma)
			}
			d.c.Advance(1)
			d.c.SkipSpace()
			b, ok = d.c.PeekOrEnd()
			if ok && b == closer {
				d.c.Advance(1)
				return out, nil
			}
		} else if !first {
			return nil, errAt(d.c, "expected ',' or %q", closer)
		}
		v, err := elem()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		first = false
	}
}
