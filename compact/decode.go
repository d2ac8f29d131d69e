package compact

import (
	"math"
	"unicode/utf8"

	"github.com/synadia-labs/valuable-value-go/internal/cursor"
	"github.com/synadia-labs/valuable-value-go/value"
)

// Type identifies a wire-level tag major type, as distinct from
// value.Kind: the wire format additionally distinguishes byte strings
// and sets, both of which decode into ordinary value.Value shapes
// (an int array, and a map with nil values, respectively) once built.
type Type uint8

const (
	TypeNil Type = iota
	TypeBool
	TypeFloat
	TypeInt
	TypeBytes
	TypeArray
	TypeSet
	TypeMap
)

func (t Type) String() string {
	switch t {
	case TypeNil:
		return "nil"
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeBytes:
		return "bytes"
	case TypeArray:
		return "array"
	case TypeSet:
		return "set"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

func majorToType(m major) (Type, bool) {
	switch m {
	case majorNil:
		return TypeNil, true
	case majorBool:
		return TypeBool, true
	case majorFloat:
		return TypeFloat, true
	case majorInt:
		return TypeInt, true
	case majorBytes:
		return TypeBytes, true
	case majorArray:
		return TypeArray, true
	case majorSet:
		return TypeSet, true
	case majorMap:
		return TypeMap, true
	default:
		return 0, false
	}
}

// Decoder reads values from a compact-encoded byte slice, exposing the
// kind-directed read API: one method per wire type, each consuming
// exactly one value or header. Canonic mode additionally validates
// that every width, float bit pattern, and map key ordering is the
// single canonic representation, and ReadValue rejects the byte-string
// and set tags; permissive mode accepts any well-formed encoding.
type Decoder struct {
	c        *cursor.Cursor
	canonic  bool
	maxDepth int
}

// NewDecoder returns a Decoder over buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{c: cursor.New(buf), maxDepth: recursionLimit}
}

// SetCanonic enables or disables canonic-mode validation.
func (d *Decoder) SetCanonic(v bool) { d.canonic = v }

// SetMaxDepth overrides the nesting-depth bound (default
// recursionLimit).
func (d *Decoder) SetMaxDepth(n int) { d.maxDepth = n }

// Remaining returns the number of unconsumed bytes.
func (d *Decoder) Remaining() int { return d.c.Len() }

// ReadKind peeks the next tag byte's major type without consuming it.
func (d *Decoder) ReadKind() (Type, error) {
	pos := d.c.Pos()
	b, err := d.c.Peek()
	if err != nil {
		return 0, err
	}
	t, ok := majorToType(tagMajor(b))
	if !ok {
		return 0, &ErrReservedTag{Tag: b, Pos: pos}
	}
	return t, nil
}

// readTag consumes the next tag byte, verifying its major type, and
// returns its argument bits. readTagAt additionally returns the
// position of the tag byte, for errors that must pinpoint it.
func (d *Decoder) readTag(want major) (uint8, error) {
	arg, _, err := d.readTagAt(want)
	return arg, err
}

func (d *Decoder) readTagAt(want major) (arg uint8, pos int, err error) {
	pos = d.c.Pos()
	b, err := d.c.Peek()
	if err != nil {
		return 0, pos, err
	}
	if tagMajor(b) != want {
		got, _ := majorToType(tagMajor(b))
		return 0, pos, &ErrUnexpectedTag{Wanted: want, Got: major(got)}
	}
	d.c.Advance(1)
	return tagArg(b), pos, nil
}

func (d *Decoder) readWidthValue(width int) (uint64, error) {
	if d.c.Len() < width {
		return 0, &ErrShortInput{Wanted: width, Got: d.c.Len()}
	}
	raw := d.c.Advance(width)
	var v uint64
	for _, bb := range raw {
		v = v<<8 | uint64(bb)
	}
	return v, nil
}

// minimalWidthFor reports the narrowest width selector (argWidth1..8)
// that suffices to hold an unsigned count n.
func minimalWidthFor(n uint64) uint8 {
	switch {
	case n <= math.MaxUint8:
		return argWidth1
	case n <= math.MaxUint16:
		return argWidth2
	case n <= math.MaxUint32:
		return argWidth4
	default:
		return argWidth8
	}
}

// readCount reads a count/length argument for the given major tag.
func (d *Decoder) readCount(want major) (uint64, error) {
	arg, pos, err := d.readTagAt(want)
	if err != nil {
		return 0, err
	}
	if arg <= argDirectMax {
		return uint64(arg), nil
	}
	width := 1
	switch arg {
	case argWidth1:
		width = 1
	case argWidth2:
		width = 2
	case argWidth4:
		width = 4
	case argWidth8:
		width = 8
	default:
		return 0, &ErrReservedTag{Tag: makeTag(want, arg), Pos: pos}
	}
	n, err := d.readWidthValue(width)
	if err != nil {
		return 0, err
	}
	if d.canonic {
		// A count <= argDirectMax must never use a width byte, and
		// every wider count must use the narrowest width that holds it.
		if n <= uint64(argDirectMax) || minimalWidthFor(n) != arg {
			return 0, &ErrNonCanonicalLength{Pos: pos}
		}
	}
	// Every counted element takes at least one byte, so a count larger
	// than the remaining input can never be satisfied.
	if n > uint64(d.c.Len()) {
		return 0, &ErrShortInput{Wanted: int(min(n, math.MaxInt)), Got: d.c.Len()}
	}
	return n, nil
}

// ReadNil consumes a nil value. Nil carries no payload, so its
// argument bits are otherwise unused; canonic mode requires them to
// be exactly 0, but permissive mode accepts any argument as long as
// the major type is nil (the "D_c([0x1F]) = nil only in permissive
// mode" case).
func (d *Decoder) ReadNil() error {
	arg, pos, err := d.readTagAt(majorNil)
	if err != nil {
		return err
	}
	if d.canonic && arg != 0 {
		return &ErrReservedTag{Tag: makeTag(majorNil, arg), Pos: pos}
	}
	return nil
}

// ReadBool consumes a bool value.
func (d *Decoder) ReadBool() (bool, error) {
	arg, pos, err := d.readTagAt(majorBool)
	if err != nil {
		return false, err
	}
	switch arg {
	case boolFalse:
		return false, nil
	case boolTrue:
		return true, nil
	default:
		return false, &ErrReservedTag{Tag: makeTag(majorBool, arg), Pos: pos}
	}
}

// ReadFloat consumes a float value.
func (d *Decoder) ReadFloat() (float64, error) {
	arg, pos, err := d.readTagAt(majorFloat)
	if err != nil {
		return 0, err
	}
	if arg != 0 {
		return 0, &ErrReservedTag{Tag: makeTag(majorFloat, arg), Pos: pos}
	}
	bits, err := d.readWidthValue(8)
	if err != nil {
		return 0, err
	}
	f := math.Float64frombits(bits)
	if d.canonic {
		// Re-encode and byte-compare against the canonic form, the
		// same technique the teacher's strict-mode Reader uses for
		// CBOR's float16/32/64 escalation, adapted here to our
		// single fixed float width: canonic iff this was already the
		// single canonic bit pattern for its value.
		if math.Float64bits(canonicalizeFloat(f)) != bits {
			return 0, &ErrNonCanonicalFloat{Pos: pos}
		}
	}
	return f, nil
}

// ReadInt consumes an int value.
func (d *Decoder) ReadInt() (int64, error) {
	arg, pos, err := d.readTagAt(majorInt)
	if err != nil {
		return 0, err
	}
	if arg <= argDirectMax {
		return int64(arg), nil
	}
	switch arg {
	case argWidth1:
		raw, err := d.readWidthValue(1)
		if err != nil {
			return 0, err
		}
		v := int64(int8(raw))
		if d.canonic && (v >= 0 && v <= int64(argDirectMax)) {
			return 0, &ErrNonCanonicalInt{Pos: pos}
		}
		return v, nil
	case argWidth2:
		raw, err := d.readWidthValue(2)
		if err != nil {
			return 0, err
		}
		v := int64(int16(raw))
		if d.canonic && v >= math.MinInt8 && v <= math.MaxInt8 {
			return 0, &ErrNonCanonicalInt{Pos: pos}
		}
		return v, nil
	case argWidth4:
		raw, err := d.readWidthValue(4)
		if err != nil {
			return 0, err
		}
		v := int64(int32(raw))
		if d.canonic && v >= math.MinInt16 && v <= math.MaxInt16 {
			return 0, &ErrNonCanonicalInt{Pos: pos}
		}
		return v, nil
	case argWidth8:
		raw, err := d.readWidthValue(8)
		if err != nil {
			return 0, err
		}
		v := int64(raw)
		if d.canonic && v >= math.MinInt32 && v <= math.MaxInt32 {
			return 0, &ErrNonCanonicalInt{Pos: pos}
		}
		return v, nil
	default:
		return 0, &ErrReservedTag{Tag: makeTag(majorInt, arg), Pos: pos}
	}
}

// ReadBytes consumes a byte-string value.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.readCount(majorBytes)
	if err != nil {
		return nil, err
	}
	if uint64(d.c.Len()) < n {
		return nil, &ErrShortInput{Wanted: int(n), Got: d.c.Len()}
	}
	raw := d.c.Advance(int(n))
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

// ReadArrayHeader consumes an array header, returning its element
// count.
func (d *Decoder) ReadArrayHeader() (int, error) {
	n, err := d.readCount(majorArray)
	return int(n), err
}

// ReadSetHeader consumes a set header, returning its element count.
func (d *Decoder) ReadSetHeader() (int, error) {
	n, err := d.readCount(majorSet)
	return int(n), err
}

// ReadMapHeader consumes a map header, returning its entry count.
func (d *Decoder) ReadMapHeader() (int, error) {
	n, err := d.readCount(majorMap)
	return int(n), err
}

// ReadValue decodes one complete value tree, following Type-directed
// dispatch. Byte strings decode to an array of per-byte Int values;
// sets decode to a map whose values are all Nil (the "set as map"
// convention spec §4.1.3 calls for).
func (d *Decoder) ReadValue() (value.Value, error) {
	return d.readValueDepth(0)
}

func (d *Decoder) readValueDepth(depth int) (value.Value, error) {
	if depth > d.maxDepth {
		return value.Value{}, &ErrRecursionLimit{}
	}
	t, err := d.ReadKind()
	if err != nil {
		return value.Value{}, err
	}
	switch t {
	case TypeNil:
		if err := d.ReadNil(); err != nil {
			return value.Value{}, err
		}
		return value.Nil(), nil
	case TypeBool:
		b, err := d.ReadBool()
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(b), nil
	case TypeFloat:
		f, err := d.ReadFloat()
		if err != nil {
			return value.Value{}, err
		}
		return value.Float(f), nil
	case TypeInt:
		i, err := d.ReadInt()
		if err != nil {
			return value.Value{}, err
		}
		return value.Int(i), nil
	case TypeBytes:
		if d.canonic {
			return value.Value{}, &ErrReservedTag{Tag: d.c.Rest()[0], Pos: d.c.Pos()}
		}
		bs, err := d.ReadBytes()
		if err != nil {
			return value.Value{}, err
		}
		elems := make([]value.Value, len(bs))
		for i, bb := range bs {
			elems[i] = value.Int(int64(bb))
		}
		return value.Array(elems...), nil
	case TypeArray:
		n, err := d.ReadArrayHeader()
		if err != nil {
			return value.Value{}, err
		}
		elems := make([]value.Value, n)
		for i := 0; i < n; i++ {
			elems[i], err = d.readValueDepth(depth + 1)
			if err != nil {
				return value.Value{}, WrapError(err, "array element")
			}
		}
		return value.Array(elems...), nil
	case TypeSet:
		if d.canonic {
			return value.Value{}, &ErrReservedTag{Tag: d.c.Rest()[0], Pos: d.c.Pos()}
		}
		n, err := d.ReadSetHeader()
		if err != nil {
			return value.Value{}, err
		}
		entries := make([]value.MapEntry, n)
		keyPos := make([]int, n)
		for i := 0; i < n; i++ {
			keyPos[i] = d.c.Pos()
			k, err := d.readValueDepth(depth + 1)
			if err != nil {
				return value.Value{}, WrapError(err, "set element")
			}
			entries[i] = value.MapEntry{Key: k, Val: value.Nil()}
		}
		return d.buildMap(entries, keyPos)
	case TypeMap:
		n, err := d.ReadMapHeader()
		if err != nil {
			return value.Value{}, err
		}
		entries := make([]value.MapEntry, n)
		keyPos := make([]int, n)
		for i := 0; i < n; i++ {
			keyPos[i] = d.c.Pos()
			k, err := d.readValueDepth(depth + 1)
			if err != nil {
				return value.Value{}, WrapError(err, "map key")
			}
			v, err := d.readValueDepth(depth + 1)
			if err != nil {
				return value.Value{}, WrapError(err, "map value")
			}
			entries[i] = value.MapEntry{Key: k, Val: v}
		}
		return d.buildMap(entries, keyPos)
	default:
		return value.Value{}, &ErrReservedTag{Pos: d.c.Pos()}
	}
}

// buildMap assembles decoded entries into a map value, checking
// canonic ordering/uniqueness rules when canonic mode is on and
// falling back to last-key-wins overwrite semantics otherwise. keyPos
// holds the byte offset where each entry's key began, for pinpointing
// ordering/uniqueness violations.
func (d *Decoder) buildMap(entries []value.MapEntry, keyPos []int) (value.Value, error) {
	if d.canonic {
		for i := 1; i < len(entries); i++ {
			c := value.Compare(entries[i-1].Key, entries[i].Key)
			if c == 0 {
				return value.Value{}, &ErrDuplicateMapKey{Pos: keyPos[i]}
			}
			if c > 0 {
				return value.Value{}, &ErrUnsortedMapKeys{Pos: keyPos[i]}
			}
		}
		return value.Map(entries...), nil
	}
	return value.Map(entries...), nil
}

// Decode decodes exactly one value from buf in permissive mode,
// requiring the entire buffer be consumed.
func Decode(buf []byte) (value.Value, error) {
	return decodeWith(buf, false)
}

// DecodeCanonic decodes exactly one value from buf in canonic mode,
// requiring the entire buffer be consumed.
func DecodeCanonic(buf []byte) (value.Value, error) {
	return decodeWith(buf, true)
}

func decodeWith(buf []byte, canonic bool) (value.Value, error) {
	d := NewDecoder(buf)
	d.SetCanonic(canonic)
	v, err := d.ReadValue()
	if err != nil {
		return value.Value{}, err
	}
	if d.Remaining() != 0 {
		return value.Value{}, &ErrTrailingBytes{Remaining: d.Remaining()}
	}
	return v, nil
}

// ValidUTF8Bytes reports whether bs is well-formed UTF-8; used by
// callers that want to interpret a decoded byte-string array as text.
func ValidUTF8Bytes(bs []byte) bool {
	return utf8.Valid(bs)
}
