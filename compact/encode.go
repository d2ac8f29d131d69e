package compact

import (
	"encoding/binary"
	"math"

	"github.com/synadia-labs/valuable-value-go/value"
)

// AppendNil appends the nil tag.
func AppendNil(b []byte) []byte {
	return append(b, makeTag(majorNil, 0))
}

// AppendBool appends a bool tag.
func AppendBool(b []byte, v bool) []byte {
	if v {
		return append(b, makeTag(majorBool, boolTrue))
	}
	return append(b, makeTag(majorBool, boolFalse))
}

// AppendFloat appends a float as the canonic 9-byte (tag + 8
// big-endian bits) form: every NaN bit pattern is normalized to a
// single canonic payload. -0.0 and +0.0 are distinct values and each
// keeps its own bit pattern. This is the ONLY float width the format
// defines; there is no float16/float32 narrowing step.
func AppendFloat(b []byte, f float64) []byte {
	bits := math.Float64bits(canonicalizeFloat(f))
	b = append(b, makeTag(majorFloat, 0))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], bits)
	return append(b, buf[:]...)
}

// AppendFloatRaw appends f's bit pattern as-is, without NaN
// normalization. Used by permissive encoders and by test-value
// generators that deliberately exercise non-canonical (but
// well-formed) float encodings.
func AppendFloatRaw(b []byte, f float64) []byte {
	b = append(b, makeTag(majorFloat, 0))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
	return append(b, buf[:]...)
}

// canonicNaNBits is the single NaN bit pattern the canonic encoding
// ever emits: sign bit set, all exponent and mantissa bits set, i.e.
// the bytes [0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF].
const canonicNaNBits uint64 = 0xFFFFFFFFFFFFFFFF

func canonicalizeFloat(f float64) float64 {
	if math.IsNaN(f) {
		return math.Float64frombits(canonicNaNBits)
	}
	return f
}

// AppendInt appends an int tag using the narrowest width that
// represents v: 0..27 inline, else the smallest of 1/2/4/8 signed
// big-endian bytes.
func AppendInt(b []byte, v int64) []byte {
	switch {
	case v >= 0 && v <= int64(argDirectMax):
		return append(b, makeTag(majorInt, uint8(v)))
	case v >= math.MinInt8 && v <= math.MaxInt8:
		b = append(b, makeTag(majorInt, argWidth1))
		return append(b, byte(int8(v)))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		b = append(b, makeTag(majorInt, argWidth2))
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(int16(v)))
		return append(b, buf[:]...)
	case v >= math.MinInt32 && v <= math.MaxInt32:
		b = append(b, makeTag(majorInt, argWidth4))
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(int32(v)))
		return append(b, buf[:]...)
	default:
		b = append(b, makeTag(majorInt, argWidth8))
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(v))
		return append(b, buf[:]...)
	}
}

// appendCount appends a non-negative count/length using tag major m,
// choosing the narrowest of inline/1/2/4/8-byte unsigned widths.
func appendCount(b []byte, m major, n uint64) []byte {
	switch {
	case n <= uint64(argDirectMax):
		return append(b, makeTag(m, uint8(n)))
	case n <= math.MaxUint8:
		b = append(b, makeTag(m, argWidth1))
		return append(b, byte(n))
	case n <= math.MaxUint16:
		b = append(b, makeTag(m, argWidth2))
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(n))
		return append(b, buf[:]...)
	case n <= math.MaxUint32:
		b = append(b, makeTag(m, argWidth4))
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(n))
		return append(b, buf[:]...)
	default:
		b = append(b, makeTag(m, argWidth8))
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], n)
		return append(b, buf[:]...)
	}
}

// AppendBytes appends a byte string.
func AppendBytes(b []byte, bs []byte) []byte {
	b = appendCount(b, majorBytes, uint64(len(bs)))
	return append(b, bs...)
}

// AppendArrayHeader appends an array header for n elements; the
// caller is responsible for appending exactly n encoded elements.
func AppendArrayHeader(b []byte, n int) []byte {
	return appendCount(b, majorArray, uint64(n))
}

// AppendSetHeader appends a set header for n elements.
func AppendSetHeader(b []byte, n int) []byte {
	return appendCount(b, majorSet, uint64(n))
}

// AppendMapHeader appends a map header for n entries; the caller is
// responsible for appending exactly n key/value pairs.
func AppendMapHeader(b []byte, n int) []byte {
	return appendCount(b, majorMap, uint64(n))
}

// Encode appends v's canonic compact encoding to b and returns the
// extended slice: the unique byte representation for v, with every
// map's entries emitted in ascending key order (the order value.Map
// already maintains).
func Encode(b []byte, v value.Value) []byte {
	switch v.Kind() {
	case value.KindNil:
		return AppendNil(b)
	case value.KindBool:
		return AppendBool(b, v.AsBool())
	case value.KindFloat:
		return AppendFloat(b, v.AsFloat())
	case value.KindInt:
		return AppendInt(b, v.AsInt())
	case value.KindArray:
		elems := v.Elems()
		b = AppendArrayHeader(b, len(elems))
		for _, e := range elems {
			b = Encode(b, e)
		}
		return b
	case value.KindMap:
		entries := v.Entries()
		b = AppendMapHeader(b, len(entries))
		for _, e := range entries {
			b = Encode(b, e.Key)
			b = Encode(b, e.Val)
		}
		return b
	default:
		return b
	}
}

// Marshal returns v's canonic compact encoding as a new byte slice.
func Marshal(v value.Value) []byte {
	return Encode(nil, v)
}
