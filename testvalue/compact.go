package testvalue

import (
	"encoding/binary"

	"github.com/synadia-labs/valuable-value-go/compact"
	"github.com/synadia-labs/valuable-value-go/value"
)

// CompactEncoding returns one valid (but not necessarily canonical)
// compact encoding of v: counts and ints are occasionally widened past
// their minimal width, exercising the decoder's permissive-mode
// acceptance of non-canonical widths as well as its canonic-mode
// rejection of them.
func (g *Generator) CompactEncoding(v value.Value) []byte {
	return g.appendCompact(nil, v)
}

func (g *Generator) appendCompact(b []byte, v value.Value) []byte {
	switch v.Kind() {
	case value.KindNil:
		return compact.AppendNil(b)
	case value.KindBool:
		return compact.AppendBool(b, v.AsBool())
	case value.KindFloat:
		if g.rng.IntN(4) == 0 {
			return compact.AppendFloatRaw(b, v.AsFloat())
		}
		return compact.AppendFloat(b, v.AsFloat())
	case value.KindInt:
		return g.appendIntWidened(b, v.AsInt())
	case value.KindArray:
		elems := v.Elems()
		b = g.appendCountWidened(b, 5, len(elems), compact.AppendArrayHeader)
		for _, e := range elems {
			b = g.appendCompact(b, e)
		}
		return b
	case value.KindMap:
		entries := v.Entries()
		b = g.appendCountWidened(b, 7, len(entries), compact.AppendMapHeader)
		for _, e := range entries {
			b = g.appendCompact(b, e.Key)
			b = g.appendCompact(b, e.Val)
		}
		return b
	default:
		return b
	}
}

// appendIntWidened appends v as an int, occasionally using a wider
// width selector than the minimal one (a non-canonical but
// well-formed encoding).
func (g *Generator) appendIntWidened(b []byte, v int64) []byte {
	if g.rng.IntN(3) != 0 {
		return compact.AppendInt(b, v)
	}
	// Force the widest (8-byte) width regardless of v's magnitude,
	// so long as it still fits: this is accepted by a permissive
	// decoder and rejected by a canonic one whenever v would have
	// fit in a narrower width.
	return appendIntWidth8(b, v)
}

func appendIntWidth8(b []byte, v int64) []byte {
	b = append(b, widthTag(3, 31))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	return append(b, buf[:]...)
}

// appendCountWidened appends a container header for n elements under
// major type majorVal, occasionally forcing the widest (8-byte) count
// width instead of the minimal one minimal would choose.
func (g *Generator) appendCountWidened(b []byte, majorVal uint8, n int, minimal func([]byte, int) []byte) []byte {
	if g.rng.IntN(3) != 0 {
		return minimal(b, n)
	}
	b = append(b, widthTag(majorVal, 31))
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	return append(b, buf[:]...)
}

// widthTag mirrors compact's internal tag-byte layout (3-bit major, 5-bit
// arg) without exporting it: major*32 + arg.
func widthTag(majorVal, arg uint8) byte {
	return majorVal<<5 | (arg & 0x1f)
}
