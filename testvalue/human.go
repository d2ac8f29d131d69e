package testvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/synadia-labs/valuable-value-go/value"
)

// HumanEncoding returns one valid (but not necessarily canonical)
// human-readable spelling of v: integers are occasionally spelled in
// hex or binary instead of decimal, int-arrays are occasionally
// spelled as quoted byte strings, all-Nil maps are occasionally
// spelled with the "@{...}" set shorthand, and whitespace/trailing
// commas vary around brackets — all degrees of freedom the decoder's
// grammar accepts but the canonical encoder never itself produces.
func (g *Generator) HumanEncoding(v value.Value) string {
	var sb strings.Builder
	g.writeHuman(&sb, v)
	return sb.String()
}

func (g *Generator) writeHuman(sb *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNil:
		sb.WriteString("nil")
	case value.KindBool:
		if v.AsBool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case value.KindFloat:
		sb.WriteString(g.floatSpelling(v.AsFloat()))
	case value.KindInt:
		sb.WriteString(g.intSpelling(v.AsInt()))
	case value.KindArray:
		if bs, ok := asByteRun(v); ok && len(bs) > 0 && g.rng.IntN(2) == 0 {
			sb.WriteString(quoteBytes(bs))
			return
		}
		writeBracketed(g, sb, '[', ']', v.Elems(), func(e value.Value) {
			g.writeHuman(sb, e)
		})
	case value.KindMap:
		entries := v.Entries()
		if allNilValues(entries) && g.rng.IntN(2) == 0 {
			sb.WriteString("@")
			keys := make([]value.Value, len(entries))
			for i, e := range entries {
				keys[i] = e.Key
			}
			writeBracketed(g, sb, '{', '}', keys, func(k value.Value) {
				g.writeHuman(sb, k)
			})
			return
		}
		writeBracketed(g, sb, '{', '}', entries, func(e value.MapEntry) {
			g.writeHuman(sb, e.Key)
			sb.WriteString(": ")
			g.writeHuman(sb, e.Val)
		})
	}
}

// writeBracketed writes a comma-separated, bracketed sequence with
// randomized inter-element spacing and an occasional trailing comma —
// both accepted by the decoder's grammar but never produced by the
// canonical encoder. Generic so it serves both []value.Value (arrays)
// and []value.MapEntry (maps/sets), the same split human/encode.go's
// own writeSeq makes.
func writeBracketed[T any](g *Generator, sb *strings.Builder, open, close byte, items []T, writeElem func(T)) {
	sb.WriteByte(open)
	for i, it := range items {
		if i > 0 {
			sb.WriteString(",")
			if g.rng.IntN(2) == 0 {
				sb.WriteString(" ")
			}
		}
		writeElem(it)
	}
	if len(items) > 0 && g.rng.IntN(4) == 0 {
		sb.WriteString(",")
	}
	sb.WriteByte(close)
}

func (g *Generator) intSpelling(v int64) string {
	switch g.rng.IntN(3) {
	case 0:
		return strconv.FormatInt(v, 10)
	case 1:
		if v < 0 {
			return fmt.Sprintf("-0x%x", -v)
		}
		return fmt.Sprintf("0x%x", v)
	default:
		if v < 0 {
			return fmt.Sprintf("-0b%b", -v)
		}
		return fmt.Sprintf("0b%b", v)
	}
}

func (g *Generator) floatSpelling(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Inf"
	}
	if math.IsInf(f, -1) {
		return "-Inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func asByteRun(v value.Value) ([]byte, bool) {
	elems := v.Elems()
	bs := make([]byte, len(elems))
	for i, e := range elems {
		if e.Kind() != value.KindInt || e.AsInt() < 0 || e.AsInt() > 255 {
			return nil, false
		}
		bs[i] = byte(e.AsInt())
	}
	return bs, true
}

func allNilValues(entries []value.MapEntry) bool {
	for _, e := range entries {
		if !e.Val.IsNil() {
			return false
		}
	}
	return true
}

func quoteBytes(bs []byte) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, b := range bs {
		switch b {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if b < 0x20 || b >= 0x7f {
				fmt.Fprintf(&sb, `\x%02x`, b)
			} else {
				sb.WriteByte(b)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
