package human

import (
	"math"
	"strconv"
	"strings"

	"github.com/synadia-labs/valuable-value-go/value"
)

// Encode renders v in the single canonical human-readable spelling:
// compact, single-line, no trailing commas, map keys in the value
// model's total order. It never special-cases an int array that
// happens to look like printable text — arrays are always bracketed
// arrays of their elements, with no byte-string or quoted-string
// shorthand (see SPEC_FULL.md's resolution of the corresponding open
// question: only the decoder accepts that shorthand as sugar).
func Encode(v value.Value) string {
	var sb strings.Builder
	writeValue(&sb, v, "", 0)
	return sb.String()
}

// EncodePretty renders v the same way as Encode but with each array
// element and map entry on its own line, indented by indent per
// nesting level.
func EncodePretty(v value.Value, indent string) string {
	var sb strings.Builder
	writeValue(&sb, v, indent, 0)
	return sb.String()
}

func writeValue(sb *strings.Builder, v value.Value, indent string, depth int) {
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
		sb.WriteString(formatFloat(v.AsFloat()))
	case value.KindInt:
		sb.WriteString(strconv.FormatInt(v.AsInt(), 10))
	case value.KindArray:
		writeSeq(sb, '[', ']', v.Elems(), indent, depth, func(sb *strings.Builder, i int, d int) {
			writeValue(sb, v.Elems()[i], indent, d)
		})
	case value.KindMap:
		entries := v.Entries()
		writeSeq(sb, '{', '}', entries, indent, depth, func(sb *strings.Builder, i int, d int) {
			writeValue(sb, entries[i].Key, indent, d)
			sb.WriteString(": ")
			writeValue(sb, entries[i].Val, indent, d)
		})
	}
}

// writeSeq writes a bracketed, comma-separated sequence of len(items)
// elements, calling writeElem(sb, i, depth) to render element i.
// Generic only so it can share one implementation between []value.Value
// (arrays) and []value.MapEntry (maps).
func writeSeq[T any](sb *strings.Builder, open, close byte, items []T, indent string, depth int, writeElem func(*strings.Builder, int, int)) {
	n := len(items)
	sb.WriteByte(open)
	if n == 0 {
		sb.WriteByte(close)
		return
	}
	if indent == "" {
		for i := 0; i < n; i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeElem(sb, i, depth)
		}
		sb.WriteByte(close)
		return
	}
	childDepth := depth + 1
	for i := 0; i < n; i++ {
		sb.WriteByte('\n')
		writeIndent(sb, indent, childDepth)
		writeElem(sb, i, childDepth)
		if i < n-1 {
			sb.WriteByte(',')
		}
	}
	sb.WriteByte('\n')
	writeIndent(sb, indent, depth)
	sb.WriteByte(close)
}

func writeIndent(sb *strings.Builder, indent string, depth int) {
	for i := 0; i < depth; i++ {
		sb.WriteString(indent)
	}
}

// formatFloat renders f using Go's shortest-round-trip decimal
// formatter, which — like the original implementation's ryu-based
// formatter — guarantees strconv.ParseFloat(strconv.FormatFloat(f, 'g',
// -1, 64), 64) reproduces f's exact bit pattern (Open Question 3).
func formatFloat(f float64) string {
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
