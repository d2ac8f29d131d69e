package compact

import (
	"bytes"
	"math"
	"testing"

	"github.com/synadia-labs/valuable-value-go/value"
)

// TestCanonicWorkedExamples mirrors the concrete worked examples spec
// gives for the canonic encoding.
func TestCanonicWorkedExamples(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want []byte
	}{
		{"nil", value.Nil(), []byte{0x00}},
		{"int-neg1", value.Int(-1), []byte{0x7C, 0xFF}},
		{"bool-false", value.Bool(false), []byte{0x20}},
		{"bool-true", value.Bool(true), []byte{0x21}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Marshal(c.v)
			if !bytes.Equal(got, c.want) {
				t.Fatalf("Marshal(%v) = % x, want % x", c.v, got, c.want)
			}
		})
	}
}

func TestCanonicFloatNaN(t *testing.T) {
	got := Marshal(value.Float(math.NaN()))
	want := append([]byte{0x40}, bytes8(0xFF)...)
	if !bytes.Equal(got, want) {
		t.Fatalf("Marshal(NaN) = % x, want % x", got, want)
	}
}

func bytes8(b byte) []byte {
	out := make([]byte, 8)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestRoundTripCanonic(t *testing.T) {
	vals := []value.Value{
		value.Nil(),
		value.Bool(true),
		value.Bool(false),
		value.Int(0),
		value.Int(27),
		value.Int(28),
		value.Int(-129),
		value.Int(1 << 40),
		value.Float(0),
		value.Float(math.Copysign(0, -1)),
		value.Float(math.Inf(1)),
		value.Float(math.NaN()),
		value.Array(value.Int(1), value.Int(2), value.Int(3)),
		value.Map(value.MapEntry{Key: value.Int(1), Val: value.Bool(true)}, value.MapEntry{Key: value.Int(2), Val: value.Nil()}),
	}
	for _, v := range vals {
		enc := Marshal(v)
		got, err := DecodeCanonic(enc)
		if err != nil {
			t.Fatalf("DecodeCanonic(%v): %v", v, err)
		}
		if !got.Equal(v) {
			t.Fatalf("round trip mismatch: got %+v, want %+v", got, v)
		}
		enc2 := Marshal(got)
		if !bytes.Equal(enc, enc2) {
			t.Fatalf("canonic encoding not stable: % x != % x", enc, enc2)
		}
	}
}

func TestCanonicRejectsNonMinimalInt(t *testing.T) {
	// Int 1 encoded with the 1-byte width selector instead of inline.
	buf := []byte{makeTag(majorInt, argWidth1), 0x01}
	if err := ValidateCanonic(buf); err == nil {
		t.Fatalf("expected canonic rejection of non-minimal int width")
	}
	if err := ValidateWellFormed(buf); err != nil {
		t.Fatalf("permissive decode should accept non-minimal width: %v", err)
	}
}

func TestCanonicRejectsUnsortedMapKeys(t *testing.T) {
	var buf []byte
	buf = AppendMapHeader(buf, 2)
	buf = AppendInt(buf, 2)
	buf = AppendNil(buf)
	buf = AppendInt(buf, 1)
	buf = AppendNil(buf)
	if err := ValidateCanonic(buf); err == nil {
		t.Fatalf("expected canonic rejection of unsorted map keys")
	}
	if err := ValidateWellFormed(buf); err != nil {
		t.Fatalf("permissive decode should accept unsorted keys: %v", err)
	}
}

func TestPermissiveDuplicateKeyLastWins(t *testing.T) {
	var buf []byte
	buf = AppendMapHeader(buf, 2)
	buf = AppendInt(buf, 1)
	buf = AppendBool(buf, false)
	buf = AppendInt(buf, 1)
	buf = AppendBool(buf, true)
	v, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, ok := v.Get(value.Int(1))
	if !ok || !got.AsBool() {
		t.Fatalf("expected last-key-wins to keep true, got (%v, %v)", got, ok)
	}
}

func TestTrailingBytesRejected(t *testing.T) {
	buf := append(Marshal(value.Nil()), 0x00)
	if _, err := Decode(buf); err == nil {
		t.Fatalf("expected trailing-bytes error")
	}
}

// TestCanonicErrorsPinpointViolatingByte checks that canonicity
// violations report the offset of the tag byte that committed the
// violation, not some later position, per the worked example where an
// 8-byte-wide encoding of -1 fails canonic decoding at offset 1 (the
// width-8 tag immediately follows the single-byte array/map header, if
// any, or sits at offset 0 for a bare top-level value).
func TestCanonicErrorsPinpointViolatingByte(t *testing.T) {
	// -1 encoded with the widest (8-byte) width selector instead of
	// the minimal inline form.
	buf := []byte{makeTag(majorInt, argWidth8), 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	_, err := DecodeCanonic(buf)
	pe, ok := err.(PositionedError)
	if !ok {
		t.Fatalf("expected a PositionedError, got %T: %v", err, err)
	}
	if pe.Position() != 0 {
		t.Fatalf("expected violation at offset 0, got %d", pe.Position())
	}

	// Same value nested as the sole element of a one-element array: the
	// tag byte now sits one byte past the array header.
	nested := append(AppendArrayHeader(nil, 1), buf...)
	_, err = DecodeCanonic(nested)
	pe, ok = err.(PositionedError)
	if !ok {
		t.Fatalf("expected a PositionedError, got %T: %v", err, err)
	}
	if pe.Position() != 1 {
		t.Fatalf("expected violation at offset 1, got %d", pe.Position())
	}
}

func TestCanonicMapKeyErrorsPinpointEntryStart(t *testing.T) {
	var buf []byte
	buf = AppendMapHeader(buf, 2)
	buf = AppendInt(buf, 2)
	buf = AppendNil(buf)
	keyStart := len(buf)
	buf = AppendInt(buf, 1)
	buf = AppendNil(buf)

	_, err := DecodeCanonic(buf)
	pe, ok := err.(PositionedError)
	if !ok {
		t.Fatalf("expected a PositionedError, got %T: %v", err, err)
	}
	if pe.Position() != keyStart {
		t.Fatalf("expected unsorted-keys violation at offset %d, got %d", keyStart, pe.Position())
	}
}

func TestBytesDecodeToIntArray(t *testing.T) {
	buf := AppendBytes(nil, []byte{1, 2, 3})
	v, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := value.Array(value.Int(1), value.Int(2), value.Int(3))
	if !v.Equal(want) {
		t.Fatalf("Decode(bytes) = %+v, want %+v", v, want)
	}
}
