package benchmarks

import (
	"testing"

	fxcbor "github.com/fxamacker/cbor/v2"
	msgp "github.com/tinylib/msgp/msgp"

	"github.com/synadia-labs/valuable-value-go/adapter"
	"github.com/synadia-labs/valuable-value-go/compact"
)

// vvPerson mirrors benchPerson's shape so the two codecs are compared
// on an equivalent record, the same way person_bench_test.go compares
// the CBOR runtime against fxcbor/json/msgp.
type vvPerson struct {
	Name string `vv:"name"`
	Age  int    `vv:"age"`
	Data []byte `vv:"data"`
}

func newVVPerson() vvPerson {
	return vvPerson{Name: "Alice", Age: 42, Data: []byte("hello world")}
}

func BenchmarkVV_Struct_Encode(b *testing.B) {
	p := newVVPerson()
	b.ReportAllocs()
	b.ResetTimer()
	var out []byte
	for i := 0; i < b.N; i++ {
		v, err := adapter.ToValue(p)
		if err != nil {
			b.Fatalf("ToValue: %v", err)
		}
		out = compact.Encode(out[:0], v)
	}
	_ = out
}

func BenchmarkVV_Struct_Decode(b *testing.B) {
	p := newVVPerson()
	v, err := adapter.ToValue(p)
	if err != nil {
		b.Fatalf("ToValue: %v", err)
	}
	enc := compact.Marshal(v)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		got, err := compact.Decode(enc)
		if err != nil {
			b.Fatalf("compact.Decode: %v", err)
		}
		var out vvPerson
		if err := adapter.FromValue(got, &out); err != nil {
			b.Fatalf("FromValue: %v", err)
		}
	}
}

func BenchmarkVV_Struct_DecodeCanonic(b *testing.B) {
	p := newVVPerson()
	v, err := adapter.ToValue(p)
	if err != nil {
		b.Fatalf("ToValue: %v", err)
	}
	enc := compact.Marshal(v)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := compact.DecodeCanonic(enc); err != nil {
			b.Fatalf("compact.DecodeCanonic: %v", err)
		}
	}
}

func BenchmarkFXCBOR_VVShape_Encode(b *testing.B) {
	p := newVVPerson()
	encMode, err := fxcbor.CanonicalEncOptions().EncMode()
	if err != nil {
		b.Fatalf("fxcbor EncMode: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	var out []byte
	for i := 0; i < b.N; i++ {
		out, err = encMode.Marshal(p)
		if err != nil {
			b.Fatalf("fxcbor Marshal: %v", err)
		}
	}
	_ = out
}

func BenchmarkFXCBOR_VVShape_Decode(b *testing.B) {
	p := newVVPerson()
	encMode, err := fxcbor.CanonicalEncOptions().EncMode()
	if err != nil {
		b.Fatalf("fxcbor EncMode: %v", err)
	}
	decMode, err := fxcbor.DecOptions{}.DecMode()
	if err != nil {
		b.Fatalf("fxcbor DecMode: %v", err)
	}
	enc, err := encMode.Marshal(p)
	if err != nil {
		b.Fatalf("fxcbor Marshal: %v", err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var out vvPerson
		if err := decMode.Unmarshal(enc, &out); err != nil {
			b.Fatalf("fxcbor Unmarshal: %v", err)
		}
	}
}

func BenchmarkMsgp_VVShape_Encode(b *testing.B) {
	p := newVVPerson()
	m := map[string]any{"name": p.Name, "age": p.Age, "data": p.Data}
	b.ReportAllocs()
	b.ResetTimer()
	var out []byte
	for i := 0; i < b.N; i++ {
		var err error
		out, err = msgp.AppendIntf(out[:0], m)
		if err != nil {
			b.Fatalf("msgp AppendIntf: %v", err)
		}
	}
	_ = out
}
