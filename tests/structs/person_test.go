package structs

import (
	"testing"

	"github.com/synadia-labs/valuable-value-go/adapter"
	"github.com/synadia-labs/valuable-value-go/compact"
	"github.com/synadia-labs/valuable-value-go/human"
)

type personCodec struct {
	name   string
	encode func(p *Person) ([]byte, error)
	decode func(dst *Person, b []byte) error
}

var personCodecs = []personCodec{
	{
		name: "compact",
		encode: func(p *Person) ([]byte, error) {
			v, err := adapter.ToValue(*p)
			if err != nil {
				return nil, err
			}
			return compact.Marshal(v), nil
		},
		decode: func(dst *Person, b []byte) error {
			v, err := compact.Decode(b)
			if err != nil {
				return err
			}
			return adapter.FromValue(v, dst)
		},
	},
	{
		name: "human",
		encode: func(p *Person) ([]byte, error) {
			v, err := adapter.ToValue(*p)
			if err != nil {
				return nil, err
			}
			return []byte(human.Encode(v)), nil
		},
		decode: func(dst *Person, b []byte) error {
			v, err := human.Decode(string(b))
			if err != nil {
				return err
			}
			return adapter.FromValue(v, dst)
		},
	},
}

func TestPersonRoundTripCompactAndHuman(t *testing.T) {
	orig := &Person{
		Name: "Alice",
		Age:  42,
		Data: []byte{1, 2, 3},
	}

	for _, tc := range personCodecs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.encode(orig)
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}
			var dst Person
			if err := tc.decode(&dst, b); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if dst.Name != orig.Name || dst.Age != orig.Age || string(dst.Data) != string(orig.Data) {
				t.Fatalf("%s mismatch: got %+v, want %+v", tc.name, dst, orig)
			}
		})
	}
}

func TestPersonOmitEmptyAge(t *testing.T) {
	p := &Person{
		Name: "Bob",
		Age:  0,
		Data: []byte{10, 11},
	}

	v, err := adapter.ToValue(*p)
	if err != nil {
		t.Fatalf("ToValue error: %v", err)
	}
	nameKey, _ := adapter.ToValue("name")
	ageKey, _ := adapter.ToValue("age")
	if _, ok := v.Get(nameKey); !ok {
		t.Fatalf("expected name field present")
	}
	if _, ok := v.Get(ageKey); ok {
		t.Fatalf("age field should be omitted when zero")
	}

	for _, tc := range personCodecs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			b, err := tc.encode(p)
			if err != nil {
				t.Fatalf("encode error: %v", err)
			}
			var dst Person
			if err := tc.decode(&dst, b); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if dst.Name != p.Name || dst.Age != 0 || string(dst.Data) != string(p.Data) {
				t.Fatalf("%s mismatch: got %+v, want %+v", tc.name, dst, p)
			}
		})
	}
}
