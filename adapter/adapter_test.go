package adapter

import (
	"testing"

	"github.com/synadia-labs/valuable-value-go/value"
)

type person struct {
	Name string `vv:"name"`
	Age  int    `vv:"age"`
	Tags []string
}

func TestStructRoundTrip(t *testing.T) {
	p := person{Name: "Alice", Age: 42, Tags: []string{"a", "b"}}
	v, err := ToValue(p)
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	if v.Kind() != value.KindMap {
		t.Fatalf("ToValue(struct) kind = %v, want map", v.Kind())
	}

	var out person
	if err := FromValue(v, &out); err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	if out.Name != p.Name || out.Age != p.Age || len(out.Tags) != 2 || out.Tags[0] != "a" {
		t.Fatalf("FromValue produced %+v, want %+v", out, p)
	}
}

func TestScalarsRoundTrip(t *testing.T) {
	v, err := ToValue(7)
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	var out int
	if err := FromValue(v, &out); err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	if out != 7 {
		t.Fatalf("out = %d, want 7", out)
	}
}

func TestSliceAndMap(t *testing.T) {
	in := map[string]int{"a": 1, "b": 2}
	v, err := ToValue(in)
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	var out map[string]int
	if err := FromValue(v, &out); err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	if out["a"] != 1 || out["b"] != 2 || len(out) != 2 {
		t.Fatalf("out = %+v, want %+v", out, in)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	in := []byte("hello")
	v, err := ToValue(in)
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	var out []byte
	if err := FromValue(v, &out); err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	if string(out) != "hello" {
		t.Fatalf("out = %q, want %q", out, "hello")
	}
}

type customVV struct{ n int }

func (c customVV) MarshalVV() (value.Value, error) { return value.Int(int64(c.n) * 2), nil }
func (c *customVV) UnmarshalVV(v value.Value) error {
	if v.Kind() != value.KindInt {
		return typeMismatch("int", v)
	}
	c.n = int(v.AsInt()) / 2
	return nil
}

func TestCustomMarshaler(t *testing.T) {
	v, err := ToValue(customVV{n: 5})
	if err != nil {
		t.Fatalf("ToValue: %v", err)
	}
	if v.AsInt() != 10 {
		t.Fatalf("ToValue custom = %v, want 10", v.AsInt())
	}
	var out customVV
	if err := FromValue(v, &out); err != nil {
		t.Fatalf("FromValue: %v", err)
	}
	if out.n != 5 {
		t.Fatalf("out.n = %d, want 5", out.n)
	}
}
