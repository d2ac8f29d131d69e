package testvalue

import (
	"testing"

	"github.com/synadia-labs/valuable-value-go/compact"
	"github.com/synadia-labs/valuable-value-go/human"
)

func TestGeneratorValueDeterministic(t *testing.T) {
	a := New(42).Value()
	b := New(42).Value()
	if !a.Equal(b) {
		t.Fatalf("New(42) produced different values on two runs: %v vs %v", a, b)
	}
}

func TestGeneratorCompactEncodingDecodesToSameValue(t *testing.T) {
	g := New(1)
	for i := 0; i < 200; i++ {
		v := g.Value()
		b := g.CompactEncoding(v)
		got, err := compact.Decode(b)
		if err != nil {
			t.Fatalf("iteration %d: compact.Decode: %v (value %v, bytes %x)", i, err, v, b)
		}
		if !got.Equal(v) {
			t.Fatalf("iteration %d: round trip mismatch: got %v, want %v", i, got, v)
		}
	}
}

func TestGeneratorHumanEncodingDecodesToSameValue(t *testing.T) {
	g := New(2)
	for i := 0; i < 200; i++ {
		v := g.Value()
		s := g.HumanEncoding(v)
		got, err := human.Decode(s)
		if err != nil {
			t.Fatalf("iteration %d: human.Decode(%q): %v (value %v)", i, s, err, v)
		}
		if !got.Equal(v) {
			t.Fatalf("iteration %d: round trip mismatch on %q: got %v, want %v", i, s, got, v)
		}
	}
}

func TestGeneratorCompactEncodingWidensSometimes(t *testing.T) {
	g := New(3)
	sawWidened := false
	for i := 0; i < 200 && !sawWidened; i++ {
		v := g.Value()
		widened := g.CompactEncoding(v)
		canonical := compact.Marshal(v)
		if len(widened) != len(canonical) {
			sawWidened = true
		}
	}
	if !sawWidened {
		t.Skip("no widened encoding observed in this sample; not a failure, just unlucky RNG draws")
	}
}

func TestGeneratorHumanEncodingVariesSpelling(t *testing.T) {
	g := New(4)
	sawDifferent := false
	for i := 0; i < 200 && !sawDifferent; i++ {
		v := g.Value()
		if human.Encode(v) != g.HumanEncoding(v) {
			sawDifferent = true
		}
	}
	if !sawDifferent {
		t.Skip("no alternate spelling observed in this sample; not a failure, just unlucky RNG draws")
	}
}
