package tests

import (
	"testing"

	"github.com/synadia-labs/valuable-value-go/compact"
	"github.com/synadia-labs/valuable-value-go/human"
	"github.com/synadia-labs/valuable-value-go/testvalue"
	"github.com/synadia-labs/valuable-value-go/value"
)

// TestCommunityVectors round-trips a large, seeded population of
// generated values through both wire formats, the way a community
// CBOR test-vector corpus round-trips a fixed set of third-party
// payloads. Since this format has no published vector corpus of its
// own, the vectors are the deterministic generator's output instead of
// a fixture file.
func TestCommunityVectors(t *testing.T) {
	g := testvalue.New(20260731)
	const n = 500

	for i := 0; i < n; i++ {
		v := g.Value()

		enc := compact.Marshal(v)
		gotCompact, err := compact.DecodeCanonic(enc)
		if err != nil {
			t.Fatalf("vector %d: DecodeCanonic(Marshal(%v)): %v", i, v, err)
		}
		if !gotCompact.Equal(v) {
			t.Fatalf("vector %d: compact round trip mismatch: got %v, want %v", i, gotCompact, v)
		}

		text := human.Encode(v)
		gotHuman, err := human.Decode(text)
		if err != nil {
			t.Fatalf("vector %d: human.Decode(%q): %v", i, text, err)
		}
		if !gotHuman.Equal(v) {
			t.Fatalf("vector %d: human round trip mismatch: got %v, want %v", i, gotHuman, v)
		}

		if value.Compare(gotCompact, gotHuman) != 0 {
			t.Fatalf("vector %d: compact and human decodes disagree: %v vs %v", i, gotCompact, gotHuman)
		}
	}
}
