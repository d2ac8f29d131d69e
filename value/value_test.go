package value

import "testing"

func TestConstructorsAndAccessors(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		kind Kind
	}{
		{"nil", Nil(), KindNil},
		{"bool", Bool(true), KindBool},
		{"float", Float(1.5), KindFloat},
		{"int", Int(-7), KindInt},
		{"array", Array(Int(1), Int(2)), KindArray},
		{"map", Map(MapEntry{Key: Int(1), Val: Bool(true)}), KindMap},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.v.Kind() != c.kind {
				t.Fatalf("Kind() = %v, want %v", c.v.Kind(), c.kind)
			}
		})
	}
}

func TestMapDedupLastWins(t *testing.T) {
	m := Map(
		MapEntry{Key: Int(1), Val: Bool(false)},
		MapEntry{Key: Int(1), Val: Bool(true)},
	)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	got, ok := m.Get(Int(1))
	if !ok || !got.AsBool() {
		t.Fatalf("Get(1) = (%v, %v), want (true, true)", got, ok)
	}
}

func TestMapSortedByKey(t *testing.T) {
	m := Map(
		MapEntry{Key: Int(3), Val: Nil()},
		MapEntry{Key: Int(1), Val: Nil()},
		MapEntry{Key: Int(2), Val: Nil()},
	)
	entries := m.Entries()
	for i := 1; i < len(entries); i++ {
		if Compare(entries[i-1].Key, entries[i].Key) >= 0 {
			t.Fatalf("entries not strictly sorted at %d: %v >= %v", i, entries[i-1].Key, entries[i].Key)
		}
	}
}
