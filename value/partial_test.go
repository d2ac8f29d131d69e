package value

import "testing"

func TestPartialCompareDifferentKindsIncomparable(t *testing.T) {
	if _, ok := PartialCompare(Nil(), Bool(true)); ok {
		t.Fatalf("values of different kinds should be incomparable")
	}
}

func TestPartialCompareArrayPrefix(t *testing.T) {
	short := Array(Int(1))
	long := Array(Int(1), Int(2))
	cmp, ok := PartialCompare(short, long)
	if !ok || cmp >= 0 {
		t.Fatalf("PartialCompare(short, long) = (%d, %v), want negative, true", cmp, ok)
	}
}

func TestPartialCompareArrayConflictingDirections(t *testing.T) {
	a := Array(Int(1), Int(5))
	b := Array(Int(2), Int(3))
	if _, ok := PartialCompare(a, b); ok {
		t.Fatalf("arrays disagreeing in direction per-element should be incomparable")
	}
}

func TestPartialCompareMapSubset(t *testing.T) {
	small := Map(MapEntry{Key: Int(1), Val: Bool(true)})
	big := Map(
		MapEntry{Key: Int(1), Val: Bool(true)},
		MapEntry{Key: Int(2), Val: Bool(false)},
	)
	cmp, ok := PartialCompare(small, big)
	if !ok || cmp >= 0 {
		t.Fatalf("subset map should be less than superset map, got (%d, %v)", cmp, ok)
	}
}

func TestPartialCompareMapDisjointExtraKeysIncomparable(t *testing.T) {
	a := Map(MapEntry{Key: Int(1), Val: Bool(true)})
	b := Map(MapEntry{Key: Int(2), Val: Bool(true)})
	if _, ok := PartialCompare(a, b); ok {
		t.Fatalf("maps with disjoint extra keys should be incomparable")
	}
}

func TestMeetJoinBool(t *testing.T) {
	m, ok := Meet(Bool(true), Bool(false))
	if !ok || m.AsBool() != false {
		t.Fatalf("Meet(true,false) should be false")
	}
	j, ok := Join(Bool(true), Bool(false))
	if !ok || j.AsBool() != true {
		t.Fatalf("Join(true,false) should be true")
	}
}

func TestMeetJoinArray(t *testing.T) {
	a := Array(Int(1), Int(2), Int(3))
	b := Array(Int(1), Int(9))
	m, ok := Meet(a, b)
	if !ok {
		t.Fatalf("Meet should succeed")
	}
	if !m.Equal(Array(Int(1), Int(2))) {
		t.Fatalf("Meet(a,b) = %+v, want [1,2]", m)
	}
	j, ok := Join(a, b)
	if !ok {
		t.Fatalf("Join should succeed")
	}
	if !j.Equal(Array(Int(1), Int(9), Int(3))) {
		t.Fatalf("Join(a,b) = %+v, want [1,9,3]", j)
	}
}

func TestMeetJoinMap(t *testing.T) {
	a := Map(
		MapEntry{Key: Int(1), Val: Int(1)},
		MapEntry{Key: Int(2), Val: Int(5)},
	)
	b := Map(
		MapEntry{Key: Int(1), Val: Int(2)},
		MapEntry{Key: Int(3), Val: Int(9)},
	)
	m, ok := Meet(a, b)
	if !ok {
		t.Fatalf("Meet should succeed")
	}
	want := Map(MapEntry{Key: Int(1), Val: Int(1)})
	if !m.Equal(want) {
		t.Fatalf("Meet(a,b) = %+v, want %+v", m, want)
	}

	j, ok := Join(a, b)
	if !ok {
		t.Fatalf("Join should succeed")
	}
	wantJ := Map(
		MapEntry{Key: Int(1), Val: Int(2)},
		MapEntry{Key: Int(2), Val: Int(5)},
		MapEntry{Key: Int(3), Val: Int(9)},
	)
	if !j.Equal(wantJ) {
		t.Fatalf("Join(a,b) = %+v, want %+v", j, wantJ)
	}
}
