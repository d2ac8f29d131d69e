package value

// PartialCompare implements the "meaningful" partial order: a
// structural refinement relation distinct from the total order in
// order.go. Atomic values of the same kind compare by their natural
// order (nil equals nil, false < true, ints and floats numerically,
// NaN least among floats). Arrays refine by common-prefix pointwise
// comparison, a strict prefix being less than any extension. Maps
// refine like partial functions: a map with a subset of another's keys
// (agreeing on the shared keys) is less than it; maps that each carry
// a key the other lacks are incomparable. Values of different kinds are
// never comparable under this order — unlike the total order, which
// imposes a fixed kind ranking, this order has nothing to say about
// values it can't relate structurally.
//
// ok is false whenever a and b are not related by this order; cmp is
// only meaningful when ok is true.
func PartialCompare(a, b Value) (cmp int, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindNil:
		return 0, true
	case KindBool:
		return Compare(a, b), true
	case KindInt:
		return Compare(a, b), true
	case KindFloat:
		return compareFloat(a.f, b.f), true
	case KindArray:
		return partialCompareSlices(a.arr, b.arr)
	case KindMap:
		return partialCompareMaps(a.m, b.m)
	default:
		return 0, false
	}
}

// combineCmp folds a newly observed direction c into the accumulated
// direction soFar. Two observations agree if one of them is zero
// (no information yet, or this step was an exact tie) or they carry
// the same sign; anything else means the overall pair is incomparable.
func combineCmp(soFar, c int) (int, bool) {
	if c == 0 {
		return soFar, true
	}
	if soFar == 0 {
		return c, true
	}
	if sign(soFar) == sign(c) {
		return soFar, true
	}
	return 0, false
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func partialCompareSlices(a, b []Value) (int, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	soFar := 0
	for i := 0; i < n; i++ {
		c, ok := PartialCompare(a[i], b[i])
		if !ok {
			return 0, false
		}
		soFar, ok = combineCmp(soFar, c)
		if !ok {
			return 0, false
		}
	}
	lenCmp := sign(len(a) - len(b))
	return combineCmp(soFar, lenCmp)
}

func partialCompareMaps(a, b []MapEntry) (int, bool) {
	soFar := 0
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && Compare(a[i].Key, b[j].Key) < 0):
			// key present only in a: a carries information b lacks.
			var ok bool
			soFar, ok = combineCmp(soFar, 1)
			if !ok {
				return 0, false
			}
			i++
		case i >= len(a) || (j < len(b) && Compare(b[j].Key, a[i].Key) < 0):
			// key present only in b.
			var ok bool
			soFar, ok = combineCmp(soFar, -1)
			if !ok {
				return 0, false
			}
			j++
		default:
			c, ok := PartialCompare(a[i].Val, b[j].Val)
			if !ok {
				return 0, false
			}
			soFar, ok = combineCmp(soFar, c)
			if !ok {
				return 0, false
			}
			i++
			j++
		}
	}
	return soFar, true
}

// Meet returns the greatest lower bound of a and b under the
// meaningful partial order, and whether one exists. Values of
// different kinds have no meet.
func Meet(a, b Value) (Value, bool) {
	if a.kind != b.kind {
		return Value{}, false
	}
	switch a.kind {
	case KindNil:
		return Nil(), true
	case KindBool:
		return Bool(a.b && b.b), true
	case KindInt:
		if a.i < b.i {
			return a, true
		}
		return b, true
	case KindFloat:
		if compareFloat(a.f, b.f) <= 0 {
			return a, true
		}
		return b, true
	case KindArray:
		n := len(a.arr)
		if len(b.arr) < n {
			n = len(b.arr)
		}
		out := make([]Value, n)
		for i := 0; i < n; i++ {
			m, ok := Meet(a.arr[i], b.arr[i])
			if !ok {
				return Value{}, false
			}
			out[i] = m
		}
		return Value{kind: KindArray, arr: out}, true
	case KindMap:
		return meetMaps(a.m, b.m)
	default:
		return Value{}, false
	}
}

func meetMaps(a, b []MapEntry) (Value, bool) {
	var out []MapEntry
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := Compare(a[i].Key, b[j].Key); {
		case c < 0:
			i++
		case c > 0:
			j++
		default:
			m, ok := Meet(a[i].Val, b[j].Val)
			if !ok {
				return Value{}, false
			}
			out = append(out, MapEntry{Key: a[i].Key, Val: m})
			i++
			j++
		}
	}
	return Value{kind: KindMap, m: out}, true
}

// Join returns the least upper bound of a and b under the meaningful
// partial order, and whether one exists. Values of different kinds
// have no join.
func Join(a, b Value) (Value, bool) {
	if a.kind != b.kind {
		return Value{}, false
	}
	switch a.kind {
	case KindNil:
		return Nil(), true
	case KindBool:
		return Bool(a.b || b.b), true
	case KindInt:
		if a.i > b.i {
			return a, true
		}
		return b, true
	case KindFloat:
		if compareFloat(a.f, b.f) >= 0 {
			return a, true
		}
		return b, true
	case KindArray:
		n := len(a.arr)
		longer := a.arr
		if len(b.arr) < n {
			n = len(b.arr)
		}
		if len(b.arr) > len(a.arr) {
			longer = b.arr
		}
		out := make([]Value, 0, len(longer))
		for i := 0; i < n; i++ {
			j, ok := Join(a.arr[i], b.arr[i])
			if !ok {
				return Value{}, false
			}
			out = append(out, j)
		}
		out = append(out, longer[n:]...)
		return Value{kind: KindArray, arr: out}, true
	case KindMap:
		return joinMaps(a.m, b.m)
	default:
		return Value{}, false
	}
}

func joinMaps(a, b []MapEntry) (Value, bool) {
	var out []MapEntry
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j >= len(b) || (i < len(a) && Compare(a[i].Key, b[j].Key) < 0):
			out = append(out, a[i])
			i++
		case i >= len(a) || (j < len(b) && Compare(b[j].Key, a[i].Key) < 0):
			out = append(out, b[j])
			j++
		default:
			v, ok := Join(a[i].Val, b[j].Val)
			if !ok {
				return Value{}, false
			}
			out = append(out, MapEntry{Key: a[i].Key, Val: v})
			i++
			j++
		}
	}
	return Value{kind: KindMap, m: out}, true
}
