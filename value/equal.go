package value

import "math"

// Equal reports whether v and o represent the same valuable-value.
//
// Floats use NaN-collapsing equality: every NaN bit pattern is equal to
// every other NaN bit pattern, and unequal to any non-NaN float.
// Otherwise floats compare by bit pattern, so -0.0 and +0.0 are
// distinct (matching the spec's total order, where -0 sorts strictly
// before +0).
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindBool:
		return v.b == o.b
	case KindFloat:
		if math.IsNaN(v.f) && math.IsNaN(o.f) {
			return true
		}
		return math.Float64bits(v.f) == math.Float64bits(o.f)
	case KindInt:
		return v.i == o.i
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for i := range v.m {
			if !v.m[i].Key.Equal(o.m[i].Key) || !v.m[i].Val.Equal(o.m[i].Val) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
