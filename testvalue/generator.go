// Package testvalue generates random valuable-values paired with one
// specific valid encoding of them — not necessarily the canonical
// encoder's own output — for use as decoder fuzz oracles. This mirrors
// the teacher's own literal-byte fuzz seeds in spirit (reproducible,
// deliberately exercising edge widths) but generates a much larger and
// more varied space programmatically, the way the original
// implementation's test_value generators do.
package testvalue

import (
	"math"
	"math/rand/v2"

	"github.com/synadia-labs/valuable-value-go/value"
)

// Generator produces random value.Value trees bounded by MaxDepth.
type Generator struct {
	rng      *rand.Rand
	MaxDepth int
}

// New returns a Generator seeded deterministically from seed, so a
// fuzz corpus built from it is reproducible across runs.
func New(seed uint64) *Generator {
	return &Generator{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
		MaxDepth: 5,
	}
}

// Value generates one random value.
func (g *Generator) Value() value.Value {
	return g.value(0)
}

func (g *Generator) value(depth int) value.Value {
	kind := g.rng.IntN(6)
	if depth >= g.MaxDepth {
		kind = g.rng.IntN(4) // force a leaf kind once too deep
	}
	switch kind {
	case 0:
		return value.Nil()
	case 1:
		return value.Bool(g.rng.IntN(2) == 1)
	case 2:
		return value.Float(g.randomFloat())
	case 3:
		return value.Int(g.randomInt())
	case 4:
		n := g.rng.IntN(4)
		elems := make([]value.Value, n)
		for i := range elems {
			elems[i] = g.value(depth + 1)
		}
		return value.Array(elems...)
	default:
		n := g.rng.IntN(4)
		entries := make([]value.MapEntry, n)
		for i := range entries {
			entries[i] = value.MapEntry{Key: g.smallScalar(), Val: g.value(depth + 1)}
		}
		return value.Map(entries...)
	}
}

// smallScalar generates a scalar suitable as a map key — any kind
// works as a key, but keeping keys small and non-recursive makes
// generated maps easier to eyeball in failing test output.
func (g *Generator) smallScalar() value.Value {
	switch g.rng.IntN(3) {
	case 0:
		return value.Nil()
	case 1:
		return value.Bool(g.rng.IntN(2) == 1)
	default:
		return value.Int(int64(g.rng.IntN(16) - 8))
	}
}

func (g *Generator) randomInt() int64 {
	switch g.rng.IntN(6) {
	case 0:
		return int64(g.rng.IntN(28)) // inline range
	case 1:
		return int64(int8(g.rng.IntN(256) - 128))
	case 2:
		return int64(int16(g.rng.IntN(65536) - 32768))
	case 3:
		return int64(int32(g.rng.Uint32()))
	case 4:
		return int64(g.rng.Uint64())
	default:
		return -int64(g.rng.IntN(28))
	}
}

func (g *Generator) randomFloat() float64 {
	switch g.rng.IntN(8) {
	case 0:
		return math.NaN()
	case 1:
		return math.Inf(1)
	case 2:
		return math.Inf(-1)
	case 3:
		return 0
	case 4:
		return math.Copysign(0, -1)
	default:
		return math.Float64frombits(g.rng.Uint64())
	}
}
