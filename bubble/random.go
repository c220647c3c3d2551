package bubble

import (
	"math/rand/v2"
	"time"
)

// Source draws uniform scalars. Implementations are not required to be
// safe for concurrent use.
type Source interface {
	// Uniform returns a value in the closed interval [min, max].
	Uniform(min, max float32) float32
}

// Random is the default Source, a PCG stream from math/rand/v2.
type Random struct {
	r *rand.Rand
}

// NewRandom returns a Random seeded with seed, or with the wall clock when
// seed is zero.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Uniform scales a [0,1) draw onto [min, max]. The upper bound is only
// reachable through float32 rounding.
func (rs *Random) Uniform(min, max float32) float32 {
	v := lerp(min, max, rs.r.Float32())
	if v > max {
		return max
	}
	return v
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }
