package bubble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandom_UniformBounds(t *testing.T) {
	r := NewRandom(42)
	for i := 0; i < 10000; i++ {
		v := r.Uniform(-4, 4)
		if v < -4 || v > 4 {
			t.Fatalf("draw %d out of range: %f", i, v)
		}
	}
}

func TestRandom_DegenerateRange(t *testing.T) {
	r := NewRandom(7)
	assert.Equal(t, float32(2.5), r.Uniform(2.5, 2.5))
}

func TestRandom_SeedIsReproducible(t *testing.T) {
	a := NewRandom(1234)
	b := NewRandom(1234)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.Uniform(0, 1), b.Uniform(0, 1))
	}
}

func TestRandom_ZeroSeedIsUsable(t *testing.T) {
	r := NewRandom(0)
	v := r.Uniform(0, 8)
	assert.GreaterOrEqual(t, v, float32(0))
	assert.LessOrEqual(t, v, float32(8))
}
