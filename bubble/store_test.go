package bubble

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_SeedsInsideSpawnCube(t *testing.T) {
	s, err := NewStore(500, 0.005, 0.025, NewRandom(3))
	require.NoError(t, err)
	require.Equal(t, 500, s.Len())

	for i := 0; i < s.Len(); i++ {
		p := s.Position(i)
		for axis := 0; axis < 3; axis++ {
			if p[axis] < -4 || p[axis] > 4 {
				t.Fatalf("particle %d axis %d out of spawn cube: %v", i, axis, p)
			}
		}
		assert.GreaterOrEqual(t, s.Speed(i), float32(0.005))
		assert.LessOrEqual(t, s.Speed(i), float32(0.025))
	}
}

func TestNewStore_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		min, max float32
		field    string
	}{
		{"zero count", 0, 0.1, 0.2, "count"},
		{"negative count", -3, 0.1, 0.2, "count"},
		{"inverted speeds", 10, 0.3, 0.2, "speed"},
		{"NaN min speed", 10, float32(math.NaN()), 0.2, "speed"},
		{"NaN max speed", 10, 0.1, float32(math.NaN()), "speed"},
		{"infinite speeds", 10, float32(math.Inf(1)), float32(math.Inf(1)), "speed"},
		{"negative infinite min", 10, float32(math.Inf(-1)), 0.2, "speed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStore(tt.count, tt.min, tt.max, NewRandom(1))
			assert.Nil(t, s)
			require.ErrorIs(t, err, ErrInvalidConfig)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestNewStore_EqualSpeedBoundsAllowed(t *testing.T) {
	s, err := NewStore(4, 0.01, 0.01, NewRandom(9))
	require.NoError(t, err)
	for i := 0; i < s.Len(); i++ {
		assert.Equal(t, float32(0.01), s.Speed(i))
	}
}

func TestStore_Advance(t *testing.T) {
	src := &scriptedSource{values: []float32{1, 2, 3, 0.5}}
	s, err := NewStore(1, 0.1, 1, src)
	require.NoError(t, err)

	s.Advance(0, 0.25)
	assert.Equal(t, float32(2.25), s.Position(0).Y())
	assert.Equal(t, float32(1), s.Position(0).X())
	assert.Equal(t, float32(3), s.Position(0).Z())
}

func TestStore_RecycleKeepsSpeed(t *testing.T) {
	src := &scriptedSource{values: []float32{1, 2, 3, 0.5}}
	s, err := NewStore(1, 0.1, 1, src)
	require.NoError(t, err)

	src.values = []float32{-3.5, 7.25}
	p := s.Recycle(0, src)

	assert.Equal(t, float32(-3.5), p.X())
	assert.Equal(t, float32(-2), p.Y())
	assert.Equal(t, float32(7.25), p.Z())
	assert.Equal(t, p, s.Position(0))
	assert.Equal(t, float32(0.5), s.Speed(0))
}

func TestStore_RecycleRanges(t *testing.T) {
	rnd := NewRandom(11)
	s, err := NewStore(1, 0.1, 0.2, rnd)
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		p := s.Recycle(0, rnd)
		if p.X() < -4 || p.X() > 4 {
			t.Fatalf("recycled x out of range: %f", p.X())
		}
		if p.Z() < 0 || p.Z() > 8 {
			t.Fatalf("recycled z out of range: %f", p.Z())
		}
		if p.Y() != -2 {
			t.Fatalf("recycled y should be exactly -2, got %f", p.Y())
		}
	}
}

func TestStore_OutOfRangeIndexPanics(t *testing.T) {
	s, err := NewStore(2, 0.1, 0.2, NewRandom(5))
	require.NoError(t, err)
	assert.Panics(t, func() { s.Advance(2, 1) })
}
