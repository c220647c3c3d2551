package bubble

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Spawn and recycle volume.
const (
	spawnMin float32 = -4
	spawnMax float32 = 4

	recycleY    float32 = -2
	recycleZMin float32 = 0
	recycleZMax float32 = 8
)

// Store is a fixed-capacity pool of particles laid out as parallel slices.
// An index is an instance slot and stays valid for the lifetime of the
// store. Indexing outside [0, Len()) panics in every build.
type Store struct {
	pos   []mgl32.Vec3
	speed []float32
}

// NewStore seeds count particles inside the spawn cube with rise speeds
// drawn from [minSpeed, maxSpeed].
func NewStore(count int, minSpeed, maxSpeed float32, rnd Source) (*Store, error) {
	if count <= 0 {
		return nil, &ConfigError{Field: "count", Reason: "must be greater than zero"}
	}
	if !finite(minSpeed) || !finite(maxSpeed) {
		return nil, &ConfigError{Field: "speed", Reason: "speed bounds must be finite"}
	}
	if minSpeed > maxSpeed {
		return nil, &ConfigError{Field: "speed", Reason: "min speed above max speed"}
	}

	s := &Store{
		pos:   make([]mgl32.Vec3, count),
		speed: make([]float32, count),
	}
	for i := range s.pos {
		s.pos[i] = mgl32.Vec3{
			rnd.Uniform(spawnMin, spawnMax),
			rnd.Uniform(spawnMin, spawnMax),
			rnd.Uniform(spawnMin, spawnMax),
		}
		s.speed[i] = rnd.Uniform(minSpeed, maxSpeed)
	}
	return s, nil
}

func (s *Store) Len() int { return len(s.pos) }

func (s *Store) Position(i int) mgl32.Vec3 { return s.pos[i] }

func (s *Store) Speed(i int) float32 { return s.speed[i] }

// Advance moves particle i up by dy.
func (s *Store) Advance(i int, dy float32) {
	s.pos[i][1] += dy
}

// Recycle drops particle i back to the floor of the field with a fresh
// horizontal placement. Its speed is kept.
func (s *Store) Recycle(i int, rnd Source) mgl32.Vec3 {
	s.pos[i] = mgl32.Vec3{
		rnd.Uniform(spawnMin, spawnMax),
		recycleY,
		rnd.Uniform(recycleZMin, recycleZMax),
	}
	return s.pos[i]
}
