package bubble

import (
	"math"
)

const (
	DefaultCount      uint32  = 300
	DefaultBaseSpeed  float32 = 5
	DefaultBubbleSize float32 = 0.05
	DefaultOpacity    float32 = 0.5

	// Rise speed bounds are derived from BaseSpeed.
	minSpeedFactor = 0.001
	maxSpeedFactor = 0.005
)

// Config is immutable for the lifetime of one engine generation.
// BubbleSize and Opacity are passed through to the render boundary and
// never read by the kinematics.
type Config struct {
	Count      uint32  `yaml:"count"`
	BaseSpeed  float32 `yaml:"base_speed"`
	BubbleSize float32 `yaml:"bubble_size"`
	Opacity    float32 `yaml:"opacity"`
	Repeat     bool    `yaml:"repeat"`

	// Seed fixes the random stream of a generation. Zero means time seeded.
	Seed uint64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Count:      DefaultCount,
		BaseSpeed:  DefaultBaseSpeed,
		BubbleSize: DefaultBubbleSize,
		Opacity:    DefaultOpacity,
		Repeat:     true,
	}
}

// SpeedRange returns the [min, max] rise speed per frame. The product is
// taken in float64 and rounded once.
func (c Config) SpeedRange() (float32, float32) {
	base := float64(c.BaseSpeed)
	return float32(base * minSpeedFactor), float32(base * maxSpeedFactor)
}

func (c Config) Validate() error {
	if c.Count == 0 {
		return &ConfigError{Field: "count", Reason: "must be greater than zero"}
	}
	if !finite(c.BaseSpeed) {
		return &ConfigError{Field: "base_speed", Reason: "must be a finite number"}
	}
	minSpeed, maxSpeed := c.SpeedRange()
	if minSpeed > maxSpeed {
		return &ConfigError{Field: "base_speed", Reason: "yields min speed above max speed"}
	}
	return nil
}

// kinematicEqual reports whether two configs produce the same particle
// state. Render-only fields and Repeat are ignored.
func (c Config) kinematicEqual(o Config) bool {
	return c.Count == o.Count && c.BaseSpeed == o.BaseSpeed && c.Seed == o.Seed
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
