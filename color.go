package bubbles

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorProvider supplies the ambient tint applied uniformly to every bubble.
// It is sampled by render hosts once per frame and never by the engine.
type ColorProvider interface {
	AmbientColor() mgl32.Vec4
}

type StaticColor mgl32.Vec4

func (c StaticColor) AmbientColor() mgl32.Vec4 { return mgl32.Vec4(c) }

// CyclingColor sweeps the hue wheel once per Period.
type CyclingColor struct {
	Period     time.Duration
	Saturation float64
	Value      float64

	start time.Time
	now   func() time.Time
}

func NewCyclingColor(period time.Duration) *CyclingColor {
	return &CyclingColor{
		Period:     period,
		Saturation: 0.35,
		Value:      1,
		start:      time.Now(),
		now:        time.Now,
	}
}

func (c *CyclingColor) AmbientColor() mgl32.Vec4 {
	if c.Period <= 0 {
		return hsvColor(0, c.Saturation, c.Value)
	}
	elapsed := c.now().Sub(c.start)
	turn := math.Mod(float64(elapsed)/float64(c.Period), 1)
	return hsvColor(turn*360, c.Saturation, c.Value)
}

func hsvColor(h, s, v float64) mgl32.Vec4 {
	col := colorful.Hsv(h, s, v).Clamped()
	return mgl32.Vec4{float32(col.R), float32(col.G), float32(col.B), 1}
}
