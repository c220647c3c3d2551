package bubbles

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCamera_ProjectTargetLandsInCenter(t *testing.T) {
	cam := NewCamera()
	x, y, depth, ok := cam.Project(cam.Target, 800, 600)

	assert.True(t, ok)
	assert.InDelta(t, 400, x, 0.01)
	assert.InDelta(t, 300, y, 0.01)
	assert.InDelta(t, cam.Eye.Sub(cam.Target).Len(), depth, 0.01)
}

func TestCamera_ProjectOrientation(t *testing.T) {
	cam := NewCamera()
	_, yLow, _, ok := cam.Project(mgl32.Vec3{0, -2, 2}, 800, 600)
	assert.True(t, ok)
	_, yHigh, _, ok := cam.Project(mgl32.Vec3{0, 4, 2}, 800, 600)
	assert.True(t, ok)
	assert.Less(t, yHigh, yLow, "higher bubbles are nearer the top of the screen")

	xLeft, _, _, _ := cam.Project(mgl32.Vec3{-3, 1, 2}, 800, 600)
	xRight, _, _, _ := cam.Project(mgl32.Vec3{3, 1, 2}, 800, 600)
	assert.Less(t, xLeft, xRight)
}

func TestCamera_ProjectRejects(t *testing.T) {
	cam := NewCamera()
	_, _, _, ok := cam.Project(mgl32.Vec3{0, 1, 20}, 800, 600)
	assert.False(t, ok, "behind the camera")

	_, _, _, ok = cam.Project(mgl32.Vec3{100, 1, 2}, 800, 600)
	assert.False(t, ok, "outside the frustum")

	_, _, _, ok = cam.Project(cam.Target, 0, 600)
	assert.False(t, ok)
}

func TestCamera_Focal(t *testing.T) {
	cam := NewCamera()
	cam.FovY = 90
	assert.InDelta(t, 1.0, cam.Focal(), 1e-5)
}

func TestStaticColor(t *testing.T) {
	c := StaticColor{0.1, 0.2, 0.3, 1}
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, c.AmbientColor())
}

func TestCyclingColor_SweepsHue(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewCyclingColor(4 * time.Second)
	c.Saturation = 1
	c.start = now
	c.now = func() time.Time { return now }

	red := c.AmbientColor()
	assert.InDelta(t, 1, red.X(), 1e-4)
	assert.InDelta(t, 0, red.Y(), 1e-4)
	assert.Equal(t, float32(1), red.W())

	now = now.Add(time.Second * 4 / 3) // a third of the wheel
	green := c.AmbientColor()
	assert.InDelta(t, 0, green.X(), 1e-3)
	assert.InDelta(t, 1, green.Y(), 1e-3)

	now = now.Add(time.Second * 8 / 3) // full turn
	assert.InDelta(t, 1, c.AmbientColor().X(), 1e-3)
}
