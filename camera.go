package bubbles

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a fixed look-at camera framing the bubble field.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Near   float32
	Far    float32
}

func NewCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0, 1, 14},
		Target: mgl32.Vec3{0, 1, 2},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   60,
		Near:   0.1,
		Far:    100,
	}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

func (c Camera) ViewProj(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// Focal is the projection scale along Y, cot(fov/2).
func (c Camera) Focal() float32 {
	return c.Projection(1).At(1, 1)
}

// Project maps a world position to pixel coordinates on a width x height
// target with the origin top-left. ok is false for points behind the
// camera or outside the clip volume; depth is the clip-space w.
func (c Camera) Project(p mgl32.Vec3, width, height int) (x, y, depth float32, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, false
	}
	clip := c.ViewProj(float32(width)/float32(height)).Mul4x1(p.Vec4(1))
	if clip.W() <= c.Near {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 {
		return 0, 0, clip.W(), false
	}
	x = (ndc.X() + 1) * 0.5 * float32(width)
	y = (1 - ndc.Y()) * 0.5 * float32(height)
	return x, y, clip.W(), true
}
