package gpu

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/bubbles"
	"github.com/gekko3d/bubbles/bubble"
)

func TestBuildBubbleUniform(t *testing.T) {
	cam := bubbles.NewCamera()
	cfg := bubble.DefaultConfig()
	cfg.BubbleSize = 0.1
	cfg.Opacity = 0.7

	u := buildBubbleUniform(cam, bubbles.StaticColor{1, 0, 0, 1}, cfg, 2)
	assert.Equal(t, cam.ViewProj(2), u.ViewProj)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, u.Tint)
	assert.InDelta(t, 0.1*cam.Focal(), u.Size, 1e-6)
	assert.Equal(t, float32(0.7), u.Opacity)
	assert.Equal(t, float32(2), u.Aspect)
}

func TestBubbleUniform_MatchesShaderLayout(t *testing.T) {
	u := buildBubbleUniform(bubbles.NewCamera(), bubbles.StaticColor{}, bubble.DefaultConfig(), 1)
	assert.Equal(t, uintptr(96), unsafe.Sizeof(u))
}

func TestInputActions_MapKeysOntoField(t *testing.T) {
	cfg := bubble.DefaultConfig()
	cfg.Count = 20
	cfg.Seed = 4
	app := bubbles.NewAppBuilder().
		UseModule(bubbles.TimeModule{}, bubbles.BubblesModule{Config: cfg}).
		Build()
	field, ok := bubbles.Resource[bubbles.BubbleField](app)
	require.True(t, ok)
	gen := field.Engine.Generation()

	input := &Input{}
	input.JustPressed[KeyR] = true
	app.Commands().AddResources(input)
	app.UseSystem(bubbles.System(inputActionsSystem).InStage(bubbles.Prelude))

	app.RunFrames(1)

	assert.False(t, field.Engine.Config().Repeat)
	assert.Equal(t, gen, field.Engine.Generation())
}
