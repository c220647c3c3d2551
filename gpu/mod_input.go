package gpu

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gekko3d/bubbles"
)

const (
	KeyEscape int = iota
	KeyQ
	KeyR
	KeySpace
	keyCount
)

var keyToGlfw = map[int]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeyQ:      glfw.KeyQ,
	KeyR:      glfw.KeyR,
	KeySpace:  glfw.KeySpace,
}

var keyActions = map[int]bubbles.FieldAction{
	KeyEscape: bubbles.ActionQuit,
	KeyQ:      bubbles.ActionQuit,
	KeyR:      bubbles.ActionToggleRepeat,
	KeySpace:  bubbles.ActionReseed,
}

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	WindowWidth, WindowHeight int
}

func (mod InputModule) Install(app *bubbles.App, cmd *bubbles.Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		bubbles.System(inputSystem).
			InStage(bubbles.Prelude).
			RunAlways(),
	)
	app.UseSystem(
		bubbles.System(inputActionsSystem).
			InStage(bubbles.Prelude).
			RunAlways(),
	)
}

func inputSystem(s *WindowState, input *Input, cmd *bubbles.Commands) {
	glfw.PollEvents()

	if s.windowGlfw.ShouldClose() {
		cmd.Exit()
	}

	for key, glfwKey := range keyToGlfw {
		action := s.windowGlfw.GetKey(glfwKey)

		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if glfw.Press == action {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else if glfw.Release == action {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	input.WindowWidth, input.WindowHeight = s.windowGlfw.GetFramebufferSize()
	s.WindowWidth, s.WindowHeight = input.WindowWidth, input.WindowHeight
}

// inputActionsSystem queues the keyActions binding of every key pressed
// this frame.
func inputActionsSystem(input *Input, field *bubbles.BubbleField) {
	for key, action := range keyActions {
		if input.JustPressed[key] {
			field.Do(action)
		}
	}
}
