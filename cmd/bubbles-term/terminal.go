package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/bubbles"
)

// TerminalModule draws the bubble field onto a tcell screen and maps keys
// onto field actions as listed in handleTerminalEvent.
type TerminalModule struct {
	Screen tcell.Screen
	Camera bubbles.Camera
	Colors bubbles.ColorProvider
	// Frame is the minimum wall time per frame.
	Frame time.Duration
}

type terminal struct {
	screen tcell.Screen
	camera bubbles.Camera
	colors bubbles.ColorProvider
	frame  time.Duration
	events chan tcell.Event
	quit   chan struct{}
	next   time.Time
}

func (mod TerminalModule) Install(app *bubbles.App, cmd *bubbles.Commands) {
	if _, ok := bubbles.Resource[bubbles.BubbleField](app); !ok {
		panic("TerminalModule requires BubblesModule")
	}
	bubbles.ClaimRenderer(app, "bubbles-term")
	term := &terminal{
		screen: mod.Screen,
		camera: mod.Camera,
		colors: mod.Colors,
		frame:  mod.Frame,
		events: make(chan tcell.Event, 100),
		quit:   make(chan struct{}),
	}
	if term.colors == nil {
		term.colors = bubbles.StaticColor{0.75, 0.9, 1, 1}
	}
	term.screen.HideCursor()
	go term.pollEvents()

	cmd.AddResources(term)
	cmd.OnTeardown(func() {
		close(term.quit)
		term.screen.Fini()
	})

	app.UseSystem(
		bubbles.System(terminalInputSystem).
			InStage(bubbles.Prelude).
			RunAlways(),
	)
	app.UseSystem(
		bubbles.System(terminalRenderSystem).
			InStage(bubbles.Render).
			RunAlways(),
	)
	app.UseSystem(
		bubbles.System(terminalPaceSystem).
			InStage(bubbles.PostRender).
			RunAlways(),
	)
}

func (t *terminal) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

func terminalInputSystem(term *terminal, field *bubbles.BubbleField) {
	for {
		select {
		case ev := <-term.events:
			handleTerminalEvent(ev, term, field)
		default:
			return
		}
	}
}

func handleTerminalEvent(ev tcell.Event, term *terminal, field *bubbles.BubbleField) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			field.Do(bubbles.ActionQuit)
			return
		}
		if ev.Key() != tcell.KeyRune {
			return
		}
		switch ev.Rune() {
		case 'q':
			field.Do(bubbles.ActionQuit)
		case 'r':
			field.Do(bubbles.ActionToggleRepeat)
		case ' ':
			field.Do(bubbles.ActionReseed)
		}
	case *tcell.EventResize:
		term.screen.Sync()
	}
}

func terminalRenderSystem(term *terminal, field *bubbles.BubbleField) {
	buf := field.Engine.Buffer()
	if buf == nil {
		return
	}
	width, height := term.screen.Size()
	style := tcell.StyleDefault.Foreground(tcellColor(term.colors.AmbientColor()))

	term.screen.Clear()
	for i := 0; i < buf.Len(); i++ {
		x, y, glyph, ok := cellFor(term.camera, buf.ReadPosition(i), width, height)
		if !ok {
			continue
		}
		term.screen.SetContent(x, y, glyph, nil, style)
	}
	buf.Commit()
	term.screen.Show()
}

func terminalPaceSystem(term *terminal) {
	if term.frame <= 0 {
		return
	}
	now := time.Now()
	if term.next.IsZero() || now.After(term.next.Add(term.frame)) {
		term.next = now
	}
	term.next = term.next.Add(term.frame)
	time.Sleep(time.Until(term.next))
}

// cellFor projects a bubble onto a width x height grid of terminal cells.
// Cells are about twice as tall as wide, so the projection runs on a grid
// of square half cells.
func cellFor(cam bubbles.Camera, p mgl32.Vec3, width, height int) (x, y int, glyph rune, ok bool) {
	px, py, depth, ok := cam.Project(p, width, height*2)
	if !ok {
		return 0, 0, 0, false
	}
	x, y = int(px), int(py/2)
	if x < 0 || x >= width || y < 0 || y >= height {
		return 0, 0, 0, false
	}
	return x, y, depthGlyph(depth), true
}

func depthGlyph(depth float32) rune {
	switch {
	case depth < 8:
		return 'O'
	case depth < 13:
		return 'o'
	case depth < 17:
		return '°'
	default:
		return '.'
	}
}

func tcellColor(c mgl32.Vec4) tcell.Color {
	return tcell.NewRGBColor(channel(c.X()), channel(c.Y()), channel(c.Z()))
}

func channel(v float32) int32 {
	return int32(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
