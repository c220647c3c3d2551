package main

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"

	"github.com/gekko3d/bubbles"
	"github.com/gekko3d/bubbles/bubble"
)

var background = gg.RGB(0.02, 0.05, 0.12)

// SnapshotModule renders the bubble field to a PNG once AtFrame frames have
// run, then stops the app. Err holds the outcome after Run returns.
type SnapshotModule struct {
	Path    string
	AtFrame uint64
	Width   int
	Height  int
	Camera  bubbles.Camera
	Colors  bubbles.ColorProvider

	Err error
}

func (mod *SnapshotModule) Install(app *bubbles.App, cmd *bubbles.Commands) {
	if _, ok := bubbles.Resource[bubbles.BubbleField](app); !ok {
		panic("SnapshotModule requires BubblesModule")
	}
	bubbles.ClaimRenderer(app, "bubbles-snapshot")
	if mod.Colors == nil {
		mod.Colors = bubbles.StaticColor{1, 1, 1, 1}
	}
	cmd.AddResources(mod)
	app.UseSystem(
		bubbles.System(snapshotSystem).
			InStage(bubbles.Render).
			RunAlways(),
	)
}

func snapshotSystem(mod *SnapshotModule, field *bubbles.BubbleField, t *bubbles.Time, cmd *bubbles.Commands) {
	if t.Frame < mod.AtFrame {
		return
	}
	cmd.Exit()

	buf := field.Engine.Buffer()
	if buf == nil {
		mod.Err = fmt.Errorf("snapshot at frame %d: %w", t.Frame, bubble.ErrNotReady)
		return
	}
	dc, err := drawField(mod.Camera, mod.Colors.AmbientColor(), field.Engine.Config(), buf, mod.Width, mod.Height)
	defer dc.Close()
	buf.Commit()
	if err != nil {
		mod.Err = fmt.Errorf("snapshot at frame %d: %w", t.Frame, err)
		return
	}

	if err := dc.SavePNG(mod.Path); err != nil {
		mod.Err = fmt.Errorf("write snapshot: %w", err)
		return
	}
	cmd.Logger().Infof("wrote %dx%d snapshot of %d bubbles at frame %d to %s",
		mod.Width, mod.Height, buf.Len(), t.Frame, mod.Path)
}

type disc struct {
	x, y, r float64
	depth   float32
}

// drawField paints every visible bubble as a translucent disc, far bubbles
// first. Radius follows the perspective size of BubbleSize. The context is
// returned even on error and must be closed by the caller.
func drawField(cam bubbles.Camera, tint mgl32.Vec4, cfg bubble.Config, buf *bubble.InstanceBuffer, width, height int) (*gg.Context, error) {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(background)

	focal := float64(cam.Focal())
	discs := make([]disc, 0, buf.Len())
	for i := 0; i < buf.Len(); i++ {
		x, y, depth, ok := cam.Project(buf.ReadPosition(i), width, height)
		if !ok {
			continue
		}
		r := float64(cfg.BubbleSize) * focal * float64(height) / 2 / float64(depth)
		discs = append(discs, disc{x: float64(x), y: float64(y), r: max(r, 1), depth: depth})
	}
	slices.SortFunc(discs, func(a, b disc) int { return cmp.Compare(b.depth, a.depth) })

	dc.SetLineWidth(1)
	return dc, paintDiscs(dc, discs, tint, float64(cfg.Opacity))
}

// painter is the part of gg.Context used to draw discs.
type painter interface {
	SetRGBA(r, g, b, a float64)
	DrawCircle(x, y, r float64)
	Fill() error
	Stroke() error
}

func paintDiscs(p painter, discs []disc, tint mgl32.Vec4, alpha float64) error {
	red, green, blue := float64(tint.X()), float64(tint.Y()), float64(tint.Z())
	for i, d := range discs {
		p.SetRGBA(red, green, blue, alpha*0.35)
		p.DrawCircle(d.x, d.y, d.r)
		if err := p.Fill(); err != nil {
			return fmt.Errorf("fill bubble %d: %w", i, err)
		}

		p.SetRGBA(red, green, blue, alpha)
		p.DrawCircle(d.x, d.y, d.r)
		if err := p.Stroke(); err != nil {
			return fmt.Errorf("stroke bubble %d: %w", i, err)
		}
	}
	return nil
}
