package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/gekko3d/bubbles"
)

const popSampleRate = beep.SampleRate(44100)

// PopModule plays a short tone on frames where bubbles respawn. Pops are
// rate limited so a dense field does not turn into a drone.
type PopModule struct {
	Interval time.Duration
}

type popper struct {
	interval time.Duration
	last     time.Time
	enabled  bool
	play     func(recycled int)
}

func (mod PopModule) Install(app *bubbles.App, cmd *bubbles.Commands) {
	p := &popper{interval: mod.Interval}
	if p.interval <= 0 {
		p.interval = 120 * time.Millisecond
	}
	if err := speaker.Init(popSampleRate, popSampleRate.N(time.Second/10)); err != nil {
		app.Logger().Warnf("audio initialization failed, running without pops: %v", err)
	} else {
		p.enabled = true
		p.play = playPop
		cmd.OnTeardown(speaker.Close)
	}

	cmd.AddResources(p)
	app.UseSystem(
		bubbles.System(popSystem).
			InStage(bubbles.PostUpdate).
			RunAlways(),
	)
}

func popSystem(p *popper, field *bubbles.BubbleField, t *bubbles.Time) {
	p.observe(field.Engine.Stats().Recycled, t.Time)
}

func (p *popper) observe(recycled int, now time.Time) bool {
	if !p.enabled || recycled == 0 || now.Sub(p.last) < p.interval {
		return false
	}
	p.last = now
	p.play(recycled)
	return true
}

// playPop pitches the tone up with the number of bubbles that respawned.
func playPop(recycled int) {
	freq := 660.0 + 40.0*float64(min(recycled, 10))
	tone, err := generators.SineTone(popSampleRate, freq)
	if err != nil {
		return
	}
	pop := &effects.Volume{
		Streamer: beep.Take(popSampleRate.N(40*time.Millisecond), tone),
		Base:     2,
		Volume:   -3,
	}
	speaker.Play(pop)
}
