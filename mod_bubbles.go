package bubbles

import (
	"errors"
	"sync"

	"github.com/gekko3d/bubbles/bubble"
)

// BubblesModule owns the bubble engine for the lifetime of the app. The
// engine is initialized during Install, ticked once per frame in Update and
// disposed on teardown.
type BubblesModule struct {
	Config bubble.Config
	// Source overrides the random stream of the first generation.
	Source bubble.Source
}

// FieldAction is a user command aimed at the bubble field, usually bound
// to a key by a host.
type FieldAction int

const (
	ActionQuit FieldAction = iota
	ActionToggleRepeat
	ActionReseed
)

// BubbleField is the resource other modules use to reach the engine.
type BubbleField struct {
	Engine *bubble.Engine

	mu      sync.Mutex
	pending chan bubble.Config
	actions []FieldAction
	log     Logger
}

func (mod BubblesModule) Install(app *App, cmd *Commands) {
	logger := app.Logger()
	engine := bubble.NewEngine(bubble.WithLogger(logger))
	if err := engine.Initialize(mod.Config, mod.Source); err != nil {
		logger.Errorf("bubble field: %v", err)
		panic(err)
	}

	field := &BubbleField{
		Engine:  engine,
		pending: make(chan bubble.Config, 1),
		log:     logger,
	}
	cmd.AddResources(field)
	cmd.OnTeardown(engine.Dispose)

	app.UseSystem(
		System(bubbleReconfigureSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(bubbleTickSystem).
			InStage(Update).
			RunAlways(),
	)
}

// Request queues cfg for the frame thread. It may be called from any
// goroutine; only the latest request is kept.
func (f *BubbleField) Request(cfg bubble.Config) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replacePending(cfg)
}

// Update edits the newest known config: a queued request if there is one,
// the engine's config otherwise. The result replaces the queued request.
// Frame thread only.
func (f *BubbleField) Update(edit func(bubble.Config) bubble.Config) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cfg := f.Engine.Config()
	select {
	case queued := <-f.pending:
		cfg = queued
	default:
	}
	f.replacePending(edit(cfg))
}

// Do queues actions for the next reconfigure pass. Frame thread only.
func (f *BubbleField) Do(actions ...FieldAction) {
	f.actions = append(f.actions, actions...)
}

func (f *BubbleField) replacePending(cfg bubble.Config) {
	select {
	case <-f.pending:
	default:
	}
	f.pending <- cfg
}

func (f *BubbleField) applyActions(cmd *Commands) {
	for _, action := range f.actions {
		switch action {
		case ActionQuit:
			cmd.Exit()
		case ActionToggleRepeat:
			f.Update(func(cfg bubble.Config) bubble.Config {
				cfg.Repeat = !cfg.Repeat
				f.log.Infof("bubble recycling %t", cfg.Repeat)
				return cfg
			})
		case ActionReseed:
			f.Update(func(cfg bubble.Config) bubble.Config {
				cfg.Seed++
				f.log.Infof("bubble field reseeded with %d", cfg.Seed)
				return cfg
			})
		}
	}
	f.actions = f.actions[:0]
}

func bubbleReconfigureSystem(field *BubbleField, cmd *Commands) {
	field.applyActions(cmd)
	select {
	case cfg := <-field.pending:
		if err := field.Engine.Reconfigure(cfg); err != nil {
			field.log.Errorf("bubble field reconfigure rejected: %v", err)
		}
	default:
	}
}

func bubbleTickSystem(field *BubbleField, t *Time) {
	err := field.Engine.Tick(bubble.Frame{Index: t.Frame, Dt: t.Dt})
	if err != nil && !errors.Is(err, bubble.ErrNotReady) {
		field.log.Errorf("bubble tick: %v", err)
	}
}
