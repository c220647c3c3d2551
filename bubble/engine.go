package bubble

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Bubbles rising above this height leave the visible field.
const recycleThreshold float32 = 4

type State int

const (
	StateUninitialized State = iota
	StateReady
	StateTicking
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateTicking:
		return "ticking"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Frame is the per-frame signal handed over by the render loop. Motion is
// frame based, Dt is only recorded.
type Frame struct {
	Index uint64
	Dt    time.Duration
}

// TickStats summarizes the most recent Tick.
type TickStats struct {
	Frame    uint64
	Recycled int
	// Escaped counts bubbles above the field that were left to drift
	// because Repeat is off.
	Escaped  int
	Duration time.Duration
}

// Logger is the subset of a leveled logger the engine reports to.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}

type Option func(*Engine)

func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSourceFactory replaces the Source built on Reconfigure and on
// Initialize calls that pass a nil Source.
func WithSourceFactory(f func(seed uint64) Source) Option {
	return func(e *Engine) {
		if f != nil {
			e.newSource = f
		}
	}
}

// Engine owns a bubble store and its instance buffer. It is driven from a
// single goroutine: Initialize once, Tick once per frame, Dispose on
// teardown. The instance buffer is the position of record between ticks.
type Engine struct {
	state      State
	cfg        Config
	generation uuid.UUID

	store  *Store
	buffer *InstanceBuffer
	rnd    Source
	stats  TickStats

	log       Logger
	newSource func(seed uint64) Source
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log: nopLogger{},
		newSource: func(seed uint64) Source {
			return NewRandom(seed)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize validates cfg, seeds a new store and writes every initial
// transform. A nil rnd is replaced by the engine's source factory.
// Nothing is retained when it fails.
func (e *Engine) Initialize(cfg Config, rnd Source) error {
	if e.live() {
		return fmt.Errorf("%w (generation %s)", ErrAlreadyInitialized, e.generation)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if rnd == nil {
		rnd = e.newSource(cfg.Seed)
	}

	minSpeed, maxSpeed := cfg.SpeedRange()
	store, err := NewStore(int(cfg.Count), minSpeed, maxSpeed, rnd)
	if err != nil {
		return err
	}
	buffer := NewInstanceBuffer(store.Len())
	for i := 0; i < store.Len(); i++ {
		buffer.WriteTransform(i, store.Position(i))
	}

	e.cfg = cfg
	e.store = store
	e.buffer = buffer
	e.rnd = rnd
	e.stats = TickStats{}
	e.generation = uuid.New()
	e.state = StateReady

	e.log.Infof("bubble field %s initialized: count=%d speed=[%.4f, %.4f] repeat=%t",
		e.generation, cfg.Count, minSpeed, maxSpeed, cfg.Repeat)
	return nil
}

// Tick advances every bubble by its rise speed and rewrites its slot in
// the instance buffer. Calls outside Ready/Ticking do nothing and return
// ErrNotReady.
func (e *Engine) Tick(frame Frame) error {
	if !e.live() {
		e.log.Warnf("tick %d on %s bubble engine ignored", frame.Index, e.state)
		return fmt.Errorf("%w: %s", ErrNotReady, e.state)
	}

	start := time.Now()
	stats := TickStats{Frame: frame.Index}
	for i := 0; i < e.store.Len(); i++ {
		p := e.buffer.ReadPosition(i)
		dy := e.store.Speed(i)
		p[1] += dy

		if p[1] > recycleThreshold && e.cfg.Repeat {
			p = e.store.Recycle(i, e.rnd)
			stats.Recycled++
		} else {
			if p[1] > recycleThreshold {
				stats.Escaped++
			}
			e.store.Advance(i, dy)
		}

		e.buffer.WriteTransform(i, p)
	}
	stats.Duration = time.Since(start)

	e.stats = stats
	e.state = StateTicking
	return nil
}

// Dispose releases the store and the instance buffer. It is safe to call
// more than once.
func (e *Engine) Dispose() {
	if e.state == StateDisposed {
		return
	}
	if e.live() {
		e.log.Infof("bubble field %s disposed", e.generation)
	}
	e.store = nil
	e.buffer = nil
	e.rnd = nil
	e.state = StateDisposed
}

// Reconfigure applies cfg. A change of count, base speed or seed rebuilds
// the whole field; render-only fields and Repeat are swapped in place.
func (e *Engine) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if e.live() && e.cfg.kinematicEqual(cfg) {
		e.log.Debugf("bubble field %s reconfigured in place", e.generation)
		e.cfg = cfg
		return nil
	}
	e.Dispose()
	return e.Initialize(cfg, nil)
}

func (e *Engine) live() bool {
	return e.state == StateReady || e.state == StateTicking
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Config() Config { return e.cfg }

// Buffer returns the instance buffer, or nil when the engine is not live.
func (e *Engine) Buffer() *InstanceBuffer { return e.buffer }

// Store returns the particle store, or nil when the engine is not live.
func (e *Engine) Store() *Store { return e.store }

func (e *Engine) Stats() TickStats { return e.stats }

// Generation identifies the current store. It changes on every Initialize.
func (e *Engine) Generation() uuid.UUID { return e.generation }
