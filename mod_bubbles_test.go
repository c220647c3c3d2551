package bubbles

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/bubbles/bubble"
)

func testConfig() bubble.Config {
	cfg := bubble.DefaultConfig()
	cfg.Count = 40
	cfg.Seed = 17
	return cfg
}

func buildBubbleApp(t *testing.T, cfg bubble.Config, extra ...Module) (*App, *BubbleField) {
	t.Helper()
	modules := append([]Module{TimeModule{}, BubblesModule{Config: cfg}}, extra...)
	app := NewAppBuilder().UseModule(modules...).Build()
	field, ok := Resource[BubbleField](app)
	require.True(t, ok)
	return app, field
}

func TestBubblesModule_TicksOncePerFrame(t *testing.T) {
	app, field := buildBubbleApp(t, testConfig())
	engine := field.Engine
	require.Equal(t, bubble.StateReady, engine.State())

	var seen []bubble.TickStats
	app.UseSystem(System(func(f *BubbleField) {
		seen = append(seen, f.Engine.Stats())
	}).InStage(PostUpdate))

	app.RunFrames(3)

	require.Len(t, seen, 3)
	for i, s := range seen {
		assert.Equal(t, uint64(i+1), s.Frame)
	}
	// disposed on teardown
	assert.Equal(t, bubble.StateDisposed, engine.State())
}

func TestBubblesModule_InvalidConfigPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewAppBuilder().UseModule(TimeModule{}, BubblesModule{Config: bubble.Config{}}).Build()
	})
}

func TestBubblesModule_RequestAppliedOnFrameThread(t *testing.T) {
	cfg := testConfig()
	app, field := buildBubbleApp(t, cfg)
	gen := field.Engine.Generation()

	next := cfg
	next.Count = 7
	field.Request(next)
	// nothing changes until a frame runs
	assert.Equal(t, gen, field.Engine.Generation())

	var lens []int
	app.UseSystem(System(func(f *BubbleField) {
		lens = append(lens, f.Engine.Buffer().Len())
	}).InStage(PostUpdate))
	app.RunFrames(1)

	assert.Equal(t, []int{7}, lens)
}

func TestBubbleField_RequestKeepsLatest(t *testing.T) {
	_, field := buildBubbleApp(t, testConfig())

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(n uint32) {
			defer wg.Done()
			cfg := testConfig()
			cfg.Count = n
			field.Request(cfg)
		}(uint32(i))
	}
	wg.Wait()

	last := testConfig()
	last.Count = 99
	field.Request(last)

	require.Len(t, field.pending, 1)
	assert.Equal(t, uint32(99), (<-field.pending).Count)
}

func TestBubblesModule_RejectedRequestKeepsField(t *testing.T) {
	app, field := buildBubbleApp(t, testConfig())
	gen := field.Engine.Generation()

	field.Request(bubble.Config{Count: 0})
	var states []bubble.State
	app.UseSystem(System(func(f *BubbleField) {
		states = append(states, f.Engine.State())
	}).InStage(PostUpdate))
	app.RunFrames(1)

	assert.Equal(t, []bubble.State{bubble.StateTicking}, states)
	assert.Equal(t, gen, field.Engine.Generation())
}

func TestLifecycleModule_StopsAfterBudget(t *testing.T) {
	app, field := buildBubbleApp(t, testConfig(), LifecycleModule{MaxFrames: 5})

	ticks := 0
	app.UseSystem(System(func(f *BubbleField) { ticks++ }).InStage(PostUpdate))
	app.Run()

	assert.Equal(t, 5, ticks)
	assert.Equal(t, bubble.StateDisposed, field.Engine.State())
}

func TestBubbleField_ToggleRepeatKeepsGeneration(t *testing.T) {
	app, field := buildBubbleApp(t, testConfig())
	gen := field.Engine.Generation()
	before := field.Engine.Store().Position(0)

	field.Do(ActionToggleRepeat)
	var repeat []bool
	app.UseSystem(System(func(f *BubbleField) {
		repeat = append(repeat, f.Engine.Config().Repeat)
		assert.Equal(t, gen, f.Engine.Generation())
	}).InStage(PreRender))
	app.RunFrames(1)

	assert.Equal(t, []bool{false}, repeat)
	assert.NotEqual(t, before, field.Engine.Store().Position(0), "field kept ticking")
}

func TestBubbleField_ReseedStartsNewGeneration(t *testing.T) {
	cfg := testConfig()
	app, field := buildBubbleApp(t, cfg)
	gen := field.Engine.Generation()

	field.Do(ActionReseed)
	var seeds []uint64
	app.UseSystem(System(func(f *BubbleField) {
		seeds = append(seeds, f.Engine.Config().Seed)
		assert.NotEqual(t, gen, f.Engine.Generation())
	}).InStage(PreRender))
	app.RunFrames(1)

	assert.Equal(t, []uint64{cfg.Seed + 1}, seeds)
}

func TestBubbleField_QuitAction(t *testing.T) {
	app, field := buildBubbleApp(t, testConfig(), LifecycleModule{MaxFrames: 10})

	frames := 0
	app.UseSystem(System(func(tm *Time) {
		frames++
		if tm.Frame == 2 {
			field.Do(ActionQuit)
		}
	}).InStage(PostUpdate))
	app.Run()

	assert.Equal(t, 3, frames, "quit is applied on the next frame")
}

func TestBubbleField_ActionBuildsOnQueuedRequest(t *testing.T) {
	cfg := testConfig()
	app, field := buildBubbleApp(t, cfg)

	reload := cfg
	reload.Count = 7
	reload.Opacity = 0.9
	field.Request(reload)
	field.Do(ActionToggleRepeat)
	app.RunFrames(1)

	got := field.Engine.Config()
	assert.Equal(t, uint32(7), got.Count)
	assert.Equal(t, float32(0.9), got.Opacity)
	assert.False(t, got.Repeat)
}

func TestBubbleField_UpdateWithoutQueuedRequest(t *testing.T) {
	_, field := buildBubbleApp(t, testConfig())

	field.Update(func(c bubble.Config) bubble.Config {
		c.BubbleSize = 0.3
		return c
	})

	require.Len(t, field.pending, 1)
	queued := <-field.pending
	assert.Equal(t, float32(0.3), queued.BubbleSize)
	assert.Equal(t, testConfig().Count, queued.Count)
}
