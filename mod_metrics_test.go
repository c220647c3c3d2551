package bubbles

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/bubbles/bubble"
)

func TestMetricsModule_CountsTicksAndRecycles(t *testing.T) {
	cfg := testConfig()
	cfg.BaseSpeed = 1000 // every bubble leaves the field within two frames
	registry := prometheus.NewRegistry()
	app, _ := buildBubbleApp(t, cfg, MetricsModule{Namespace: "test", Registry: registry})
	metrics, ok := Resource[FrameMetrics](app)
	require.True(t, ok)

	app.RunFrames(4)

	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.Ticks))
	assert.Equal(t, float64(cfg.Count), testutil.ToFloat64(metrics.Bubbles))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Generations))
	assert.Greater(t, testutil.ToFloat64(metrics.Recycled), float64(0))
	assert.Zero(t, testutil.ToFloat64(metrics.Escaped))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.TickDuration))
}

func TestFrameMetrics_TracksGenerationsAndEscapes(t *testing.T) {
	cfg := testConfig()
	cfg.BaseSpeed = 1000
	cfg.Repeat = false
	engine := bubble.NewEngine()
	require.NoError(t, engine.Initialize(cfg, nil))
	field := &BubbleField{Engine: engine, pending: make(chan bubble.Config, 1), log: NewNopLogger()}
	metrics := NewFrameMetrics("escape", nil)

	metrics.Observe(field)
	assert.Zero(t, testutil.ToFloat64(metrics.Ticks), "no tick yet")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.Generations))

	for frame := uint64(1); frame <= 10; frame++ {
		require.NoError(t, engine.Tick(bubble.Frame{Index: frame}))
		metrics.Observe(field)
		metrics.Observe(field) // same frame is only counted once
	}
	assert.Equal(t, float64(10), testutil.ToFloat64(metrics.Ticks))
	assert.Equal(t, float64(cfg.Count), testutil.ToFloat64(metrics.Escaped))
	assert.Zero(t, testutil.ToFloat64(metrics.Recycled))

	cfg.Count = 3
	require.NoError(t, engine.Reconfigure(cfg))
	metrics.Observe(field)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Generations))
	assert.Equal(t, float64(3), testutil.ToFloat64(metrics.Bubbles))

	engine.Dispose()
	metrics.Observe(field)
	assert.Zero(t, testutil.ToFloat64(metrics.Bubbles))
}

func TestFrameMetrics_Handler(t *testing.T) {
	metrics := NewFrameMetrics("bubbles", nil)
	metrics.Ticks.Add(3)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "bubbles_ticks_total 3"))
}
