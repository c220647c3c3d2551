package bubbles

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsModule exports per-frame bubble statistics. When Addr is set a
// /metrics endpoint is served for the lifetime of the app. Install it after
// BubblesModule.
type MetricsModule struct {
	Namespace string
	Addr      string
	Registry  *prometheus.Registry
}

// FrameMetrics holds the collectors updated by the metrics system.
type FrameMetrics struct {
	Ticks        prometheus.Counter
	Recycled     prometheus.Counter
	Escaped      prometheus.Gauge
	Bubbles      prometheus.Gauge
	Generations  prometheus.Counter
	TickDuration prometheus.Histogram

	registry  *prometheus.Registry
	lastGen   uuid.UUID
	lastFrame uint64
}

func NewFrameMetrics(namespace string, registry *prometheus.Registry) *FrameMetrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &FrameMetrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Number of completed bubble ticks",
		}),
		Recycled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recycled_total",
			Help:      "Bubbles respawned at the floor after leaving the field",
		}),
		Escaped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "escaped",
			Help:      "Bubbles above the field in the last tick with repeat disabled",
		}),
		Bubbles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bubbles",
			Help:      "Size of the current bubble field",
		}),
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Number of times the bubble field was (re)initialized",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Time spent advancing the bubble field",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		registry: registry,
	}
	registry.MustRegister(m.Ticks, m.Recycled, m.Escaped, m.Bubbles, m.Generations, m.TickDuration)
	return m
}

func (m *FrameMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records the engine's last tick once per frame.
func (m *FrameMetrics) Observe(field *BubbleField) {
	engine := field.Engine
	if buf := engine.Buffer(); buf != nil {
		m.Bubbles.Set(float64(buf.Len()))
	} else {
		m.Bubbles.Set(0)
	}
	if gen := engine.Generation(); gen != uuid.Nil && gen != m.lastGen {
		m.lastGen = gen
		m.Generations.Inc()
	}

	stats := engine.Stats()
	if stats.Frame == 0 || stats.Frame == m.lastFrame {
		return
	}
	m.lastFrame = stats.Frame
	m.Ticks.Inc()
	m.Recycled.Add(float64(stats.Recycled))
	m.Escaped.Set(float64(stats.Escaped))
	m.TickDuration.Observe(stats.Duration.Seconds())
}

func (mod MetricsModule) Install(app *App, cmd *Commands) {
	namespace := mod.Namespace
	if namespace == "" {
		namespace = "bubbles"
	}
	metrics := NewFrameMetrics(namespace, mod.Registry)
	cmd.AddResources(metrics)

	app.UseSystem(
		System(bubbleMetricsSystem).
			InStage(PostUpdate).
			RunAlways(),
	)

	if mod.Addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{Addr: mod.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger().Errorf("metrics server: %v", err)
		}
	}()
	app.Logger().Infof("serving metrics on %s/metrics", mod.Addr)
	cmd.OnTeardown(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})
}

func bubbleMetricsSystem(metrics *FrameMetrics, field *BubbleField) {
	metrics.Observe(field)
}
