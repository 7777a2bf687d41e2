package server

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/matzehuels/mondrian/pkg/observability"
)

const defaultMetricsNamespace = "mondrian"

// MetricsConfig contains metrics configuration.
type MetricsConfig struct {
	// Namespace is the prometheus namespace for all metrics. If empty, defaults to "mondrian".
	Namespace string
	// Registry receives the collectors. If nil, a fresh registry with Go and
	// process collectors is created.
	Registry *prometheus.Registry
}

// Metrics holds the server's prometheus collectors. It implements the
// observability hook interfaces so the pipeline reports into it without
// importing prometheus.
type Metrics struct {
	registry *prometheus.Registry

	layoutsTotal     *prometheus.CounterVec
	layoutDuration   *prometheus.HistogramVec
	layoutRects      *prometheus.HistogramVec
	rendersTotal     *prometheus.CounterVec
	renderErrors     *prometheus.CounterVec
	renderDuration   *prometheus.HistogramVec
	reseedsTotal     *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	httpErrors       *prometheus.CounterVec
	httpInflight     prometheus.Gauge
	snapshotsWritten prometheus.Counter
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.SeedHooks     = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates all collectors and registers them.
// Returns an error if metric registration fails.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	ns := cfg.Namespace
	if ns == "" {
		ns = defaultMetricsNamespace
	}

	m := &Metrics{registry: registry}

	m.layoutsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "layout",
		Name:      "generated_total",
		Help:      "Number of generated layouts.",
	}, []string{"strategy"})

	m.layoutDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: "layout",
		Name:      "duration_seconds",
		Buckets:   prometheus.DefBuckets,
		Help:      "Duration of layout generation.",
	}, []string{"strategy"})

	m.layoutRects = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: "layout",
		Name:      "rectangles",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
		Help:      "Number of rectangles per generated layout.",
	}, []string{"strategy"})

	m.rendersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "render",
		Name:      "artifacts_total",
		Help:      "Number of rendered artifacts.",
	}, []string{"format"})

	m.renderErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "render",
		Name:      "errors_total",
		Help:      "Number of failed render calls.",
	}, []string{"format"})

	m.renderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: "render",
		Name:      "duration_seconds",
		Buckets:   prometheus.DefBuckets,
		Help:      "Duration of a render call covering all requested formats.",
	}, []string{"format_count"})

	m.reseedsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "seed",
		Name:      "reseeds_total",
		Help:      "Number of seed replacements by trigger.",
	}, []string{"trigger"})

	m.snapshotsWritten = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "seed",
		Name:      "snapshots_total",
		Help:      "Number of snapshots written.",
	})

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests by route, method, and status.",
	}, []string{"route", "method", "status"})

	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: "http",
		Name:      "duration_seconds",
		Buckets:   prometheus.DefBuckets,
		Help:      "Duration of HTTP requests.",
	}, []string{"route", "method"})

	m.httpErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Subsystem: "http",
		Name:      "errors_total",
		Help:      "Number of failed HTTP handlers.",
	}, []string{"route", "method"})

	m.httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: ns,
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Number of HTTP requests being served.",
	})

	var alreadyRegistered prometheus.AlreadyRegisteredError
	for _, c := range []prometheus.Collector{
		m.layoutsTotal,
		m.layoutDuration,
		m.layoutRects,
		m.rendersTotal,
		m.renderErrors,
		m.renderDuration,
		m.reseedsTotal,
		m.snapshotsWritten,
		m.httpRequests,
		m.httpDuration,
		m.httpErrors,
		m.httpInflight,
	} {
		if err := registry.Register(c); err != nil && !errors.As(err, &alreadyRegistered) {
			return nil, err
		}
	}
	return m, nil
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) OnLayoutStart(context.Context, float64, int, string) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, strategy string, rectCount int, duration time.Duration, err error) {
	if err != nil {
		return
	}
	m.layoutsTotal.WithLabelValues(strategy).Inc()
	m.layoutDuration.WithLabelValues(strategy).Observe(duration.Seconds())
	m.layoutRects.WithLabelValues(strategy).Observe(float64(rectCount))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, formats []string, duration time.Duration, err error) {
	for _, f := range formats {
		if err != nil {
			m.renderErrors.WithLabelValues(f).Inc()
			continue
		}
		m.rendersTotal.WithLabelValues(f).Inc()
	}
	m.renderDuration.WithLabelValues(strconv.Itoa(len(formats))).Observe(duration.Seconds())
}

func (m *Metrics) OnReseed(_ context.Context, trigger string, _ uint64) {
	m.reseedsTotal.WithLabelValues(trigger).Inc()
}

func (m *Metrics) OnSnapshot(_ context.Context, _ uint64, _ int, err error) {
	if err == nil {
		m.snapshotsWritten.Inc()
	}
}

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.httpInflight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	m.httpInflight.Dec()
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

func (m *Metrics) OnError(_ context.Context, method, route string, _ error) {
	m.httpErrors.WithLabelValues(route, method).Inc()
}
