package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acronis/go-scoop/pkg/storage"
)

// Fetch outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Config configures the Prometheus collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "scoop").
	Namespace string

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry receives the collectors. Default: a fresh registry with Go and process collectors.
	Registry *prometheus.Registry
}

// Option configures the metrics.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		if namespace != "" {
			c.Namespace = namespace
		}
	}
}

// WithBuckets sets the histogram buckets. An empty list keeps the defaults.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		if len(buckets) > 0 {
			c.Buckets = buckets
		}
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

// Metrics holds the collectors of the badge service.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	fetchesTotal    *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
}

func New(opts ...Option) *Metrics {
	config := Config{
		Namespace: "scoop",
		Buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
		config.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	factory := promauto.With(config.Registry)
	return &Metrics{
		registry: config.Registry,

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "requests_total",
			Help:      "Total number of badge requests",
		}, []string{"route", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "request_duration_seconds",
			Help:      "Badge request duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"route"}),

		fetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: "github",
			Name:      "fetches_total",
			Help:      "Total number of upstream file fetches",
		}, []string{"outcome"}),

		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: "github",
			Name:      "fetch_duration_seconds",
			Help:      "Upstream file fetch duration in seconds",
			Buckets:   config.Buckets,
		}),
	}
}

// ObserveRequest records a served badge request.
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveFetch records an upstream fetch.
func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	m.fetchesTotal.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

type instrumentedStorage struct {
	next    storage.Storage
	metrics *Metrics
}

// InstrumentStorage wraps st so that every fetch is counted and timed.
func InstrumentStorage(st storage.Storage, m *Metrics) storage.Storage {
	return &instrumentedStorage{next: st, metrics: m}
}

func (s *instrumentedStorage) Fetch(ctx context.Context, loc storage.Location) ([]byte, error) {
	start := time.Now()
	data, err := s.next.Fetch(ctx, loc)

	outcome := OutcomeOK
	switch {
	case errors.Is(err, storage.ErrNotFound):
		outcome = OutcomeNotFound
	case err != nil:
		outcome = OutcomeError
	}
	s.metrics.ObserveFetch(outcome, time.Since(start))
	return data, err
}
