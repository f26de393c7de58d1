package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(prometheus.Labels{"service": "appverdict"}, registry)

var (
	// Judgment latency buckets in milliseconds. Remote model calls are slow.
	latencyBuckets = []float64{
		100, 250, 500,
		1000, 2500, 5000,
		10000, 30000, 60000,
	}

	VerdictsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "appverdict_verdicts_total",
			Help: "Verdicts produced, by verdict type and outcome",
		},
		[]string{"type", "outcome"},
	)

	FallbacksTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "appverdict_fallbacks_total",
			Help: "Fallback verdicts, by fallback code",
		},
		[]string{"code"},
	)

	JudgmentLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "appverdict_judgment_latency_ms",
			Help:    "Remote judgment latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"provider", "model"},
	)

	CacheLookupsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "appverdict_cache_lookups_total",
			Help: "Verdict cache lookups, by result",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "appverdict_http_requests_total",
			Help: "API requests, by route, method and status code",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "appverdict_http_request_latency_ms",
			Help:    "API request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route", "method"},
	)

	ExportsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "appverdict_exports_total",
			Help: "Records handed to telemetry exporters, by exporter and result",
		},
		[]string{"exporter", "result"},
	)

	BatchInFlight = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "appverdict_batch_records_in_flight",
			Help: "Records currently being analysed",
		},
	)
)

type MetricsConfig struct {
	EnableProcessCollector bool
	EnableGoCollector      bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableProcessCollector: true,
		EnableGoCollector:      false,
	}
}

var initOnce sync.Once

// Initialize registers the runtime collectors once and makes the package
// registry the default gatherer.
func Initialize(cfg MetricsConfig) {
	initOnce.Do(func() {
		if cfg.EnableProcessCollector {
			registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		}
		if cfg.EnableGoCollector {
			registry.MustRegister(collectors.NewGoCollector())
		}
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

func Gatherer() prometheus.Gatherer {
	return registry
}
