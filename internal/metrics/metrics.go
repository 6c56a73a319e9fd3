package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nhl_fa"

// Recorder is what the data-access and HTTP layers report into.
type Recorder interface {
	ObserveQuery(op string, took time.Duration, err error)
	IncFallback(op, source, reason string)
	ObserveRequest(route, method string, status int, took time.Duration)
}

// Service owns a dedicated registry so tests and multiple app instances never collide
// on the process-wide default registerer.
type Service struct {
	registry *prometheus.Registry

	queryDuration   *prometheus.HistogramVec
	queryErrors     *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Service {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Service{
		registry: reg,
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Postgres query latency by operation and outcome.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"op", "status"}),
		queryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_errors_total",
			Help:      "Failed Postgres queries by operation.",
		}, []string{"op"}),
		fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "data",
			Name:      "fallbacks_total",
			Help:      "Reads answered by a fallback source instead of the store.",
		}, []string{"op", "source", "reason"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
	}
}

func (s *Service) ObserveQuery(op string, took time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		s.queryErrors.WithLabelValues(op).Inc()
	}
	s.queryDuration.WithLabelValues(op, status).Observe(took.Seconds())
}

func (s *Service) IncFallback(op, source, reason string) {
	s.fallbacks.WithLabelValues(op, source, reason).Inc()
}

func (s *Service) ObserveRequest(route, method string, status int, took time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	s.requestDuration.WithLabelValues(route, method, statusClass(status)).Observe(took.Seconds())
}

func (s *Service) Registry() *prometheus.Registry {
	return s.registry
}

// Handler exposes the registry in the Prometheus text format.
func (s *Service) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

type nop struct{}

// Nop discards every observation.
func Nop() Recorder { return nop{} }

func (nop) ObserveQuery(string, time.Duration, error)         {}
func (nop) IncFallback(string, string, string)                {}
func (nop) ObserveRequest(string, string, int, time.Duration) {}
