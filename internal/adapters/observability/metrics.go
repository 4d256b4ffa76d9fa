package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"goodfood/internal/domain"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "goodfood", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "goodfood", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "goodfood", Name: "store_ops_total", Help: "Storage backend operations."},
		[]string{"backend", "op", "outcome"}, // outcome: ok|not_found|error
	)
	ReconcileRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "goodfood", Name: "reconcile_runs_total", Help: "Reconciliation passes."},
	)
	ReconcileSeeds = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "goodfood", Name: "reconcile_seed_writes_total", Help: "Baseline seed writes."},
		[]string{"outcome"}, // ok|error
	)
)

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, StoreOps, ReconcileRuns, ReconcileSeeds)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveStore(backend, op string, err error) {
	StoreOps.WithLabelValues(backend, op, outcome(err)).Inc()
}

func ObserveReconcile(seeded, failed int) {
	ReconcileRuns.Inc()
	if seeded > 0 {
		ReconcileSeeds.WithLabelValues("ok").Add(float64(seeded))
	}
	if failed > 0 {
		ReconcileSeeds.WithLabelValues("error").Add(float64(failed))
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
