package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API and
// the blob state store.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	stateReads      *prometheus.HistogramVec
	stateWrites     *prometheus.HistogramVec
	planRejections  *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors on a private
// registry so tests can run several instances side by side.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	stateReads := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "state_blob_read_seconds",
		Help:    "Latency of state blob reads",
		Buckets: prometheus.DefBuckets,
	}, []string{"key"})

	stateWrites := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "state_blob_write_seconds",
		Help:    "Latency of state blob rewrites",
		Buckets: prometheus.DefBuckets,
	}, []string{"key"})

	planRejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_rejections_total",
		Help: "Plan mutations rejected by capacity or duplicate guards",
	}, []string{"code"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, stateReads, stateWrites, planRejections, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		stateReads:      stateReads,
		stateWrites:     stateWrites,
		planRejections:  planRejections,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveStateRead records a blob load.
func (m *MetricsService) ObserveStateRead(key string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stateReads.WithLabelValues(key).Observe(duration.Seconds())
}

// ObserveStateWrite records a blob rewrite.
func (m *MetricsService) ObserveStateWrite(key string, duration time.Duration) {
	if m == nil {
		return
	}
	m.stateWrites.WithLabelValues(key).Observe(duration.Seconds())
}

// CountPlanRejection tallies a rejected plan mutation by error code.
func (m *MetricsService) CountPlanRejection(code string) {
	if m == nil {
		return
	}
	m.planRejections.WithLabelValues(code).Inc()
}
