package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	guardRedirects   *prometheus.CounterVec
}

// NewMetricsService registers the gateway's Prometheus collectors.
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

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_call_duration_seconds",
		Help:    "Duration of platform API calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "status"})

	guardRedirects := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "guard_redirects_total",
		Help: "Route guard redirect decisions by target",
	}, []string{"target"})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, guardRedirects)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		guardRedirects:   guardRedirects,
	}
}

// Handler exposes the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	s.requestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(method, path, code).Inc()
}

// ObserveUpstreamCall records one platform API round trip. Status 0 marks a
// transport failure.
func (s *MetricsService) ObserveUpstreamCall(op string, status int, duration time.Duration) {
	s.upstreamDuration.WithLabelValues(op, strconv.Itoa(status)).Observe(duration.Seconds())
}

// ObserveGuardRedirect counts a guard redirect by target path.
func (s *MetricsService) ObserveGuardRedirect(target string) {
	s.guardRedirects.WithLabelValues(target).Inc()
}
