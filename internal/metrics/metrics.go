package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	namespace = "chiliguard"

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	imageNormalizeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "image_normalize_total",
			Help:      "Number of normalized images",
		},
		[]string{"status", "format"},
	)

	imageNormalizeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "image_normalize_duration_seconds",
			Help:      "Image decode, resize and encode duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status", "format"},
	)

	inferenceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inference_requests_total",
			Help:      "Requests sent to the inference service",
		},
		[]string{"endpoint", "code"},
	)

	inferenceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_request_duration_seconds",
			Help:      "Round trip to the inference service in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	scanCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_cycles_total",
			Help:      "Capture cycles by outcome",
		},
		[]string{"outcome"},
	)

	historySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_entries",
			Help:      "Entries currently held in the diagnosis history",
		},
	)
)

func HttpRequestsTotal(method, path, code string) {
	httpRequestsTotal.With(prometheus.Labels{
		"method": method,
		"path":   path,
		"code":   code,
	}).Inc()
}

func HttpRequestDuration(method, path string, duration time.Duration) {
	httpRequestDuration.With(prometheus.Labels{
		"method": method,
		"path":   path,
	}).Observe(duration.Seconds())
}

func ImageNormalizeTotal(status, format string) {
	imageNormalizeTotal.With(prometheus.Labels{
		"status": status,
		"format": format,
	}).Inc()
}

func ImageNormalizeDuration(status, format string, duration time.Duration) {
	imageNormalizeDuration.With(prometheus.Labels{
		"status": status,
		"format": format,
	}).Observe(duration.Seconds())
}

// InferenceRequest records one call; code is "error" on transport failure.
func InferenceRequest(endpoint, code string, duration time.Duration) {
	inferenceRequestsTotal.With(prometheus.Labels{
		"endpoint": endpoint,
		"code":     code,
	}).Inc()
	inferenceRequestDuration.With(prometheus.Labels{
		"endpoint": endpoint,
	}).Observe(duration.Seconds())
}

func ScanCycle(outcome string) {
	scanCyclesTotal.With(prometheus.Labels{"outcome": outcome}).Inc()
}

func HistorySize(n int) {
	historySize.Set(float64(n))
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := &statusResponseWriter{w, http.StatusOK}
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		duration := time.Since(start)
		HttpRequestsTotal(r.Method, path, strconv.Itoa(ww.status))
		HttpRequestDuration(r.Method, path, duration)
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach Flush on the underlying writer.
func (w *statusResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
