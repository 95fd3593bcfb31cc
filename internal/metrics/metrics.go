package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "attendance", Name: "http_requests_total", Help: "HTTP requests by method and status",
	}, []string{"method", "status"})
	RequestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "attendance", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	})
	BulkRowsImported = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "attendance", Name: "bulk_rows_imported_total", Help: "Attendance records written by CSV import",
	})
)

func init() {
	prometheus.MustRegister(RequestsTotal, RequestDuration, BulkRowsImported)
}

func Handler() http.Handler { return promhttp.Handler() }

// Middleware records request counts and latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		RequestDuration.Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
