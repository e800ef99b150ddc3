package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wavesplatform/gomint/pkg/errs"
)

const (
	metricsNamespace = "gomint"
	metricsSubsystem = "api"
)

var (
	metricRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Served requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	metricRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Request handling time by route pattern",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"route"},
	)

	metricLedgerRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "ledger_rejections_total",
			Help:      "Ledger operations rejected through the API by error kind",
		},
		[]string{"kind"},
	)

	metricIssueThrottled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "issue_throttled_total",
			Help:      "Issuance requests refused by the rate limiter",
		},
	)
)

func init() {
	prometheus.MustRegister(
		metricRequests,
		metricRequestDuration,
		metricLedgerRejections,
		metricIssueThrottled,
	)
}

func countLedgerRejection(t errs.ErrorType) {
	metricLedgerRejections.WithLabelValues(t.String()).Inc()
}

// routePattern names the request by the matched chi pattern so that ids and addresses do not
// multiply the series.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww, ok := w.(middleware.WrapResponseWriter)
		if !ok {
			ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		}
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := routePattern(r)
		metricRequests.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		metricRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
