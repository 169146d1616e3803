package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	invitationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_invitations_total",
			Help: "Invitations created and resolved, by outcome",
		},
		[]string{"outcome"},
	)
	taskStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskflow_task_status_changes_total",
			Help: "Task status transitions",
		},
		[]string{"from", "to"},
	)
)

// PrometheusMiddleware records request duration. The route label is the chi
// pattern so ids do not explode cardinality.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		httpRequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Observe(duration)
	})
}

// RecordInvitationOutcome counts created, accepted and declined invitations.
func RecordInvitationOutcome(outcome string) {
	invitationOutcomes.WithLabelValues(outcome).Inc()
}

// RecordTaskStatusChange counts a move between columns. No-op moves are ignored.
func RecordTaskStatusChange(from, to string) {
	if from == to {
		return
	}
	taskStatusChanges.WithLabelValues(from, to).Inc()
}
