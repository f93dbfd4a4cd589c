package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Workout mutation labels.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_api",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout_api",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route pattern and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	workoutMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_api",
		Subsystem: "workouts",
		Name:      "mutations_total",
		Help:      "Successful workout mutations by operation.",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, workoutMutations)
}

// RecordWorkoutMutation counts a successful create/update/delete.
func RecordWorkoutMutation(op string) {
	workoutMutations.WithLabelValues(op).Inc()
}

// Instrument records request count and latency under the matched chi route
// pattern, so ids in paths do not explode label cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
