package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobsite",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jobsite",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jobsite",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Billing metrics
	webhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobsite",
			Subsystem: "billing",
			Name:      "webhook_events_total",
			Help:      "Total number of processor webhook events handled",
		},
		[]string{"type", "status"},
	)

	subscriptionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobsite",
			Subsystem: "billing",
			Name:      "subscriptions_created_total",
			Help:      "Total number of subscriptions created against the processor",
		},
		[]string{"plan"},
	)

	// Accounting metrics
	accountingRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobsite",
			Subsystem: "accounting",
			Name:      "token_refresh_total",
			Help:      "Total number of accounting token refresh attempts",
		},
		[]string{"status"},
	)

	accountingSyncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobsite",
			Subsystem: "accounting",
			Name:      "sync_total",
			Help:      "Total number of records pushed to the accounting platform",
		},
		[]string{"kind", "status"},
	)

	// Portal metrics
	portalLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobsite",
			Subsystem: "portal",
			Name:      "logins_total",
			Help:      "Total number of client portal login attempts",
		},
		[]string{"status"},
	)

	// Trial metrics
	trialsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jobsite",
			Subsystem: "trial",
			Name:      "active_count",
			Help:      "Number of accounts currently inside the trial window",
		},
	)

	trialsExpiringSoon = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jobsite",
			Subsystem: "trial",
			Name:      "expiring_soon_count",
			Help:      "Number of trials expiring within three days",
		},
	)

	// PDF metrics
	reportsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "jobsite",
			Subsystem: "report",
			Name:      "generated_total",
			Help:      "Total number of PDF progress reports generated",
		},
	)

	updateRequestTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jobsite",
			Subsystem: "update_request",
			Name:      "transitions_total",
			Help:      "Total number of update request status changes",
		},
		[]string{"status"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordWebhookEvent records a processed webhook event
func RecordWebhookEvent(eventType, status string) {
	webhookEventsTotal.WithLabelValues(eventType, status).Inc()
}

// RecordSubscriptionCreated records a newly created subscription
func RecordSubscriptionCreated(plan string) {
	subscriptionsCreatedTotal.WithLabelValues(plan).Inc()
}

// RecordAccountingRefresh records a token refresh attempt
func RecordAccountingRefresh(status string) {
	accountingRefreshTotal.WithLabelValues(status).Inc()
}

// RecordAccountingSync records a push to the accounting platform
func RecordAccountingSync(kind, status string) {
	accountingSyncTotal.WithLabelValues(kind, status).Inc()
}

// RecordPortalLogin records a client portal login attempt
func RecordPortalLogin(status string) {
	portalLoginsTotal.WithLabelValues(status).Inc()
}

// SetActiveTrials sets the gauge for accounts inside the trial window
func SetActiveTrials(count float64) {
	trialsActive.Set(count)
}

// SetTrialsExpiringSoon sets the gauge for trials about to lapse
func SetTrialsExpiringSoon(count float64) {
	trialsExpiringSoon.Set(count)
}

// RecordReportGenerated records a generated PDF report
func RecordReportGenerated() {
	reportsGeneratedTotal.Inc()
}

// RecordUpdateRequestTransition records an update request status change
func RecordUpdateRequestTransition(status string) {
	updateRequestTransitionsTotal.WithLabelValues(status).Inc()
}
