package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartrental_api_requests_total",
			Help: "Total number of API requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "smartrental_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Relocation metrics
	RelocationRequestsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartrental_relocation_requests_created_total",
			Help: "Relocation requests created by house size",
		},
		[]string{"house_size"},
	)

	RelocationStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartrental_relocation_status_changes_total",
			Help: "Relocation status writes by target status",
		},
		[]string{"status"},
	)

	// Defaulter metrics
	DefaulterScans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartrental_defaulter_scans_total",
			Help: "Defaulter scans by outcome (early, ok, failed)",
		},
		[]string{"outcome"},
	)

	DefaultersFound = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "smartrental_defaulters_per_scan",
			Help:    "Number of defaulters returned by a scan",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	RemindersSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smartrental_reminders_sent_total",
			Help: "Rent reminder SMS handed to the notifier",
		},
	)

	// Notification metrics
	NotificationFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartrental_notification_failures_total",
			Help: "Notification deliveries that failed and were dropped",
		},
		[]string{"channel"},
	)

	PaymentsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "smartrental_payments_recorded_total",
			Help: "Rent payments recorded",
		},
	)

	// Maintenance and visit metrics
	MaintenanceRequestsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartrental_maintenance_requests_created_total",
			Help: "Maintenance requests filed by priority",
		},
		[]string{"priority"},
	)

	VisitResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartrental_visit_responses_total",
			Help: "Visit requests answered by outcome",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		APIRequestsTotal,
		APIRequestDuration,
		RelocationRequestsCreated,
		RelocationStatusChanges,
		DefaulterScans,
		DefaultersFound,
		RemindersSent,
		NotificationFailures,
		PaymentsRecorded,
		MaintenanceRequestsCreated,
		VisitResponses,
	)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and latency per route.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			route := c.Path()
			APIRequestsTotal.WithLabelValues(c.Request().Method, route, strconv.Itoa(status)).Inc()
			APIRequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
