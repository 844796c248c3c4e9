// Package observability holds the Prometheus collectors shared across the service.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registrationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Subsystem: "registrations",
		Name:      "accepted_total",
		Help:      "Signups and unregistrations applied to the directory, labeled by event type and activity.",
	}, []string{"event_type", "activity"})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Subsystem: "registrations",
		Name:      "rejected_total",
		Help:      "Signup and unregister requests rejected by the directory, labeled by reason.",
	}, []string{"event_type", "reason"})

	rosterGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "activity_signup",
		Subsystem: "directory",
		Name:      "participants",
		Help:      "Current number of participants registered per activity.",
	}, []string{"activity"})

	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_signup",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, labeled by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "activity_signup",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests by method and route pattern.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(registrationsCounter, rejectedCounter, rosterGauge, requestCounter, requestDuration)
}

// RecordRegistration counts an applied signup or unregistration.
func RecordRegistration(eventType, activity string) {
	registrationsCounter.WithLabelValues(eventType, activity).Inc()
}

// RecordRegistrationRejected counts a request the directory refused.
func RecordRegistrationRejected(eventType, reason string) {
	rejectedCounter.WithLabelValues(eventType, reason).Inc()
}

// SetRosterSize publishes the participant count for an activity.
func SetRosterSize(activity string, count int) {
	rosterGauge.WithLabelValues(activity).Set(float64(count))
}

// ResetRosterSizes drops every per-activity participant gauge.
func ResetRosterSizes() {
	rosterGauge.Reset()
}

// RecordRequest observes a completed HTTP request.
func RecordRequest(method, route string, status int, elapsed time.Duration) {
	requestCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
