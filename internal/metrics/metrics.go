// Package metrics holds Prometheus instruments for the contact service.  All
// collectors are registered with the global registry, so importing this
// package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Submission results used as the "result" label.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
)

var (
	FieldChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_field_changes_total",
			Help: "Cumulative number of live field-change events, by field.",
		}, []string{"field"})

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Cumulative number of submit attempts, by result.",
		}, []string{"result"})

	ValidationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_validation_errors_total",
			Help: "Cumulative number of field errors reported on rejected submits.",
		}, []string{"field"})

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contact_sessions_active",
			Help: "Number of visitor form states currently held in memory.",
		})

	CSRFFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_csrf_failures_total",
			Help: "Cumulative number of POSTs rejected for a bad CSRF token.",
		})
)

func init() {
	prometheus.MustRegister(
		FieldChangesTotal,
		SubmissionsTotal,
		ValidationErrorsTotal,
		ActiveSessions,
		CSRFFailuresTotal,
	)
}
