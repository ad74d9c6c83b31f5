package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// LeadSteps counts lead form submissions per step and outcome.
	LeadSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_steps_total",
			Help: "Lead form submissions by step and result",
		},
		[]string{"step", "result"},
	)

	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "File uploads by result",
		},
		[]string{"result"},
	)

	// SideChannelFailures counts best-effort calls (CRM mirror, email, conversion) that failed.
	SideChannelFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "side_channel_failures_total",
			Help: "Failed best-effort calls by channel",
		},
		[]string{"channel"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		LeadSteps,
		UploadsTotal,
		SideChannelFailures,
	)
}

func RecordRequest(method, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, status).Inc()
	RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func RecordLeadStep(step, result string) {
	LeadSteps.WithLabelValues(step, result).Inc()
}

func RecordUpload(result string) {
	UploadsTotal.WithLabelValues(result).Inc()
}

func RecordSideChannelFailure(channel string) {
	SideChannelFailures.WithLabelValues(channel).Inc()
}
