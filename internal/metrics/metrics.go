package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess        = "success"
	OutcomeFieldErrors    = "field_errors"
	OutcomeServerError    = "server_error"
	OutcomeTransportError = "transport_error"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_form_submissions_total",
			Help: "Total number of credit form submissions by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "credit_form_submission_duration_seconds",
			Help:    "Duration of scoring requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	DuplicateSubmitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_form_duplicate_submits_total",
			Help: "Submissions refused because one was already in flight",
		},
	)

	OpenSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "credit_form_sessions_open",
			Help: "Number of form sessions currently held in memory",
		},
	)

	ReceiptsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "credit_form_receipts_failed_total",
			Help: "Score receipt emails that could not be sent",
		},
	)
)
