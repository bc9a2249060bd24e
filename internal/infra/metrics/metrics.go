package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking_engine"

// Submission outcomes.
const (
	OutcomeCreated  = "created"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeReplayed = "replayed"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the Prometheus collectors of the booking engine.
type Metrics struct {
	QuotesTotal             *prometheus.CounterVec
	AvailabilityChecksTotal *prometheus.CounterVec
	ValidationFailuresTotal *prometheus.CounterVec
	SubmissionsTotal        *prometheus.CounterVec
	BackendRequestDuration  *prometheus.HistogramVec
	IdempotencyKeysPurged   prometheus.Counter
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		QuotesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "quotes_total",
				Help:      "Total number of price quotes computed",
			},
			[]string{"channel", "lateness_fee"},
		),

		AvailabilityChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "availability_checks_total",
				Help:      "Total number of advisory availability checks",
			},
			[]string{"result"},
		),

		ValidationFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_failures_total",
				Help:      "Total number of field errors returned by booking validation",
			},
			[]string{"field"},
		),

		SubmissionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Total number of booking submissions by outcome",
			},
			[]string{"channel", "outcome"},
		),

		BackendRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_request_duration_seconds",
				Help:      "Latency of rental backend calls",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2, 5},
			},
			[]string{"operation", "status"},
		),

		IdempotencyKeysPurged: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "idempotency_keys_purged_total",
				Help:      "Total number of expired idempotency keys deleted",
			},
		),
	}
}

func (m *Metrics) IncQuote(channel string, latenessFee bool) {
	fee := "false"
	if latenessFee {
		fee = "true"
	}
	m.QuotesTotal.WithLabelValues(channel, fee).Inc()
}

func (m *Metrics) IncAvailabilityCheck(available bool) {
	result := "conflict"
	if available {
		result = "available"
	}
	m.AvailabilityChecksTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncValidationFailures(fieldErrors map[string]string) {
	for field := range fieldErrors {
		m.ValidationFailuresTotal.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) IncSubmission(channel, outcome string) {
	m.SubmissionsTotal.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) ObserveBackendRequest(operation, status string, seconds float64) {
	m.BackendRequestDuration.WithLabelValues(operation, status).Observe(seconds)
}

func (m *Metrics) AddPurged(count int64) {
	m.IdempotencyKeysPurged.Add(float64(count))
}
