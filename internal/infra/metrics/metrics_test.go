//go:build unit

package metrics_test

import (
	"testing"

	"rental-booking/internal/infra/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.IncQuote("admin", true)
	m.IncQuote("admin", true)
	m.IncAvailabilityCheck(false)
	m.IncValidationFailures(map[string]string{"pickupTime": "x", "pickupLocation": "y"})
	m.IncSubmission("public", metrics.OutcomeConflict)
	m.AddPurged(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.QuotesTotal.WithLabelValues("admin", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AvailabilityChecksTotal.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationFailuresTotal.WithLabelValues("pickupTime")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues("public", metrics.OutcomeConflict)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.IdempotencyKeysPurged))
}
