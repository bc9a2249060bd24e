//go:build unit

package booking_test

import (
	"testing"

	"rental-booking/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var moneyComparer = cmp.Comparer(func(a, b booking.Money) bool { return a.Cents() == b.Cents() })

func TestQuotePrice(t *testing.T) {
	t.Run("rate times billable days", func(t *testing.T) {
		rate := booking.NewMoney(8500)
		got, err := booking.QuotePrice(rate, booking.BillingResult{FullDayBlocks: 3, BillableDays: 3})
		require.NoError(t, err)

		assert.Equal(t, int64(25500), got.TotalAmount.Cents())
		assert.Equal(t, "255.00", got.TotalAmount.String())
		assert.Equal(t, got.TotalAmount, got.BaseAmount)
		assert.True(t, got.LatenessSurcharge.IsZero())
	})

	t.Run("lateness day is shown but not added twice", func(t *testing.T) {
		rate := booking.NewMoney(8500)
		billing := booking.ResolveBillingDays(3000, booking.DefaultLatenessThresholdMinutes)
		got, err := booking.QuotePrice(rate, billing)
		require.NoError(t, err)

		want := booking.PriceQuote{
			DailyRate:          rate,
			BillableDays:       3,
			BaseAmount:         booking.NewMoney(17000),
			LatenessSurcharge:  booking.NewMoney(8500),
			LatenessFeeApplied: true,
			TotalAmount:        booking.NewMoney(25500),
		}
		if diff := cmp.Diff(want, got, moneyComparer); diff != "" {
			t.Errorf("PriceQuote mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, got.TotalAmount, got.BaseAmount.Add(got.LatenessSurcharge))
	})

	t.Run("fractional rate keeps cents exact", func(t *testing.T) {
		rate, err := booking.ParseMoney("33.33")
		require.NoError(t, err)
		got, err := booking.QuotePrice(rate, booking.BillingResult{BillableDays: 3})
		require.NoError(t, err)
		assert.Equal(t, "99.99", got.TotalAmount.String())
	})

	t.Run("zero rate", func(t *testing.T) {
		got, err := booking.QuotePrice(booking.NewMoney(0), booking.BillingResult{BillableDays: 2})
		require.NoError(t, err)
		assert.True(t, got.TotalAmount.IsZero())
	})

	t.Run("negative rate rejected", func(t *testing.T) {
		_, err := booking.QuotePrice(booking.NewMoney(-1), booking.BillingResult{BillableDays: 1})
		require.ErrorIs(t, err, booking.ErrNegativeRate)
	})

	t.Run("deterministic end to end", func(t *testing.T) {
		calc := booking.NewDefaultPriceCalculator(booking.DefaultPolicy())
		w, err := booking.NewTimeWindow("2024-06-01", "08:00", "2024-06-03", "10:00")
		require.NoError(t, err)

		first, err := calc.Quote(booking.NewMoney(8500), w)
		require.NoError(t, err)
		for range 5 {
			again, err := calc.Quote(booking.NewMoney(8500), w)
			require.NoError(t, err)
			assert.Equal(t, first.Price.TotalAmount, again.Price.TotalAmount)
		}
		assert.Equal(t, 3, first.Billing.BillableDays)
	})
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		err   bool
	}{
		{in: "85", cents: 8500},
		{in: "85.5", cents: 8550},
		{in: "85.50", cents: 8550},
		{in: "0.05", cents: 5},
		{in: " 120.00 ", cents: 12000},
		{in: "-10", cents: -1000},
		{in: "85.505", err: true},
		{in: "", err: true},
		{in: "abc", err: true},
		{in: ".50", err: true},
		{in: "1.2.3", err: true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := booking.ParseMoney(c.in)
			if c.err {
				require.ErrorIs(t, err, booking.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.cents, got.Cents())
		})
	}
}

func TestMoneyFromFloat(t *testing.T) {
	m, err := booking.MoneyFromFloat(85.505)
	require.NoError(t, err)
	assert.Equal(t, int64(8551), m.Cents())

	m, err = booking.MoneyFromFloat(19.99)
	require.NoError(t, err)
	assert.Equal(t, "19.99", m.String())
}
