package booking

import "fmt"

// PriceQuote is the price breakdown for one rental.
// TotalAmount is DailyRate * BillableDays. LatenessSurcharge is the part of
// that total caused by the lateness day and is shown separately only for display:
// BaseAmount + LatenessSurcharge == TotalAmount.
type PriceQuote struct {
	DailyRate          Money
	BillableDays       int
	BaseAmount         Money
	LatenessSurcharge  Money
	LatenessFeeApplied bool
	TotalAmount        Money
}

func QuotePrice(dailyRate Money, billing BillingResult) (PriceQuote, error) {
	if dailyRate.IsNegative() {
		return PriceQuote{}, fmt.Errorf("%w: %s", ErrNegativeRate, dailyRate)
	}

	days := max(1, billing.BillableDays)
	total := dailyRate.Times(days)

	surcharge := Money{}
	if billing.LatenessFeeApplied {
		surcharge = dailyRate
	}

	return PriceQuote{
		DailyRate:          dailyRate,
		BillableDays:       days,
		BaseAmount:         total.Sub(surcharge),
		LatenessSurcharge:  surcharge,
		LatenessFeeApplied: billing.LatenessFeeApplied,
		TotalAmount:        total,
	}, nil
}

// Quote is everything a price preview shows for one window.
type Quote struct {
	Window  TimeWindow
	Billing BillingResult
	Price   PriceQuote
}

type PriceCalculator interface {
	Quote(dailyRate Money, window TimeWindow) (Quote, error)
}

type DefaultPriceCalculator struct {
	LatenessThresholdMinutes int
}

func NewDefaultPriceCalculator(policy Policy) *DefaultPriceCalculator {
	return &DefaultPriceCalculator{
		LatenessThresholdMinutes: policy.LatenessThresholdMinutes,
	}
}

func (pc *DefaultPriceCalculator) Quote(dailyRate Money, window TimeWindow) (Quote, error) {
	billing := ResolveBillingDays(window.DurationMinutes(), pc.LatenessThresholdMinutes)
	price, err := QuotePrice(dailyRate, billing)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Window: window, Billing: billing, Price: price}, nil
}
