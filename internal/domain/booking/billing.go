package booking

// DefaultLatenessThresholdMinutes is the single lateness threshold used across
// the admin and public flows.
const DefaultLatenessThresholdMinutes = 60

type BillingResult struct {
	ElapsedMinutes     int
	FullDayBlocks      int
	LatenessMinutes    int
	LatenessFeeApplied bool
	BillableDays       int
}

// ResolveBillingDays bills every full 24h block, plus one extra day when the
// remainder exceeds the threshold. At least one day is always billed.
func ResolveBillingDays(elapsedMinutes, latenessThresholdMinutes int) BillingResult {
	if elapsedMinutes < 0 {
		elapsedMinutes = 0
	}

	fullDayBlocks := elapsedMinutes / MinutesPerDay
	lateness := elapsedMinutes - fullDayBlocks*MinutesPerDay
	feeApplied := lateness > latenessThresholdMinutes

	billable := fullDayBlocks
	if feeApplied {
		billable++
	}
	billable = max(1, billable)

	return BillingResult{
		ElapsedMinutes:     elapsedMinutes,
		FullDayBlocks:      fullDayBlocks,
		LatenessMinutes:    lateness,
		LatenessFeeApplied: feeApplied,
		BillableDays:       billable,
	}
}
