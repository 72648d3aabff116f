package scheduling

import "time"

// LateCancelWindowStart returns the start of the rolling window over which
// a tier's late-cancellation tolerance is counted. Strikes older than
// twelve months age out rather than counting against the patient forever.
func LateCancelWindowStart(now time.Time) time.Time {
	return now.AddDate(-1, 0, 0)
}

// ExceedsLateCancelTolerance reports whether recentCount late
// cancellations inside the rolling window exhaust the tier's allowance.
// Every late cancellation is recorded on the patient's history regardless;
// the tolerance only decides whether the compliance score is recalculated
// immediately.
func ExceedsLateCancelTolerance(tier ComplianceTier, recentCount int) (bool, error) {
	policy, err := PolicyForTier(tier)
	if err != nil {
		return false, err
	}
	return recentCount > policy.LateCancelTolerance, nil
}
