package attendance

import (
	"math"
	"time"
)

// ComputeHours derives working and overtime hours for an attendance record.
// It is pure: callers persist the result themselves.
//
// With no check-out the session is still open and both results are nil.
// Otherwise worked = max(checkOut - checkIn - breakDuration, 0) and
// overtime = max(worked - standardHours, 0). A check-out before the
// check-in (clock skew, bad input) clamps to zero; it is a data-quality
// condition, not an error. Results are rounded half-up to two decimals.
func ComputeHours(checkIn time.Time, checkOut *time.Time, breakDuration time.Duration, standardHours float64) (workingHours, overtimeHours *float64) {
	if checkOut == nil {
		return nil, nil
	}

	span := checkOut.Sub(checkIn) - breakDuration
	if span < 0 {
		span = 0
	}

	worked := span.Hours()
	overtime := worked - standardHours
	if overtime < 0 {
		overtime = 0
	}

	w := round2(worked)
	o := round2(overtime)
	return &w, &o
}

// round2 rounds half-up to two decimal places. Inputs are never negative
// here, so half-away-from-zero and half-up coincide.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
