package leave

import (
	"math"
	"time"
)

// CalculateHours converts a leave span into billable leave hours. One lunch
// hour is deducted per full 24-hour span, plus one more when the remaining
// partial day runs longer than 4 hours.
func CalculateHours(start time.Time, end time.Time) float64 {
	if !end.After(start) {
		return 0
	}

	rawHours := end.Sub(start).Hours()
	fullDays := math.Floor(rawHours / 24)
	remainder := rawHours - fullDays*24

	deduction := fullDays
	if remainder > 4 {
		deduction++
	}

	hours := rawHours - deduction
	if hours <= 0 {
		return 0
	}
	return math.Round(hours*100) / 100
}
