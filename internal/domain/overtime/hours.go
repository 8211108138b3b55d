package overtime

import (
	"math"
	"time"
)

// CalculateHours converts two clock times into an overtime hour count. A
// shift crossing midnight reads the end time as next-day, so 23:00 to 01:00
// is two hours, not minus twenty-two.
func CalculateHours(startClock string, endClock string) (float64, error) {
	start, err := time.Parse("15:04", startClock)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse("15:04", endClock)
	if err != nil {
		return 0, err
	}

	minutes := end.Sub(start).Minutes()
	if minutes < 0 {
		minutes += 24 * 60
	}

	return math.Round(minutes/60*100) / 100, nil
}
