package overtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHours(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected float64
	}{
		{
			name:     "same evening shift",
			start:    "18:00",
			end:      "21:30",
			expected: 3.5,
		},
		{
			name:     "midnight rollover",
			start:    "23:00",
			end:      "01:00",
			expected: 2.0,
		},
		{
			name:     "equal times yield zero",
			start:    "20:00",
			end:      "20:00",
			expected: 0,
		},
		{
			name:     "quarter hour precision",
			start:    "19:00",
			end:      "19:45",
			expected: 0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, err := CalculateHours(tt.start, tt.end)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, hours)
		})
	}
}

func TestCalculateHoursRejectsMalformedClock(t *testing.T) {
	_, err := CalculateHours("25:00", "01:00")
	assert.Error(t, err)

	_, err = CalculateHours("23:00", "1am")
	assert.Error(t, err)
}
