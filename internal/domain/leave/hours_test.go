package leave

import (
	"testing"
	"time"

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
			name:     "nine hour workday deducts one lunch hour",
			start:    "2025-01-01 08:00:00",
			end:      "2025-01-01 17:00:00",
			expected: 8.0,
		},
		{
			name:     "four hour half day has no deduction",
			start:    "2025-01-01 08:00:00",
			end:      "2025-01-01 12:00:00",
			expected: 4.0,
		},
		{
			name:     "just over four hours deducts lunch",
			start:    "2025-01-01 08:00:00",
			end:      "2025-01-01 12:30:00",
			expected: 3.5,
		},
		{
			name:     "full day plus long remainder deducts two lunches",
			start:    "2025-01-01 08:00:00",
			end:      "2025-01-02 17:00:00",
			expected: 31.0,
		},
		{
			name:     "full day plus short remainder deducts one lunch",
			start:    "2025-01-01 08:00:00",
			end:      "2025-01-02 10:00:00",
			expected: 25.0,
		},
		{
			name:     "zero span yields zero",
			start:    "2025-01-01 08:00:00",
			end:      "2025-01-01 08:00:00",
			expected: 0,
		},
		{
			name:     "end before start yields zero",
			start:    "2025-01-01 17:00:00",
			end:      "2025-01-01 08:00:00",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := time.Parse("2006-01-02 15:04:05", tt.start)
			assert.NoError(t, err)
			end, err := time.Parse("2006-01-02 15:04:05", tt.end)
			assert.NoError(t, err)

			assert.Equal(t, tt.expected, CalculateHours(start, end))
		})
	}
}
