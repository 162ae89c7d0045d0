package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   time.Time
		expected bool
	}{
		{
			name:     "expiry in the future",
			expiry:   now.Add(time.Hour),
			expected: false,
		},
		{
			name:     "expiry exactly now",
			expiry:   now,
			expected: true,
		},
		{
			name:     "expiry in the past",
			expiry:   now.Add(-time.Second),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsExpired(tt.expiry, now))
		})
	}
}

func TestIsExpiringSoon(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   time.Time
		expected bool
	}{
		{
			name:     "three days out",
			expiry:   now.Add(72 * time.Hour),
			expected: false,
		},
		{
			name:     "exactly 24h out",
			expiry:   now.Add(24 * time.Hour),
			expected: true,
		},
		{
			name:     "one hour out",
			expiry:   now.Add(time.Hour),
			expected: true,
		},
		{
			name:     "already expired",
			expiry:   now.Add(-time.Minute),
			expected: false,
		},
		{
			name:     "exactly now",
			expiry:   now,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsExpiringSoon(tt.expiry, now))
		})
	}
}

func TestTimeRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   time.Time
		expected Remaining
	}{
		{
			name:   "two and a half hours",
			expiry: now.Add(2*time.Hour + 30*time.Minute),
			expected: Remaining{
				Hours:          2,
				Minutes:        30,
				IsExpiringSoon: true,
			},
		},
		{
			name:   "just under an hour",
			expiry: now.Add(59*time.Minute + 59*time.Second),
			expected: Remaining{
				Hours:          0,
				Minutes:        59,
				IsExpiringSoon: true,
			},
		},
		{
			name:   "three days",
			expiry: now.Add(72 * time.Hour),
			expected: Remaining{
				Hours:   72,
				Minutes: 0,
			},
		},
		{
			name:     "expired window is zeroed",
			expiry:   now.Add(-3 * time.Hour),
			expected: Remaining{IsExpired: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TimeRemaining(tt.expiry, now))
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expiry   time.Time
		expected string
	}{
		{
			name:     "hours and minutes",
			expiry:   now.Add(26*time.Hour + 5*time.Minute),
			expected: "26h 5m left",
		},
		{
			name:     "minutes only",
			expiry:   now.Add(59 * time.Minute),
			expected: "59m left",
		},
		{
			name:     "one second before expiry",
			expiry:   now.Add(time.Second),
			expected: "0m left",
		},
		{
			name:     "expired",
			expiry:   now.Add(-time.Hour),
			expected: "Expired",
		},
		{
			name:     "expired exactly now",
			expiry:   now,
			expected: "Expired",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatRemaining(tt.expiry, now))
		})
	}
}
