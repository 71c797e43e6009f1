package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetRemainingTime(t *testing.T) {
	t.Run("decomposes a future deadline", func(t *testing.T) {
		// Half a second of slack absorbs test execution time between the
		// deadline computation and the Now() call inside GetRemainingTime.
		deadline := time.Now().UTC().Add(time.Hour + 30*time.Minute + 45*time.Second + 500*time.Millisecond)

		remaining := GetRemainingTime(deadline)

		assert.False(t, remaining.Expired)
		assert.Equal(t, 1, remaining.Hours)
		assert.Equal(t, 30, remaining.Minutes)
		assert.Equal(t, 45, remaining.Seconds)
	})

	t.Run("past deadline is expired with zero components", func(t *testing.T) {
		remaining := GetRemainingTime(time.Now().UTC().Add(-time.Minute))

		assert.True(t, remaining.Expired)
		assert.Equal(t, 0, remaining.Hours)
		assert.Equal(t, 0, remaining.Minutes)
		assert.Equal(t, 0, remaining.Seconds)
	})
}

func TestRemainingBetween(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want RemainingTime
	}{
		{
			"hours minutes seconds",
			now.Add(2*time.Hour + 5*time.Minute + 30*time.Second),
			RemainingTime{Hours: 2, Minutes: 5, Seconds: 30},
		},
		{
			"floors sub-second remainders",
			now.Add(59*time.Second + 999*time.Millisecond),
			RemainingTime{Seconds: 59},
		},
		{
			"spans beyond a day without normalizing",
			now.Add(50 * time.Hour),
			RemainingTime{Hours: 50},
		},
		{
			"exactly now is expired",
			now,
			RemainingTime{Expired: true},
		},
		{
			"past is expired",
			now.Add(-time.Second),
			RemainingTime{Expired: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remainingBetween(tt.at, now))
		})
	}
}
