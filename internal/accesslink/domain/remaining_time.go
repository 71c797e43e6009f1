package domain

import "time"

// RemainingTime is the decomposed time left until an access link deadline,
// intended for countdown display. Callers re-invoke the calculation
// periodically; it is not itself a timer.
type RemainingTime struct {
	Expired bool `json:"expired"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
}

// GetRemainingTime computes the time left until the given deadline, decomposed
// into whole hours, minutes and seconds (floor at each step, no rounding up).
// A deadline at or before now yields the zero, expired result.
func GetRemainingTime(expiresAt time.Time) RemainingTime {
	return remainingBetween(expiresAt, time.Now().UTC())
}

func remainingBetween(expiresAt, now time.Time) RemainingTime {
	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return RemainingTime{Expired: true}
	}

	hours := int(diff / time.Hour)
	diff -= time.Duration(hours) * time.Hour
	minutes := int(diff / time.Minute)
	diff -= time.Duration(minutes) * time.Minute
	seconds := int(diff / time.Second)

	return RemainingTime{
		Hours:   hours,
		Minutes: minutes,
		Seconds: seconds,
	}
}
