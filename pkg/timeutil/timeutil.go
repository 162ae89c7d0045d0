package timeutil

import (
	"fmt"
	"time"
)

// ExpiringSoonWindow is the horizon within which a dare counts as "expiring soon".
const ExpiringSoonWindow = 24 * time.Hour

type Remaining struct {
	Hours          int
	Minutes        int
	IsExpired      bool
	IsExpiringSoon bool
}

func IsExpired(expiry, now time.Time) bool {
	return !expiry.After(now)
}

func IsExpiringSoon(expiry, now time.Time) bool {
	delta := expiry.Sub(now)
	return delta > 0 && delta <= ExpiringSoonWindow
}

// TimeRemaining breaks the window down to whole hours and minutes.
// An expired window comes back zeroed with IsExpired set.
func TimeRemaining(expiry, now time.Time) Remaining {
	deltaMs := expiry.Sub(now).Milliseconds()
	if deltaMs <= 0 {
		return Remaining{IsExpired: true}
	}

	return Remaining{
		Hours:          int(deltaMs / (60 * 60 * 1000)),
		Minutes:        int(deltaMs % (60 * 60 * 1000) / (60 * 1000)),
		IsExpiringSoon: IsExpiringSoon(expiry, now),
	}
}

func FormatRemaining(expiry, now time.Time) string {
	r := TimeRemaining(expiry, now)
	if r.IsExpired {
		return "Expired"
	}
	if r.Hours > 0 {
		return fmt.Sprintf("%dh %dm left", r.Hours, r.Minutes)
	}
	return fmt.Sprintf("%dm left", r.Minutes)
}
