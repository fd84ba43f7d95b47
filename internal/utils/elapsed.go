package utils

import (
	"fmt"
	"time"
)

// Elapsed buckets the age of t relative to now into a human string.
// Boundaries are strictly <60 minutes, <24 hours, <30 days, <12 months,
// else years, with floor division, so 60 minutes already reads as hours
// and 30 days as months.
func Elapsed(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	minutes := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))
	months := int(diff / (24 * 30 * time.Hour))
	years := int(diff / (24 * 365 * time.Hour))

	switch {
	case minutes < 60:
		return pluralAgo(minutes, "minute")
	case hours < 24:
		return pluralAgo(hours, "hour")
	case days < 30:
		return pluralAgo(days, "day")
	case months < 12:
		return pluralAgo(months, "month")
	default:
		return pluralAgo(years, "year")
	}
}

// TimeAgo is Elapsed against the wall clock, for handlers.
func TimeAgo(t time.Time) string {
	return Elapsed(t, time.Now())
}

func pluralAgo(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
