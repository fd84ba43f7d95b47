package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsed(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"zero", 0, "0 minutes ago"},
		{"one minute", time.Minute, "1 minute ago"},
		{"under the hour boundary", 59 * time.Minute, "59 minutes ago"},
		{"exactly one hour", 60 * time.Minute, "1 hour ago"},
		{"under the day boundary", 23*time.Hour + 59*time.Minute, "23 hours ago"},
		{"one day", 24 * time.Hour, "1 day ago"},
		{"under the month boundary", 29 * 24 * time.Hour, "29 days ago"},
		{"exactly thirty days", 30 * 24 * time.Hour, "1 month ago"},
		{"eleven months", 11 * 30 * 24 * time.Hour, "11 months ago"},
		{"one year", 365 * 24 * time.Hour, "1 year ago"},
		{"two years", 2 * 365 * 24 * time.Hour, "2 years ago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Elapsed(now.Add(-tc.age), now))
		})
	}
}

func TestElapsedFutureTimestamp(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	// Clock skew must not produce negative buckets
	assert.Equal(t, "0 minutes ago", Elapsed(now.Add(5*time.Minute), now))
}

func TestElapsedMonotonic(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	order := []string{"minute", "hour", "day", "month", "year"}
	bucketOf := func(s string) int {
		for rank, unit := range order {
			if strings.Contains(s, " "+unit+" ") || strings.Contains(s, " "+unit+"s ") {
				return rank
			}
		}
		t.Fatalf("unrecognized bucket in %q", s)
		return -1
	}

	prev := -1
	for _, age := range []time.Duration{
		time.Minute, 59 * time.Minute, time.Hour, 23 * time.Hour,
		24 * time.Hour, 29 * 24 * time.Hour, 30 * 24 * time.Hour,
		11 * 30 * 24 * time.Hour, 365 * 24 * time.Hour, 3 * 365 * 24 * time.Hour,
	} {
		rank := bucketOf(Elapsed(now.Add(-age), now))
		assert.GreaterOrEqual(t, rank, prev, "bucket regressed at age %v", age)
		prev = rank
	}
}
