// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package state

import "time"

// CurrentWeek returns the ISO-8601 week number for the given instant.
// The computation is done in UTC so every client of the same store
// agrees on the rollover moment regardless of local timezone.
func CurrentWeek(now time.Time) int {
	_, week := now.UTC().ISOWeek()
	return week
}

// IsStale reports whether a stored state belongs to a previous (or, after
// a clock correction, any other) week and must be superseded before use.
func IsStale(s WeekState, now time.Time) bool {
	return s.WeekNumber != CurrentWeek(now)
}
