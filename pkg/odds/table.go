// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

// Package odds holds the static day-of-week probability table for the
// arbiter roll. Saturday and Sunday carry no entry: rolling is disallowed
// on weekends.
package odds

import "time"

// Entry is the loss/win probability pair for one weekday.
// Loss + Win is always exactly 1.
type Entry struct {
	Loss float64
	Win  float64
}

// table is process-wide constant data; it is never persisted or mutated.
var table = map[time.Weekday]Entry{
	time.Monday:    {Loss: 0.80, Win: 0.20},
	time.Tuesday:   {Loss: 0.60, Win: 0.40},
	time.Wednesday: {Loss: 0.60, Win: 0.40},
	time.Thursday:  {Loss: 0.99, Win: 0.01},
	time.Friday:    {Loss: 0.80, Win: 0.20},
}

// ForDay returns the odds entry for the given weekday.
// The second return value is false on Saturday and Sunday.
func ForDay(day time.Weekday) (Entry, bool) {
	e, ok := table[day]
	return e, ok
}

// Weekdays returns the weekdays that have an entry, in Mon..Fri order.
func Weekdays() []time.Weekday {
	return []time.Weekday{
		time.Monday,
		time.Tuesday,
		time.Wednesday,
		time.Thursday,
		time.Friday,
	}
}
