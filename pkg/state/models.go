// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package state

// MaxWeeklyWins is the hard cap on winning rolls per ISO week.
const MaxWeeklyWins = 3

// WeekState is the persisted weekly quota for the arbiter.
// WeekNumber is the ISO-8601 week number (Thursday-anchored, UTC).
// A stored state whose WeekNumber differs from the current week is
// stale and is replaced with a fresh zero-count state on load.
type WeekState struct {
	WeekNumber int `json:"week_number"`
	WinCount   int `json:"yes_count"`
}

// Exhausted reports whether the weekly win quota has been used up.
func (s WeekState) Exhausted() bool {
	return s.WinCount >= MaxWeeklyWins
}
