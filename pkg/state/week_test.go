// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"testing"
	"time"
)

func TestCurrentWeek(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{
			name: "mid-year week",
			date: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			want: 10,
		},
		{
			name: "monday starts a new week",
			date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			want: 10,
		},
		{
			name: "sunday closes the week",
			date: time.Date(2025, 3, 9, 23, 59, 0, 0, time.UTC),
			want: 10,
		},
		{
			name: "late december belongs to week 1 of next ISO year",
			date: time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentWeek(tt.date); got != tt.want {
				t.Errorf("CurrentWeek(%v) = %d, expected %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestIsStale(t *testing.T) {
	now := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC) // week 10

	if IsStale(WeekState{WeekNumber: 10}, now) {
		t.Error("current week should not be stale")
	}
	if !IsStale(WeekState{WeekNumber: 9}, now) {
		t.Error("previous week should be stale")
	}
	if !IsStale(WeekState{WeekNumber: 11}, now) {
		t.Error("a future week number should also be stale")
	}
}
