// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// KeyPrefix is the prefix for all arbiter state keys
	KeyPrefix = "arbiter:"
	// WeekStateKey holds the weekly quota as a JSON blob
	WeekStateKey = KeyPrefix + "rng_week_data"
)

// WeekStore persists the weekly quota in Redis as a single JSON entry.
//
// The store is single-writer by construction: one session, one control
// thread. Two sessions open against the same Redis instance can lose
// updates to each other; that is an accepted limitation, not solved here.
type WeekStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

// NewWeekStore creates a week store backed by the given Redis client.
// now is the clock used to compute the current ISO week; pass nil for
// time.Now.
func NewWeekStore(client redis.UniversalClient, now func() time.Time) *WeekStore {
	if now == nil {
		now = time.Now
	}
	return &WeekStore{client: client, now: now}
}

// Load returns the current week state. If no state is stored, the stored
// payload is corrupt, or the stored week number differs from the current
// ISO week, a fresh zero-count state for the current week is written and
// returned instead.
func (s *WeekStore) Load(ctx context.Context) (WeekState, error) {
	fresh := WeekState{WeekNumber: CurrentWeek(s.now()), WinCount: 0}

	data, err := s.client.Get(ctx, WeekStateKey).Result()
	if err == redis.Nil {
		if err := s.Save(ctx, fresh); err != nil {
			return WeekState{}, err
		}
		return fresh, nil
	}
	if err != nil {
		return WeekState{}, fmt.Errorf("failed to get week state: %w", err)
	}

	var stored WeekState
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		// Corrupt payload is treated as absent: rebuild rather than crash.
		logrus.Warnf("corrupt week state %q, rebuilding: %v", data, err)
		if err := s.Save(ctx, fresh); err != nil {
			return WeekState{}, err
		}
		return fresh, nil
	}

	if IsStale(stored, s.now()) {
		logrus.Infof("week rollover: stored week %d superseded by week %d",
			stored.WeekNumber, fresh.WeekNumber)
		if err := s.Save(ctx, fresh); err != nil {
			return WeekState{}, err
		}
		return fresh, nil
	}

	return stored, nil
}

// Save persists the given state as the new source of truth, fully
// overwriting the prior value.
func (s *WeekStore) Save(ctx context.Context, state WeekState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal week state: %w", err)
	}
	if err := s.client.Set(ctx, WeekStateKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set week state: %w", err)
	}
	return nil
}

// ResetWins loads the current state and saves it back with the win count
// forced to zero. The week number is preserved.
func (s *WeekStore) ResetWins(ctx context.Context) error {
	state, err := s.Load(ctx)
	if err != nil {
		return err
	}
	state.WinCount = 0
	if err := s.Save(ctx, state); err != nil {
		return err
	}
	logrus.Infof("week %d win count reset to 0", state.WeekNumber)
	return nil
}
