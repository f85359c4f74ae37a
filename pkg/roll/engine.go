// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

// Package roll implements the weekly probability-gated roll.
package roll

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nocturnelabs/arbiter-service/pkg/odds"
	"github.com/nocturnelabs/arbiter-service/pkg/random"
	"github.com/nocturnelabs/arbiter-service/pkg/state"
)

// Outcome is the result of a single roll attempt.
type Outcome int

const (
	OutcomeUnspecified Outcome = iota
	// OutcomeQuotaExceeded means the weekly win quota is already used up.
	OutcomeQuotaExceeded
	// OutcomeWeekendBlocked means rolling is disallowed today.
	OutcomeWeekendBlocked
	OutcomeLoss
	OutcomeWin
)

func (o Outcome) String() string {
	switch o {
	case OutcomeQuotaExceeded:
		return "quota_exceeded"
	case OutcomeWeekendBlocked:
		return "weekend_blocked"
	case OutcomeLoss:
		return "loss"
	case OutcomeWin:
		return "win"
	default:
		return "unspecified"
	}
}

// Engine combines the persisted weekly quota with the day-of-week odds
// table to produce a roll outcome. The engine itself is stateless; all
// persistent state lives in the week store.
type Engine struct {
	store *state.WeekStore
	rng   random.Source
	now   func() time.Time
}

// NewEngine creates a roll engine. now may be nil for time.Now.
func NewEngine(store *state.WeekStore, rng random.Source, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, rng: rng, now: now}
}

// Roll performs one roll attempt and returns the outcome together with
// the week state as of after the roll.
//
// The quota check runs before the day check: an exhausted quota reports
// OutcomeQuotaExceeded even on a weekend day. On a win the incremented
// win count is persisted before Roll returns, so any subsequent load
// observes it.
func (e *Engine) Roll(ctx context.Context) (Outcome, state.WeekState, error) {
	ws, err := e.store.Load(ctx)
	if err != nil {
		return OutcomeUnspecified, state.WeekState{}, err
	}

	if ws.Exhausted() {
		logrus.Infof("roll refused: quota exhausted (%d/%d wins in week %d)",
			ws.WinCount, state.MaxWeeklyWins, ws.WeekNumber)
		return OutcomeQuotaExceeded, ws, nil
	}

	entry, ok := odds.ForDay(e.now().Weekday())
	if !ok {
		logrus.Infof("roll refused: no odds entry for %v", e.now().Weekday())
		return OutcomeWeekendBlocked, ws, nil
	}

	// The loss probability owns the left-closed portion of [0,1), so a
	// draw of exactly 0 is a loss whenever Loss > 0.
	draw := e.rng.Float64()
	if draw < entry.Loss {
		logrus.Infof("roll lost: draw=%.4f loss=%.2f", draw, entry.Loss)
		return OutcomeLoss, ws, nil
	}

	ws.WinCount++
	if err := e.store.Save(ctx, ws); err != nil {
		return OutcomeUnspecified, state.WeekState{}, err
	}
	logrus.Infof("roll won: draw=%.4f, week %d now at %d/%d wins",
		draw, ws.WeekNumber, ws.WinCount, state.MaxWeeklyWins)
	return OutcomeWin, ws, nil
}
