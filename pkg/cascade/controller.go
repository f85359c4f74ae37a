// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

// Package cascade owns the multi-step flow that follows a roll: the
// double-down offer, the quantity offer, and the reward reveal. The flow
// is an explicit finite-state machine with a closed set of states, so a
// state like "rewards revealed without a roll" is unrepresentable.
package cascade

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nocturnelabs/arbiter-service/pkg/metrics"
	"github.com/nocturnelabs/arbiter-service/pkg/random"
	"github.com/nocturnelabs/arbiter-service/pkg/reward"
	"github.com/nocturnelabs/arbiter-service/pkg/roll"
)

const (
	// MinQuantity and MaxQuantity bound the confirmed multi-draw size.
	MinQuantity = 1
	MaxQuantity = 50
)

// ErrInvalidTransition is returned when a user action is not legal in the
// current cascade state.
var ErrInvalidTransition = fmt.Errorf("action not allowed in current cascade state")

// ErrQuantityOutOfRange is returned when the confirmed quantity falls
// outside [MinQuantity, MaxQuantity].
var ErrQuantityOutOfRange = fmt.Errorf("quantity must be between %d and %d", MinQuantity, MaxQuantity)

// CoinResult is the outcome of the 50/50 double-down coin.
type CoinResult string

const (
	CoinNone CoinResult = ""
	CoinYes  CoinResult = "yes"
	CoinNo   CoinResult = "no"
)

// Controller drives one user session through the cascade. Session state
// is held in memory only; it does not survive a restart. Persistent state
// (the weekly quota) lives behind the roll engine.
type Controller struct {
	mu sync.Mutex

	engine    *roll.Engine
	allocator *reward.Allocator
	rng       random.Source
	now       func() time.Time

	state       State
	lastOutcome roll.Outcome
	coin        CoinResult
	rewards     []string
	supplyTitle string
	log         *ActionLog
}

// NewController creates a cascade controller in the Idle state.
// now may be nil for time.Now.
func NewController(engine *roll.Engine, allocator *reward.Allocator, rng random.Source, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{
		engine:    engine,
		allocator: allocator,
		rng:       rng,
		now:       now,
		state:     StateIdle,
		log:       NewActionLog(now),
	}
}

// Roll performs the initial roll. Legal only in the Idle state.
// A win moves the cascade to the double-down offer; every other outcome
// lands in the terminal Rolled state, from which only Reset is available.
func (c *Controller) Roll(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return c.snapshotLocked(), ErrInvalidTransition
	}

	outcome, _, err := c.engine.Roll(ctx)
	if err != nil {
		return c.snapshotLocked(), err
	}
	metrics.RollsTotal.WithLabelValues(outcome.String()).Inc()

	c.lastOutcome = outcome
	if outcome == roll.OutcomeWin {
		c.state = StateDoubleDownOffered
	} else {
		c.state = StateRolled
	}

	return c.snapshotLocked(), nil
}

// DoubleDown answers the double-down offer. Legal only while the offer is
// open.
//
// Declining is the safe win: exactly one reward is granted immediately.
// Accepting flips the 50/50 coin; "no" grants one consolation reward,
// "yes" opens the quantity offer.
func (c *Controller) DoubleDown(ctx context.Context, accept bool) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateDoubleDownOffered {
		return c.snapshotLocked(), ErrInvalidTransition
	}

	if !accept {
		c.grantLocked(1, "-- TODAY'S SUPPLY --", SeverityNeutral)
		return c.snapshotLocked(), nil
	}

	if c.rng.Float64() < 0.5 {
		c.coin = CoinNo
		logrus.Info("double-down coin came up no, granting consolation")
		c.grantLocked(1, "-- CONSOLATION SUPPLY (1) --", SeverityError)
		return c.snapshotLocked(), nil
	}

	c.coin = CoinYes
	c.state = StateQuantityOffered
	return c.snapshotLocked(), nil
}

// ConfirmQuantity closes the quantity offer with a chosen draw size.
// Legal only while the quantity offer is open.
func (c *Controller) ConfirmQuantity(ctx context.Context, quantity int) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateQuantityOffered {
		return c.snapshotLocked(), ErrInvalidTransition
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return c.snapshotLocked(), ErrQuantityOutOfRange
	}

	c.grantLocked(quantity, fmt.Sprintf("-- ACQUIRED ASSETS (%d) --", quantity), SeveritySuccess)
	return c.snapshotLocked(), nil
}

// DeclineQuantity backs out of the quantity offer. The double-down win
// stays visible but no rewards are granted; the cascade returns to the
// terminal Rolled state.
func (c *Controller) DeclineQuantity() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateQuantityOffered {
		return c.snapshotLocked(), ErrInvalidTransition
	}

	c.state = StateRolled
	return c.snapshotLocked(), nil
}

// Reset returns the cascade to Idle, clearing the last outcome, the coin
// result, and the revealed rewards. The action log survives a reset; it
// has its own ClearLog.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateIdle
	c.lastOutcome = roll.OutcomeUnspecified
	c.coin = CoinNone
	c.rewards = nil
	c.supplyTitle = ""

	return c.snapshotLocked()
}

// ClearLog empties the session action log.
func (c *Controller) ClearLog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Clear()
}

// Snapshot returns a copy of the session state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// grantLocked allocates n rewards, records them in the action log, and
// moves the cascade to the reveal state. Caller holds c.mu.
func (c *Controller) grantLocked(n int, title string, severity Severity) {
	rewards := c.allocator.Allocate(n)
	metrics.RewardsGrantedTotal.Add(float64(len(rewards)))

	c.rewards = rewards
	c.supplyTitle = title
	c.state = StateRewardsRevealed

	if len(rewards) > 0 {
		c.log.Add(strings.Join(rewards, ", "), severity)
	} else {
		c.log.Add("no rewards available", SeverityWarning)
	}

	logrus.Infof("granted %d reward(s): %s", len(rewards), title)
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:       c.state,
		LastOutcome: c.lastOutcome,
		Coin:        c.coin,
		Rewards:     append([]string(nil), c.rewards...),
		SupplyTitle: c.supplyTitle,
		Log:         c.log.Entries(),
	}
}

// Snapshot is an immutable view of the cascade session.
type Snapshot struct {
	State       State        `json:"state"`
	LastOutcome roll.Outcome `json:"-"`
	Coin        CoinResult   `json:"coin,omitempty"`
	Rewards     []string     `json:"rewards"`
	SupplyTitle string       `json:"supply_title,omitempty"`
	Log         []LogEntry   `json:"log"`
}
