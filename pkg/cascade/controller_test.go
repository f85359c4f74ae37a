// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package cascade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/nocturnelabs/arbiter-service/pkg/reward"
	"github.com/nocturnelabs/arbiter-service/pkg/roll"
	"github.com/nocturnelabs/arbiter-service/pkg/state"
)

// scriptedRand replays fixed Float64 draws and Intn picks.
type scriptedRand struct {
	draws []float64
	di    int
	picks []int
	pi    int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.draws) == 0 {
		return 0
	}
	v := r.draws[r.di%len(r.draws)]
	r.di++
	return v
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.picks) == 0 {
		return 0
	}
	v := r.picks[r.pi%len(r.picks)] % n
	r.pi++
	return v
}

var testCatalog = []string{"Ionized Coil", "Flux Capacitor", "Drift Core"}

// monday is a weekday with a 0.20 win slice, so a draw of 0.9 wins and a
// draw of 0.1 loses.
var monday = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

type fixture struct {
	controller *Controller
	store      *state.WeekStore
	cleanup    func()
}

func setupController(t *testing.T, rollDraw float64, coinDraw float64) *fixture {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clock := func() time.Time { return monday }

	store := state.NewWeekStore(client, clock)
	engine := roll.NewEngine(store, &scriptedRand{draws: []float64{rollDraw}}, clock)
	allocator := reward.NewAllocator(testCatalog, &scriptedRand{picks: []int{0}})
	controller := NewController(engine, allocator, &scriptedRand{draws: []float64{coinDraw}}, clock)

	return &fixture{controller: controller, store: store, cleanup: func() { mr.Close() }}
}

func TestRoll_LossIsTerminal(t *testing.T) {
	f := setupController(t, 0.1, 0)
	defer f.cleanup()

	snap, err := f.controller.Roll(context.Background())
	if err != nil {
		t.Fatalf("Roll() error = %v", err)
	}
	if snap.State != StateRolled {
		t.Errorf("state = %v, expected rolled", snap.State)
	}
	if snap.LastOutcome != roll.OutcomeLoss {
		t.Errorf("outcome = %v, expected loss", snap.LastOutcome)
	}

	// Only reset is available from here.
	if _, err := f.controller.DoubleDown(context.Background(), true); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("DoubleDown() after loss error = %v, expected invalid transition", err)
	}
}

func TestRoll_WinOffersDoubleDown(t *testing.T) {
	f := setupController(t, 0.9, 0)
	defer f.cleanup()

	snap, err := f.controller.Roll(context.Background())
	if err != nil {
		t.Fatalf("Roll() error = %v", err)
	}
	if snap.State != StateDoubleDownOffered {
		t.Errorf("state = %v, expected double_down_offered", snap.State)
	}
}

func TestRoll_OnlyFromIdle(t *testing.T) {
	f := setupController(t, 0.1, 0)
	defer f.cleanup()

	f.controller.Roll(context.Background())
	if _, err := f.controller.Roll(context.Background()); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second Roll() error = %v, expected invalid transition", err)
	}
}

func TestDoubleDown_DeclineGrantsOneReward(t *testing.T) {
	f := setupController(t, 0.9, 0)
	defer f.cleanup()

	ctx := context.Background()
	f.controller.Roll(ctx)

	snap, err := f.controller.DoubleDown(ctx, false)
	if err != nil {
		t.Fatalf("DoubleDown(decline) error = %v", err)
	}
	if snap.State != StateRewardsRevealed {
		t.Errorf("state = %v, expected rewards_revealed", snap.State)
	}
	if len(snap.Rewards) != 1 {
		t.Fatalf("rewards len = %d, expected exactly 1", len(snap.Rewards))
	}
	if snap.SupplyTitle != "-- TODAY'S SUPPLY --" {
		t.Errorf("supply title = %q", snap.SupplyTitle)
	}
	if len(snap.Log) != 1 || snap.Log[0].Severity != SeverityNeutral {
		t.Errorf("log = %+v, expected one neutral entry", snap.Log)
	}
}

func TestDoubleDown_CoinNoGrantsConsolation(t *testing.T) {
	// Coin draw 0.2 < 0.5 comes up "no".
	f := setupController(t, 0.9, 0.2)
	defer f.cleanup()

	ctx := context.Background()
	f.controller.Roll(ctx)

	snap, err := f.controller.DoubleDown(ctx, true)
	if err != nil {
		t.Fatalf("DoubleDown(accept) error = %v", err)
	}
	if snap.Coin != CoinNo {
		t.Errorf("coin = %q, expected no", snap.Coin)
	}
	if snap.State != StateRewardsRevealed {
		t.Errorf("state = %v, expected rewards_revealed", snap.State)
	}
	if len(snap.Rewards) != 1 {
		t.Errorf("rewards len = %d, expected consolation of exactly 1", len(snap.Rewards))
	}
	if len(snap.Log) != 1 || snap.Log[0].Severity != SeverityError {
		t.Errorf("log = %+v, expected one error entry", snap.Log)
	}
}

func TestDoubleDown_CoinYesOffersQuantity(t *testing.T) {
	f := setupController(t, 0.9, 0.7)
	defer f.cleanup()

	ctx := context.Background()
	f.controller.Roll(ctx)

	snap, err := f.controller.DoubleDown(ctx, true)
	if err != nil {
		t.Fatalf("DoubleDown(accept) error = %v", err)
	}
	if snap.Coin != CoinYes {
		t.Errorf("coin = %q, expected yes", snap.Coin)
	}
	if snap.State != StateQuantityOffered {
		t.Errorf("state = %v, expected quantity_offered", snap.State)
	}
	if len(snap.Rewards) != 0 {
		t.Errorf("rewards len = %d, expected none before confirmation", len(snap.Rewards))
	}
}

func TestConfirmQuantity(t *testing.T) {
	f := setupController(t, 0.9, 0.7)
	defer f.cleanup()

	ctx := context.Background()
	f.controller.Roll(ctx)
	f.controller.DoubleDown(ctx, true)

	snap, err := f.controller.ConfirmQuantity(ctx, 5)
	if err != nil {
		t.Fatalf("ConfirmQuantity(5) error = %v", err)
	}
	if snap.State != StateRewardsRevealed {
		t.Errorf("state = %v, expected rewards_revealed", snap.State)
	}
	if len(snap.Rewards) != 5 {
		t.Fatalf("rewards len = %d, expected 5", len(snap.Rewards))
	}
	// The scripted allocator always picks index 0: duplicates must survive.
	for i, name := range snap.Rewards {
		if name != testCatalog[0] {
			t.Errorf("rewards[%d] = %q, expected duplicate draws to be kept", i, name)
		}
	}
	if len(snap.Log) != 1 || snap.Log[0].Severity != SeveritySuccess {
		t.Errorf("log = %+v, expected one success entry", snap.Log)
	}
}

func TestConfirmQuantity_Bounds(t *testing.T) {
	f := setupController(t, 0.9, 0.7)
	defer f.cleanup()

	ctx := context.Background()
	f.controller.Roll(ctx)
	f.controller.DoubleDown(ctx, true)

	for _, q := range []int{0, -1, 51} {
		if _, err := f.controller.ConfirmQuantity(ctx, q); !errors.Is(err, ErrQuantityOutOfRange) {
			t.Errorf("ConfirmQuantity(%d) error = %v, expected out of range", q, err)
		}
	}

	// The offer stays open after a rejected quantity.
	if snap := f.controller.Snapshot(); snap.State != StateQuantityOffered {
		t.Errorf("state = %v, expected quantity_offered", snap.State)
	}
}

func TestDeclineQuantity_RevertsToRolled(t *testing.T) {
	f := setupController(t, 0.9, 0.7)
	defer f.cleanup()

	ctx := context.Background()
	f.controller.Roll(ctx)
	f.controller.DoubleDown(ctx, true)

	snap, err := f.controller.DeclineQuantity()
	if err != nil {
		t.Fatalf("DeclineQuantity() error = %v", err)
	}
	if snap.State != StateRolled {
		t.Errorf("state = %v, expected rolled", snap.State)
	}
	if len(snap.Rewards) != 0 {
		t.Errorf("rewards len = %d, expected none", len(snap.Rewards))
	}
	// The win result remains visible.
	if snap.LastOutcome != roll.OutcomeWin || snap.Coin != CoinYes {
		t.Errorf("outcome=%v coin=%q, expected win result to remain visible", snap.LastOutcome, snap.Coin)
	}
	if len(snap.Log) != 0 {
		t.Errorf("log = %+v, expected no entries for a declined offer", snap.Log)
	}
}

func TestReset(t *testing.T) {
	f := setupController(t, 0.9, 0.7)
	defer f.cleanup()

	ctx := context.Background()
	f.controller.Roll(ctx)
	f.controller.DoubleDown(ctx, true)
	f.controller.ConfirmQuantity(ctx, 3)

	snap := f.controller.Reset()
	if snap.State != StateIdle {
		t.Errorf("state = %v, expected idle", snap.State)
	}
	if snap.LastOutcome != roll.OutcomeUnspecified || snap.Coin != CoinNone {
		t.Errorf("outcome=%v coin=%q, expected cleared", snap.LastOutcome, snap.Coin)
	}
	if len(snap.Rewards) != 0 || snap.SupplyTitle != "" {
		t.Errorf("rewards=%v title=%q, expected cleared", snap.Rewards, snap.SupplyTitle)
	}
	// The supply history survives a reset; it is cleared separately.
	if len(snap.Log) != 1 {
		t.Errorf("log len = %d, expected history to survive reset", len(snap.Log))
	}

	f.controller.ClearLog()
	if snap := f.controller.Snapshot(); len(snap.Log) != 0 {
		t.Errorf("log len = %d after ClearLog, expected 0", len(snap.Log))
	}
}

func TestRoll_QuotaExceededIsTerminal(t *testing.T) {
	f := setupController(t, 0.9, 0)
	defer f.cleanup()

	ctx := context.Background()
	if err := f.store.Save(ctx, state.WeekState{
		WeekNumber: state.CurrentWeek(monday),
		WinCount:   3,
	}); err != nil {
		t.Fatalf("failed to seed week state: %v", err)
	}

	snap, err := f.controller.Roll(ctx)
	if err != nil {
		t.Fatalf("Roll() error = %v", err)
	}
	if snap.State != StateRolled {
		t.Errorf("state = %v, expected rolled", snap.State)
	}
	if snap.LastOutcome != roll.OutcomeQuotaExceeded {
		t.Errorf("outcome = %v, expected quota_exceeded", snap.LastOutcome)
	}
}
