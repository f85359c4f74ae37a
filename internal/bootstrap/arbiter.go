// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nocturnelabs/arbiter-service/pkg/cascade"
	"github.com/nocturnelabs/arbiter-service/pkg/random"
	"github.com/nocturnelabs/arbiter-service/pkg/reward"
	"github.com/nocturnelabs/arbiter-service/pkg/roll"
	"github.com/nocturnelabs/arbiter-service/pkg/service"
	"github.com/nocturnelabs/arbiter-service/pkg/state"
)

// InitArbiter builds the roll engine, reward allocator and cascade
// controller on top of the weekly state store.
//
// All components share one crypto-seeded random source. The wall clock
// drives both weekday odds selection and week rollover.
func InitArbiter(store *state.WeekStore, catalog *service.Catalog) *cascade.Controller {
	rng := random.New()

	engine := roll.NewEngine(store, rng, time.Now)
	allocator := reward.NewAllocator(catalog.Rewards, rng)

	logrus.Infof("initialized arbiter with %d catalog entries", allocator.CatalogSize())

	return cascade.NewController(engine, allocator, rng, time.Now)
}
