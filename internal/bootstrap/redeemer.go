// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/sirupsen/logrus"

	"github.com/nocturnelabs/arbiter-service/pkg/redemption"
	"github.com/nocturnelabs/arbiter-service/pkg/service"
	"github.com/nocturnelabs/arbiter-service/pkg/state"
)

// InitRedeemer builds the redemption controller on top of the oracle,
// the weekly state store and the persistent question blocklist.
func InitRedeemer(oracle service.Oracle, store *state.WeekStore, blocklist *state.Blocklist) *redemption.Controller {
	controller := redemption.NewController(oracle, store, blocklist)
	logrus.Info("initialized redeemer")
	return controller
}
