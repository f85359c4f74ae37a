// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package service

// Challenge is one redemption challenge produced by the oracle.
// It is ephemeral: held only for the duration of a single attempt.
type Challenge struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
