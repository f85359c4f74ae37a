// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package cascade

import (
	"encoding/json"
	"fmt"
)

// State is one step of the cascade finite-state machine.
type State int

const (
	// StateIdle awaits the initial roll.
	StateIdle State = iota
	// StateRolled is terminal for the cycle: the outcome is shown and
	// only Reset is available.
	StateRolled
	// StateDoubleDownOffered follows a winning roll.
	StateDoubleDownOffered
	// StateQuantityOffered follows a won double-down coin.
	StateQuantityOffered
	// StateRewardsRevealed shows the allocated rewards.
	StateRewardsRevealed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRolled:
		return "rolled"
	case StateDoubleDownOffered:
		return "double_down_offered"
	case StateQuantityOffered:
		return "quantity_offered"
	case StateRewardsRevealed:
		return "rewards_revealed"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the state by name for API consumers.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON parses a state from its name.
func (s *State) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range []State{StateIdle, StateRolled, StateDoubleDownOffered, StateQuantityOffered, StateRewardsRevealed} {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown cascade state %q", name)
}
