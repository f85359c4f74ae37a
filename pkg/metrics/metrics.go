// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

// Package metrics defines the application-level Prometheus collectors.
// They are registered by the metrics server in internal/server.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RollsTotal counts roll attempts by outcome.
	RollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbiter_rolls_total",
			Help: "Total number of roll attempts by outcome",
		},
		[]string{"outcome"},
	)

	// RewardsGrantedTotal counts individual rewards handed out.
	RewardsGrantedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "arbiter_rewards_granted_total",
			Help: "Total number of rewards granted across all allocations",
		},
	)

	// RedemptionsTotal counts redemption attempts by result.
	RedemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arbiter_redemptions_total",
			Help: "Total number of redemption answer submissions by result",
		},
		[]string{"result"},
	)
)

// Collectors returns every application collector for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		RollsTotal,
		RewardsGrantedTotal,
		RedemptionsTotal,
	}
}
