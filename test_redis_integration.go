// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

//go:build integration
// +build integration

package main

import (
	"context"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/nocturnelabs/arbiter-service/pkg/state"
)

// This is a manual integration test for Redis operations
// Run this with: go run -tags integration test_redis_integration.go
// Requires: Redis running on localhost:6379

func main() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.Infof("Starting Redis integration test...")

	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}

	store := state.NewWeekStore(client, nil)
	blocklist := state.NewBlocklist(client)

	// Test 1: Load week state (creates a fresh record on first run)
	logrus.Infof("=== Test 1: Load week state ===")
	week, err := store.Load(ctx)
	if err != nil {
		logrus.Fatalf("Failed to load week state: %v", err)
	}
	logrus.Infof("week=%d wins=%d", week.WeekNumber, week.WinCount)

	// Test 2: Save an incremented win count and reload
	logrus.Infof("=== Test 2: Save and reload ===")
	week.WinCount++
	if err := store.Save(ctx, week); err != nil {
		logrus.Fatalf("Failed to save week state: %v", err)
	}
	reloaded, err := store.Load(ctx)
	if err != nil {
		logrus.Fatalf("Failed to reload week state: %v", err)
	}
	if reloaded.WinCount != week.WinCount {
		logrus.Fatalf("Win count mismatch: saved %d, got %d", week.WinCount, reloaded.WinCount)
	}
	logrus.Infof("reloaded week=%d wins=%d", reloaded.WeekNumber, reloaded.WinCount)

	// Test 3: Reset wins
	logrus.Infof("=== Test 3: Reset wins ===")
	if err := store.ResetWins(ctx); err != nil {
		logrus.Fatalf("Failed to reset wins: %v", err)
	}
	afterReset, err := store.Load(ctx)
	if err != nil {
		logrus.Fatalf("Failed to load after reset: %v", err)
	}
	if afterReset.WinCount != 0 {
		logrus.Fatalf("Expected win count 0 after reset, got %d", afterReset.WinCount)
	}
	logrus.Infof("wins reset, week preserved as %d", afterReset.WeekNumber)

	// Test 4: Blocklist append and read back
	logrus.Infof("=== Test 4: Blocklist ===")
	if err := blocklist.Append(ctx, "integration-test-question"); err != nil {
		logrus.Fatalf("Failed to append to blocklist: %v", err)
	}
	questions, err := blocklist.Questions(ctx)
	if err != nil {
		logrus.Fatalf("Failed to read blocklist: %v", err)
	}
	logrus.Infof("blocklist holds %d questions", len(questions))

	logrus.Infof("All Redis integration tests passed")
}
