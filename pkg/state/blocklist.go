// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// BlocklistKey holds the failed redemption questions as a JSON array.
const BlocklistKey = KeyPrefix + "redeemer_failed_questions"

// Blocklist is the persisted, append-only set of challenge questions that
// were answered incorrectly. Questions on the list are excluded from
// future oracle challenges. The list grows without bound; no eviction.
type Blocklist struct {
	client redis.UniversalClient
}

// NewBlocklist creates a blocklist backed by the given Redis client.
func NewBlocklist(client redis.UniversalClient) *Blocklist {
	return &Blocklist{client: client}
}

// Questions returns all blocked question texts in insertion order.
// A missing or corrupt payload is treated as an empty list.
func (b *Blocklist) Questions(ctx context.Context) ([]string, error) {
	data, err := b.client.Get(ctx, BlocklistKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blocklist: %w", err)
	}

	var questions []string
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		logrus.Warnf("corrupt blocklist payload, treating as empty: %v", err)
		return nil, nil
	}
	return questions, nil
}

// Append adds a question to the end of the blocklist and persists it.
func (b *Blocklist) Append(ctx context.Context, question string) error {
	questions, err := b.Questions(ctx)
	if err != nil {
		return err
	}
	questions = append(questions, question)

	data, err := json.Marshal(questions)
	if err != nil {
		return fmt.Errorf("failed to marshal blocklist: %w", err)
	}
	if err := b.client.Set(ctx, BlocklistKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set blocklist: %w", err)
	}

	logrus.Infof("blocklist grew to %d questions", len(questions))
	return nil
}
