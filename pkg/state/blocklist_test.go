// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"testing"
)

func TestBlocklist_EmptyByDefault(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	bl := NewBlocklist(client)
	questions, err := bl.Questions(context.Background())
	if err != nil {
		t.Fatalf("Questions() error = %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("Questions() = %v, expected empty", questions)
	}
}

func TestBlocklist_AppendPreservesOrder(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	bl := NewBlocklist(client)

	for _, q := range []string{"What is 2+2?", "Riddle me this", "What is 2+2?"} {
		if err := bl.Append(ctx, q); err != nil {
			t.Fatalf("Append(%q) error = %v", q, err)
		}
	}

	questions, err := bl.Questions(ctx)
	if err != nil {
		t.Fatalf("Questions() error = %v", err)
	}
	// Append-only sequence: duplicates are kept, order is insertion order.
	want := []string{"What is 2+2?", "Riddle me this", "What is 2+2?"}
	if len(questions) != len(want) {
		t.Fatalf("Questions() len = %d, expected %d", len(questions), len(want))
	}
	for i := range want {
		if questions[i] != want[i] {
			t.Errorf("Questions()[%d] = %q, expected %q", i, questions[i], want[i])
		}
	}
}

func TestBlocklist_CorruptPayload(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	client.Set(ctx, BlocklistKey, "][", 0)

	bl := NewBlocklist(client)
	questions, err := bl.Questions(ctx)
	if err != nil {
		t.Fatalf("Questions() error = %v, expected corrupt payload to read as empty", err)
	}
	if len(questions) != 0 {
		t.Errorf("Questions() = %v, expected empty", questions)
	}

	// Appending after corruption starts a fresh list.
	if err := bl.Append(ctx, "fresh question"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	questions, _ = bl.Questions(ctx)
	if len(questions) != 1 || questions[0] != "fresh question" {
		t.Errorf("Questions() = %v, expected [fresh question]", questions)
	}
}
