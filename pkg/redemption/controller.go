// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

// Package redemption implements the challenge-based early quota reset.
// A user who has exhausted the weekly quota can answer an oracle-issued
// question; a correct answer resets the win count, a wrong answer burns
// the question forever.
package redemption

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nocturnelabs/arbiter-service/pkg/metrics"
	"github.com/nocturnelabs/arbiter-service/pkg/service"
	"github.com/nocturnelabs/arbiter-service/pkg/state"
)

// ErrNoPendingChallenge is returned when an answer arrives without a
// summoned challenge.
var ErrNoPendingChallenge = errors.New("no challenge pending")

// Status is the verdict on a submitted answer.
type Status int

const (
	StatusIncorrect Status = iota
	StatusCorrect
)

func (s Status) String() string {
	if s == StatusCorrect {
		return "correct"
	}
	return "incorrect"
}

// FailureRecord is one failed attempt, kept in the session-scoped,
// user-clearable archive. Unlike the persisted blocklist it carries the
// correct answer for display.
type FailureRecord struct {
	Question      string `json:"question"`
	CorrectAnswer string `json:"answer"`
	UserAnswer    string `json:"user_answer"`
}

// Controller runs the redemption workflow. At most one challenge is
// pending at a time per session; summoning again replaces it.
type Controller struct {
	mu sync.Mutex

	oracle    service.Oracle
	store     *state.WeekStore
	blocklist *state.Blocklist

	pending *service.Challenge
	archive []FailureRecord
}

// NewController creates a redemption controller.
func NewController(oracle service.Oracle, store *state.WeekStore, blocklist *state.Blocklist) *Controller {
	return &Controller{oracle: oracle, store: store, blocklist: blocklist}
}

// Summon requests a fresh challenge from the oracle, excluding every
// question on the persisted blocklist, and holds it pending an answer.
// Only the question text is exposed; the answer stays server-side.
// On failure nothing is persisted and no challenge is pending.
func (c *Controller) Summon(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	exclude, err := c.blocklist.Questions(ctx)
	if err != nil {
		return "", err
	}

	challenge, err := c.oracle.GenerateChallenge(ctx, exclude)
	if err != nil {
		c.pending = nil
		return "", fmt.Errorf("failed to summon challenge: %w", err)
	}

	c.pending = challenge
	logrus.Infof("challenge summoned with %d excluded questions", len(exclude))
	return challenge.Question, nil
}

// Submit judges the user's answer against the pending challenge.
//
// Correct resets the weekly win count to zero and discards the challenge.
// Incorrect leaves the quota untouched, appends the question to the
// persisted blocklist so it is never reissued, and records the attempt in
// the session archive. An oracle failure abandons the pending attempt;
// the user must summon again.
func (c *Controller) Submit(ctx context.Context, userAnswer string) (Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return StatusIncorrect, ErrNoPendingChallenge
	}
	challenge := c.pending

	correct, err := c.oracle.VerifyAnswer(ctx, challenge.Question, challenge.Answer, userAnswer)
	if err != nil {
		c.pending = nil
		metrics.RedemptionsTotal.WithLabelValues("error").Inc()
		return StatusIncorrect, fmt.Errorf("failed to verify answer: %w", err)
	}

	if correct {
		if err := c.store.ResetWins(ctx); err != nil {
			return StatusIncorrect, err
		}
		c.pending = nil
		metrics.RedemptionsTotal.WithLabelValues("correct").Inc()
		logrus.Info("redemption accepted, wins reset to 0")
		return StatusCorrect, nil
	}

	if err := c.blocklist.Append(ctx, challenge.Question); err != nil {
		return StatusIncorrect, err
	}
	c.archive = append([]FailureRecord{{
		Question:      challenge.Question,
		CorrectAnswer: challenge.Answer,
		UserAnswer:    userAnswer,
	}}, c.archive...)
	c.pending = nil
	metrics.RedemptionsTotal.WithLabelValues("incorrect").Inc()
	logrus.Infof("redemption denied, question burned: %q", challenge.Question)
	return StatusIncorrect, nil
}

// PendingQuestion returns the question text of the pending challenge, if any.
func (c *Controller) PendingQuestion() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return "", false
	}
	return c.pending.Question, true
}

// Archive returns a copy of the failure archive, newest first.
func (c *Controller) Archive() []FailureRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]FailureRecord(nil), c.archive...)
}

// ClearArchive empties the failure archive. The persisted blocklist is
// unaffected.
func (c *Controller) ClearArchive() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.archive = nil
}
