// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package service

import "context"

// Oracle is the external question-generation and verification collaborator.
// Implementations are expected to be slow (network calls) and fallible;
// callers surface failures to the user without retrying.
type Oracle interface {
	// GenerateChallenge produces a new challenge, asking the oracle to
	// exclude the given question texts. Exclusion is best-effort on the
	// oracle side; there is no hard guarantee against non-compliance.
	GenerateChallenge(ctx context.Context, excludeQuestions []string) (*Challenge, error)

	// VerifyAnswer judges whether userAnswer is equivalent to
	// correctAnswer for the given question. The equivalence is lenient
	// (formatting and number-vs-words differences are tolerated); the
	// judgment is delegated entirely to the oracle.
	VerifyAnswer(ctx context.Context, question, correctAnswer, userAnswer string) (bool, error)
}
