package mock

import (
	"context"

	"github.com/nocturnelabs/arbiter-service/pkg/service"
)

// Oracle is a mock implementation of service.Oracle for testing
type Oracle struct {
	// GenerateChallengeFunc is called when GenerateChallenge is invoked
	GenerateChallengeFunc func(ctx context.Context, excludeQuestions []string) (*service.Challenge, error)

	// VerifyAnswerFunc is called when VerifyAnswer is invoked
	VerifyAnswerFunc func(ctx context.Context, question, correctAnswer, userAnswer string) (bool, error)

	// Default data
	DefaultChallenge *service.Challenge
	DefaultVerdict   bool
	DefaultError     error

	// Call tracking
	GenerateChallengeCalls []GenerateChallengeCall
	VerifyAnswerCalls      []VerifyAnswerCall
}

// GenerateChallengeCall tracks parameters for GenerateChallenge calls
type GenerateChallengeCall struct {
	ExcludeQuestions []string
}

// VerifyAnswerCall tracks parameters for VerifyAnswer calls
type VerifyAnswerCall struct {
	Question      string
	CorrectAnswer string
	UserAnswer    string
}

// NewOracle creates a new mock Oracle with defaults
func NewOracle() *Oracle {
	return &Oracle{
		DefaultChallenge: &service.Challenge{
			Question: "What is 25 + 15 * 2?",
			Answer:   "55",
		},
		DefaultVerdict: true,
	}
}

// GenerateChallenge returns the configured challenge or error.
func (o *Oracle) GenerateChallenge(ctx context.Context, excludeQuestions []string) (*service.Challenge, error) {
	o.GenerateChallengeCalls = append(o.GenerateChallengeCalls, GenerateChallengeCall{
		ExcludeQuestions: append([]string(nil), excludeQuestions...),
	})

	if o.GenerateChallengeFunc != nil {
		return o.GenerateChallengeFunc(ctx, excludeQuestions)
	}
	if o.DefaultError != nil {
		return nil, o.DefaultError
	}
	return o.DefaultChallenge, nil
}

// VerifyAnswer returns the configured verdict or error.
func (o *Oracle) VerifyAnswer(ctx context.Context, question, correctAnswer, userAnswer string) (bool, error) {
	o.VerifyAnswerCalls = append(o.VerifyAnswerCalls, VerifyAnswerCall{
		Question:      question,
		CorrectAnswer: correctAnswer,
		UserAnswer:    userAnswer,
	})

	if o.VerifyAnswerFunc != nil {
		return o.VerifyAnswerFunc(ctx, question, correctAnswer, userAnswer)
	}
	if o.DefaultError != nil {
		return false, o.DefaultError
	}
	return o.DefaultVerdict, nil
}
