// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// DefaultOracleModel is the Gemini model used for both oracle capabilities.
const DefaultOracleModel = "gemini-2.5-flash"

// GeminiOracle implements Oracle against the Gemini API.
//
// Challenge generation runs with the Google Search tool enabled, so the
// model cannot be forced into JSON output mode; the response text goes
// through ExtractJSONObject before parsing. Verification has no tools and
// uses the JSON response mime type directly.
type GeminiOracle struct {
	client *genai.Client
	model  string
}

// NewGeminiOracle creates an oracle backed by the Gemini API.
func NewGeminiOracle(ctx context.Context, apiKey, model string) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("oracle API key is required")
	}
	if model == "" {
		model = DefaultOracleModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiOracle{client: client, model: model}, nil
}

// GenerateChallenge asks the oracle for a fresh riddle, math problem, or
// trivia question, excluding previously burned questions.
func (o *GeminiOracle) GenerateChallenge(ctx context.Context, excludeQuestions []string) (*Challenge, error) {
	excludeText := ""
	if len(excludeQuestions) > 0 {
		excludeText = "Do NOT use these questions: " + strings.Join(excludeQuestions, " | ")
	}

	prompt := fmt.Sprintf(`Find a simple and fun riddle, an easy math operation (e.g., 25 + 15 * 2), or an easy trivia question from the internet.
It should be Easy to Medium difficulty. It can involve numbers, logic, or wordplay.
%s
Return ONLY a valid JSON object with 'question' and 'answer' properties.
Do not use markdown code blocks.`, excludeText)

	resp, err := o.client.Models.GenerateContent(ctx, o.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			// responseMimeType cannot be combined with tools
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("oracle challenge generation failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("oracle returned no text")
	}

	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("oracle returned malformed challenge: %w", err)
	}

	var challenge Challenge
	if err := json.Unmarshal([]byte(raw), &challenge); err != nil {
		return nil, fmt.Errorf("oracle returned malformed challenge: %w", err)
	}
	if challenge.Question == "" || challenge.Answer == "" {
		return nil, fmt.Errorf("oracle returned incomplete challenge: %q", raw)
	}

	logrus.Infof("oracle issued challenge (%d questions excluded)", len(excludeQuestions))
	return &challenge, nil
}

// VerifyAnswer asks the oracle whether the user's answer is conceptually
// correct. The controller trusts the single boolean in the response.
func (o *GeminiOracle) VerifyAnswer(ctx context.Context, question, correctAnswer, userAnswer string) (bool, error) {
	prompt := fmt.Sprintf(`Question: %s
Correct Answer: %s
User Answer: %s

Is the user's answer correct? It does not need to be exact, but conceptually correct.
If the answer is a number, allow for minor formatting differences (e.g. "15" vs "fifteen").
Return ONLY JSON: {"isCorrect": boolean}`, question, correctAnswer, userAnswer)

	resp, err := o.client.Models.GenerateContent(ctx, o.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return false, fmt.Errorf("oracle answer verification failed: %w", err)
	}

	text := resp.Text()
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return false, fmt.Errorf("oracle returned malformed verdict: %w", err)
	}

	var verdict struct {
		IsCorrect bool `json:"isCorrect"`
	}
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return false, fmt.Errorf("oracle returned malformed verdict: %w", err)
	}

	return verdict.IsCorrect, nil
}
