// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"errors"
	"strings"
)

// ErrNoJSONObject indicates the oracle response contained no JSON object.
var ErrNoJSONObject = errors.New("no JSON object found in response")

// ExtractJSONObject pulls the first balanced {...} span out of raw model
// output. Markdown code fences are stripped first, so both bare JSON and
// fenced JSON survive. The scan is string-aware: braces inside quoted
// values do not affect the balance.
func ExtractJSONObject(text string) (string, error) {
	text = stripCodeFences(text)

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", ErrNoJSONObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", ErrNoJSONObject
}

// stripCodeFences removes ```json / ``` wrapper markers while keeping the
// fenced content.
func stripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}
