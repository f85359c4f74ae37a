// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package cascade

import (
	"time"

	"github.com/google/uuid"
)

// Severity tags an action-log entry for display.
type Severity string

const (
	// SeveritySuccess marks confirmed multi-quantity draws.
	SeveritySuccess Severity = "success"
	// SeverityError marks consolation draws after a failed double-down.
	SeverityError Severity = "error"
	// SeverityWarning marks degraded grants (e.g. empty catalog).
	SeverityWarning Severity = "warning"
	// SeverityNeutral marks the declined-gamble safe draw.
	SeverityNeutral Severity = "neutral"
)

// LogEntry is one human-readable record of granted rewards.
type LogEntry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
}

// ActionLog is the session-scoped supply history. It is additive and
// user-clearable, and has no effect on the quota or subsequent rolls.
// Newest entries come first.
type ActionLog struct {
	now     func() time.Time
	entries []LogEntry
}

// NewActionLog creates an empty log using the given clock.
func NewActionLog(now func() time.Time) *ActionLog {
	if now == nil {
		now = time.Now
	}
	return &ActionLog{now: now}
}

// Add prepends a new entry.
func (l *ActionLog) Add(message string, severity Severity) {
	entry := LogEntry{
		ID:       uuid.NewString(),
		Time:     l.now(),
		Message:  message,
		Severity: severity,
	}
	l.entries = append([]LogEntry{entry}, l.entries...)
}

// Entries returns a copy of the log, newest first.
func (l *ActionLog) Entries() []LogEntry {
	return append([]LogEntry(nil), l.entries...)
}

// Clear removes all entries.
func (l *ActionLog) Clear() {
	l.entries = nil
}
