package model

import (
	"encoding/json"
	"time"
)

// Verdict is the structured result of verifying an attempt. FailedOn is the
// index of the first failing test case and is omitted entirely on success.
type Verdict struct {
	Success  bool   `json:"success"`
	FailedOn *int   `json:"failedOn,omitempty"`
	Message  string `json:"message,omitempty"`
}

// SolveEvent is the queue payload emitted when a user solves a challenge for
// the first time.
type SolveEvent struct {
	UserID      string    `json:"user_id"`
	ChallengeID string    `json:"challenge_id"`
	SolvedAt    time.Time `json:"solved_at"`
}

func (e SolveEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
