package model

type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	UserID           string `json:"user_id"`
	Email            string `json:"email,omitempty"`
	ChallengesSolved int    `json:"challenges_solved"`
}
