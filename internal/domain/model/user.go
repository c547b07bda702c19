package model

import "time"

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Not exposed
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Derived relations, populated on reads.
	CreatedChallenges []string `json:"created_challenges,omitempty"` // authored, in creation order
	SolvedChallenges  []string `json:"solved_challenges,omitempty"`  // set semantics, insertion order
}
