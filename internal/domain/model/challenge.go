package model

import "time"

type Challenge struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Difficulty  int           `json:"difficulty"`
	Description string        `json:"description"`
	Hint        *string       `json:"hint,omitempty"`
	TestCases   []interface{} `json:"testcases"` // visible to clients
	SolutionID  string        `json:"-"`         // expected outputs live in a separate record, never serialized here
	AuthorID    string        `json:"author_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}
