package model

import "time"

// Solution holds the hidden expected outputs for a challenge, one per test
// case and positionally corresponding. It is stored apart from Challenge so
// expected outputs can never leak into a challenge read response. Immutable
// after creation; its lifecycle is tied 1:1 to the owning challenge.
type Solution struct {
	ID            string        `json:"id"`
	TestSolutions []interface{} `json:"testsolutions"`
	CreatedAt     time.Time     `json:"created_at"`
}
