package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const structuralInvalidMessage = "an empty solution array is not valid"

// VerdictService verifies challenge attempts against their hidden expected
// outputs and records first-time solves.
type VerdictService struct {
	challengeRepo repository.ChallengeRepository
	solutionRepo  repository.SolutionRepository
	userRepo      repository.UserRepository
	rdb           *redis.Client
	queueName     string
}

func NewVerdictService(
	challengeRepo repository.ChallengeRepository,
	solutionRepo repository.SolutionRepository,
	userRepo repository.UserRepository,
	rdb *redis.Client,
	queueName string,
) *VerdictService {
	return &VerdictService{
		challengeRepo: challengeRepo,
		solutionRepo:  solutionRepo,
		userRepo:      userRepo,
		rdb:           rdb,
		queueName:     queueName,
	}
}

// Verify compares a submitted attempt against the challenge's expected
// outputs, position by position, and stops at the first mismatch. The
// comparison uses canonical JSON form: order-sensitive for nested arrays,
// key-and-value equality for nested objects. A prefix match with differing
// lengths is a failure, never a success. Verification has no side effects;
// the caller records the solve on a successful verdict.
func (s *VerdictService) Verify(ctx context.Context, challengeID string, rawAttempt json.RawMessage) (*model.Verdict, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, common.Errorf("challenge %s: %w", challengeID, err)
	}

	attempt, ok := decodeAttempt(rawAttempt)
	if !ok || (len(attempt) == 0 && len(challenge.TestCases) > 0) {
		// Structurally invalid input; the solution record is never touched.
		return failedVerdict(0, structuralInvalidMessage), nil
	}

	solution, err := s.solutionRepo.FindByID(ctx, challenge.SolutionID)
	if err != nil {
		// A challenge must never exist without its solution.
		log.Error().Err(err).
			Str("challenge_id", challenge.ID).
			Str("solution_id", challenge.SolutionID).
			Msg("Challenge references a missing solution")
		return nil, common.Errorf("solution %s for challenge %s: %w", challenge.SolutionID, challenge.ID, common.ErrIntegrity)
	}

	expected := solution.TestSolutions
	limit := len(attempt)
	if len(expected) < limit {
		limit = len(expected)
	}

	for i := 0; i < limit; i++ {
		want := canonicalJSON(expected[i])
		got := canonicalJSON(attempt[i])
		if want != got {
			return failedVerdict(i, fmt.Sprintf("expected: %s, but recieved: %s", want, got)), nil
		}
	}

	if len(attempt) != len(expected) {
		msg := fmt.Sprintf("expected %d answers, but recieved %d", len(expected), len(attempt))
		return failedVerdict(limit, msg), nil
	}

	return &model.Verdict{Success: true}, nil
}

// RecordSolve idempotently adds the challenge to the user's solved-set. The
// insert is a single atomic statement, so concurrent solves of the same
// challenge by the same user cannot produce duplicates. A first-time solve
// emits a SolveEvent for the leaderboard worker; queue failures are logged
// and never surfaced, since the database row is the authoritative record.
func (s *VerdictService) RecordSolve(ctx context.Context, userID, challengeID string) error {
	inserted, err := s.userRepo.AddSolvedChallenge(ctx, userID, challengeID)
	if err != nil {
		return common.Errorf("failed to record solve: %w", err)
	}
	if !inserted {
		return nil // already solved, no-op
	}

	event := model.SolveEvent{
		UserID:      userID,
		ChallengeID: challengeID,
		SolvedAt:    time.Now().UTC(),
	}
	payload, err := event.Marshal()
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to marshal solve event")
		return nil
	}
	if err := s.rdb.LPush(ctx, s.queueName, payload).Err(); err != nil {
		log.Error().Err(err).
			Str("user_id", userID).
			Str("challenge_id", challengeID).
			Msg("Failed to enqueue solve event")
	}
	return nil
}

// decodeAttempt reports whether the raw payload is an ordered sequence.
// Missing bodies, nulls, and non-array shapes all fail the check.
func decodeAttempt(raw json.RawMessage) ([]interface{}, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var attempt []interface{}
	if err := json.Unmarshal(raw, &attempt); err != nil {
		return nil, false
	}
	if attempt == nil {
		return nil, false
	}
	return attempt, true
}

// canonicalJSON renders a decoded JSON value in canonical textual form.
// encoding/json marshals map keys in sorted order, so byte equality of the
// rendered forms is deep structural equality.
func canonicalJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func failedVerdict(index int, message string) *model.Verdict {
	return &model.Verdict{Success: false, FailedOn: &index, Message: message}
}
