package service

import (
	"context"
	"database/sql"
	"strconv"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	solutionRepo  repository.SolutionRepository
	db            *sql.DB // for the challenge+solution transactional pair
}

func NewChallengeService(
	challengeRepo repository.ChallengeRepository,
	solutionRepo repository.SolutionRepository,
	db *sql.DB,
) *ChallengeService {
	return &ChallengeService{
		challengeRepo: challengeRepo,
		solutionRepo:  solutionRepo,
		db:            db,
	}
}

type CreateChallengeRequest struct {
	Name          string        `json:"name"`
	Difficulty    int           `json:"difficulty"`
	Description   string        `json:"description"`
	Hint          *string       `json:"hint,omitempty"`
	TestCases     []interface{} `json:"testcases"`
	TestSolutions []interface{} `json:"testsolutions"`
}

type UpdateChallengeRequest struct {
	Name        *string        `json:"name,omitempty"`
	Difficulty  *int           `json:"difficulty,omitempty"`
	Description *string        `json:"description,omitempty"`
	Hint        *string        `json:"hint,omitempty"`
	TestCases   *[]interface{} `json:"testcases,omitempty"`
}

// CreateChallenge stores a challenge and its solution as a transactional
// pair. Expected outputs go into a separate record so they are never
// serialized into a challenge response.
func (s *ChallengeService) CreateChallenge(ctx context.Context, userID string, req CreateChallengeRequest) (*model.Challenge, error) {
	if req.Name == "" || req.Description == "" || len(req.TestCases) == 0 || len(req.TestSolutions) == 0 {
		return nil, common.Errorf("missing required fields for challenge creation: %w", common.ErrBadRequest)
	}
	if len(req.TestCases) != len(req.TestSolutions) {
		return nil, common.Errorf("testcases and testsolutions must have the same length: %w", common.ErrValidation)
	}

	solution := &model.Solution{
		ID:            uuid.NewString(),
		TestSolutions: req.TestSolutions,
	}
	challenge := &model.Challenge{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Difficulty:  req.Difficulty,
		Description: req.Description,
		Hint:        req.Hint,
		TestCases:   req.TestCases,
		SolutionID:  solution.ID,
		AuthorID:    userID,
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	if tx != nil {
		defer tx.Rollback()
	}

	if err := s.solutionRepo.Create(ctx, tx, solution); err != nil {
		return nil, common.Errorf("failed to create solution: %w", err)
	}
	if err := s.challengeRepo.Create(ctx, tx, challenge); err != nil {
		return nil, common.Errorf("failed to create challenge: %w", err)
	}
	if tx != nil {
		if err := tx.Commit(); err != nil {
			return nil, common.Errorf("failed to commit transaction: %w", err)
		}
	}

	return challenge, nil
}

func (s *ChallengeService) GetChallenge(ctx context.Context, id string) (*model.Challenge, error) {
	return s.challengeRepo.FindByID(ctx, id)
}

// ListChallenges builds the filter from the raw query parameters. A
// non-numeric difficulty is a client error, never a silently-empty match.
func (s *ChallengeService) ListChallenges(ctx context.Context, nameQuery, difficultyQuery string) ([]model.Challenge, error) {
	filter := repository.ChallengeFilter{Name: nameQuery}
	if difficultyQuery != "" {
		difficulty, err := strconv.Atoi(difficultyQuery)
		if err != nil {
			return nil, common.Errorf("difficulty must be a number: %w", common.ErrValidation)
		}
		filter.Difficulty = &difficulty
	}
	return s.challengeRepo.List(ctx, filter)
}

func (s *ChallengeService) UpdateChallenge(ctx context.Context, callerID, id string, req UpdateChallengeRequest) (*model.Challenge, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(challenge.AuthorID, callerID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		challenge.Name = *req.Name
		challenge.Slug = slug.Make(*req.Name)
	}
	if req.Difficulty != nil {
		challenge.Difficulty = *req.Difficulty
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.Hint != nil {
		challenge.Hint = req.Hint
	}
	if req.TestCases != nil {
		// The solution is immutable, so the test case count must keep
		// matching its expected-output count.
		solution, err := s.solutionRepo.FindByID(ctx, challenge.SolutionID)
		if err != nil {
			return nil, common.Errorf("solution %s for challenge %s: %w", challenge.SolutionID, challenge.ID, common.ErrIntegrity)
		}
		if len(*req.TestCases) != len(solution.TestSolutions) {
			return nil, common.Errorf("testcases must keep the same length as the stored solution: %w", common.ErrValidation)
		}
		challenge.TestCases = *req.TestCases
	}

	if err := s.challengeRepo.Update(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// DeleteChallenge removes a challenge and its solution together. Solved-set
// references held by users are weak and are intentionally left dangling.
func (s *ChallengeService) DeleteChallenge(ctx context.Context, callerID, id string) error {
	challenge, err := s.challengeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(challenge.AuthorID, callerID); err != nil {
		return err
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	if tx != nil {
		defer tx.Rollback()
	}

	if err := s.challengeRepo.Delete(ctx, tx, id); err != nil {
		return err
	}
	if err := s.solutionRepo.Delete(ctx, tx, challenge.SolutionID); err != nil {
		return err
	}
	if tx != nil {
		return tx.Commit()
	}
	return nil
}

// beginTx starts the challenge+solution transactional pair. Without a
// database handle the repositories run on their own connections.
func (s *ChallengeService) beginTx(ctx context.Context) (*sql.Tx, error) {
	if s.db == nil {
		return nil, nil
	}
	return s.db.BeginTx(ctx, nil)
}
