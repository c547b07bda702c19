package service

import (
	"context"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/repository"

	"github.com/rs/zerolog/log"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateUserRequest struct {
	Email string `json:"email"`
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	created, err := s.userRepo.GetCreatedChallengeIDs(ctx, user.ID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to fetch created challenges")
	}
	solved, err := s.userRepo.GetSolvedChallengeIDs(ctx, user.ID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to fetch solved challenges")
	}

	user.CreatedChallenges = created
	user.SolvedChallenges = solved
	user.HashedPassword = ""
	return user, nil
}

// UpdateUser changes a user's email. Only the user themselves may do this.
func (s *UserService) UpdateUser(ctx context.Context, callerID, targetID string, req UpdateUserRequest) (*model.User, error) {
	if err := requireOwner(targetID, callerID); err != nil {
		return nil, err
	}
	if req.Email == "" {
		return nil, common.Errorf("email is required: %w", common.ErrBadRequest)
	}
	if err := s.userRepo.UpdateEmail(ctx, targetID, req.Email); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, targetID)
}

// DeleteUser removes the account. Authored challenges are not cascaded;
// whether they should be is an unresolved product decision.
func (s *UserService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	if err := requireOwner(targetID, callerID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, targetID)
}
