package service

import (
	"context"
	"errors"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type LeaderboardService struct {
	rdb      *redis.Client
	userRepo repository.UserRepository
	key      string
}

func NewLeaderboardService(rdb *redis.Client, userRepo repository.UserRepository, key string) *LeaderboardService {
	return &LeaderboardService{rdb: rdb, userRepo: userRepo, key: key}
}

// GetLeaderboard returns the top solvers by solve count, read from the
// redis sorted set the worker maintains.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	members, err := s.rdb.ZRevRangeWithScores(ctx, s.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, common.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]model.LeaderboardEntry, 0, len(members))
	for i, member := range members {
		userID, _ := member.Member.(string)
		entry := model.LeaderboardEntry{
			Rank:             i + 1,
			UserID:           userID,
			ChallengesSolved: int(member.Score),
		}
		user, err := s.userRepo.FindByID(ctx, userID)
		if err == nil {
			entry.Email = user.Email
		} else if !errors.Is(err, common.ErrNotFound) {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to resolve leaderboard user")
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
