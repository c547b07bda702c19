package service

import (
	"context"
	"testing"

	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaderboardFixture(t *testing.T) (*LeaderboardService, *miniredis.Miniredis, *fakeUserRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	userRepo := newFakeUserRepo()
	return NewLeaderboardService(rdb, userRepo, "leaderboard_test"), mr, userRepo
}

func TestGetLeaderboardOrdersByScore(t *testing.T) {
	svc, mr, userRepo := newLeaderboardFixture(t)

	require.NoError(t, userRepo.Create(context.Background(), &model.User{ID: "u1", Email: "top@example.com"}))
	mr.ZAdd("leaderboard_test", 5, "u1")
	mr.ZAdd("leaderboard_test", 2, "u2")
	mr.ZAdd("leaderboard_test", 9, "u3")

	entries, err := svc.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "u3", entries[0].UserID)
	assert.Equal(t, 9, entries[0].ChallengesSolved)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, "u1", entries[1].UserID)
	assert.Equal(t, "top@example.com", entries[1].Email)

	// Users missing from the database still rank, just without an email.
	assert.Equal(t, "u2", entries[2].UserID)
	assert.Empty(t, entries[2].Email)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestGetLeaderboardClampsLimit(t *testing.T) {
	svc, mr, _ := newLeaderboardFixture(t)

	for i := 0; i < 15; i++ {
		mr.ZAdd("leaderboard_test", float64(i+1), string(rune('a'+i)))
	}

	entries, err := svc.GetLeaderboard(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 10) // defaults when the limit is unusable

	entries, err = svc.GetLeaderboard(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestGetLeaderboardEmpty(t *testing.T) {
	svc, _, _ := newLeaderboardFixture(t)

	entries, err := svc.GetLeaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
