package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// LeaderboardWorker consumes solve events from the redis queue and keeps the
// leaderboard sorted set plus the per-user solved-set mirror up to date. The
// authoritative solve record lives in Postgres; everything here is derived
// state that can be rebuilt.
type LeaderboardWorker struct {
	rdb            *redis.Client
	queueName      string
	leaderboardKey string
}

func NewLeaderboardWorker(rdb *redis.Client, queueName, leaderboardKey string) *LeaderboardWorker {
	return &LeaderboardWorker{
		rdb:            rdb,
		queueName:      queueName,
		leaderboardKey: leaderboardKey,
	}
}

// SolvedSetKey names the redis set mirroring a user's solved challenges.
func SolvedSetKey(userID string) string {
	return fmt.Sprintf("user:%s:solved", userID)
}

func (w *LeaderboardWorker) Start(ctx context.Context) {
	log.Info().Str("queue", w.queueName).Msg("Leaderboard worker started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Leaderboard worker stopping")
			return
		default:
			// Bounded blocking pop so cancellation is noticed within a
			// second even while the queue is empty.
			result, err := w.rdb.BRPop(ctx, time.Second, w.queueName).Result()
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Info().Msg("Leaderboard worker BRPop exiting")
					return
				}
				if errors.Is(err, redis.Nil) {
					continue
				}
				log.Error().Err(err).Str("queue", w.queueName).Msg("Failed to BRPop from solve event queue")
				time.Sleep(5 * time.Second)
				continue
			}

			// result is [queueName, value]
			if len(result) < 2 || result[1] == "" {
				log.Warn().Msg("BRPop returned an empty solve event")
				continue
			}
			w.processEvent(ctx, []byte(result[1]))
		}
	}
}

func (w *LeaderboardWorker) processEvent(ctx context.Context, payload []byte) {
	var event model.SolveEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Error().Err(err).Msg("Dropping malformed solve event")
		return
	}
	if event.UserID == "" || event.ChallengeID == "" {
		log.Warn().Msg("Dropping solve event with missing identifiers")
		return
	}

	// SADD is a set insert, so replayed events cannot inflate the mirror.
	// The score only moves when the mirror gained a member, keeping the
	// leaderboard consistent with set semantics under redelivery.
	added, err := w.rdb.SAdd(ctx, SolvedSetKey(event.UserID), event.ChallengeID).Result()
	if err != nil {
		log.Error().Err(err).Str("user_id", event.UserID).Msg("Failed to update solved-set mirror")
		return
	}
	if added == 0 {
		return // duplicate delivery
	}

	if err := w.rdb.ZIncrBy(ctx, w.leaderboardKey, 1, event.UserID).Err(); err != nil {
		log.Error().Err(err).Str("user_id", event.UserID).Msg("Failed to update leaderboard score")
		return
	}
	log.Info().
		Str("user_id", event.UserID).
		Str("challenge_id", event.ChallengeID).
		Msg("Solve event processed")
}
