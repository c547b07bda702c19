package queue

import (
	"context"

	"github.com/jewarner57/CodingChallengeCompendium/internal/platform/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		log.Fatal().Err(err).Msg("Could not connect to Redis")
	}
	log.Info().Msg("Successfully connected to Redis")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		log.Info().Msg("Redis connection closed")
	}
}
