package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	APIPort  string `env:"API_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"defaultsecret"`
	JWTExpHours int    `env:"JWT_EXPIRATION_HOURS" envDefault:"1440"` // 60 days

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"user"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"password"`
	DBName     string `env:"DB_NAME" envDefault:"challenge_compendium_db"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	SolveEventQueueName string `env:"SOLVE_EVENT_QUEUE_NAME" envDefault:"solve_events_queue"`
	LeaderboardKey      string `env:"LEADERBOARD_KEY" envDefault:"leaderboard:solves"`

	JWTKey    []byte        `env:"-"`
	JWTExp    time.Duration `env:"-"`
	DBConnStr string        `env:"-"`
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to parse environment configuration")
	}

	cfg.JWTKey = []byte(cfg.JWTSecret)
	cfg.JWTExp = time.Duration(cfg.JWTExpHours) * time.Hour
	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	AppConfig = cfg
}
