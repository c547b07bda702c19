package database

import (
	"database/sql"
	"time"

	"github.com/jewarner57/CodingChallengeCompendium/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/rs/zerolog/log"
)

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Error opening database")
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	if err = DB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	log.Info().Msg("Successfully connected to PostgreSQL database")
}

func Close() {
	if DB != nil {
		DB.Close()
		log.Info().Msg("Database connection closed")
	}
}
