package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jewarner57/CodingChallengeCompendium/internal/api"
	"github.com/jewarner57/CodingChallengeCompendium/internal/app/service"
	"github.com/jewarner57/CodingChallengeCompendium/internal/app/worker"
	"github.com/jewarner57/CodingChallengeCompendium/internal/common/security"
	"github.com/jewarner57/CodingChallengeCompendium/internal/domain/repository"
	"github.com/jewarner57/CodingChallengeCompendium/internal/platform/config"
	"github.com/jewarner57/CodingChallengeCompendium/internal/platform/database"
	"github.com/jewarner57/CodingChallengeCompendium/internal/platform/queue"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Configuration
	config.Load()

	level, err := zerolog.ParseLevel(config.AppConfig.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Info().Msg("Configuration loaded")

	// 2. Initialize JWT
	security.InitJWT(config.AppConfig.JWTKey, config.AppConfig.JWTExp)

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	queue.ConnectRedis()
	defer queue.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	challengeRepo := repository.NewPgChallengeRepository(database.DB)
	solutionRepo := repository.NewPgSolutionRepository(database.DB)

	// 6. Initialize Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	challengeService := service.NewChallengeService(challengeRepo, solutionRepo, database.DB)
	verdictService := service.NewVerdictService(challengeRepo, solutionRepo, userRepo, queue.RDB, config.AppConfig.SolveEventQueueName)
	leaderboardService := service.NewLeaderboardService(queue.RDB, userRepo, config.AppConfig.LeaderboardKey)

	// 7. Start the leaderboard worker
	leaderboardWorker := worker.NewLeaderboardWorker(queue.RDB, config.AppConfig.SolveEventQueueName, config.AppConfig.LeaderboardKey)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	workerDone := make(chan struct{})
	go func() {
		leaderboardWorker.Start(workerCtx)
		close(workerDone)
	}()

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, userService, challengeService, verdictService, leaderboardService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", config.AppConfig.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Could not start server")
		}
	}()

	<-stop

	log.Info().Msg("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	// The worker's bounded pop notices the cancelled context within a second.
	<-workerDone

	log.Info().Msg("Server and worker stopped gracefully")
}
