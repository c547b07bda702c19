package api

import (
	"net/http"
	"time"

	"github.com/jewarner57/CodingChallengeCompendium/internal/api/handler"
	"github.com/jewarner57/CodingChallengeCompendium/internal/app/service"
	"github.com/jewarner57/CodingChallengeCompendium/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	challengeService *service.ChallengeService,
	verdictService *service.VerdictService,
	leaderboardService *service.LeaderboardService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // session cookie
		MaxAge:           300,
	}))

	// Verifies the token signature and puts claims in context. The session
	// cookie is the primary transport; a bearer header also works.
	r.Use(jwtauth.Verify(security.TokenAuth, security.TokenFromSessionCookie, jwtauth.TokenFromHeader))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService)
	authHandler.RegisterRoutes(r)

	userHandler := handler.NewUserHandler(userService)
	r.Route("/users", userHandler.RegisterRoutes)

	challengeHandler := handler.NewChallengeHandler(challengeService, verdictService)
	r.Route("/challenges", challengeHandler.RegisterRoutes)

	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	r.Route("/leaderboard", leaderboardHandler.RegisterRoutes)

	return r
}
