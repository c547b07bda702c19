package handler

import (
	"net/http"
	"strconv"

	"github.com/jewarner57/CodingChallengeCompendium/internal/app/service"
	"github.com/jewarner57/CodingChallengeCompendium/internal/common"

	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(ls *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getLeaderboard)
}

func (h *LeaderboardHandler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.leaderboardService.GetLeaderboard(r.Context(), limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}
