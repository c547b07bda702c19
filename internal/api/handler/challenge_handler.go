package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jewarner57/CodingChallengeCompendium/internal/api/middleware"
	"github.com/jewarner57/CodingChallengeCompendium/internal/app/service"
	"github.com/jewarner57/CodingChallengeCompendium/internal/common"

	"github.com/go-chi/chi/v5"
)

type ChallengeHandler struct {
	challengeService *service.ChallengeService
	verdictService   *service.VerdictService
}

func NewChallengeHandler(cs *service.ChallengeService, vs *service.VerdictService) *ChallengeHandler {
	return &ChallengeHandler{challengeService: cs, verdictService: vs}
}

func (h *ChallengeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listChallenges)
	r.Get("/{challengeID}", h.getChallenge)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/", h.createChallenge)
		authed.Put("/{challengeID}", h.updateChallenge)
		authed.Delete("/{challengeID}", h.deleteChallenge)
		authed.Post("/{challengeID}/solve", h.solveChallenge)
	})
}

func (h *ChallengeHandler) listChallenges(w http.ResponseWriter, r *http.Request) {
	nameQuery := r.URL.Query().Get("q")
	difficultyQuery := r.URL.Query().Get("difficulty")

	challenges, err := h.challengeService.ListChallenges(r.Context(), nameQuery, difficultyQuery)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) getChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challengeService.GetChallenge(r.Context(), chi.URLParam(r, "challengeID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) createChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	challenge, err := h.challengeService.CreateChallenge(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"challenge": challenge})
}

func (h *ChallengeHandler) updateChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	challenge, err := h.challengeService.UpdateChallenge(r.Context(), userID, chi.URLParam(r, "challengeID"), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"challenge": challenge})
}

func (h *ChallengeHandler) deleteChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	challengeID := chi.URLParam(r, "challengeID")
	if err := h.challengeService.DeleteChallenge(r.Context(), userID, challengeID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Successfully deleted.",
		"_id":     challengeID,
	})
}

// solveChallenge verifies the attempt and, on success, records the solve
// against the caller. A failed verdict is still a 200; non-2xx statuses are
// reserved for requests that never produced a verdict.
func (h *ChallengeHandler) solveChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var body struct {
		Attempt json.RawMessage `json:"attempt"`
	}
	// An empty or malformed body is treated as a structurally invalid
	// attempt by the verifier, not as a transport error.
	_ = json.NewDecoder(r.Body).Decode(&body)

	verdict, err := h.verdictService.Verify(r.Context(), chi.URLParam(r, "challengeID"), body.Attempt)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if verdict.Success {
		if err := h.verdictService.RecordSolve(r.Context(), userID, chi.URLParam(r, "challengeID")); err != nil {
			respondServiceError(w, r, err)
			return
		}
	}
	common.RespondWithJSON(w, http.StatusOK, verdict)
}
