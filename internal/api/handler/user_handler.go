package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jewarner57/CodingChallengeCompendium/internal/api/middleware"
	"github.com/jewarner57/CodingChallengeCompendium/internal/app/service"
	"github.com/jewarner57/CodingChallengeCompendium/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/{userID}", h.getUser)
	r.Put("/{userID}", h.updateUser)
	r.Delete("/{userID}", h.deleteUser)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), callerID, chi.URLParam(r, "userID"), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	targetID := chi.URLParam(r, "userID")
	if err := h.userService.DeleteUser(r.Context(), callerID, targetID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Successfully deleted.",
		"_id":     targetID,
	})
}
