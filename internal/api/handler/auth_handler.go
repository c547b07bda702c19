package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jewarner57/CodingChallengeCompendium/internal/app/service"
	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/common/security"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sign-up", h.signup)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	security.SetSessionCookie(w, resp.Token)
	common.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"user": resp.User})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		if common.HTTPStatusFromError(err) == http.StatusUnauthorized {
			common.RespondWithError(w, http.StatusUnauthorized, "Wrong Email or Password")
			return
		}
		respondServiceError(w, r, err)
		return
	}

	security.SetSessionCookie(w, resp.Token)
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Login Successful"})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	security.ClearSessionCookie(w)
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logout Successful"})
}
