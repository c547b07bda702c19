package middleware

import (
	"context"
	"net/http"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"
	"github.com/jewarner57/CodingChallengeCompendium/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const UserIDCtxKey contextKey = "userID"

// Authenticator rejects requests without a valid, signature-verified session
// token and puts the caller's user id in the request context. The token
// itself has already been cryptographically verified by jwtauth.Verify at
// the router level; a token that failed verification never reaches here with
// claims attached.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext returns the authenticated caller's id.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
