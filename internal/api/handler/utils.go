package handler

import (
	"net/http"

	"github.com/jewarner57/CodingChallengeCompendium/internal/common"

	"github.com/rs/zerolog/log"
)

// respondServiceError maps a service error to its HTTP status. Server-side
// faults are logged and replaced with a generic message so internal detail
// never leaks to the client.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := common.HTTPStatusFromError(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Request failed")
		message = "internal server error"
	}
	common.RespondWithError(w, status, message)
}
