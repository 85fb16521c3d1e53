// internal/api/response.go
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/powerplayhq/powerplay/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response body")
	}
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps domain errors onto HTTP statuses: rule violations to
// 422 with the user-facing message, missing records to 404, anything
// else to 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: verr.Message, Field: verr.Field})
		return
	}
	if isNotFound(err) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
		return
	}

	log.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
}

func isNotFound(err error) bool {
	for _, sentinel := range []error{
		sql.ErrNoRows,
		models.ErrLeagueNotFound,
		models.ErrTeamNotFound,
		models.ErrPlayerNotFound,
		models.ErrGameNotFound,
		models.ErrTournamentNotFound,
		models.ErrLineNotFound,
		models.ErrGoalNotFound,
		models.ErrPenaltyNotFound,
		models.ErrNominationNotFound,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}
