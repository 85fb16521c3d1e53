// internal/api/games.go
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/powerplayhq/powerplay/internal/games"
	"github.com/powerplayhq/powerplay/internal/models"
)

type createGameRequest struct {
	StartsAt     string `json:"starts_at"`
	HomeTeamID   int64  `json:"home_team_id"`
	AwayTeamID   int64  `json:"away_team_id"`
	ScoreHome    int64  `json:"score_home"`
	ScoreAway    int64  `json:"score_away"`
	StadiumID    int64  `json:"stadium_id"`
	Competition  string `json:"competition"`
	LeagueID     int64  `json:"league_id"`
	TournamentID int64  `json:"tournament_id"`
}

func (h *Handlers) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		writeError(w, r, models.InvalidField("starts_at", "Neplatné datum a čas."))
		return
	}

	game, err := h.Games.CreateGame(r.Context(), games.CreateGameInput{
		StartsAt:     startsAt,
		HomeTeamID:   req.HomeTeamID,
		AwayTeamID:   req.AwayTeamID,
		ScoreHome:    req.ScoreHome,
		ScoreAway:    req.ScoreAway,
		StadiumID:    req.StadiumID,
		Competition:  models.Competition(req.Competition),
		LeagueID:     req.LeagueID,
		TournamentID: req.TournamentID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGameView(game))
}

func (h *Handlers) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.DB.Queries.GetGame(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameView(game))
}

func (h *Handlers) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.Games.DeleteGame(r.Context(), pathID(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type updateScoreRequest struct {
	ScoreHome int64 `json:"score_home"`
	ScoreAway int64 `json:"score_away"`
}

func (h *Handlers) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req updateScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	gameID := pathID(r, "id")
	if err := h.Games.UpdateScore(r.Context(), gameID, req.ScoreHome, req.ScoreAway); err != nil {
		writeError(w, r, err)
		return
	}
	game, err := h.DB.Queries.GetGame(r.Context(), gameID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newGameView(game))
}

type nominateRequest struct {
	PlayerID int64 `json:"player_id"`
	TeamID   int64 `json:"team_id"`
}

func (h *Handlers) handleNominate(w http.ResponseWriter, r *http.Request) {
	var req nominateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	nomination, err := h.Games.Nominate(r.Context(), pathID(r, "id"), req.PlayerID, req.TeamID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newNominationView(nomination))
}

func (h *Handlers) handleListNominations(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.Queries.ListNominationsByGame(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]nominationView, 0, len(list))
	for _, n := range list {
		views = append(views, newNominationView(n))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) handleRemoveNomination(w http.ResponseWriter, r *http.Request) {
	if err := h.Games.RemoveNomination(r.Context(), pathID(r, "id"), pathID(r, "playerID")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type saveLineRequest struct {
	TeamID     int64 `json:"team_id"`
	LineNumber int64 `json:"line_number"`
}

func (h *Handlers) handleSaveLine(w http.ResponseWriter, r *http.Request) {
	var req saveLineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	line, err := h.Games.SaveLine(r.Context(), pathID(r, "id"), req.TeamID, req.LineNumber)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newLineView(line))
}

func (h *Handlers) handleListLines(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.Queries.ListLinesByGame(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]lineView, 0, len(list))
	for _, l := range list {
		views = append(views, newLineView(l))
	}
	writeJSON(w, http.StatusOK, views)
}

type assignSlotRequest struct {
	PlayerID int64 `json:"player_id"`
}

func (h *Handlers) handleAssignSlot(w http.ResponseWriter, r *http.Request) {
	var req assignSlotRequest
	if !decodeBody(w, r, &req) {
		return
	}
	slot := models.LineSlot(mux.Vars(r)["slot"])
	assignment, err := h.Games.AssignSlot(r.Context(), pathID(r, "id"), req.PlayerID, slot)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newAssignmentView(assignment))
}

func (h *Handlers) handleClearSlot(w http.ResponseWriter, r *http.Request) {
	slot := models.LineSlot(mux.Vars(r)["slot"])
	if err := h.Games.ClearSlot(r.Context(), pathID(r, "id"), slot); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
