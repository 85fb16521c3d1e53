// internal/api/events.go
package api

import (
	"net/http"

	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/games"
	"github.com/powerplayhq/powerplay/internal/models"
	"github.com/powerplayhq/powerplay/internal/stats"
)

type goalRequest struct {
	TeamID         int64  `json:"team_id"`
	Period         int64  `json:"period"`
	SecondInPeriod int64  `json:"second_in_period"`
	ScorerID       int64  `json:"scorer_id"`
	Assist1ID      int64  `json:"assist1_id"`
	Assist2ID      int64  `json:"assist2_id"`
	Strength       string `json:"strength"`
}

func (h *Handlers) handleApplyGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	goal, err := h.Games.ApplyGoal(r.Context(), games.GoalInput{
		GameID:         pathID(r, "id"),
		TeamID:         req.TeamID,
		Period:         models.Period(req.Period),
		SecondInPeriod: req.SecondInPeriod,
		ScorerID:       req.ScorerID,
		Assist1ID:      req.Assist1ID,
		Assist2ID:      req.Assist2ID,
		Strength:       models.Strength(req.Strength),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGoalView(goal))
}

func (h *Handlers) handleListGoals(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.Queries.ListGoalsByGame(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]goalView, 0, len(list))
	for _, g := range list {
		views = append(views, newGoalView(g))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.Games.DeleteGoal(r.Context(), pathID(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type penaltyRequest struct {
	TeamID         int64  `json:"team_id"`
	Period         int64  `json:"period"`
	SecondInPeriod int64  `json:"second_in_period"`
	PlayerID       int64  `json:"player_id"`
	Minutes        int64  `json:"minutes"`
	PenaltyType    string `json:"penalty_type"`
	Reason         string `json:"reason"`
}

func (h *Handlers) handleApplyPenalty(w http.ResponseWriter, r *http.Request) {
	var req penaltyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	penalty, err := h.Games.ApplyPenalty(r.Context(), games.PenaltyInput{
		GameID:            pathID(r, "id"),
		TeamID:            req.TeamID,
		Period:            models.Period(req.Period),
		SecondInPeriod:    req.SecondInPeriod,
		PenalizedPlayerID: req.PlayerID,
		Minutes:           req.Minutes,
		PenaltyType:       models.PenaltyType(req.PenaltyType),
		Reason:            req.Reason,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newPenaltyView(penalty))
}

func (h *Handlers) handleListPenalties(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.Queries.ListPenaltiesByGame(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]penaltyView, 0, len(list))
	for _, p := range list {
		views = append(views, newPenaltyView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) handleDeletePenalty(w http.ResponseWriter, r *http.Request) {
	if err := h.Games.DeletePenalty(r.Context(), pathID(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handlers) handleGameStats(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.Queries.ListStatsByGame(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]statsView, 0, len(list))
	for _, s := range list {
		views = append(views, newStatsView(s))
	}
	writeJSON(w, http.StatusOK, views)
}

// handlePlayerTotals serves season totals for a player. The season
// window comes from the player's team league, falling back to the last
// league the team played in.
func (h *Handlers) handlePlayerTotals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playerID := pathID(r, "id")

	player, err := h.DB.Queries.GetPlayer(ctx, playerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	filter := stats.NormalizeFilter(r.URL.Query().Get("filter"))

	var seasonLeague *store.League
	if player.TeamID.Valid {
		seasonLeague, err = h.Totals.ResolveSeasonWindow(ctx, player.TeamID.Int64)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	totals, err := h.Totals.PlayerSeasonTotals(ctx, playerID, seasonLeague, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}
