// internal/api/teams.go
package api

import (
	"net/http"
	"time"

	"github.com/powerplayhq/powerplay/internal/leagues"
	"github.com/powerplayhq/powerplay/internal/models"
	"github.com/powerplayhq/powerplay/internal/teams"
)

type createLeagueRequest struct {
	Name      string `json:"name"`
	Season    string `json:"season"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
}

func (h *Handlers) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	var req createLeagueRequest
	if !decodeBody(w, r, &req) {
		return
	}
	dateStart, err := time.Parse("2006-01-02", req.DateStart)
	if err != nil {
		writeError(w, r, models.InvalidField("date_start", "Neplatné datum."))
		return
	}
	dateEnd, err := time.Parse("2006-01-02", req.DateEnd)
	if err != nil {
		writeError(w, r, models.InvalidField("date_end", "Neplatné datum."))
		return
	}

	league, err := h.Roster.CreateLeague(r.Context(), teams.CreateLeagueInput{
		Name:      req.Name,
		Season:    req.Season,
		DateStart: dateStart,
		DateEnd:   dateEnd,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newLeagueView(league))
}

func (h *Handlers) handleListLeagues(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.Queries.ListLeagues(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]leagueView, 0, len(list))
	for _, l := range list {
		views = append(views, newLeagueView(l))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) handleLeagueStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := leagues.CalculateLeagueStandings(r.Context(), h.DB.Queries, pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

func (h *Handlers) handleTournamentStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := leagues.CalculateTournamentStandings(r.Context(), h.DB.Queries, pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

type createTeamRequest struct {
	LeagueID  int64  `json:"league_id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Coach     string `json:"coach"`
	StadiumID int64  `json:"stadium_id"`
}

func (h *Handlers) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if !decodeBody(w, r, &req) {
		return
	}
	team, err := h.Roster.CreateTeam(r.Context(), teams.CreateTeamInput{
		LeagueID:  req.LeagueID,
		Name:      req.Name,
		City:      req.City,
		Coach:     req.Coach,
		StadiumID: req.StadiumID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTeamView(team))
}

func (h *Handlers) handleListTeams(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.Queries.ListTeams(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]teamView, 0, len(list))
	for _, t := range list {
		views = append(views, newTeamView(t))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) handleListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	list, err := h.DB.Queries.ListPlayersByTeam(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]playerView, 0, len(list))
	for _, p := range list {
		views = append(views, newPlayerView(p))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *Handlers) handlePrimaryTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.Primary.Resolve(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if team == nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no teams configured"})
		return
	}
	writeJSON(w, http.StatusOK, newTeamView(*team))
}

type createPlayerRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	CountryID    int64  `json:"country_id"`
	Nickname     string `json:"nickname"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	JerseyNumber int64  `json:"jersey_number"`
	Position     string `json:"position"`
	TeamID       int64  `json:"team_id"`
}

func (h *Handlers) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var birthDate time.Time
	if req.BirthDate != "" {
		var err error
		birthDate, err = time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			writeError(w, r, models.InvalidField("birth_date", "Neplatné datum."))
			return
		}
	}

	player, err := h.Roster.CreatePlayer(r.Context(), teams.CreatePlayerInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    birthDate,
		CountryID:    req.CountryID,
		Nickname:     req.Nickname,
		Phone:        req.Phone,
		Email:        req.Email,
		JerseyNumber: req.JerseyNumber,
		Position:     models.Position(req.Position),
		TeamID:       req.TeamID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newPlayerView(player))
}
