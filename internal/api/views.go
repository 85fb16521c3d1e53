// internal/api/views.go
package api

import (
	"time"

	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
)

// View types flatten the store's nullable columns into JSON-friendly
// shapes: absent optionals serialize as 0 or "".

type leagueView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Season    string `json:"season"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
}

func newLeagueView(l store.League) leagueView {
	return leagueView{
		ID:        l.ID,
		Name:      l.Name,
		Season:    l.Season,
		DateStart: l.DateStart.Format("2006-01-02"),
		DateEnd:   l.DateEnd.Format("2006-01-02"),
	}
}

type teamView struct {
	ID       int64  `json:"id"`
	LeagueID int64  `json:"league_id"`
	Name     string `json:"name"`
	City     string `json:"city,omitempty"`
	Coach    string `json:"coach,omitempty"`
}

func newTeamView(t store.Team) teamView {
	return teamView{
		ID:       t.ID,
		LeagueID: t.LeagueID,
		Name:     t.Name,
		City:     t.City.String,
		Coach:    t.Coach.String,
	}
}

type playerView struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Nickname     string `json:"nickname,omitempty"`
	JerseyNumber int64  `json:"jersey_number"`
	Position     string `json:"position"`
	TeamID       int64  `json:"team_id,omitempty"`
}

func newPlayerView(p store.Player) playerView {
	return playerView{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Nickname:     p.Nickname.String,
		JerseyNumber: p.JerseyNumber,
		Position:     p.Position,
		TeamID:       p.TeamID.Int64,
	}
}

type gameView struct {
	ID           int64  `json:"id"`
	StartsAt     string `json:"starts_at"`
	HomeTeamID   int64  `json:"home_team_id"`
	AwayTeamID   int64  `json:"away_team_id"`
	ScoreHome    int64  `json:"score_home"`
	ScoreAway    int64  `json:"score_away"`
	StadiumID    int64  `json:"stadium_id,omitempty"`
	Competition  string `json:"competition"`
	LeagueID     int64  `json:"league_id,omitempty"`
	TournamentID int64  `json:"tournament_id,omitempty"`
}

func newGameView(g store.Game) gameView {
	return gameView{
		ID:           g.ID,
		StartsAt:     g.StartsAt.UTC().Format(time.RFC3339),
		HomeTeamID:   g.HomeTeamID,
		AwayTeamID:   g.AwayTeamID,
		ScoreHome:    g.ScoreHome,
		ScoreAway:    g.ScoreAway,
		StadiumID:    g.StadiumID.Int64,
		Competition:  g.Competition,
		LeagueID:     g.LeagueID.Int64,
		TournamentID: g.TournamentID.Int64,
	}
}

type nominationView struct {
	ID       int64 `json:"id"`
	GameID   int64 `json:"game_id"`
	PlayerID int64 `json:"player_id"`
	TeamID   int64 `json:"team_id"`
}

func newNominationView(n store.GameNomination) nominationView {
	return nominationView{ID: n.ID, GameID: n.GameID, PlayerID: n.PlayerID, TeamID: n.TeamID}
}

type lineView struct {
	ID         int64 `json:"id"`
	GameID     int64 `json:"game_id"`
	TeamID     int64 `json:"team_id"`
	LineNumber int64 `json:"line_number"`
}

func newLineView(l store.Line) lineView {
	return lineView{ID: l.ID, GameID: l.GameID, TeamID: l.TeamID, LineNumber: l.LineNumber}
}

type assignmentView struct {
	ID       int64  `json:"id"`
	LineID   int64  `json:"line_id"`
	PlayerID int64  `json:"player_id,omitempty"`
	Slot     string `json:"slot"`
}

func newAssignmentView(a store.LineAssignment) assignmentView {
	return assignmentView{ID: a.ID, LineID: a.LineID, PlayerID: a.PlayerID.Int64, Slot: a.Slot}
}

type goalView struct {
	ID        int64  `json:"id"`
	GameID    int64  `json:"game_id"`
	TeamID    int64  `json:"team_id"`
	Period    int64  `json:"period"`
	Clock     string `json:"clock"`
	ScorerID  int64  `json:"scorer_id"`
	Assist1ID int64  `json:"assist1_id,omitempty"`
	Assist2ID int64  `json:"assist2_id,omitempty"`
	Strength  string `json:"strength"`
}

func newGoalView(g store.Goal) goalView {
	return goalView{
		ID:        g.ID,
		GameID:    g.GameID,
		TeamID:    g.TeamID,
		Period:    g.Period,
		Clock:     models.Clock(g.SecondInPeriod),
		ScorerID:  g.ScorerID,
		Assist1ID: g.Assist1ID.Int64,
		Assist2ID: g.Assist2ID.Int64,
		Strength:  g.Strength,
	}
}

type penaltyView struct {
	ID          int64  `json:"id"`
	GameID      int64  `json:"game_id"`
	TeamID      int64  `json:"team_id"`
	Period      int64  `json:"period"`
	Clock       string `json:"clock"`
	PlayerID    int64  `json:"player_id"`
	Minutes     int64  `json:"minutes"`
	PenaltyType string `json:"penalty_type"`
	Reason      string `json:"reason,omitempty"`
}

func newPenaltyView(p store.Penalty) penaltyView {
	return penaltyView{
		ID:          p.ID,
		GameID:      p.GameID,
		TeamID:      p.TeamID,
		Period:      p.Period,
		Clock:       models.Clock(p.SecondInPeriod),
		PlayerID:    p.PenalizedPlayerID,
		Minutes:     p.Minutes,
		PenaltyType: p.PenaltyType,
		Reason:      p.Reason,
	}
}

type statsView struct {
	PlayerID       int64 `json:"player_id"`
	GameID         int64 `json:"game_id"`
	Goals          int64 `json:"g"`
	Assists        int64 `json:"a"`
	Points         int64 `json:"pts"`
	PenaltyMinutes int64 `json:"pim"`
	GoalsAgainst   int64 `json:"ga"`
}

func newStatsView(s store.PlayerStats) statsView {
	return statsView{
		PlayerID:       s.PlayerID,
		GameID:         s.GameID,
		Goals:          s.Goals,
		Assists:        s.Assists,
		Points:         s.Points,
		PenaltyMinutes: s.PenaltyMinutes,
		GoalsAgainst:   s.GoalsAgainst,
	}
}
