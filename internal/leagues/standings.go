// Package leagues computes standings tables for leagues and
// tournaments from stored game scores.
package leagues

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/powerplayhq/powerplay/internal/db/store"
)

// TeamStanding is one row of a standings table. Points use the 3-point
// system: win 3, draw 1, loss 0.
type TeamStanding struct {
	TeamID         int64  `json:"teamId"`
	TeamName       string `json:"teamName"`
	GamesPlayed    int    `json:"gamesPlayed"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	Points         int    `json:"points"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	PenaltyMinutes int    `json:"penaltyMinutes"`
}

// CalculateLeagueStandings computes the table over a league's games.
func CalculateLeagueStandings(ctx context.Context, q *store.Queries, leagueID int64) ([]TeamStanding, error) {
	if q == nil {
		return nil, errors.New("queries are required")
	}
	if leagueID <= 0 {
		return nil, errors.New("league ID is required")
	}

	games, err := q.ListGamesByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league games: %w", err)
	}
	return calculateStandings(ctx, q, games)
}

// CalculateTournamentStandings computes the table over a tournament's
// games.
func CalculateTournamentStandings(ctx context.Context, q *store.Queries, tournamentID int64) ([]TeamStanding, error) {
	if q == nil {
		return nil, errors.New("queries are required")
	}
	if tournamentID <= 0 {
		return nil, errors.New("tournament ID is required")
	}

	games, err := q.ListGamesByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament games: %w", err)
	}
	return calculateStandings(ctx, q, games)
}

func calculateStandings(ctx context.Context, q *store.Queries, games []store.Game) ([]TeamStanding, error) {
	teams := make(map[int64]*TeamStanding)
	gameIDs := make([]int64, 0, len(games))

	entry := func(teamID int64) *TeamStanding {
		standing, ok := teams[teamID]
		if !ok {
			standing = &TeamStanding{TeamID: teamID}
			teams[teamID] = standing
		}
		return standing
	}

	for _, game := range games {
		gameIDs = append(gameIDs, game.ID)

		home := entry(game.HomeTeamID)
		away := entry(game.AwayTeamID)

		home.GamesPlayed++
		away.GamesPlayed++
		home.GoalsFor += int(game.ScoreHome)
		home.GoalsAgainst += int(game.ScoreAway)
		away.GoalsFor += int(game.ScoreAway)
		away.GoalsAgainst += int(game.ScoreHome)

		switch {
		case game.ScoreHome > game.ScoreAway:
			home.Wins++
			away.Losses++
		case game.ScoreHome < game.ScoreAway:
			away.Wins++
			home.Losses++
		default:
			home.Draws++
			away.Draws++
		}
	}

	for teamID, standing := range teams {
		standing.Points = standing.Wins*3 + standing.Draws

		team, err := q.GetTeam(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("load team %d: %w", teamID, err)
		}
		standing.TeamName = team.Name

		minutes, err := q.TeamPenaltyMinutesForGames(ctx, teamID, gameIDs)
		if err != nil {
			return nil, fmt.Errorf("sum penalty minutes for team %d: %w", teamID, err)
		}
		standing.PenaltyMinutes = int(minutes)
	}

	ordered := make([]TeamStanding, 0, len(teams))
	for _, standing := range teams {
		ordered = append(ordered, *standing)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		diffI := ordered[i].GoalsFor - ordered[i].GoalsAgainst
		diffJ := ordered[j].GoalsFor - ordered[j].GoalsAgainst
		if diffI != diffJ {
			return diffI > diffJ
		}
		return ordered[i].TeamName < ordered[j].TeamName
	})

	return ordered, nil
}
