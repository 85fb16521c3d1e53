// internal/stats/totals.go
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
)

// CompetitionFilter selects which games count toward season totals.
type CompetitionFilter string

const (
	FilterLeague     CompetitionFilter = "league"
	FilterTournament CompetitionFilter = "tournament"
	FilterFriendly   CompetitionFilter = "friendly"
	FilterAll        CompetitionFilter = "all"
)

// NormalizeFilter maps unknown values to the league filter, the default
// the public pages use.
func NormalizeFilter(value string) CompetitionFilter {
	switch CompetitionFilter(value) {
	case FilterLeague, FilterTournament, FilterFriendly, FilterAll:
		return CompetitionFilter(value)
	}
	return FilterLeague
}

// Totals is a player's aggregated season line. Points are meaningful
// for skaters, goals against for goalies.
type Totals struct {
	GamesPlayed    int64 `json:"gp"`
	Goals          int64 `json:"g"`
	Assists        int64 `json:"a"`
	Points         int64 `json:"pts"`
	PenaltyMinutes int64 `json:"pim"`
	GoalsAgainst   int64 `json:"ga"`
	Goalie         bool  `json:"goalie"`
}

// TotalsService computes season totals from player_stats plus
// games-played from nominations, optionally through the cache.
type TotalsService struct {
	db    *db.DB
	cache *TotalsCache
}

func NewTotalsService(database *db.DB, cache *TotalsCache) (*TotalsService, error) {
	if database == nil {
		return nil, errors.New("totals service requires a database")
	}
	return &TotalsService{db: database, cache: cache}, nil
}

// PlayerSeasonTotals aggregates a player's totals under the given
// competition filter. seasonLeague narrows league totals to that league
// and supplies the season date window for the other filters; it may be
// nil when no season context is known.
func (s *TotalsService) PlayerSeasonTotals(ctx context.Context, playerID int64, seasonLeague *store.League, filter CompetitionFilter) (Totals, error) {
	leagueID := int64(0)
	if seasonLeague != nil {
		leagueID = seasonLeague.ID
	}

	if s.cache != nil {
		if totals, ok := s.cache.Get(ctx, playerID, leagueID, filter); ok {
			return totals, nil
		}
	}

	totals, err := s.computeTotals(ctx, playerID, seasonLeague, filter)
	if err != nil {
		return Totals{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, playerID, leagueID, filter, totals)
	}
	return totals, nil
}

func (s *TotalsService) computeTotals(ctx context.Context, playerID int64, seasonLeague *store.League, filter CompetitionFilter) (Totals, error) {
	q := s.db.Queries

	player, err := q.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Totals{}, models.ErrPlayerNotFound
		}
		return Totals{}, fmt.Errorf("load player %d: %w", playerID, err)
	}

	windowed := seasonLeague != nil && !seasonLeague.DateStart.IsZero() && !seasonLeague.DateEnd.IsZero()

	var (
		sums store.StatsTotalsRow
		gp   int64
	)
	// One explicit branch per filter; each case runs a static query.
	switch filter {
	case FilterLeague:
		if seasonLeague != nil {
			sums, err = q.SumStatsByLeague(ctx, playerID, seasonLeague.ID)
			if err == nil {
				gp, err = q.CountNominatedGamesByLeague(ctx, playerID, seasonLeague.ID)
			}
		} else {
			sums, err = q.SumStatsByCompetition(ctx, playerID, string(models.CompetitionLeague))
			if err == nil {
				gp, err = q.CountNominatedGamesByCompetition(ctx, playerID, string(models.CompetitionLeague))
			}
		}
	case FilterTournament, FilterFriendly:
		competition := string(models.CompetitionTournament)
		if filter == FilterFriendly {
			competition = string(models.CompetitionFriendly)
		}
		if windowed {
			sums, err = q.SumStatsByCompetitionWindow(ctx, playerID, competition, seasonLeague.DateStart, seasonLeague.DateEnd)
			if err == nil {
				gp, err = q.CountNominatedGamesByCompetitionWindow(ctx, playerID, competition, seasonLeague.DateStart, seasonLeague.DateEnd)
			}
		} else {
			sums, err = q.SumStatsByCompetition(ctx, playerID, competition)
			if err == nil {
				gp, err = q.CountNominatedGamesByCompetition(ctx, playerID, competition)
			}
		}
	case FilterAll:
		if windowed {
			sums, err = q.SumStatsAllWindow(ctx, playerID, seasonLeague.DateStart, seasonLeague.DateEnd)
			if err == nil {
				gp, err = q.CountNominatedGamesAllWindow(ctx, playerID, seasonLeague.DateStart, seasonLeague.DateEnd)
			}
		} else {
			sums, err = q.SumStatsAll(ctx, playerID)
			if err == nil {
				gp, err = q.CountNominatedGamesAll(ctx, playerID)
			}
		}
	default:
		return Totals{}, fmt.Errorf("unknown competition filter %q", filter)
	}
	if err != nil {
		return Totals{}, fmt.Errorf("aggregate totals for player %d: %w", playerID, err)
	}

	return Totals{
		GamesPlayed:    gp,
		Goals:          sums.Goals,
		Assists:        sums.Assists,
		Points:         sums.Goals + sums.Assists,
		PenaltyMinutes: sums.PenaltyMinutes,
		GoalsAgainst:   sums.GoalsAgainst,
		Goalie:         models.Position(player.Position) == models.PositionGoalie,
	}, nil
}

// ResolveSeasonWindow returns the league that frames a team's current
// season. Teams carry their league directly; for teams without one the
// league of their most recent league game is used. Returns nil when
// neither exists.
func (s *TotalsService) ResolveSeasonWindow(ctx context.Context, teamID int64) (*store.League, error) {
	q := s.db.Queries

	team, err := q.GetTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTeamNotFound
		}
		return nil, fmt.Errorf("load team %d: %w", teamID, err)
	}

	if team.LeagueID != 0 {
		league, err := q.GetLeague(ctx, team.LeagueID)
		if err == nil {
			return &league, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load league %d: %w", team.LeagueID, err)
		}
	}

	lastGame, err := q.LatestLeagueGameForTeam(ctx, teamID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load last league game for team %d: %w", teamID, err)
	}
	if !lastGame.LeagueID.Valid {
		return nil, nil
	}

	league, err := q.GetLeague(ctx, lastGame.LeagueID.Int64)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load league %d: %w", lastGame.LeagueID.Int64, err)
	}

	log.Ctx(ctx).Debug().
		Int64("team_id", teamID).
		Int64("league_id", league.ID).
		Msg("Resolved season window from last league game")
	return &league, nil
}
