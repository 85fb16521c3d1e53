// internal/sync/importer.go
package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
	"github.com/powerplayhq/powerplay/internal/stats"
)

// Importer reconciles results from the external API into local league
// games. Teams and stadiums are matched case-insensitively by name and
// created when missing; existing games are matched on the league game
// key (league, start time, home, away).
type Importer struct {
	db     *db.DB
	client *Client
	engine *stats.Engine
}

func NewImporter(database *db.DB, client *Client, engine *stats.Engine) (*Importer, error) {
	if database == nil {
		return nil, errors.New("importer requires a database")
	}
	if client == nil {
		return nil, errors.New("importer requires a results client")
	}
	if engine == nil {
		return nil, errors.New("importer requires a stats engine")
	}
	return &Importer{db: database, client: client, engine: engine}, nil
}

// Options selects the target league and import behavior.
type Options struct {
	// LeagueID wins over name+season when set.
	LeagueID     int64
	LeagueName   string
	LeagueSeason string

	// DryRun reports what would change without writing.
	DryRun bool

	// ExpandLeagueDates widens the league season window to cover all
	// imported games, with a one day margin on each side.
	ExpandLeagueDates bool
}

// Summary reports what an import run did (or, in dry-run mode, would
// have done).
type Summary struct {
	TeamsCreated    int
	StadiumsCreated int
	GamesCreated    int
	GamesUpdated    int
	GamesUnchanged  int
	GoalsPruned     int
	Skipped         int
}

func (s Summary) String() string {
	return fmt.Sprintf("teams +%d, stadiums +%d, games +%d / ~%d / =%d, goals pruned %d, skipped %d",
		s.TeamsCreated, s.StadiumsCreated, s.GamesCreated, s.GamesUpdated, s.GamesUnchanged, s.GoalsPruned, s.Skipped)
}

// Run fetches teams and matches from the external API and applies them
// to the target league.
func (imp *Importer) Run(ctx context.Context, opts Options) (Summary, error) {
	logger := log.Ctx(ctx)
	var summary Summary

	league, err := imp.resolveLeague(ctx, opts)
	if err != nil {
		return summary, err
	}
	logger.Info().
		Int64("league_id", league.ID).
		Str("league", league.Name).
		Str("season", league.Season).
		Bool("dry_run", opts.DryRun).
		Msg("starting results import")

	remoteTeams, err := imp.client.FetchTeams(ctx)
	if err != nil {
		return summary, fmt.Errorf("fetch teams: %w", err)
	}
	matches, err := imp.client.FetchMatches(ctx)
	if err != nil {
		return summary, fmt.Errorf("fetch matches: %w", err)
	}

	teamCache := make(map[string]store.Team)
	stadiumCache := make(map[string]store.Stadium)

	var windowMin, windowMax time.Time
	for _, m := range matches {
		startsAt, err := parseMatchDate(m.MatchDate)
		if err != nil {
			logger.Warn().Str("match_date", m.MatchDate).Msg("skipping match with unparseable date")
			summary.Skipped++
			continue
		}

		homeName, homeOK := remoteTeams[m.HomeTeamID]
		awayName, awayOK := remoteTeams[m.AwayTeamID]
		if !homeOK || !awayOK {
			logger.Warn().
				Int64("home_team_id", m.HomeTeamID).
				Int64("away_team_id", m.AwayTeamID).
				Msg("skipping match with unknown team reference")
			summary.Skipped++
			continue
		}
		if m.HomeScore < 0 || m.AwayScore < 0 {
			logger.Warn().Str("home", homeName).Str("away", awayName).Msg("skipping match with negative score")
			summary.Skipped++
			continue
		}

		home, err := imp.resolveTeam(ctx, teamCache, homeName, league, opts.DryRun, &summary)
		if err != nil {
			return summary, err
		}
		away, err := imp.resolveTeam(ctx, teamCache, awayName, league, opts.DryRun, &summary)
		if err != nil {
			return summary, err
		}
		stadiumID, err := imp.resolveStadium(ctx, stadiumCache, m.Venue, opts.DryRun, &summary)
		if err != nil {
			return summary, err
		}

		if err := imp.applyMatch(ctx, league, startsAt, home, away, m, stadiumID, opts.DryRun, &summary); err != nil {
			return summary, err
		}

		if windowMin.IsZero() || startsAt.Before(windowMin) {
			windowMin = startsAt
		}
		if windowMax.IsZero() || startsAt.After(windowMax) {
			windowMax = startsAt
		}
	}

	if opts.ExpandLeagueDates && !windowMin.IsZero() {
		if err := imp.expandLeagueDates(ctx, league, windowMin, windowMax, opts.DryRun); err != nil {
			return summary, err
		}
	}

	logger.Info().Str("summary", summary.String()).Msg("results import finished")
	return summary, nil
}

// resolveLeague picks the import target: explicit id, then name+season
// (created when missing), then the most recent league.
func (imp *Importer) resolveLeague(ctx context.Context, opts Options) (store.League, error) {
	q := imp.db.Queries

	if opts.LeagueID != 0 {
		league, err := q.GetLeague(ctx, opts.LeagueID)
		if errors.Is(err, sql.ErrNoRows) {
			return store.League{}, models.ErrLeagueNotFound
		}
		return league, err
	}

	if opts.LeagueName != "" && opts.LeagueSeason != "" {
		league, err := q.GetLeagueByNameSeason(ctx, opts.LeagueName, opts.LeagueSeason)
		if err == nil {
			return league, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return store.League{}, err
		}
		start, end, err := seasonBounds(opts.LeagueSeason)
		if err != nil {
			return store.League{}, err
		}
		if opts.DryRun {
			return store.League{Name: opts.LeagueName, Season: opts.LeagueSeason, DateStart: start, DateEnd: end}, nil
		}
		return q.CreateLeague(ctx, store.CreateLeagueParams{
			Name:      opts.LeagueName,
			Season:    opts.LeagueSeason,
			DateStart: start,
			DateEnd:   end,
		})
	}

	league, err := q.LatestLeague(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return store.League{}, errors.New("no league to import into; configure one or pass --league-id")
	}
	return league, err
}

// seasonBounds derives a default window from a "2025/2026" style
// season label: September 1st of the first year through April 30th of
// the second.
func seasonBounds(season string) (time.Time, time.Time, error) {
	parts := strings.SplitN(season, "/", 2)
	var firstYear int
	if _, err := fmt.Sscanf(parts[0], "%d", &firstYear); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("cannot derive season window from %q", season)
	}
	start := time.Date(firstYear, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(firstYear+1, time.April, 30, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

func (imp *Importer) resolveTeam(ctx context.Context, cache map[string]store.Team, name string, league store.League, dryRun bool, summary *Summary) (store.Team, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if team, ok := cache[key]; ok {
		return team, nil
	}

	team, err := imp.db.Queries.GetTeamByNameFold(ctx, name)
	switch {
	case err == nil:
		if team.LeagueID != league.ID && league.ID != 0 {
			log.Ctx(ctx).Warn().
				Str("team", team.Name).
				Int64("from_league", team.LeagueID).
				Int64("to_league", league.ID).
				Msg("moving imported team into target league")
			if !dryRun {
				if err := imp.db.Queries.UpdateTeamLeague(ctx, team.ID, league.ID); err != nil {
					return store.Team{}, fmt.Errorf("move team %q: %w", team.Name, err)
				}
			}
			team.LeagueID = league.ID
		}
	case errors.Is(err, sql.ErrNoRows):
		summary.TeamsCreated++
		if dryRun {
			team = store.Team{Name: name, LeagueID: league.ID}
		} else {
			team, err = imp.db.Queries.CreateTeam(ctx, store.CreateTeamParams{
				LeagueID: league.ID,
				Name:     name,
			})
			if err != nil {
				return store.Team{}, fmt.Errorf("create team %q: %w", name, err)
			}
		}
	default:
		return store.Team{}, err
	}

	cache[key] = team
	return team, nil
}

func (imp *Importer) resolveStadium(ctx context.Context, cache map[string]store.Stadium, venue string, dryRun bool, summary *Summary) (sql.NullInt64, error) {
	venue = strings.TrimSpace(venue)
	if venue == "" {
		return sql.NullInt64{}, nil
	}
	key := strings.ToLower(venue)
	if s, ok := cache[key]; ok {
		return nullableID(s.ID), nil
	}

	s, err := imp.db.Queries.GetStadiumByNameFold(ctx, venue)
	switch {
	case err == nil:
	case errors.Is(err, sql.ErrNoRows):
		summary.StadiumsCreated++
		if dryRun {
			s = store.Stadium{Name: venue}
		} else {
			s, err = imp.db.Queries.CreateStadium(ctx, venue, sql.NullString{}, sql.NullString{})
			if err != nil {
				return sql.NullInt64{}, fmt.Errorf("create stadium %q: %w", venue, err)
			}
		}
	default:
		return sql.NullInt64{}, err
	}

	cache[key] = s
	return nullableID(s.ID), nil
}

// applyMatch upserts one league game. When an existing game's stored
// score shrinks below its recorded goal events, the newest excess goals
// are pruned so the events never contradict the score.
func (imp *Importer) applyMatch(ctx context.Context, league store.League, startsAt time.Time, home, away store.Team, m RemoteMatch, stadiumID sql.NullInt64, dryRun bool, summary *Summary) error {
	logger := log.Ctx(ctx)

	if home.ID != 0 && home.ID == away.ID {
		logger.Warn().Str("team", home.Name).Msg("skipping match where a team plays itself")
		summary.Skipped++
		return nil
	}

	// Teams created in dry-run mode have no id yet, so their games
	// cannot exist either.
	if home.ID == 0 || away.ID == 0 {
		summary.GamesCreated++
		return nil
	}

	game, err := imp.db.Queries.GetLeagueGameByKey(ctx, league.ID, startsAt, home.ID, away.ID)
	if errors.Is(err, sql.ErrNoRows) {
		summary.GamesCreated++
		if dryRun {
			return nil
		}
		_, err := imp.db.Queries.CreateGame(ctx, store.CreateGameParams{
			StartsAt:    startsAt,
			HomeTeamID:  home.ID,
			AwayTeamID:  away.ID,
			ScoreHome:   m.HomeScore,
			ScoreAway:   m.AwayScore,
			StadiumID:   stadiumID,
			Competition: string(models.CompetitionLeague),
			LeagueID:    nullableID(league.ID),
		})
		if err != nil {
			return fmt.Errorf("create game %s vs %s: %w", home.Name, away.Name, err)
		}
		return nil
	}
	if err != nil {
		return err
	}

	sameStadium := game.StadiumID == stadiumID || !stadiumID.Valid
	if game.ScoreHome == m.HomeScore && game.ScoreAway == m.AwayScore && sameStadium {
		summary.GamesUnchanged++
		return nil
	}

	summary.GamesUpdated++
	if dryRun {
		return nil
	}

	newStadium := game.StadiumID
	if stadiumID.Valid {
		newStadium = stadiumID
	}
	if err := imp.db.Queries.UpdateGameResult(ctx, game.ID, m.HomeScore, m.AwayScore, newStadium); err != nil {
		return fmt.Errorf("update game %d: %w", game.ID, err)
	}

	pruned, err := imp.pruneGoalsToScore(ctx, game.ID, home.ID, m.HomeScore)
	if err != nil {
		return err
	}
	summary.GoalsPruned += pruned
	pruned, err = imp.pruneGoalsToScore(ctx, game.ID, away.ID, m.AwayScore)
	if err != nil {
		return err
	}
	summary.GoalsPruned += pruned

	if err := imp.engine.RecomputeGame(ctx, game.ID); err != nil {
		return fmt.Errorf("recompute game %d: %w", game.ID, err)
	}
	return nil
}

// pruneGoalsToScore drops the newest goal events of a team until their
// count fits under the stored score.
func (imp *Importer) pruneGoalsToScore(ctx context.Context, gameID, teamID, score int64) (int, error) {
	count, err := imp.db.Queries.CountTeamGoals(ctx, gameID, teamID, 0)
	if err != nil {
		return 0, err
	}
	if count <= score {
		return 0, nil
	}

	ids, err := imp.db.Queries.ListExcessGoalIDs(ctx, gameID, teamID, count-score)
	if err != nil {
		return 0, err
	}
	if err := imp.db.Queries.DeleteGoalsByIDs(ctx, ids); err != nil {
		return 0, err
	}
	log.Ctx(ctx).Warn().
		Int64("game_id", gameID).
		Int64("team_id", teamID).
		Int("pruned", len(ids)).
		Msg("pruned goal events exceeding imported score")
	return len(ids), nil
}

func (imp *Importer) expandLeagueDates(ctx context.Context, league store.League, windowMin, windowMax time.Time, dryRun bool) error {
	start := league.DateStart
	end := league.DateEnd
	if min := windowMin.AddDate(0, 0, -1); min.Before(start) {
		start = min
	}
	if max := windowMax.AddDate(0, 0, 1); max.After(end) {
		end = max
	}
	if start.Equal(league.DateStart) && end.Equal(league.DateEnd) {
		return nil
	}

	log.Ctx(ctx).Info().
		Int64("league_id", league.ID).
		Time("date_start", start).
		Time("date_end", end).
		Msg("expanding league season window to cover imported games")
	if dryRun || league.ID == 0 {
		return nil
	}
	return imp.db.Queries.UpdateLeagueDates(ctx, league.ID, start, end)
}

func nullableID(id int64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
