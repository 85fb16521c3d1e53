// Package stats rebuilds derived per-player statistics from goal and
// penalty events and serves cached season totals on top of them.
package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/models"
)

// Engine recomputes a game's player_stats rows from its event rows.
// The stored game score is the single source of truth: goal events are
// capped by it at apply time and goals-against is attributed from it.
type Engine struct {
	db    *db.DB
	cache *TotalsCache
}

func NewEngine(database *db.DB, cache *TotalsCache) (*Engine, error) {
	if database == nil {
		return nil, errors.New("stats engine requires a database")
	}
	return &Engine{db: database, cache: cache}, nil
}

// RecomputeGame makes the game's stats rows consistent with its current
// goal and penalty events, then invalidates cached season totals for
// the affected players. It wraps itself in a transaction.
func (e *Engine) RecomputeGame(ctx context.Context, gameID int64) error {
	if e == nil || e.db == nil {
		return errors.New("stats engine not initialized")
	}

	var game Game
	err := e.db.RunInTx(ctx, func(txdb *db.DB) error {
		var err error
		game, err = e.recomputeGame(ctx, txdb, gameID)
		return err
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Int64("game_id", gameID).Msg("Failed to recompute game")
		return err
	}

	e.invalidateTotals(ctx, game)
	return nil
}

// RecomputeGameTx is RecomputeGame for callers already inside a
// transaction; cache invalidation is returned to run after commit.
func (e *Engine) RecomputeGameTx(ctx context.Context, txdb *db.DB, gameID int64) (func(), error) {
	game, err := e.recomputeGame(ctx, txdb, gameID)
	if err != nil {
		return nil, err
	}
	return func() { e.invalidateTotals(ctx, game) }, nil
}

// Game carries what invalidation needs to know about the recomputed
// game after the transaction is gone.
type Game struct {
	ID        int64
	LeagueID  sql.NullInt64
	PlayerIDs []int64
	HomeLeagueID,
	AwayLeagueID int64
}

func (e *Engine) recomputeGame(ctx context.Context, txdb *db.DB, gameID int64) (Game, error) {
	q := txdb.Queries

	game, err := q.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Game{}, models.ErrGameNotFound
		}
		return Game{}, fmt.Errorf("load game %d: %w", gameID, err)
	}

	logger := log.Ctx(ctx).With().
		Str("component", "stats_engine").
		Int64("game_id", game.ID).
		Logger()
	logger.Debug().Msg("Recomputing game statistics")

	// Reset existing per-game stats rows to an idempotent baseline.
	if err := q.ResetGameStats(ctx, game.ID); err != nil {
		return Game{}, fmt.Errorf("reset stats for game %d: %w", game.ID, err)
	}

	// Goals per scorer.
	scorers, err := q.GoalCountsByScorer(ctx, game.ID)
	if err != nil {
		return Game{}, fmt.Errorf("count goals for game %d: %w", game.ID, err)
	}
	for _, row := range scorers {
		if err := q.SetStatsGoals(ctx, row.PlayerID, game.ID, row.Count); err != nil {
			return Game{}, fmt.Errorf("store goals for player %d: %w", row.PlayerID, err)
		}
	}

	// Assists, primary and secondary slot separately.
	primary, err := q.PrimaryAssistCounts(ctx, game.ID)
	if err != nil {
		return Game{}, fmt.Errorf("count primary assists for game %d: %w", game.ID, err)
	}
	secondary, err := q.SecondaryAssistCounts(ctx, game.ID)
	if err != nil {
		return Game{}, fmt.Errorf("count secondary assists for game %d: %w", game.ID, err)
	}
	for _, row := range append(primary, secondary...) {
		if err := q.AddStatsAssists(ctx, row.PlayerID, game.ID, row.Count); err != nil {
			return Game{}, fmt.Errorf("store assists for player %d: %w", row.PlayerID, err)
		}
	}

	// Penalty minutes per penalized player.
	penalized, err := q.PenaltyMinutesByPlayer(ctx, game.ID)
	if err != nil {
		return Game{}, fmt.Errorf("sum penalty minutes for game %d: %w", game.ID, err)
	}
	for _, row := range penalized {
		if err := q.SetStatsPenaltyMinutes(ctx, row.PlayerID, game.ID, row.Count); err != nil {
			return Game{}, fmt.Errorf("store penalty minutes for player %d: %w", row.PlayerID, err)
		}
	}

	// Goals against for goalies in line 0 slot G, from the stored score
	// of the opposing team.
	goalies, err := q.ListGoalieAssignments(ctx, game.ID)
	if err != nil {
		return Game{}, fmt.Errorf("load goalie assignments for game %d: %w", game.ID, err)
	}
	for _, goalie := range goalies {
		if models.Position(goalie.Position) != models.PositionGoalie {
			// Validation should have prevented this; skip rather than
			// attribute goals to a skater.
			logger.Warn().Int64("player_id", goalie.PlayerID).Msg("Non-goalie in goalie slot, skipping")
			continue
		}
		conceded := game.ScoreAway
		if goalie.TeamID != game.HomeTeamID {
			conceded = game.ScoreHome
		}
		if err := q.SetStatsGoalsAgainst(ctx, goalie.PlayerID, game.ID, conceded); err != nil {
			return Game{}, fmt.Errorf("store goals against for player %d: %w", goalie.PlayerID, err)
		}
	}

	playerIDs, err := q.ListStatsPlayerIDs(ctx, game.ID)
	if err != nil {
		return Game{}, fmt.Errorf("list affected players for game %d: %w", game.ID, err)
	}

	result := Game{ID: game.ID, LeagueID: game.LeagueID, PlayerIDs: playerIDs}
	if home, err := q.GetTeam(ctx, game.HomeTeamID); err == nil {
		result.HomeLeagueID = home.LeagueID
	}
	if away, err := q.GetTeam(ctx, game.AwayTeamID); err == nil {
		result.AwayLeagueID = away.LeagueID
	}
	return result, nil
}

// invalidateTotals drops cached season totals for every affected player
// across the leagues the game could count toward. Best effort only.
func (e *Engine) invalidateTotals(ctx context.Context, game Game) {
	if e.cache == nil || len(game.PlayerIDs) == 0 {
		return
	}

	leagueIDs := map[int64]struct{}{0: {}}
	if game.LeagueID.Valid {
		leagueIDs[game.LeagueID.Int64] = struct{}{}
	}
	if game.HomeLeagueID != 0 {
		leagueIDs[game.HomeLeagueID] = struct{}{}
	}
	if game.AwayLeagueID != 0 {
		leagueIDs[game.AwayLeagueID] = struct{}{}
	}

	ids := make([]int64, 0, len(leagueIDs))
	for id := range leagueIDs {
		ids = append(ids, id)
	}
	if err := e.cache.Invalidate(ctx, game.PlayerIDs, ids); err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("game_id", game.ID).Msg("Failed to invalidate totals cache")
	}
}
