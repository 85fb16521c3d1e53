// internal/db/store/stats.go
package store

import (
	"context"
	"time"
)

const resetGameStats = `
UPDATE player_stats
SET points = 0, goals = 0, assists = 0, penalty_minutes = 0, goals_against = 0
WHERE game_id = ?
`

// ResetGameStats zeroes every stats row of the game, the idempotent
// baseline for a recompute.
func (q *Queries) ResetGameStats(ctx context.Context, gameID int64) error {
	_, err := q.db.ExecContext(ctx, resetGameStats, gameID)
	return err
}

const setStatsGoals = `
INSERT INTO player_stats (player_id, game_id, goals, points)
VALUES (?, ?, ?, ?)
ON CONFLICT (player_id, game_id) DO UPDATE
SET goals = excluded.goals,
    points = excluded.goals + player_stats.assists
`

// SetStatsGoals stores the player's goal count for the game and derives
// points from it plus the assists already on the row.
func (q *Queries) SetStatsGoals(ctx context.Context, playerID, gameID, goals int64) error {
	_, err := q.db.ExecContext(ctx, setStatsGoals, playerID, gameID, goals, goals)
	return err
}

const addStatsAssists = `
INSERT INTO player_stats (player_id, game_id, assists, points)
VALUES (?, ?, ?, ?)
ON CONFLICT (player_id, game_id) DO UPDATE
SET assists = player_stats.assists + excluded.assists,
    points = player_stats.goals + player_stats.assists + excluded.assists
`

// AddStatsAssists increments the player's assist count for the game and
// re-derives points.
func (q *Queries) AddStatsAssists(ctx context.Context, playerID, gameID, assists int64) error {
	_, err := q.db.ExecContext(ctx, addStatsAssists, playerID, gameID, assists, assists)
	return err
}

const setStatsPenaltyMinutes = `
INSERT INTO player_stats (player_id, game_id, penalty_minutes)
VALUES (?, ?, ?)
ON CONFLICT (player_id, game_id) DO UPDATE
SET penalty_minutes = excluded.penalty_minutes
`

func (q *Queries) SetStatsPenaltyMinutes(ctx context.Context, playerID, gameID, minutes int64) error {
	_, err := q.db.ExecContext(ctx, setStatsPenaltyMinutes, playerID, gameID, minutes)
	return err
}

const setStatsGoalsAgainst = `
INSERT INTO player_stats (player_id, game_id, goals_against)
VALUES (?, ?, ?)
ON CONFLICT (player_id, game_id) DO UPDATE
SET goals_against = excluded.goals_against
`

func (q *Queries) SetStatsGoalsAgainst(ctx context.Context, playerID, gameID, goalsAgainst int64) error {
	_, err := q.db.ExecContext(ctx, setStatsGoalsAgainst, playerID, gameID, goalsAgainst)
	return err
}

const statsColumns = `id, player_id, game_id, points, goals, assists, penalty_minutes, goals_against`

const listStatsByGame = `
SELECT ` + statsColumns + ` FROM player_stats WHERE game_id = ? ORDER BY player_id
`

func (q *Queries) ListStatsByGame(ctx context.Context, gameID int64) ([]PlayerStats, error) {
	rows, err := q.db.QueryContext(ctx, listStatsByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PlayerStats
	for rows.Next() {
		var s PlayerStats
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.GameID, &s.Points, &s.Goals,
			&s.Assists, &s.PenaltyMinutes, &s.GoalsAgainst); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

const listStatsPlayerIDs = `
SELECT player_id FROM player_stats WHERE game_id = ? ORDER BY player_id
`

func (q *Queries) ListStatsPlayerIDs(ctx context.Context, gameID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listStatsPlayerIDs, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// StatsTotalsRow is the season-total aggregate of a player's stats rows.
type StatsTotalsRow struct {
	Goals          int64
	Assists        int64
	PenaltyMinutes int64
	GoalsAgainst   int64
}

const sumStatsSelect = `
SELECT COALESCE(SUM(ps.goals), 0), COALESCE(SUM(ps.assists), 0),
       COALESCE(SUM(ps.penalty_minutes), 0), COALESCE(SUM(ps.goals_against), 0)
FROM player_stats ps
JOIN games g ON g.id = ps.game_id
`

// One static query per competition filter; the totals service branches
// on the enum instead of assembling conditions at runtime.

const sumStatsAll = sumStatsSelect + `WHERE ps.player_id = ?`

func (q *Queries) SumStatsAll(ctx context.Context, playerID int64) (StatsTotalsRow, error) {
	return q.scanTotals(ctx, sumStatsAll, playerID)
}

const sumStatsByCompetition = sumStatsSelect + `WHERE ps.player_id = ? AND g.competition = ?`

func (q *Queries) SumStatsByCompetition(ctx context.Context, playerID int64, competition string) (StatsTotalsRow, error) {
	return q.scanTotals(ctx, sumStatsByCompetition, playerID, competition)
}

const sumStatsByLeague = sumStatsSelect + `WHERE ps.player_id = ? AND g.competition = 'league' AND g.league_id = ?`

func (q *Queries) SumStatsByLeague(ctx context.Context, playerID, leagueID int64) (StatsTotalsRow, error) {
	return q.scanTotals(ctx, sumStatsByLeague, playerID, leagueID)
}

const sumStatsByCompetitionWindow = sumStatsSelect + `
WHERE ps.player_id = ? AND g.competition = ?
  AND DATE(g.starts_at) >= DATE(?) AND DATE(g.starts_at) <= DATE(?)`

func (q *Queries) SumStatsByCompetitionWindow(ctx context.Context, playerID int64, competition string, dateStart, dateEnd time.Time) (StatsTotalsRow, error) {
	return q.scanTotals(ctx, sumStatsByCompetitionWindow, playerID, competition, dateStart, dateEnd)
}

const sumStatsAllWindow = sumStatsSelect + `
WHERE ps.player_id = ? AND DATE(g.starts_at) >= DATE(?) AND DATE(g.starts_at) <= DATE(?)`

func (q *Queries) SumStatsAllWindow(ctx context.Context, playerID int64, dateStart, dateEnd time.Time) (StatsTotalsRow, error) {
	return q.scanTotals(ctx, sumStatsAllWindow, playerID, dateStart, dateEnd)
}

func (q *Queries) scanTotals(ctx context.Context, query string, args ...interface{}) (StatsTotalsRow, error) {
	var t StatsTotalsRow
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&t.Goals, &t.Assists, &t.PenaltyMinutes, &t.GoalsAgainst)
	return t, err
}

const countGamesSelect = `
SELECT COUNT(DISTINCT n.game_id)
FROM game_nominations n
JOIN games g ON g.id = n.game_id
`

const countNominatedGamesAll = countGamesSelect + `WHERE n.player_id = ?`

func (q *Queries) CountNominatedGamesAll(ctx context.Context, playerID int64) (int64, error) {
	return q.scanCount(ctx, countNominatedGamesAll, playerID)
}

const countNominatedGamesByCompetition = countGamesSelect + `WHERE n.player_id = ? AND g.competition = ?`

func (q *Queries) CountNominatedGamesByCompetition(ctx context.Context, playerID int64, competition string) (int64, error) {
	return q.scanCount(ctx, countNominatedGamesByCompetition, playerID, competition)
}

const countNominatedGamesByLeague = countGamesSelect + `WHERE n.player_id = ? AND g.competition = 'league' AND g.league_id = ?`

func (q *Queries) CountNominatedGamesByLeague(ctx context.Context, playerID, leagueID int64) (int64, error) {
	return q.scanCount(ctx, countNominatedGamesByLeague, playerID, leagueID)
}

const countNominatedGamesByCompetitionWindow = countGamesSelect + `
WHERE n.player_id = ? AND g.competition = ?
  AND DATE(g.starts_at) >= DATE(?) AND DATE(g.starts_at) <= DATE(?)`

func (q *Queries) CountNominatedGamesByCompetitionWindow(ctx context.Context, playerID int64, competition string, dateStart, dateEnd time.Time) (int64, error) {
	return q.scanCount(ctx, countNominatedGamesByCompetitionWindow, playerID, competition, dateStart, dateEnd)
}

const countNominatedGamesAllWindow = countGamesSelect + `
WHERE n.player_id = ? AND DATE(g.starts_at) >= DATE(?) AND DATE(g.starts_at) <= DATE(?)`

func (q *Queries) CountNominatedGamesAllWindow(ctx context.Context, playerID int64, dateStart, dateEnd time.Time) (int64, error) {
	return q.scanCount(ctx, countNominatedGamesAllWindow, playerID, dateStart, dateEnd)
}

func (q *Queries) scanCount(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// TeamPenaltyMinutesForGames sums penalty minutes of a team's players
// across the given games, for standings tables.
func (q *Queries) TeamPenaltyMinutesForGames(ctx context.Context, teamID int64, gameIDs []int64) (int64, error) {
	if len(gameIDs) == 0 {
		return 0, nil
	}
	query := `
SELECT COALESCE(SUM(ps.penalty_minutes), 0)
FROM player_stats ps
JOIN players p ON p.id = ps.player_id
WHERE p.team_id = ? AND ps.game_id IN (` + placeholders(len(gameIDs)) + `)`
	args := append([]interface{}{teamID}, int64Args(gameIDs)...)
	var minutes int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&minutes)
	return minutes, err
}
