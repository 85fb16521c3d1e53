// internal/db/store/events.go
package store

import (
	"context"
	"database/sql"
)

type CreateGoalParams struct {
	GameID         int64
	TeamID         int64
	Period         int64
	SecondInPeriod int64
	ScorerID       int64
	Assist1ID      sql.NullInt64
	Assist2ID      sql.NullInt64
	Strength       string
}

const goalColumns = `id, game_id, team_id, period, second_in_period, scorer_id, assist_1_id, assist_2_id, strength`

const createGoal = `
INSERT INTO goals (game_id, team_id, period, second_in_period, scorer_id, assist_1_id, assist_2_id, strength)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + goalColumns

func (q *Queries) CreateGoal(ctx context.Context, arg CreateGoalParams) (Goal, error) {
	row := q.db.QueryRowContext(ctx, createGoal,
		arg.GameID, arg.TeamID, arg.Period, arg.SecondInPeriod,
		arg.ScorerID, arg.Assist1ID, arg.Assist2ID, arg.Strength)
	return scanGoal(row)
}

const getGoal = `SELECT ` + goalColumns + ` FROM goals WHERE id = ?`

func (q *Queries) GetGoal(ctx context.Context, id int64) (Goal, error) {
	return scanGoal(q.db.QueryRowContext(ctx, getGoal, id))
}

const deleteGoal = `DELETE FROM goals WHERE id = ?`

func (q *Queries) DeleteGoal(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteGoal, id)
	return err
}

const listGoalsByGame = `
SELECT ` + goalColumns + ` FROM goals WHERE game_id = ? ORDER BY period, second_in_period, id
`

func (q *Queries) ListGoalsByGame(ctx context.Context, gameID int64) ([]Goal, error) {
	rows, err := q.db.QueryContext(ctx, listGoalsByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.GameID, &g.TeamID, &g.Period, &g.SecondInPeriod,
			&g.ScorerID, &g.Assist1ID, &g.Assist2ID, &g.Strength); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

const countTeamGoals = `
SELECT COUNT(*) FROM goals WHERE game_id = ? AND team_id = ? AND id != ?
`

// CountTeamGoals counts the team's goal events in a game, excluding the
// event being edited (pass 0 for new events).
func (q *Queries) CountTeamGoals(ctx context.Context, gameID, teamID, excludeID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countTeamGoals, gameID, teamID, excludeID).Scan(&count)
	return count, err
}

const listExcessGoalIDs = `
SELECT id FROM goals
WHERE game_id = ? AND team_id = ?
ORDER BY period DESC, second_in_period DESC, id DESC
LIMIT ?
`

// ListExcessGoalIDs returns the newest goal ids of a team in a game, up
// to limit, for pruning events beyond the stored score.
func (q *Queries) ListExcessGoalIDs(ctx context.Context, gameID, teamID, limit int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listExcessGoalIDs, gameID, teamID, limit)
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

func (q *Queries) DeleteGoalsByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM goals WHERE id IN (` + placeholders(len(ids)) + `)`
	_, err := q.db.ExecContext(ctx, query, int64Args(ids)...)
	return err
}

type PlayerCountRow struct {
	PlayerID int64
	Count    int64
}

const goalCountsByScorer = `
SELECT scorer_id, COUNT(*) FROM goals WHERE game_id = ? GROUP BY scorer_id
`

func (q *Queries) GoalCountsByScorer(ctx context.Context, gameID int64) ([]PlayerCountRow, error) {
	return q.queryPlayerCounts(ctx, goalCountsByScorer, gameID)
}

const primaryAssistCounts = `
SELECT assist_1_id, COUNT(*) FROM goals WHERE game_id = ? AND assist_1_id IS NOT NULL GROUP BY assist_1_id
`

func (q *Queries) PrimaryAssistCounts(ctx context.Context, gameID int64) ([]PlayerCountRow, error) {
	return q.queryPlayerCounts(ctx, primaryAssistCounts, gameID)
}

const secondaryAssistCounts = `
SELECT assist_2_id, COUNT(*) FROM goals WHERE game_id = ? AND assist_2_id IS NOT NULL GROUP BY assist_2_id
`

func (q *Queries) SecondaryAssistCounts(ctx context.Context, gameID int64) ([]PlayerCountRow, error) {
	return q.queryPlayerCounts(ctx, secondaryAssistCounts, gameID)
}

func (q *Queries) queryPlayerCounts(ctx context.Context, query string, args ...interface{}) ([]PlayerCountRow, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []PlayerCountRow
	for rows.Next() {
		var c PlayerCountRow
		if err := rows.Scan(&c.PlayerID, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

type CreatePenaltyParams struct {
	GameID            int64
	TeamID            int64
	Period            int64
	SecondInPeriod    int64
	PenalizedPlayerID int64
	Minutes           int64
	PenaltyType       string
	Reason            string
}

const penaltyColumns = `id, game_id, team_id, period, second_in_period, penalized_player_id, minutes, penalty_type, reason`

const createPenalty = `
INSERT INTO penalties (game_id, team_id, period, second_in_period, penalized_player_id, minutes, penalty_type, reason)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + penaltyColumns

func (q *Queries) CreatePenalty(ctx context.Context, arg CreatePenaltyParams) (Penalty, error) {
	row := q.db.QueryRowContext(ctx, createPenalty,
		arg.GameID, arg.TeamID, arg.Period, arg.SecondInPeriod,
		arg.PenalizedPlayerID, arg.Minutes, arg.PenaltyType, arg.Reason)
	return scanPenalty(row)
}

const getPenalty = `SELECT ` + penaltyColumns + ` FROM penalties WHERE id = ?`

func (q *Queries) GetPenalty(ctx context.Context, id int64) (Penalty, error) {
	return scanPenalty(q.db.QueryRowContext(ctx, getPenalty, id))
}

const deletePenalty = `DELETE FROM penalties WHERE id = ?`

func (q *Queries) DeletePenalty(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePenalty, id)
	return err
}

const listPenaltiesByGame = `
SELECT ` + penaltyColumns + ` FROM penalties WHERE game_id = ? ORDER BY period, second_in_period, id
`

func (q *Queries) ListPenaltiesByGame(ctx context.Context, gameID int64) ([]Penalty, error) {
	rows, err := q.db.QueryContext(ctx, listPenaltiesByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var penalties []Penalty
	for rows.Next() {
		var p Penalty
		if err := rows.Scan(&p.ID, &p.GameID, &p.TeamID, &p.Period, &p.SecondInPeriod,
			&p.PenalizedPlayerID, &p.Minutes, &p.PenaltyType, &p.Reason); err != nil {
			return nil, err
		}
		penalties = append(penalties, p)
	}
	return penalties, rows.Err()
}

const penaltyMinutesByPlayer = `
SELECT penalized_player_id, COALESCE(SUM(minutes), 0)
FROM penalties WHERE game_id = ? GROUP BY penalized_player_id
`

func (q *Queries) PenaltyMinutesByPlayer(ctx context.Context, gameID int64) ([]PlayerCountRow, error) {
	return q.queryPlayerCounts(ctx, penaltyMinutesByPlayer, gameID)
}

func scanGoal(row *sql.Row) (Goal, error) {
	var g Goal
	err := row.Scan(&g.ID, &g.GameID, &g.TeamID, &g.Period, &g.SecondInPeriod,
		&g.ScorerID, &g.Assist1ID, &g.Assist2ID, &g.Strength)
	return g, err
}

func scanPenalty(row *sql.Row) (Penalty, error) {
	var p Penalty
	err := row.Scan(&p.ID, &p.GameID, &p.TeamID, &p.Period, &p.SecondInPeriod,
		&p.PenalizedPlayerID, &p.Minutes, &p.PenaltyType, &p.Reason)
	return p, err
}
