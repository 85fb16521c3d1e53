// internal/db/store/lines.go
package store

import (
	"context"
	"database/sql"
)

const upsertLine = `
INSERT INTO lines (game_id, team_id, line_number)
VALUES (?, ?, ?)
ON CONFLICT (game_id, team_id, line_number) DO UPDATE SET line_number = excluded.line_number
RETURNING id, game_id, team_id, line_number
`

// UpsertLine creates the line for (game, team, number) or returns the
// existing one.
func (q *Queries) UpsertLine(ctx context.Context, gameID, teamID, lineNumber int64) (Line, error) {
	row := q.db.QueryRowContext(ctx, upsertLine, gameID, teamID, lineNumber)
	return scanLine(row)
}

const getLine = `
SELECT id, game_id, team_id, line_number FROM lines WHERE id = ?
`

func (q *Queries) GetLine(ctx context.Context, id int64) (Line, error) {
	return scanLine(q.db.QueryRowContext(ctx, getLine, id))
}

const listLinesByGame = `
SELECT id, game_id, team_id, line_number FROM lines WHERE game_id = ? ORDER BY team_id, line_number
`

func (q *Queries) ListLinesByGame(ctx context.Context, gameID int64) ([]Line, error) {
	rows, err := q.db.QueryContext(ctx, listLinesByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ID, &l.GameID, &l.TeamID, &l.LineNumber); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func scanLine(row *sql.Row) (Line, error) {
	var l Line
	err := row.Scan(&l.ID, &l.GameID, &l.TeamID, &l.LineNumber)
	return l, err
}

const upsertAssignment = `
INSERT INTO line_assignments (line_id, game_id, player_id, slot)
VALUES (?, ?, ?, ?)
ON CONFLICT (line_id, slot) DO UPDATE SET player_id = excluded.player_id
RETURNING id, line_id, game_id, player_id, slot
`

// UpsertAssignment fills the slot on a line, replacing any previous
// occupant. The (game, player) uniqueness index rejects a player who
// already holds a slot elsewhere in the same game.
func (q *Queries) UpsertAssignment(ctx context.Context, lineID, gameID int64, playerID sql.NullInt64, slot string) (LineAssignment, error) {
	row := q.db.QueryRowContext(ctx, upsertAssignment, lineID, gameID, playerID, slot)
	var a LineAssignment
	err := row.Scan(&a.ID, &a.LineID, &a.GameID, &a.PlayerID, &a.Slot)
	return a, err
}

const clearAssignment = `
DELETE FROM line_assignments WHERE line_id = ? AND slot = ?
`

func (q *Queries) ClearAssignment(ctx context.Context, lineID int64, slot string) error {
	_, err := q.db.ExecContext(ctx, clearAssignment, lineID, slot)
	return err
}

const assignmentExistsForPlayer = `
SELECT EXISTS (
    SELECT 1 FROM line_assignments
    WHERE game_id = ? AND player_id = ? AND NOT (line_id = ? AND slot = ?)
)
`

// AssignmentExistsForPlayer reports whether the player already holds a
// different slot in the same game.
func (q *Queries) AssignmentExistsForPlayer(ctx context.Context, gameID, playerID, lineID int64, slot string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, assignmentExistsForPlayer, gameID, playerID, lineID, slot).Scan(&exists)
	return exists, err
}

type ListAssignmentsByGameRow struct {
	LineAssignment
	LineNumber int64
	TeamID     int64
}

const listAssignmentsByGame = `
SELECT a.id, a.line_id, a.game_id, a.player_id, a.slot, l.line_number, l.team_id
FROM line_assignments a
JOIN lines l ON l.id = a.line_id
WHERE a.game_id = ?
ORDER BY l.team_id, l.line_number, a.slot
`

func (q *Queries) ListAssignmentsByGame(ctx context.Context, gameID int64) ([]ListAssignmentsByGameRow, error) {
	rows, err := q.db.QueryContext(ctx, listAssignmentsByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []ListAssignmentsByGameRow
	for rows.Next() {
		var a ListAssignmentsByGameRow
		if err := rows.Scan(&a.ID, &a.LineID, &a.GameID, &a.PlayerID, &a.Slot, &a.LineNumber, &a.TeamID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

type GoalieAssignmentRow struct {
	PlayerID int64
	Position string
	TeamID   int64
}

const listGoalieAssignments = `
SELECT a.player_id, p.position, l.team_id
FROM line_assignments a
JOIN lines l ON l.id = a.line_id
JOIN players p ON p.id = a.player_id
WHERE a.game_id = ? AND l.line_number = 0 AND a.slot = 'G' AND a.player_id IS NOT NULL
`

// ListGoalieAssignments returns occupants of the goalie slot in line 0
// for the game, with the position carried along so callers can skip
// non-goalies.
func (q *Queries) ListGoalieAssignments(ctx context.Context, gameID int64) ([]GoalieAssignmentRow, error) {
	rows, err := q.db.QueryContext(ctx, listGoalieAssignments, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goalies []GoalieAssignmentRow
	for rows.Next() {
		var g GoalieAssignmentRow
		if err := rows.Scan(&g.PlayerID, &g.Position, &g.TeamID); err != nil {
			return nil, err
		}
		goalies = append(goalies, g)
	}
	return goalies, rows.Err()
}
