// internal/db/store/nominations.go
package store

import "context"

const createNomination = `
INSERT INTO game_nominations (game_id, player_id, team_id)
VALUES (?, ?, ?)
RETURNING id, game_id, player_id, team_id
`

func (q *Queries) CreateNomination(ctx context.Context, gameID, playerID, teamID int64) (GameNomination, error) {
	row := q.db.QueryRowContext(ctx, createNomination, gameID, playerID, teamID)
	var n GameNomination
	err := row.Scan(&n.ID, &n.GameID, &n.PlayerID, &n.TeamID)
	return n, err
}

const deleteNomination = `
DELETE FROM game_nominations WHERE game_id = ? AND player_id = ?
`

func (q *Queries) DeleteNomination(ctx context.Context, gameID, playerID int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteNomination, gameID, playerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const nominationExists = `
SELECT EXISTS (SELECT 1 FROM game_nominations WHERE game_id = ? AND player_id = ?)
`

func (q *Queries) NominationExists(ctx context.Context, gameID, playerID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, nominationExists, gameID, playerID).Scan(&exists)
	return exists, err
}

const listNominationsByGame = `
SELECT id, game_id, player_id, team_id FROM game_nominations WHERE game_id = ? ORDER BY team_id, player_id
`

func (q *Queries) ListNominationsByGame(ctx context.Context, gameID int64) ([]GameNomination, error) {
	rows, err := q.db.QueryContext(ctx, listNominationsByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nominations []GameNomination
	for rows.Next() {
		var n GameNomination
		if err := rows.Scan(&n.ID, &n.GameID, &n.PlayerID, &n.TeamID); err != nil {
			return nil, err
		}
		nominations = append(nominations, n)
	}
	return nominations, rows.Err()
}
