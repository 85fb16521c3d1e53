// internal/db/store/players.go
package store

import (
	"context"
	"database/sql"
)

type CreatePlayerParams struct {
	FirstName    string
	LastName     string
	BirthDate    sql.NullTime
	CountryID    sql.NullInt64
	Nickname     sql.NullString
	Phone        sql.NullString
	Email        sql.NullString
	JerseyNumber int64
	Position     string
	TeamID       sql.NullInt64
}

const createPlayer = `
INSERT INTO players (first_name, last_name, birth_date, country_id, nickname, phone, email, jersey_number, position, team_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, first_name, last_name, birth_date, country_id, nickname, phone, email, jersey_number, position, team_id
`

func (q *Queries) CreatePlayer(ctx context.Context, arg CreatePlayerParams) (Player, error) {
	row := q.db.QueryRowContext(ctx, createPlayer,
		arg.FirstName, arg.LastName, arg.BirthDate, arg.CountryID, arg.Nickname,
		arg.Phone, arg.Email, arg.JerseyNumber, arg.Position, arg.TeamID)
	return scanPlayer(row)
}

const getPlayer = `
SELECT id, first_name, last_name, birth_date, country_id, nickname, phone, email, jersey_number, position, team_id
FROM players WHERE id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, id int64) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayer, id))
}

const listPlayersByTeam = `
SELECT id, first_name, last_name, birth_date, country_id, nickname, phone, email, jersey_number, position, team_id
FROM players WHERE team_id = ? ORDER BY jersey_number
`

func (q *Queries) ListPlayersByTeam(ctx context.Context, teamID int64) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, listPlayersByTeam, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.BirthDate, &p.CountryID,
			&p.Nickname, &p.Phone, &p.Email, &p.JerseyNumber, &p.Position, &p.TeamID); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func scanPlayer(row *sql.Row) (Player, error) {
	var p Player
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.BirthDate, &p.CountryID,
		&p.Nickname, &p.Phone, &p.Email, &p.JerseyNumber, &p.Position, &p.TeamID)
	return p, err
}
