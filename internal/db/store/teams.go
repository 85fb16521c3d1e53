// internal/db/store/teams.go
package store

import (
	"context"
	"database/sql"
)

type CreateTeamParams struct {
	LeagueID  int64
	Name      string
	City      sql.NullString
	Coach     sql.NullString
	StadiumID sql.NullInt64
}

const createTeam = `
INSERT INTO teams (league_id, name, city, coach, stadium_id)
VALUES (?, ?, ?, ?, ?)
RETURNING id, league_id, name, city, coach, stadium_id, staff_notes
`

func (q *Queries) CreateTeam(ctx context.Context, arg CreateTeamParams) (Team, error) {
	row := q.db.QueryRowContext(ctx, createTeam,
		arg.LeagueID, arg.Name, arg.City, arg.Coach, arg.StadiumID)
	return scanTeam(row)
}

const getTeam = `
SELECT id, league_id, name, city, coach, stadium_id, staff_notes FROM teams WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id int64) (Team, error) {
	return scanTeam(q.db.QueryRowContext(ctx, getTeam, id))
}

const getTeamByNameFold = `
SELECT id, league_id, name, city, coach, stadium_id, staff_notes
FROM teams WHERE LOWER(name) = LOWER(?)
`

// GetTeamByNameFold looks a team up by case-insensitive name.
func (q *Queries) GetTeamByNameFold(ctx context.Context, name string) (Team, error) {
	return scanTeam(q.db.QueryRowContext(ctx, getTeamByNameFold, name))
}

const firstTeam = `
SELECT id, league_id, name, city, coach, stadium_id, staff_notes FROM teams ORDER BY id LIMIT 1
`

func (q *Queries) FirstTeam(ctx context.Context) (Team, error) {
	return scanTeam(q.db.QueryRowContext(ctx, firstTeam))
}

const listTeams = `
SELECT id, league_id, name, city, coach, stadium_id, staff_notes FROM teams ORDER BY name
`

func (q *Queries) ListTeams(ctx context.Context) ([]Team, error) {
	return q.queryTeams(ctx, listTeams)
}

const listTeamsByLeague = `
SELECT id, league_id, name, city, coach, stadium_id, staff_notes
FROM teams WHERE league_id = ? ORDER BY name
`

func (q *Queries) ListTeamsByLeague(ctx context.Context, leagueID int64) ([]Team, error) {
	return q.queryTeams(ctx, listTeamsByLeague, leagueID)
}

const updateTeamLeague = `
UPDATE teams SET league_id = ? WHERE id = ?
`

func (q *Queries) UpdateTeamLeague(ctx context.Context, id, leagueID int64) error {
	_, err := q.db.ExecContext(ctx, updateTeamLeague, leagueID, id)
	return err
}

func (q *Queries) queryTeams(ctx context.Context, query string, args ...interface{}) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.LeagueID, &t.Name, &t.City, &t.Coach, &t.StadiumID, &t.StaffNotes); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func scanTeam(row *sql.Row) (Team, error) {
	var t Team
	err := row.Scan(&t.ID, &t.LeagueID, &t.Name, &t.City, &t.Coach, &t.StadiumID, &t.StaffNotes)
	return t, err
}

const createStadium = `
INSERT INTO stadiums (name, address, map_url)
VALUES (?, ?, ?)
RETURNING id, name, address, map_url
`

func (q *Queries) CreateStadium(ctx context.Context, name string, address, mapURL sql.NullString) (Stadium, error) {
	row := q.db.QueryRowContext(ctx, createStadium, name, address, mapURL)
	var s Stadium
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.MapURL)
	return s, err
}

const getStadiumByNameFold = `
SELECT id, name, address, map_url FROM stadiums WHERE LOWER(name) = LOWER(?)
`

func (q *Queries) GetStadiumByNameFold(ctx context.Context, name string) (Stadium, error) {
	row := q.db.QueryRowContext(ctx, getStadiumByNameFold, name)
	var s Stadium
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.MapURL)
	return s, err
}

const createCountry = `
INSERT INTO countries (name, iso_code)
VALUES (?, ?)
RETURNING id, name, iso_code
`

func (q *Queries) CreateCountry(ctx context.Context, name, isoCode string) (Country, error) {
	row := q.db.QueryRowContext(ctx, createCountry, name, isoCode)
	var c Country
	err := row.Scan(&c.ID, &c.Name, &c.ISOCode)
	return c, err
}
