// internal/db/store/leagues.go
package store

import (
	"context"
	"database/sql"
	"time"
)

type CreateLeagueParams struct {
	Name      string
	Season    string
	DateStart time.Time
	DateEnd   time.Time
}

const createLeague = `
INSERT INTO leagues (name, season, date_start, date_end)
VALUES (?, ?, ?, ?)
RETURNING id, name, season, date_start, date_end
`

func (q *Queries) CreateLeague(ctx context.Context, arg CreateLeagueParams) (League, error) {
	row := q.db.QueryRowContext(ctx, createLeague, arg.Name, arg.Season, arg.DateStart, arg.DateEnd)
	return scanLeague(row)
}

const getLeague = `
SELECT id, name, season, date_start, date_end FROM leagues WHERE id = ?
`

func (q *Queries) GetLeague(ctx context.Context, id int64) (League, error) {
	return scanLeague(q.db.QueryRowContext(ctx, getLeague, id))
}

const getLeagueByNameSeason = `
SELECT id, name, season, date_start, date_end FROM leagues WHERE name = ? AND season = ?
`

func (q *Queries) GetLeagueByNameSeason(ctx context.Context, name, season string) (League, error) {
	return scanLeague(q.db.QueryRowContext(ctx, getLeagueByNameSeason, name, season))
}

const latestLeague = `
SELECT id, name, season, date_start, date_end FROM leagues ORDER BY date_start DESC LIMIT 1
`

// LatestLeague returns the league with the most recent season start.
func (q *Queries) LatestLeague(ctx context.Context) (League, error) {
	return scanLeague(q.db.QueryRowContext(ctx, latestLeague))
}

const listLeagues = `
SELECT id, name, season, date_start, date_end FROM leagues ORDER BY date_start DESC, name
`

func (q *Queries) ListLeagues(ctx context.Context) ([]League, error) {
	rows, err := q.db.QueryContext(ctx, listLeagues)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leagues []League
	for rows.Next() {
		var l League
		if err := rows.Scan(&l.ID, &l.Name, &l.Season, &l.DateStart, &l.DateEnd); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

const updateLeagueDates = `
UPDATE leagues SET date_start = ?, date_end = ? WHERE id = ?
`

func (q *Queries) UpdateLeagueDates(ctx context.Context, id int64, dateStart, dateEnd time.Time) error {
	_, err := q.db.ExecContext(ctx, updateLeagueDates, dateStart, dateEnd, id)
	return err
}

func scanLeague(row *sql.Row) (League, error) {
	var l League
	err := row.Scan(&l.ID, &l.Name, &l.Season, &l.DateStart, &l.DateEnd)
	return l, err
}
