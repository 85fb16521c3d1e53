// internal/db/store/calendar.go
package store

import (
	"context"
	"database/sql"
	"time"
)

type UpsertTeamEventParams struct {
	GameID    int64
	Title     string
	StartsAt  time.Time
	EndsAt    time.Time
	StadiumID sql.NullInt64
}

const upsertTeamEvent = `
INSERT INTO team_events (game_id, title, starts_at, ends_at, stadium_id, auto_synced)
VALUES (?, ?, ?, ?, ?, 1)
ON CONFLICT (game_id) DO UPDATE
SET title = excluded.title,
    starts_at = excluded.starts_at,
    ends_at = excluded.ends_at,
    stadium_id = excluded.stadium_id,
    auto_synced = 1
RETURNING id, game_id, title, starts_at, ends_at, stadium_id, auto_synced
`

// UpsertTeamEvent keeps exactly one calendar event per game.
func (q *Queries) UpsertTeamEvent(ctx context.Context, arg UpsertTeamEventParams) (TeamEvent, error) {
	row := q.db.QueryRowContext(ctx, upsertTeamEvent,
		arg.GameID, arg.Title, arg.StartsAt, arg.EndsAt, arg.StadiumID)
	var e TeamEvent
	err := row.Scan(&e.ID, &e.GameID, &e.Title, &e.StartsAt, &e.EndsAt, &e.StadiumID, &e.AutoSynced)
	return e, err
}

const getTeamEventByGame = `
SELECT id, game_id, title, starts_at, ends_at, stadium_id, auto_synced
FROM team_events WHERE game_id = ?
`

func (q *Queries) GetTeamEventByGame(ctx context.Context, gameID int64) (TeamEvent, error) {
	row := q.db.QueryRowContext(ctx, getTeamEventByGame, gameID)
	var e TeamEvent
	err := row.Scan(&e.ID, &e.GameID, &e.Title, &e.StartsAt, &e.EndsAt, &e.StadiumID, &e.AutoSynced)
	return e, err
}

const deleteTeamEventByGame = `
DELETE FROM team_events WHERE game_id = ?
`

func (q *Queries) DeleteTeamEventByGame(ctx context.Context, gameID int64) error {
	_, err := q.db.ExecContext(ctx, deleteTeamEventByGame, gameID)
	return err
}
