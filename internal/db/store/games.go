// internal/db/store/games.go
package store

import (
	"context"
	"database/sql"
	"time"
)

type CreateGameParams struct {
	StartsAt     time.Time
	HomeTeamID   int64
	AwayTeamID   int64
	ScoreHome    int64
	ScoreAway    int64
	StadiumID    sql.NullInt64
	Competition  string
	LeagueID     sql.NullInt64
	TournamentID sql.NullInt64
}

const gameColumns = `id, starts_at, home_team_id, away_team_id, score_home, score_away,
stadium_id, competition, league_id, tournament_id`

const createGame = `
INSERT INTO games (starts_at, home_team_id, away_team_id, score_home, score_away, stadium_id, competition, league_id, tournament_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + gameColumns

func (q *Queries) CreateGame(ctx context.Context, arg CreateGameParams) (Game, error) {
	row := q.db.QueryRowContext(ctx, createGame,
		arg.StartsAt, arg.HomeTeamID, arg.AwayTeamID, arg.ScoreHome, arg.ScoreAway,
		arg.StadiumID, arg.Competition, arg.LeagueID, arg.TournamentID)
	return scanGame(row)
}

const getGame = `SELECT ` + gameColumns + ` FROM games WHERE id = ?`

func (q *Queries) GetGame(ctx context.Context, id int64) (Game, error) {
	return scanGame(q.db.QueryRowContext(ctx, getGame, id))
}

const getLeagueGameByKey = `
SELECT ` + gameColumns + `
FROM games
WHERE competition = 'league' AND league_id = ? AND starts_at = ? AND home_team_id = ? AND away_team_id = ?
`

// GetLeagueGameByKey resolves a league game by the tuple that the
// league-game uniqueness index covers.
func (q *Queries) GetLeagueGameByKey(ctx context.Context, leagueID int64, startsAt time.Time, homeTeamID, awayTeamID int64) (Game, error) {
	row := q.db.QueryRowContext(ctx, getLeagueGameByKey, leagueID, startsAt, homeTeamID, awayTeamID)
	return scanGame(row)
}

const updateGameScore = `
UPDATE games SET score_home = ?, score_away = ? WHERE id = ?
`

func (q *Queries) UpdateGameScore(ctx context.Context, id, scoreHome, scoreAway int64) error {
	_, err := q.db.ExecContext(ctx, updateGameScore, scoreHome, scoreAway, id)
	return err
}

const updateGameResult = `
UPDATE games SET score_home = ?, score_away = ?, stadium_id = ? WHERE id = ?
`

// UpdateGameResult applies an imported result to an existing game.
func (q *Queries) UpdateGameResult(ctx context.Context, id, scoreHome, scoreAway int64, stadiumID sql.NullInt64) error {
	_, err := q.db.ExecContext(ctx, updateGameResult, scoreHome, scoreAway, stadiumID, id)
	return err
}

const deleteGame = `DELETE FROM games WHERE id = ?`

func (q *Queries) DeleteGame(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteGame, id)
	return err
}

const listGamesByTeam = `
SELECT ` + gameColumns + `
FROM games WHERE home_team_id = ? OR away_team_id = ?
ORDER BY starts_at
`

func (q *Queries) ListGamesByTeam(ctx context.Context, teamID int64) ([]Game, error) {
	return q.queryGames(ctx, listGamesByTeam, teamID, teamID)
}

const listGamesByLeague = `
SELECT ` + gameColumns + `
FROM games WHERE competition = 'league' AND league_id = ?
ORDER BY starts_at
`

func (q *Queries) ListGamesByLeague(ctx context.Context, leagueID int64) ([]Game, error) {
	return q.queryGames(ctx, listGamesByLeague, leagueID)
}

const listGamesByTournament = `
SELECT ` + gameColumns + `
FROM games WHERE competition = 'tournament' AND tournament_id = ?
ORDER BY starts_at
`

func (q *Queries) ListGamesByTournament(ctx context.Context, tournamentID int64) ([]Game, error) {
	return q.queryGames(ctx, listGamesByTournament, tournamentID)
}

const latestLeagueGameForTeam = `
SELECT ` + gameColumns + `
FROM games
WHERE competition = 'league' AND league_id IS NOT NULL AND (home_team_id = ? OR away_team_id = ?)
ORDER BY starts_at DESC
LIMIT 1
`

// LatestLeagueGameForTeam is the season-window fallback for teams
// without a league of their own.
func (q *Queries) LatestLeagueGameForTeam(ctx context.Context, teamID int64) (Game, error) {
	row := q.db.QueryRowContext(ctx, latestLeagueGameForTeam, teamID, teamID)
	return scanGame(row)
}

func (q *Queries) queryGames(ctx context.Context, query string, args ...interface{}) ([]Game, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.StartsAt, &g.HomeTeamID, &g.AwayTeamID, &g.ScoreHome,
			&g.ScoreAway, &g.StadiumID, &g.Competition, &g.LeagueID, &g.TournamentID); err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func scanGame(row *sql.Row) (Game, error) {
	var g Game
	err := row.Scan(&g.ID, &g.StartsAt, &g.HomeTeamID, &g.AwayTeamID, &g.ScoreHome,
		&g.ScoreAway, &g.StadiumID, &g.Competition, &g.LeagueID, &g.TournamentID)
	return g, err
}

const createTournament = `
INSERT INTO tournaments (name, date_start, date_end)
VALUES (?, ?, ?)
RETURNING id, name, date_start, date_end
`

func (q *Queries) CreateTournament(ctx context.Context, name string, dateStart, dateEnd sql.NullTime) (Tournament, error) {
	row := q.db.QueryRowContext(ctx, createTournament, name, dateStart, dateEnd)
	var t Tournament
	err := row.Scan(&t.ID, &t.Name, &t.DateStart, &t.DateEnd)
	return t, err
}

const getTournament = `
SELECT id, name, date_start, date_end FROM tournaments WHERE id = ?
`

func (q *Queries) GetTournament(ctx context.Context, id int64) (Tournament, error) {
	row := q.db.QueryRowContext(ctx, getTournament, id)
	var t Tournament
	err := row.Scan(&t.ID, &t.Name, &t.DateStart, &t.DateEnd)
	return t, err
}
