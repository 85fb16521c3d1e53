package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
)

// GameFixture is a league game between two fully nominated teams,
// enough for exercising stats and validation paths.
type GameFixture struct {
	DB     *db.DB
	League store.League
	Home   store.Team
	Away   store.Team
	Game   store.Game

	HomeScorer store.Player
	HomeAssist store.Player
	HomeGoalie store.Player
	AwayScorer store.Player
	AwayGoalie store.Player
}

// NewGameFixture builds a fresh database with one league, two teams,
// five nominated players and a league game with a 3:1 stored score.
func NewGameFixture(t *testing.T) *GameFixture {
	t.Helper()
	ctx := context.Background()

	database := NewTestDB(t)
	q := database.Queries

	league, err := q.CreateLeague(ctx, store.CreateLeagueParams{
		Name:      "Krajská liga",
		Season:    "2025/2026",
		DateStart: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		DateEnd:   time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create league: %v", err)
	}

	home, err := q.CreateTeam(ctx, store.CreateTeamParams{LeagueID: league.ID, Name: "HC Vlci"})
	if err != nil {
		t.Fatalf("create home team: %v", err)
	}
	away, err := q.CreateTeam(ctx, store.CreateTeamParams{LeagueID: league.ID, Name: "HC Medvědi"})
	if err != nil {
		t.Fatalf("create away team: %v", err)
	}

	f := &GameFixture{DB: database, League: league, Home: home, Away: away}
	f.HomeScorer = f.CreatePlayer(t, home.ID, 10, models.PositionForward)
	f.HomeAssist = f.CreatePlayer(t, home.ID, 20, models.PositionDefense)
	f.HomeGoalie = f.CreatePlayer(t, home.ID, 1, models.PositionGoalie)
	f.AwayScorer = f.CreatePlayer(t, away.ID, 9, models.PositionForward)
	f.AwayGoalie = f.CreatePlayer(t, away.ID, 30, models.PositionGoalie)

	game, err := q.CreateGame(ctx, store.CreateGameParams{
		StartsAt:    time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC),
		HomeTeamID:  home.ID,
		AwayTeamID:  away.ID,
		ScoreHome:   3,
		ScoreAway:   1,
		Competition: string(models.CompetitionLeague),
		LeagueID:    sql.NullInt64{Int64: league.ID, Valid: true},
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	f.Game = game

	for _, p := range []store.Player{f.HomeScorer, f.HomeAssist, f.HomeGoalie, f.AwayScorer, f.AwayGoalie} {
		f.Nominate(t, p)
	}
	return f
}

// CreatePlayer adds a player to the given team.
func (f *GameFixture) CreatePlayer(t *testing.T, teamID, jersey int64, position models.Position) store.Player {
	t.Helper()
	player, err := f.DB.Queries.CreatePlayer(context.Background(), store.CreatePlayerParams{
		FirstName:    "Hráč",
		LastName:     "Testovací",
		JerseyNumber: jersey,
		Position:     string(position),
		TeamID:       sql.NullInt64{Int64: teamID, Valid: true},
	})
	if err != nil {
		t.Fatalf("create player #%d: %v", jersey, err)
	}
	return player
}

// Nominate declares the player eligible for the fixture game.
func (f *GameFixture) Nominate(t *testing.T, player store.Player) {
	t.Helper()
	_, err := f.DB.Queries.CreateNomination(context.Background(), f.Game.ID, player.ID, player.TeamID.Int64)
	if err != nil {
		t.Fatalf("nominate player %d: %v", player.ID, err)
	}
}

// AssignGoalie puts the player into the goalie slot of line 0 for their
// team.
func (f *GameFixture) AssignGoalie(t *testing.T, player store.Player) store.LineAssignment {
	t.Helper()
	ctx := context.Background()

	line, err := f.DB.Queries.UpsertLine(ctx, f.Game.ID, player.TeamID.Int64, models.GoalieLineNumber)
	if err != nil {
		t.Fatalf("create goalie line: %v", err)
	}
	assignment, err := f.DB.Queries.UpsertAssignment(ctx, line.ID, f.Game.ID,
		sql.NullInt64{Int64: player.ID, Valid: true}, string(models.SlotG))
	if err != nil {
		t.Fatalf("assign goalie: %v", err)
	}
	return assignment
}

// RecordGoal inserts a goal event directly, bypassing service
// validation.
func (f *GameFixture) RecordGoal(t *testing.T, teamID, scorerID, assist1ID int64, period models.Period, second int64) store.Goal {
	t.Helper()
	goal, err := f.DB.Queries.CreateGoal(context.Background(), store.CreateGoalParams{
		GameID:         f.Game.ID,
		TeamID:         teamID,
		Period:         int64(period),
		SecondInPeriod: second,
		ScorerID:       scorerID,
		Assist1ID:      nullID(assist1ID),
		Strength:       string(models.StrengthEV),
	})
	if err != nil {
		t.Fatalf("record goal: %v", err)
	}
	return goal
}

// RecordPenalty inserts a penalty event directly.
func (f *GameFixture) RecordPenalty(t *testing.T, teamID, playerID, minutes int64) store.Penalty {
	t.Helper()
	penalty, err := f.DB.Queries.CreatePenalty(context.Background(), store.CreatePenaltyParams{
		GameID:            f.Game.ID,
		TeamID:            teamID,
		Period:            int64(models.PeriodSecond),
		SecondInPeriod:    300,
		PenalizedPlayerID: playerID,
		Minutes:           minutes,
		PenaltyType:       string(models.PenaltyMinor),
	})
	if err != nil {
		t.Fatalf("record penalty: %v", err)
	}
	return penalty
}

// StatsFor returns the player's stats row for the fixture game, or a
// zero row when none exists.
func (f *GameFixture) StatsFor(t *testing.T, playerID int64) store.PlayerStats {
	t.Helper()
	rows, err := f.DB.Queries.ListStatsByGame(context.Background(), f.Game.ID)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	for _, row := range rows {
		if row.PlayerID == playerID {
			return row
		}
	}
	return store.PlayerStats{PlayerID: playerID, GameID: f.Game.ID}
}

func nullID(id int64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
