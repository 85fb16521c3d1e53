// internal/db/store/models.go
package store

import (
	"database/sql"
	"time"
)

type League struct {
	ID        int64
	Name      string
	Season    string
	DateStart time.Time
	DateEnd   time.Time
}

type Stadium struct {
	ID      int64
	Name    string
	Address sql.NullString
	MapURL  sql.NullString
}

type Team struct {
	ID         int64
	LeagueID   int64
	Name       string
	City       sql.NullString
	Coach      sql.NullString
	StadiumID  sql.NullInt64
	StaffNotes sql.NullString
}

type Country struct {
	ID      int64
	Name    string
	ISOCode string
}

type Player struct {
	ID           int64
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

type Tournament struct {
	ID        int64
	Name      string
	DateStart sql.NullTime
	DateEnd   sql.NullTime
}

type Game struct {
	ID           int64
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

type GameNomination struct {
	ID       int64
	GameID   int64
	PlayerID int64
	TeamID   int64
}

type Line struct {
	ID         int64
	GameID     int64
	TeamID     int64
	LineNumber int64
}

type LineAssignment struct {
	ID       int64
	LineID   int64
	GameID   int64
	PlayerID sql.NullInt64
	Slot     string
}

type Goal struct {
	ID             int64
	GameID         int64
	TeamID         int64
	Period         int64
	SecondInPeriod int64
	ScorerID       int64
	Assist1ID      sql.NullInt64
	Assist2ID      sql.NullInt64
	Strength       string
}

type Penalty struct {
	ID                int64
	GameID            int64
	TeamID            int64
	Period            int64
	SecondInPeriod    int64
	PenalizedPlayerID int64
	Minutes           int64
	PenaltyType       string
	Reason            string
}

type PlayerStats struct {
	ID             int64
	PlayerID       int64
	GameID         int64
	Points         int64
	Goals          int64
	Assists        int64
	PenaltyMinutes int64
	GoalsAgainst   int64
}

type TeamEvent struct {
	ID         int64
	GameID     sql.NullInt64
	Title      string
	StartsAt   time.Time
	EndsAt     time.Time
	StadiumID  sql.NullInt64
	AutoSynced bool
}
