// internal/teams/roster.go
package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
)

// RosterService manages leagues, teams and players.
type RosterService struct {
	db *db.DB
}

func NewRosterService(database *db.DB) (*RosterService, error) {
	if database == nil {
		return nil, errors.New("roster service requires a database")
	}
	return &RosterService{db: database}, nil
}

type CreateLeagueInput struct {
	Name      string
	Season    string
	DateStart time.Time
	DateEnd   time.Time
}

// CreateLeague validates the season range and derives the season label
// when left empty.
func (s *RosterService) CreateLeague(ctx context.Context, input CreateLeagueInput) (store.League, error) {
	if input.Name == "" {
		return store.League{}, models.InvalidField("name", "Název ligy je povinný.")
	}
	if !input.DateEnd.IsZero() && !input.DateStart.IsZero() && input.DateEnd.Before(input.DateStart) {
		return store.League{}, models.Invalid("Konec sezóny musí být po začátku.")
	}
	if input.Season == "" {
		input.Season = models.SeasonLabel(input.DateStart, input.DateEnd)
	}

	league, err := s.db.Queries.CreateLeague(ctx, store.CreateLeagueParams{
		Name:      input.Name,
		Season:    input.Season,
		DateStart: input.DateStart,
		DateEnd:   input.DateEnd,
	})
	if err != nil {
		return store.League{}, fmt.Errorf("create league: %w", err)
	}
	return league, nil
}

type CreateTeamInput struct {
	LeagueID  int64
	Name      string
	City      string
	Coach     string
	StadiumID int64
}

func (s *RosterService) CreateTeam(ctx context.Context, input CreateTeamInput) (store.Team, error) {
	if input.Name == "" {
		return store.Team{}, models.InvalidField("name", "Název týmu je povinný.")
	}
	if _, err := s.db.Queries.GetLeague(ctx, input.LeagueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Team{}, models.ErrLeagueNotFound
		}
		return store.Team{}, fmt.Errorf("load league %d: %w", input.LeagueID, err)
	}

	team, err := s.db.Queries.CreateTeam(ctx, store.CreateTeamParams{
		LeagueID:  input.LeagueID,
		Name:      input.Name,
		City:      nullString(input.City),
		Coach:     nullString(input.Coach),
		StadiumID: nullInt64(input.StadiumID),
	})
	if err != nil {
		return store.Team{}, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

type CreatePlayerInput struct {
	FirstName    string
	LastName     string
	BirthDate    time.Time
	CountryID    int64
	Nickname     string
	Phone        string
	Email        string
	JerseyNumber int64
	Position     models.Position
	TeamID       int64
}

// CreatePlayer validates position and phone before persisting. Jersey
// uniqueness per team is left to the database constraint.
func (s *RosterService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (store.Player, error) {
	if input.FirstName == "" || input.LastName == "" {
		return store.Player{}, models.Invalid("Jméno a příjmení hráče jsou povinné.")
	}
	if !input.Position.Valid() {
		return store.Player{}, models.InvalidField("position", fmt.Sprintf("Neznámá pozice: %s", input.Position))
	}
	if !models.ValidPhone(input.Phone) {
		return store.Player{}, models.InvalidField("phone", "Telefonní číslo není platné.")
	}

	var birthDate sql.NullTime
	if !input.BirthDate.IsZero() {
		birthDate = sql.NullTime{Time: input.BirthDate, Valid: true}
	}

	player, err := s.db.Queries.CreatePlayer(ctx, store.CreatePlayerParams{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		BirthDate:    birthDate,
		CountryID:    nullInt64(input.CountryID),
		Nickname:     nullString(input.Nickname),
		Phone:        nullString(input.Phone),
		Email:        nullString(input.Email),
		JerseyNumber: input.JerseyNumber,
		Position:     string(input.Position),
		TeamID:       nullInt64(input.TeamID),
	})
	if err != nil {
		return store.Player{}, fmt.Errorf("create player: %w", err)
	}
	return player, nil
}

func nullString(value string) sql.NullString {
	if value == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: value, Valid: true}
}

func nullInt64(value int64) sql.NullInt64 {
	if value == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: value, Valid: true}
}
