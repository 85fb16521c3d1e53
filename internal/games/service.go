// Package games is the application-service layer for game mutations.
// Every operation persists, validates, and recomputes derived
// statistics in one visible call; there is no side-effect dispatch.
package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
	"github.com/powerplayhq/powerplay/internal/stats"
)

type Service struct {
	db     *db.DB
	engine *stats.Engine
}

func NewService(database *db.DB, engine *stats.Engine) (*Service, error) {
	if database == nil {
		return nil, errors.New("game service requires a database")
	}
	if engine == nil {
		return nil, errors.New("game service requires a stats engine")
	}
	return &Service{db: database, engine: engine}, nil
}

type CreateGameInput struct {
	StartsAt     time.Time
	HomeTeamID   int64
	AwayTeamID   int64
	ScoreHome    int64
	ScoreAway    int64
	StadiumID    int64
	Competition  models.Competition
	LeagueID     int64
	TournamentID int64
}

// CreateGame validates and persists a game, and creates its calendar
// event.
func (s *Service) CreateGame(ctx context.Context, input CreateGameInput) (store.Game, error) {
	var game store.Game
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		if err := validateGame(ctx, txdb.Queries, input); err != nil {
			return err
		}

		var err error
		game, err = txdb.Queries.CreateGame(ctx, store.CreateGameParams{
			StartsAt:     input.StartsAt,
			HomeTeamID:   input.HomeTeamID,
			AwayTeamID:   input.AwayTeamID,
			ScoreHome:    input.ScoreHome,
			ScoreAway:    input.ScoreAway,
			StadiumID:    nullInt64(input.StadiumID),
			Competition:  string(input.Competition),
			LeagueID:     nullInt64(input.LeagueID),
			TournamentID: nullInt64(input.TournamentID),
		})
		if err != nil {
			return fmt.Errorf("create game: %w", err)
		}
		return s.syncTeamEvent(ctx, txdb.Queries, game)
	})
	if err != nil {
		return store.Game{}, err
	}

	log.Ctx(ctx).Info().Int64("game_id", game.ID).Msg("Game created")
	return game, nil
}

// UpdateScore sets the manual score and recomputes the game; the score
// is authoritative so goalie goals-against follows it.
func (s *Service) UpdateScore(ctx context.Context, gameID, scoreHome, scoreAway int64) error {
	if scoreHome < 0 || scoreAway < 0 {
		return models.Invalid("Skóre nesmí být záporné.")
	}

	var invalidate func()
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		if _, err := s.getGame(ctx, txdb.Queries, gameID); err != nil {
			return err
		}
		if err := txdb.Queries.UpdateGameScore(ctx, gameID, scoreHome, scoreAway); err != nil {
			return fmt.Errorf("update score for game %d: %w", gameID, err)
		}
		var err error
		invalidate, err = s.engine.RecomputeGameTx(ctx, txdb, gameID)
		return err
	})
	if err != nil {
		return err
	}
	invalidate()
	return nil
}

// DeleteGame removes the game; events, stats and the calendar entry go
// with it via foreign keys.
func (s *Service) DeleteGame(ctx context.Context, gameID int64) error {
	return s.db.RunInTx(ctx, func(txdb *db.DB) error {
		if _, err := s.getGame(ctx, txdb.Queries, gameID); err != nil {
			return err
		}
		return txdb.Queries.DeleteGame(ctx, gameID)
	})
}

// Nominate declares a player eligible for a game. The team defaults to
// the player's own team when zero.
func (s *Service) Nominate(ctx context.Context, gameID, playerID, teamID int64) (store.GameNomination, error) {
	var nomination store.GameNomination
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		game, err := s.getGame(ctx, q, gameID)
		if err != nil {
			return err
		}
		player, err := q.GetPlayer(ctx, playerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrPlayerNotFound
			}
			return fmt.Errorf("load player %d: %w", playerID, err)
		}

		if teamID == 0 && player.TeamID.Valid {
			teamID = player.TeamID.Int64
		}
		if !player.TeamID.Valid || player.TeamID.Int64 != teamID {
			return models.Invalid(msgPlayerNotOnTeam)
		}
		if !isGameParticipant(game, teamID) {
			return models.Invalid(msgTeamNotInGame)
		}

		nomination, err = q.CreateNomination(ctx, gameID, playerID, teamID)
		if err != nil {
			return fmt.Errorf("create nomination: %w", err)
		}
		return nil
	})
	return nomination, err
}

// RemoveNomination withdraws a player's eligibility. Existing events are
// left alone; they fail validation only when edited again.
func (s *Service) RemoveNomination(ctx context.Context, gameID, playerID int64) error {
	return s.db.RunInTx(ctx, func(txdb *db.DB) error {
		affected, err := txdb.Queries.DeleteNomination(ctx, gameID, playerID)
		if err != nil {
			return fmt.Errorf("delete nomination: %w", err)
		}
		if affected == 0 {
			return models.ErrNominationNotFound
		}
		return nil
	})
}

// SaveLine creates (or returns) the formation for (game, team, number).
func (s *Service) SaveLine(ctx context.Context, gameID, teamID, lineNumber int64) (store.Line, error) {
	var line store.Line
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		game, err := s.getGame(ctx, txdb.Queries, gameID)
		if err != nil {
			return err
		}
		if !isGameParticipant(game, teamID) {
			return models.Invalid(msgLineTeamNotInGame)
		}

		line, err = txdb.Queries.UpsertLine(ctx, gameID, teamID, lineNumber)
		if err != nil {
			return fmt.Errorf("save line: %w", err)
		}
		return nil
	})
	return line, err
}

// AssignSlot places a player (or an explicit empty slot, playerID 0)
// into a line slot, then recomputes the game so goalie goals-against
// follows goalie changes.
func (s *Service) AssignSlot(ctx context.Context, lineID int64, playerID int64, slot models.LineSlot) (store.LineAssignment, error) {
	var (
		assignment store.LineAssignment
		invalidate func()
	)
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		if !slot.Valid() {
			return models.InvalidField("slot", fmt.Sprintf("Neznámý post: %s", slot))
		}

		line, err := q.GetLine(ctx, lineID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrLineNotFound
			}
			return fmt.Errorf("load line %d: %w", lineID, err)
		}

		if line.LineNumber == models.GoalieLineNumber && slot != models.SlotG {
			return models.Invalid(msgGoalieLineSlotOnly)
		}

		if playerID != 0 {
			player, err := q.GetPlayer(ctx, playerID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return models.ErrPlayerNotFound
				}
				return fmt.Errorf("load player %d: %w", playerID, err)
			}
			if !player.TeamID.Valid || player.TeamID.Int64 != line.TeamID {
				return models.Invalid(msgAssignmentWrongTeam)
			}
			if line.LineNumber == models.GoalieLineNumber && models.Position(player.Position) != models.PositionGoalie {
				return models.Invalid(msgGoalieLineGoalieOnly)
			}

			// Friendly check first; the unique index on
			// (game_id, player_id) is the transactional backstop.
			elsewhere, err := q.AssignmentExistsForPlayer(ctx, line.GameID, playerID, lineID, string(slot))
			if err != nil {
				return fmt.Errorf("check assignments for player %d: %w", playerID, err)
			}
			if elsewhere {
				return models.Invalid(msgPlayerAlreadyInLine)
			}
		}

		assignment, err = q.UpsertAssignment(ctx, lineID, line.GameID, nullInt64(playerID), string(slot))
		if err != nil {
			return fmt.Errorf("assign slot: %w", err)
		}

		invalidate, err = s.engine.RecomputeGameTx(ctx, txdb, line.GameID)
		return err
	})
	if err != nil {
		return store.LineAssignment{}, err
	}
	invalidate()
	return assignment, nil
}

// ClearSlot empties a line slot and recomputes the game.
func (s *Service) ClearSlot(ctx context.Context, lineID int64, slot models.LineSlot) error {
	var invalidate func()
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		line, err := txdb.Queries.GetLine(ctx, lineID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrLineNotFound
			}
			return fmt.Errorf("load line %d: %w", lineID, err)
		}
		if err := txdb.Queries.ClearAssignment(ctx, lineID, string(slot)); err != nil {
			return fmt.Errorf("clear slot: %w", err)
		}
		invalidate, err = s.engine.RecomputeGameTx(ctx, txdb, line.GameID)
		return err
	})
	if err != nil {
		return err
	}
	invalidate()
	return nil
}

func (s *Service) getGame(ctx context.Context, q *store.Queries, gameID int64) (store.Game, error) {
	game, err := q.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Game{}, models.ErrGameNotFound
		}
		return store.Game{}, fmt.Errorf("load game %d: %w", gameID, err)
	}
	return game, nil
}

// syncTeamEvent keeps the one calendar event per game in step with the
// game header.
func (s *Service) syncTeamEvent(ctx context.Context, q *store.Queries, game store.Game) error {
	home, err := q.GetTeam(ctx, game.HomeTeamID)
	if err != nil {
		return teamLookupErr(game.HomeTeamID, err)
	}
	away, err := q.GetTeam(ctx, game.AwayTeamID)
	if err != nil {
		return teamLookupErr(game.AwayTeamID, err)
	}

	prefix := "Zápas"
	switch models.Competition(game.Competition) {
	case models.CompetitionLeague:
		if game.LeagueID.Valid {
			if league, err := q.GetLeague(ctx, game.LeagueID.Int64); err == nil {
				prefix = fmt.Sprintf("Liga %s %s", league.Name, league.Season)
			}
		}
	case models.CompetitionTournament:
		if game.TournamentID.Valid {
			if tournament, err := q.GetTournament(ctx, game.TournamentID.Int64); err == nil {
				prefix = fmt.Sprintf("Turnaj %s", tournament.Name)
			}
		}
	case models.CompetitionFriendly:
		prefix = "Přátelský"
	}

	_, err = q.UpsertTeamEvent(ctx, store.UpsertTeamEventParams{
		GameID:    game.ID,
		Title:     fmt.Sprintf("%s – Zápas: %s vs %s", prefix, home.Name, away.Name),
		StartsAt:  game.StartsAt,
		EndsAt:    game.StartsAt,
		StadiumID: game.StadiumID,
	})
	if err != nil {
		return fmt.Errorf("sync team event for game %d: %w", game.ID, err)
	}
	return nil
}

func nullInt64(value int64) sql.NullInt64 {
	if value == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: value, Valid: true}
}
