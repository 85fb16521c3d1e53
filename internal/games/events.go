// internal/games/events.go
package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
)

type GoalInput struct {
	GameID         int64
	TeamID         int64
	Period         models.Period
	SecondInPeriod int64
	ScorerID       int64
	Assist1ID      int64
	Assist2ID      int64
	Strength       models.Strength
}

// ApplyGoal validates and records a goal event, then recomputes the
// game's statistics in the same transaction.
func (s *Service) ApplyGoal(ctx context.Context, input GoalInput) (store.Goal, error) {
	var (
		goal       store.Goal
		invalidate func()
	)
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		game, err := s.getGame(ctx, q, input.GameID)
		if err != nil {
			return err
		}
		if err := s.validateGoal(ctx, q, game, input); err != nil {
			return err
		}

		if input.Strength == "" {
			input.Strength = models.StrengthEV
		}
		goal, err = q.CreateGoal(ctx, store.CreateGoalParams{
			GameID:         input.GameID,
			TeamID:         input.TeamID,
			Period:         int64(input.Period),
			SecondInPeriod: input.SecondInPeriod,
			ScorerID:       input.ScorerID,
			Assist1ID:      nullInt64(input.Assist1ID),
			Assist2ID:      nullInt64(input.Assist2ID),
			Strength:       string(input.Strength),
		})
		if err != nil {
			return fmt.Errorf("create goal: %w", err)
		}

		invalidate, err = s.engine.RecomputeGameTx(ctx, txdb, input.GameID)
		return err
	})
	if err != nil {
		return store.Goal{}, err
	}
	invalidate()

	log.Ctx(ctx).Info().
		Int64("game_id", goal.GameID).
		Int64("scorer_id", goal.ScorerID).
		Str("clock", models.Clock(goal.SecondInPeriod)).
		Msg("Goal recorded")
	return goal, nil
}

func (s *Service) validateGoal(ctx context.Context, q *store.Queries, game store.Game, input GoalInput) error {
	if !isGameParticipant(game, input.TeamID) {
		return models.Invalid(msgGoalWrongTeam)
	}
	if !input.Period.Valid() {
		return models.InvalidField("period", fmt.Sprintf("Neznámá třetina: %d", input.Period))
	}
	if input.Strength != "" && !input.Strength.Valid() {
		return models.InvalidField("strength", fmt.Sprintf("Neznámá síla hry: %s", input.Strength))
	}

	participants := []int64{input.ScorerID}
	if input.Assist1ID != 0 {
		participants = append(participants, input.Assist1ID)
	}
	if input.Assist2ID != 0 {
		participants = append(participants, input.Assist2ID)
	}
	for _, playerID := range participants {
		if err := validateEventParticipant(ctx, q, input.GameID, input.TeamID, playerID,
			msgGoalWrongTeam, msgGoalNotNominated); err != nil {
			return err
		}
	}

	if input.Assist1ID != 0 && input.Assist1ID == input.ScorerID {
		return models.Invalid(msgAssist1IsScorer)
	}
	if input.Assist2ID != 0 && (input.Assist2ID == input.ScorerID || input.Assist2ID == input.Assist1ID) {
		return models.Invalid(msgAssist2Duplicate)
	}

	// The stored score is authoritative; goal events must fit under it.
	isHome := input.TeamID == game.HomeTeamID
	limit := game.ScoreAway
	if isHome {
		limit = game.ScoreHome
	}
	already, err := q.CountTeamGoals(ctx, input.GameID, input.TeamID, 0)
	if err != nil {
		return fmt.Errorf("count goals: %w", err)
	}
	if already+1 > limit {
		return models.Invalid(msgGoalsExceedScore(isHome, already+1, limit))
	}

	return nil
}

// DeleteGoal removes a goal event and recomputes its game.
func (s *Service) DeleteGoal(ctx context.Context, goalID int64) error {
	var invalidate func()
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		goal, err := txdb.Queries.GetGoal(ctx, goalID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrGoalNotFound
			}
			return fmt.Errorf("load goal %d: %w", goalID, err)
		}
		if err := txdb.Queries.DeleteGoal(ctx, goalID); err != nil {
			return fmt.Errorf("delete goal %d: %w", goalID, err)
		}
		invalidate, err = s.engine.RecomputeGameTx(ctx, txdb, goal.GameID)
		return err
	})
	if err != nil {
		return err
	}
	invalidate()
	return nil
}

type PenaltyInput struct {
	GameID            int64
	TeamID            int64
	Period            models.Period
	SecondInPeriod    int64
	PenalizedPlayerID int64
	Minutes           int64
	PenaltyType       models.PenaltyType
	Reason            string
}

// ApplyPenalty validates and records a penalty event, then recomputes
// the game's statistics in the same transaction.
func (s *Service) ApplyPenalty(ctx context.Context, input PenaltyInput) (store.Penalty, error) {
	var (
		penalty    store.Penalty
		invalidate func()
	)
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		q := txdb.Queries

		game, err := s.getGame(ctx, q, input.GameID)
		if err != nil {
			return err
		}
		if !isGameParticipant(game, input.TeamID) {
			return models.Invalid(msgPenaltyWrongTeam)
		}
		if !input.Period.Valid() {
			return models.InvalidField("period", fmt.Sprintf("Neznámá třetina: %d", input.Period))
		}
		if input.PenaltyType != "" && !input.PenaltyType.Valid() {
			return models.InvalidField("penalty_type", fmt.Sprintf("Neznámý typ trestu: %s", input.PenaltyType))
		}
		if input.Minutes < 0 {
			return models.InvalidField("minutes", "Délka trestu nesmí být záporná.")
		}
		if err := validateEventParticipant(ctx, q, input.GameID, input.TeamID, input.PenalizedPlayerID,
			msgPenaltyWrongTeam, msgPenaltyNotNominated); err != nil {
			return err
		}

		if input.PenaltyType == "" {
			input.PenaltyType = models.PenaltyMinor
		}
		penalty, err = q.CreatePenalty(ctx, store.CreatePenaltyParams{
			GameID:            input.GameID,
			TeamID:            input.TeamID,
			Period:            int64(input.Period),
			SecondInPeriod:    input.SecondInPeriod,
			PenalizedPlayerID: input.PenalizedPlayerID,
			Minutes:           input.Minutes,
			PenaltyType:       string(input.PenaltyType),
			Reason:            input.Reason,
		})
		if err != nil {
			return fmt.Errorf("create penalty: %w", err)
		}

		invalidate, err = s.engine.RecomputeGameTx(ctx, txdb, input.GameID)
		return err
	})
	if err != nil {
		return store.Penalty{}, err
	}
	invalidate()
	return penalty, nil
}

// DeletePenalty removes a penalty event and recomputes its game.
func (s *Service) DeletePenalty(ctx context.Context, penaltyID int64) error {
	var invalidate func()
	err := s.db.RunInTx(ctx, func(txdb *db.DB) error {
		penalty, err := txdb.Queries.GetPenalty(ctx, penaltyID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrPenaltyNotFound
			}
			return fmt.Errorf("load penalty %d: %w", penaltyID, err)
		}
		if err := txdb.Queries.DeletePenalty(ctx, penaltyID); err != nil {
			return fmt.Errorf("delete penalty %d: %w", penaltyID, err)
		}
		invalidate, err = s.engine.RecomputeGameTx(ctx, txdb, penalty.GameID)
		return err
	})
	if err != nil {
		return err
	}
	invalidate()
	return nil
}
