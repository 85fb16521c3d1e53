package games

import (
	"context"
	"testing"

	"github.com/powerplayhq/powerplay/internal/models"
	"github.com/powerplayhq/powerplay/internal/testutil"
)

func goalInput(f *testutil.GameFixture) GoalInput {
	return GoalInput{
		GameID:         f.Game.ID,
		TeamID:         f.Home.ID,
		Period:         models.PeriodFirst,
		SecondInPeriod: 150,
		ScorerID:       f.HomeScorer.ID,
	}
}

func TestApplyGoalUpdatesStats(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)

	input := goalInput(f)
	input.Assist1ID = f.HomeAssist.ID
	goal, err := service.ApplyGoal(context.Background(), input)
	if err != nil {
		t.Fatalf("apply goal: %v", err)
	}
	if goal.Strength != string(models.StrengthEV) {
		t.Fatalf("strength = %q, want default EV", goal.Strength)
	}

	if got := f.StatsFor(t, f.HomeScorer.ID); got.Goals != 1 || got.Points != 1 {
		t.Fatalf("scorer stats = g%d pts%d, want g1 pts1", got.Goals, got.Points)
	}
	if got := f.StatsFor(t, f.HomeAssist.ID); got.Assists != 1 || got.Points != 1 {
		t.Fatalf("assist stats = a%d pts%d, want a1 pts1", got.Assists, got.Points)
	}
}

func TestApplyGoalRejectsWrongTeamScorer(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)

	input := goalInput(f)
	input.ScorerID = f.AwayScorer.ID
	_, err := service.ApplyGoal(context.Background(), input)
	wantValidation(t, err, msgGoalWrongTeam)
}

func TestApplyGoalRejectsUnnominatedScorer(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)

	benched := f.CreatePlayer(t, f.Home.ID, 55, models.PositionForward)
	input := goalInput(f)
	input.ScorerID = benched.ID
	_, err := service.ApplyGoal(context.Background(), input)
	wantValidation(t, err, msgGoalNotNominated)
}

func TestApplyGoalAssistRules(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)
	ctx := context.Background()

	input := goalInput(f)
	input.Assist1ID = f.HomeScorer.ID
	_, err := service.ApplyGoal(ctx, input)
	wantValidation(t, err, msgAssist1IsScorer)

	input = goalInput(f)
	input.Assist1ID = f.HomeAssist.ID
	input.Assist2ID = f.HomeAssist.ID
	_, err = service.ApplyGoal(ctx, input)
	wantValidation(t, err, msgAssist2Duplicate)
}

func TestApplyGoalCappedByStoredScore(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)
	ctx := context.Background()

	// The header says 3 home goals; a fourth event must not fit.
	for i := int64(0); i < 3; i++ {
		input := goalInput(f)
		input.SecondInPeriod = 100 + i
		if _, err := service.ApplyGoal(ctx, input); err != nil {
			t.Fatalf("goal %d: %v", i+1, err)
		}
	}

	input := goalInput(f)
	input.SecondInPeriod = 900
	_, err := service.ApplyGoal(ctx, input)
	wantValidation(t, err, msgGoalsExceedScore(true, 4, 3))
}

func TestDeleteGoalRecomputes(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)
	ctx := context.Background()

	goal, err := service.ApplyGoal(ctx, goalInput(f))
	if err != nil {
		t.Fatalf("apply goal: %v", err)
	}
	if err := service.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if got := f.StatsFor(t, f.HomeScorer.ID); got.Goals != 0 || got.Points != 0 {
		t.Fatalf("stats after delete = g%d pts%d, want zeros", got.Goals, got.Points)
	}
}

func TestApplyPenaltyDefaultsAndStats(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)

	penalty, err := service.ApplyPenalty(context.Background(), PenaltyInput{
		GameID:            f.Game.ID,
		TeamID:            f.Home.ID,
		Period:            models.PeriodSecond,
		SecondInPeriod:    421,
		PenalizedPlayerID: f.HomeAssist.ID,
		Minutes:           2,
	})
	if err != nil {
		t.Fatalf("apply penalty: %v", err)
	}
	if penalty.PenaltyType != string(models.PenaltyMinor) {
		t.Fatalf("penalty type = %q, want default minor", penalty.PenaltyType)
	}
	if got := f.StatsFor(t, f.HomeAssist.ID); got.PenaltyMinutes != 2 {
		t.Fatalf("penalty minutes = %d, want 2", got.PenaltyMinutes)
	}
}

func TestApplyPenaltyRejectsNegativeMinutes(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)

	_, err := service.ApplyPenalty(context.Background(), PenaltyInput{
		GameID:            f.Game.ID,
		TeamID:            f.Home.ID,
		Period:            models.PeriodFirst,
		PenalizedPlayerID: f.HomeAssist.ID,
		Minutes:           -2,
	})
	wantValidation(t, err, "Délka trestu nesmí být záporná.")
}

func TestApplyPenaltyRejectsWrongTeam(t *testing.T) {
	f := testutil.NewGameFixture(t)
	service := newTestService(t, f)

	_, err := service.ApplyPenalty(context.Background(), PenaltyInput{
		GameID:            f.Game.ID,
		TeamID:            f.Home.ID,
		Period:            models.PeriodFirst,
		PenalizedPlayerID: f.AwayScorer.ID,
		Minutes:           2,
	})
	wantValidation(t, err, msgPenaltyWrongTeam)
}
