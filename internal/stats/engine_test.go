package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/powerplayhq/powerplay/internal/models"
	"github.com/powerplayhq/powerplay/internal/testutil"
)

func newTestEngine(t *testing.T, f *testutil.GameFixture) *Engine {
	t.Helper()
	engine, err := NewEngine(f.DB, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	return engine
}

func TestRecomputeGamePointsAreGoalsPlusAssists(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)
	ctx := context.Background()

	f.RecordGoal(t, f.Home.ID, f.HomeScorer.ID, f.HomeAssist.ID, models.PeriodFirst, 125)
	f.RecordGoal(t, f.Home.ID, f.HomeScorer.ID, f.HomeAssist.ID, models.PeriodSecond, 310)
	f.RecordGoal(t, f.Home.ID, f.HomeAssist.ID, 0, models.PeriodThird, 80)

	if err := engine.RecomputeGame(ctx, f.Game.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	scorer := f.StatsFor(t, f.HomeScorer.ID)
	if scorer.Goals != 2 || scorer.Assists != 0 || scorer.Points != 2 {
		t.Fatalf("scorer stats = g%d a%d pts%d, want g2 a0 pts2", scorer.Goals, scorer.Assists, scorer.Points)
	}

	assist := f.StatsFor(t, f.HomeAssist.ID)
	if assist.Goals != 1 || assist.Assists != 2 || assist.Points != 3 {
		t.Fatalf("assist stats = g%d a%d pts%d, want g1 a2 pts3", assist.Goals, assist.Assists, assist.Points)
	}
}

func TestRecomputeGameZeroesStaleRows(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)
	ctx := context.Background()

	goal := f.RecordGoal(t, f.Home.ID, f.HomeScorer.ID, 0, models.PeriodFirst, 60)
	if err := engine.RecomputeGame(ctx, f.Game.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := f.StatsFor(t, f.HomeScorer.ID); got.Goals != 1 {
		t.Fatalf("goals = %d, want 1", got.Goals)
	}

	if err := f.DB.Queries.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if err := engine.RecomputeGame(ctx, f.Game.ID); err != nil {
		t.Fatalf("recompute after delete: %v", err)
	}

	got := f.StatsFor(t, f.HomeScorer.ID)
	if got.Goals != 0 || got.Assists != 0 || got.Points != 0 {
		t.Fatalf("stale row not reset: g%d a%d pts%d", got.Goals, got.Assists, got.Points)
	}
}

func TestRecomputeGamePenaltyMinutes(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)

	f.RecordPenalty(t, f.Home.ID, f.HomeAssist.ID, 2)
	f.RecordPenalty(t, f.Home.ID, f.HomeAssist.ID, 5)

	if err := engine.RecomputeGame(context.Background(), f.Game.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := f.StatsFor(t, f.HomeAssist.ID); got.PenaltyMinutes != 7 {
		t.Fatalf("penalty minutes = %d, want 7", got.PenaltyMinutes)
	}
}

func TestRecomputeGameGoalsAgainstFromStoredScore(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)

	// 3:1 in the game header; the goal events do not matter for GA.
	f.AssignGoalie(t, f.HomeGoalie)
	f.AssignGoalie(t, f.AwayGoalie)

	if err := engine.RecomputeGame(context.Background(), f.Game.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	if got := f.StatsFor(t, f.HomeGoalie.ID); got.GoalsAgainst != 1 {
		t.Fatalf("home goalie GA = %d, want 1", got.GoalsAgainst)
	}
	if got := f.StatsFor(t, f.AwayGoalie.ID); got.GoalsAgainst != 3 {
		t.Fatalf("away goalie GA = %d, want 3", got.GoalsAgainst)
	}
}

func TestRecomputeGameSkipsSkaterInGoalieSlot(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)

	// Bypasses service validation to simulate a corrupted lineup.
	f.AssignGoalie(t, f.HomeScorer)

	if err := engine.RecomputeGame(context.Background(), f.Game.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if got := f.StatsFor(t, f.HomeScorer.ID); got.GoalsAgainst != 0 {
		t.Fatalf("skater got goals against: %d", got.GoalsAgainst)
	}
}

func TestRecomputeGameIdempotent(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)
	ctx := context.Background()

	f.RecordGoal(t, f.Home.ID, f.HomeScorer.ID, f.HomeAssist.ID, models.PeriodFirst, 45)
	f.RecordPenalty(t, f.Away.ID, f.AwayScorer.ID, 2)
	f.AssignGoalie(t, f.AwayGoalie)

	if err := engine.RecomputeGame(ctx, f.Game.ID); err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	first, err := f.DB.Queries.ListStatsByGame(ctx, f.Game.ID)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}

	if err := engine.RecomputeGame(ctx, f.Game.ID); err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	second, err := f.DB.Queries.ListStatsByGame(ctx, f.Game.ID)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("row count changed: %d != %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row %d changed between recomputes: %+v != %+v", i, first[i], second[i])
		}
	}
}

func TestRecomputeGameMissingGame(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)

	err := engine.RecomputeGame(context.Background(), 99999)
	if !errors.Is(err, models.ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}
