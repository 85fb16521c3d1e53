package stats

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
	"github.com/powerplayhq/powerplay/internal/testutil"
)

func TestPlayerSeasonTotalsLeagueFilter(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)
	ctx := context.Background()

	f.RecordGoal(t, f.Home.ID, f.HomeScorer.ID, f.HomeAssist.ID, models.PeriodFirst, 90)
	f.RecordGoal(t, f.Home.ID, f.HomeScorer.ID, 0, models.PeriodSecond, 200)
	f.RecordPenalty(t, f.Home.ID, f.HomeScorer.ID, 2)
	if err := engine.RecomputeGame(ctx, f.Game.ID); err != nil {
		t.Fatalf("recompute: %v", err)
	}

	service, err := NewTotalsService(f.DB, nil)
	if err != nil {
		t.Fatalf("create totals service: %v", err)
	}

	totals, err := service.PlayerSeasonTotals(ctx, f.HomeScorer.ID, &f.League, FilterLeague)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	want := Totals{GamesPlayed: 1, Goals: 2, Assists: 0, Points: 2, PenaltyMinutes: 2}
	if totals != want {
		t.Fatalf("totals = %+v, want %+v", totals, want)
	}
}

func TestPlayerSeasonTotalsGamesPlayedFromNominations(t *testing.T) {
	f := testutil.NewGameFixture(t)
	ctx := context.Background()

	// Second league game with a nomination but no events still counts
	// as a game played.
	game2, err := f.DB.Queries.CreateGame(ctx, store.CreateGameParams{
		StartsAt:    time.Date(2025, 11, 2, 17, 0, 0, 0, time.UTC),
		HomeTeamID:  f.Away.ID,
		AwayTeamID:  f.Home.ID,
		Competition: string(models.CompetitionLeague),
		LeagueID:    sql.NullInt64{Int64: f.League.ID, Valid: true},
	})
	if err != nil {
		t.Fatalf("create second game: %v", err)
	}
	if _, err := f.DB.Queries.CreateNomination(ctx, game2.ID, f.HomeScorer.ID, f.Home.ID); err != nil {
		t.Fatalf("nominate: %v", err)
	}

	service, err := NewTotalsService(f.DB, nil)
	if err != nil {
		t.Fatalf("create totals service: %v", err)
	}
	totals, err := service.PlayerSeasonTotals(ctx, f.HomeScorer.ID, &f.League, FilterLeague)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.GamesPlayed != 2 {
		t.Fatalf("games played = %d, want 2", totals.GamesPlayed)
	}
}

func TestPlayerSeasonTotalsFriendlyWindow(t *testing.T) {
	f := testutil.NewGameFixture(t)
	engine := newTestEngine(t, f)
	ctx := context.Background()

	inWindow, err := f.DB.Queries.CreateGame(ctx, store.CreateGameParams{
		StartsAt:    time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC),
		HomeTeamID:  f.Home.ID,
		AwayTeamID:  f.Away.ID,
		ScoreHome:   2,
		Competition: string(models.CompetitionFriendly),
	})
	if err != nil {
		t.Fatalf("create friendly: %v", err)
	}
	outOfWindow, err := f.DB.Queries.CreateGame(ctx, store.CreateGameParams{
		StartsAt:    time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
		HomeTeamID:  f.Home.ID,
		AwayTeamID:  f.Away.ID,
		ScoreHome:   2,
		Competition: string(models.CompetitionFriendly),
	})
	if err != nil {
		t.Fatalf("create out-of-window friendly: %v", err)
	}

	for _, game := range []store.Game{inWindow, outOfWindow} {
		if _, err := f.DB.Queries.CreateNomination(ctx, game.ID, f.HomeScorer.ID, f.Home.ID); err != nil {
			t.Fatalf("nominate: %v", err)
		}
		if _, err := f.DB.Queries.CreateGoal(ctx, store.CreateGoalParams{
			GameID:         game.ID,
			TeamID:         f.Home.ID,
			Period:         int64(models.PeriodFirst),
			SecondInPeriod: 30,
			ScorerID:       f.HomeScorer.ID,
			Strength:       string(models.StrengthEV),
		}); err != nil {
			t.Fatalf("create goal: %v", err)
		}
		if err := engine.RecomputeGame(ctx, game.ID); err != nil {
			t.Fatalf("recompute: %v", err)
		}
	}

	service, err := NewTotalsService(f.DB, nil)
	if err != nil {
		t.Fatalf("create totals service: %v", err)
	}

	// With the season window only the December friendly counts.
	totals, err := service.PlayerSeasonTotals(ctx, f.HomeScorer.ID, &f.League, FilterFriendly)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Goals != 1 || totals.GamesPlayed != 1 {
		t.Fatalf("windowed friendly totals = %+v, want 1 goal in 1 game", totals)
	}

	// Without a season context both friendlies count.
	totals, err = service.PlayerSeasonTotals(ctx, f.HomeScorer.ID, nil, FilterFriendly)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Goals != 2 || totals.GamesPlayed != 2 {
		t.Fatalf("unwindowed friendly totals = %+v, want 2 goals in 2 games", totals)
	}
}

func TestPlayerSeasonTotalsGoalieFlag(t *testing.T) {
	f := testutil.NewGameFixture(t)

	service, err := NewTotalsService(f.DB, nil)
	if err != nil {
		t.Fatalf("create totals service: %v", err)
	}
	totals, err := service.PlayerSeasonTotals(context.Background(), f.HomeGoalie.ID, &f.League, FilterLeague)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if !totals.Goalie {
		t.Fatal("goalie flag not set for goalie")
	}
}

func TestResolveSeasonWindowDirectLeague(t *testing.T) {
	f := testutil.NewGameFixture(t)

	service, err := NewTotalsService(f.DB, nil)
	if err != nil {
		t.Fatalf("create totals service: %v", err)
	}
	league, err := service.ResolveSeasonWindow(context.Background(), f.Home.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if league == nil || league.ID != f.League.ID {
		t.Fatalf("resolved league = %+v, want league %d", league, f.League.ID)
	}
}

func TestNormalizeFilterDefaultsToLeague(t *testing.T) {
	cases := map[string]CompetitionFilter{
		"league":     FilterLeague,
		"tournament": FilterTournament,
		"friendly":   FilterFriendly,
		"all":        FilterAll,
		"":           FilterLeague,
		"bogus":      FilterLeague,
	}
	for input, want := range cases {
		if got := NormalizeFilter(input); got != want {
			t.Fatalf("NormalizeFilter(%q) = %q, want %q", input, got, want)
		}
	}
}
