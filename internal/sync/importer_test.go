package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/powerplayhq/powerplay/internal/models"
	"github.com/powerplayhq/powerplay/internal/stats"
	"github.com/powerplayhq/powerplay/internal/testutil"
)

type remotePayload struct {
	teams   []map[string]interface{}
	matches []RemoteMatch
}

func newRemoteAPI(t *testing.T, payload *remotePayload) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload.teams)
	})
	mux.HandleFunc("/matches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"matches": payload.matches})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestImporter(t *testing.T, f *testutil.GameFixture, baseURL string) *Importer {
	t.Helper()
	engine, err := stats.NewEngine(f.DB, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	importer, err := NewImporter(f.DB, NewClient(baseURL, nil), engine)
	if err != nil {
		t.Fatalf("create importer: %v", err)
	}
	return importer
}

func TestImporterCreatesTeamsStadiumsAndGames(t *testing.T) {
	f := testutil.NewGameFixture(t)
	ctx := context.Background()

	server := newRemoteAPI(t, &remotePayload{
		teams: []map[string]interface{}{
			{"id": 1, "name": "HC Vlci"},
			{"id": 2, "name": "HC Orli"},
		},
		matches: []RemoteMatch{
			{
				MatchDate:  "2025-11-09T17:00:00Z",
				HomeTeamID: 1,
				AwayTeamID: 2,
				HomeScore:  4,
				AwayScore:  2,
				Venue:      "Zimní stadion Třebíč",
			},
		},
	})

	importer := newTestImporter(t, f, server.URL)
	summary, err := importer.Run(ctx, Options{LeagueID: f.League.ID})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if summary.TeamsCreated != 1 {
		t.Fatalf("teams created = %d, want 1 (Vlci already exist)", summary.TeamsCreated)
	}
	if summary.StadiumsCreated != 1 || summary.GamesCreated != 1 {
		t.Fatalf("summary = %+v, want 1 stadium and 1 game created", summary)
	}

	orli, err := f.DB.Queries.GetTeamByNameFold(ctx, "hc orli")
	if err != nil {
		t.Fatalf("new team not found: %v", err)
	}
	if orli.LeagueID != f.League.ID {
		t.Fatalf("new team league = %d, want %d", orli.LeagueID, f.League.ID)
	}

	games, err := f.DB.Queries.ListGamesByLeague(ctx, f.League.ID)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	// Fixture game plus the imported one.
	if len(games) != 2 {
		t.Fatalf("games = %d, want 2", len(games))
	}
}

func TestImporterIsIdempotent(t *testing.T) {
	f := testutil.NewGameFixture(t)
	ctx := context.Background()

	server := newRemoteAPI(t, &remotePayload{
		teams: []map[string]interface{}{
			{"id": 1, "name": "HC Vlci"},
			{"id": 2, "name": "HC Medvědi"},
		},
		matches: []RemoteMatch{
			{MatchDate: "2025-11-09T17:00:00Z", HomeTeamID: 1, AwayTeamID: 2, HomeScore: 2, AwayScore: 2},
		},
	})

	importer := newTestImporter(t, f, server.URL)
	if _, err := importer.Run(ctx, Options{LeagueID: f.League.ID}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	summary, err := importer.Run(ctx, Options{LeagueID: f.League.ID})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.GamesCreated != 0 || summary.GamesUpdated != 0 || summary.GamesUnchanged != 1 {
		t.Fatalf("second run summary = %+v, want 1 unchanged game", summary)
	}
}

func TestImporterUpdatesScoreAndPrunesGoals(t *testing.T) {
	f := testutil.NewGameFixture(t)
	ctx := context.Background()

	// The fixture game is 3:1 with three recorded home goals.
	f.RecordGoal(t, f.Home.ID, f.HomeScorer.ID, 0, models.PeriodFirst, 100)
	f.RecordGoal(t, f.Home.ID, f.HomeScorer.ID, 0, models.PeriodSecond, 200)
	f.RecordGoal(t, f.Home.ID, f.HomeAssist.ID, 0, models.PeriodThird, 300)

	server := newRemoteAPI(t, &remotePayload{
		teams: []map[string]interface{}{
			{"id": 1, "name": "HC Vlci"},
			{"id": 2, "name": "HC Medvědi"},
		},
		matches: []RemoteMatch{
			{
				MatchDate:  "2025-10-15T18:30:00Z",
				HomeTeamID: 1,
				AwayTeamID: 2,
				HomeScore:  1,
				AwayScore:  1,
			},
		},
	})

	importer := newTestImporter(t, f, server.URL)
	summary, err := importer.Run(ctx, Options{LeagueID: f.League.ID})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.GamesUpdated != 1 {
		t.Fatalf("games updated = %d, want 1", summary.GamesUpdated)
	}
	if summary.GoalsPruned != 2 {
		t.Fatalf("goals pruned = %d, want 2", summary.GoalsPruned)
	}

	game, err := f.DB.Queries.GetGame(ctx, f.Game.ID)
	if err != nil {
		t.Fatalf("load game: %v", err)
	}
	if game.ScoreHome != 1 || game.ScoreAway != 1 {
		t.Fatalf("score = %d:%d, want 1:1", game.ScoreHome, game.ScoreAway)
	}

	goals, err := f.DB.Queries.ListGoalsByGame(ctx, f.Game.ID)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("goals remaining = %d, want 1", len(goals))
	}
	// Pruning drops the newest events; the first-period goal survives.
	if goals[0].Period != int64(models.PeriodFirst) {
		t.Fatalf("surviving goal period = %d, want 1", goals[0].Period)
	}
}

func TestImporterDryRunWritesNothing(t *testing.T) {
	f := testutil.NewGameFixture(t)
	ctx := context.Background()

	server := newRemoteAPI(t, &remotePayload{
		teams: []map[string]interface{}{
			{"id": 1, "name": "HC Vlci"},
			{"id": 2, "name": "HC Noví"},
		},
		matches: []RemoteMatch{
			{MatchDate: "2025-11-09T17:00:00Z", HomeTeamID: 1, AwayTeamID: 2, HomeScore: 3, AwayScore: 0, Venue: "Nová hala"},
		},
	})

	importer := newTestImporter(t, f, server.URL)
	summary, err := importer.Run(ctx, Options{LeagueID: f.League.ID, DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if summary.TeamsCreated != 1 || summary.StadiumsCreated != 1 || summary.GamesCreated != 1 {
		t.Fatalf("dry run summary = %+v, want 1 team, 1 stadium, 1 game", summary)
	}

	if _, err := f.DB.Queries.GetTeamByNameFold(ctx, "HC Noví"); err == nil {
		t.Fatal("dry run created a team")
	}
	games, err := f.DB.Queries.ListGamesByLeague(ctx, f.League.ID)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("games = %d, want only the fixture game", len(games))
	}
}

func TestImporterSkipsMalformedMatches(t *testing.T) {
	f := testutil.NewGameFixture(t)

	server := newRemoteAPI(t, &remotePayload{
		teams: []map[string]interface{}{
			{"id": 1, "name": "HC Vlci"},
			{"id": 2, "name": "HC Medvědi"},
		},
		matches: []RemoteMatch{
			{MatchDate: "not-a-date", HomeTeamID: 1, AwayTeamID: 2},
			{MatchDate: "2025-11-09T17:00:00Z", HomeTeamID: 1, AwayTeamID: 99},
			{MatchDate: "2025-11-09T17:00:00Z", HomeTeamID: 1, AwayTeamID: 1},
		},
	})

	importer := newTestImporter(t, f, server.URL)
	summary, err := importer.Run(context.Background(), Options{LeagueID: f.League.ID})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Skipped != 3 {
		t.Fatalf("skipped = %d, want 3", summary.Skipped)
	}
	if summary.GamesCreated != 0 {
		t.Fatalf("games created = %d, want 0", summary.GamesCreated)
	}
}

func TestImporterExpandsLeagueDates(t *testing.T) {
	f := testutil.NewGameFixture(t)
	ctx := context.Background()

	// A match after the configured season end.
	server := newRemoteAPI(t, &remotePayload{
		teams: []map[string]interface{}{
			{"id": 1, "name": "HC Vlci"},
			{"id": 2, "name": "HC Medvědi"},
		},
		matches: []RemoteMatch{
			{MatchDate: "2026-05-10T17:00:00Z", HomeTeamID: 1, AwayTeamID: 2, HomeScore: 1, AwayScore: 0},
		},
	})

	importer := newTestImporter(t, f, server.URL)
	if _, err := importer.Run(ctx, Options{LeagueID: f.League.ID, ExpandLeagueDates: true}); err != nil {
		t.Fatalf("run: %v", err)
	}

	league, err := f.DB.Queries.GetLeague(ctx, f.League.ID)
	if err != nil {
		t.Fatalf("load league: %v", err)
	}
	if !league.DateEnd.After(f.League.DateEnd) {
		t.Fatalf("league end not expanded: %v", league.DateEnd)
	}
}

func TestImporterCreatesLeagueByNameAndSeason(t *testing.T) {
	f := testutil.NewGameFixture(t)
	ctx := context.Background()

	server := newRemoteAPI(t, &remotePayload{})
	importer := newTestImporter(t, f, server.URL)

	if _, err := importer.Run(ctx, Options{LeagueName: "Městská liga", LeagueSeason: "2026/2027"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	league, err := f.DB.Queries.GetLeagueByNameSeason(ctx, "Městská liga", "2026/2027")
	if err != nil {
		t.Fatalf("league not created: %v", err)
	}
	if league.DateStart.Month() != time.September || league.DateEnd.Month() != time.April {
		t.Fatalf("league window = %v – %v, want Sep–Apr", league.DateStart, league.DateEnd)
	}
}

func TestParseMatchDate(t *testing.T) {
	parsed, err := parseMatchDate("2025-11-09T18:00:00+01:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Location() != time.UTC || parsed.Hour() != 17 {
		t.Fatalf("parsed = %v, want 17:00 UTC", parsed)
	}
	if _, err := parseMatchDate("09.11.2025"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestSeasonBounds(t *testing.T) {
	start, end, err := seasonBounds("2025/2026")
	if err != nil {
		t.Fatalf("season bounds: %v", err)
	}
	if start.Year() != 2025 || start.Month() != time.September || start.Day() != 1 {
		t.Fatalf("start = %v, want 2025-09-01", start)
	}
	if end.Year() != 2026 || end.Month() != time.April || end.Day() != 30 {
		t.Fatalf("end = %v, want 2026-04-30", end)
	}
	if _, _, err := seasonBounds("letos"); err == nil {
		t.Fatal("expected error for unparseable season label")
	}
}
