package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/powerplayhq/powerplay/internal/config"
	"github.com/powerplayhq/powerplay/internal/games"
	"github.com/powerplayhq/powerplay/internal/stats"
	"github.com/powerplayhq/powerplay/internal/teams"
	"github.com/powerplayhq/powerplay/internal/testutil"
)

func newTestRouter(t *testing.T) (*testutil.GameFixture, http.Handler) {
	t.Helper()
	f := testutil.NewGameFixture(t)

	engine, err := stats.NewEngine(f.DB, nil)
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	service, err := games.NewService(f.DB, engine)
	if err != nil {
		t.Fatalf("create games service: %v", err)
	}
	roster, err := teams.NewRosterService(f.DB)
	if err != nil {
		t.Fatalf("create roster service: %v", err)
	}
	totals, err := stats.NewTotalsService(f.DB, nil)
	if err != nil {
		t.Fatalf("create totals service: %v", err)
	}
	primary, err := teams.NewPrimaryResolver(f.DB, config.PrimaryTeamConfig{Name: "HC Vlci"})
	if err != nil {
		t.Fatalf("create primary resolver: %v", err)
	}

	router := NewRouter(&Handlers{
		DB:      f.DB,
		Games:   service,
		Roster:  roster,
		Totals:  totals,
		Primary: primary,
	})
	return f, router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decodeJSON(t, rec, &body)
	if body["status"] != "ok" {
		t.Fatalf("body = %v", body)
	}
}

func TestCreateLeague(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/leagues", map[string]string{
		"name":       "Okresní přebor",
		"season":     "2025/2026",
		"date_start": "2025-09-01",
		"date_end":   "2026-04-30",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var league struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Season string `json:"season"`
	}
	decodeJSON(t, rec, &league)
	if league.ID == 0 || league.Name != "Okresní přebor" || league.Season != "2025/2026" {
		t.Fatalf("league = %+v", league)
	}
}

func TestCreateGameValidationError(t *testing.T) {
	f, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/games", map[string]interface{}{
		"starts_at":    "2025-11-01T18:00:00Z",
		"home_team_id": f.Home.ID,
		"away_team_id": f.Home.ID,
		"competition":  "league",
		"league_id":    f.League.ID,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422, body = %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	decodeJSON(t, rec, &body)
	if body.Error != "Domácí a hostující tým nesmí být stejný." {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestGetGameNotFound(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/games/9999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestInvalidRequestBody(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leagues", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateScoreAndGameStats(t *testing.T) {
	f, router := newTestRouter(t)
	f.AssignGoalie(t, f.HomeGoalie)
	f.AssignGoalie(t, f.AwayGoalie)

	rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/games/%d/score", f.Game.ID), map[string]int64{
		"score_home": 2,
		"score_away": 4,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("score update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/games/%d/stats", f.Game.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}

	var rows []struct {
		PlayerID     int64 `json:"player_id"`
		GoalsAgainst int64 `json:"ga"`
	}
	decodeJSON(t, rec, &rows)

	var homeGoalieGA, awayGoalieGA int64 = -1, -1
	for _, row := range rows {
		switch row.PlayerID {
		case f.HomeGoalie.ID:
			homeGoalieGA = row.GoalsAgainst
		case f.AwayGoalie.ID:
			awayGoalieGA = row.GoalsAgainst
		}
	}
	if homeGoalieGA != 4 || awayGoalieGA != 2 {
		t.Fatalf("goalie GA home/away = %d/%d, want 4/2", homeGoalieGA, awayGoalieGA)
	}
}

func TestRecordGoalOverHTTP(t *testing.T) {
	f, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/games/%d/goals", f.Game.ID), map[string]interface{}{
		"team_id":          f.Home.ID,
		"scorer_id":        f.HomeScorer.ID,
		"assist1_id":       f.HomeAssist.ID,
		"period":           2,
		"second_in_period": 312,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var goal struct {
		ID       int64  `json:"id"`
		Strength string `json:"strength"`
		Clock    string `json:"clock"`
	}
	decodeJSON(t, rec, &goal)
	if goal.Strength != "EV" || goal.Clock != "5:12" {
		t.Fatalf("goal = %+v", goal)
	}

	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/goals/%d", goal.ID), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
}

func TestPrimaryTeamEndpoint(t *testing.T) {
	f, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/teams/primary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var team struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	decodeJSON(t, rec, &team)
	if team.ID != f.Home.ID || team.Name != "HC Vlci" {
		t.Fatalf("primary team = %+v", team)
	}
}

func TestLeagueStandingsEndpoint(t *testing.T) {
	f, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/leagues/%d/standings", f.League.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var rows []struct {
		TeamID int64 `json:"teamId"`
		Points int64 `json:"points"`
	}
	decodeJSON(t, rec, &rows)
	if len(rows) != 2 {
		t.Fatalf("standings rows = %d, want 2", len(rows))
	}
	// Fixture game is a 3:1 home win.
	if rows[0].TeamID != f.Home.ID || rows[0].Points != 3 {
		t.Fatalf("leader = %+v", rows[0])
	}
}

func TestRequestIDHeader(t *testing.T) {
	_, router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing X-Request-ID header")
	}
}
