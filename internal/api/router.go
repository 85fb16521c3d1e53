// internal/api/router.go
package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/powerplayhq/powerplay/internal/db"
	"github.com/powerplayhq/powerplay/internal/games"
	"github.com/powerplayhq/powerplay/internal/stats"
	"github.com/powerplayhq/powerplay/internal/teams"
)

// Handlers bundles the services the HTTP layer fronts.
type Handlers struct {
	DB      *db.DB
	Games   *games.Service
	Roster  *teams.RosterService
	Totals  *stats.TotalsService
	Primary *teams.PrimaryResolver
}

// NewRouter builds the API route table.
func NewRouter(h *Handlers) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/leagues", h.handleCreateLeague).Methods(http.MethodPost)
	api.HandleFunc("/leagues", h.handleListLeagues).Methods(http.MethodGet)
	api.HandleFunc("/leagues/{id:[0-9]+}/standings", h.handleLeagueStandings).Methods(http.MethodGet)
	api.HandleFunc("/tournaments/{id:[0-9]+}/standings", h.handleTournamentStandings).Methods(http.MethodGet)

	api.HandleFunc("/teams", h.handleCreateTeam).Methods(http.MethodPost)
	api.HandleFunc("/teams", h.handleListTeams).Methods(http.MethodGet)
	api.HandleFunc("/teams/{id:[0-9]+}/players", h.handleListTeamPlayers).Methods(http.MethodGet)
	api.HandleFunc("/teams/primary", h.handlePrimaryTeam).Methods(http.MethodGet)

	api.HandleFunc("/players", h.handleCreatePlayer).Methods(http.MethodPost)
	api.HandleFunc("/players/{id:[0-9]+}/totals", h.handlePlayerTotals).Methods(http.MethodGet)

	api.HandleFunc("/games", h.handleCreateGame).Methods(http.MethodPost)
	api.HandleFunc("/games/{id:[0-9]+}", h.handleGetGame).Methods(http.MethodGet)
	api.HandleFunc("/games/{id:[0-9]+}", h.handleDeleteGame).Methods(http.MethodDelete)
	api.HandleFunc("/games/{id:[0-9]+}/score", h.handleUpdateScore).Methods(http.MethodPut)
	api.HandleFunc("/games/{id:[0-9]+}/stats", h.handleGameStats).Methods(http.MethodGet)

	api.HandleFunc("/games/{id:[0-9]+}/nominations", h.handleNominate).Methods(http.MethodPost)
	api.HandleFunc("/games/{id:[0-9]+}/nominations", h.handleListNominations).Methods(http.MethodGet)
	api.HandleFunc("/games/{id:[0-9]+}/nominations/{playerID:[0-9]+}", h.handleRemoveNomination).Methods(http.MethodDelete)

	api.HandleFunc("/games/{id:[0-9]+}/lines", h.handleSaveLine).Methods(http.MethodPost)
	api.HandleFunc("/games/{id:[0-9]+}/lines", h.handleListLines).Methods(http.MethodGet)
	api.HandleFunc("/lines/{id:[0-9]+}/slots/{slot}", h.handleAssignSlot).Methods(http.MethodPut)
	api.HandleFunc("/lines/{id:[0-9]+}/slots/{slot}", h.handleClearSlot).Methods(http.MethodDelete)

	api.HandleFunc("/games/{id:[0-9]+}/goals", h.handleApplyGoal).Methods(http.MethodPost)
	api.HandleFunc("/games/{id:[0-9]+}/goals", h.handleListGoals).Methods(http.MethodGet)
	api.HandleFunc("/goals/{id:[0-9]+}", h.handleDeleteGoal).Methods(http.MethodDelete)

	api.HandleFunc("/games/{id:[0-9]+}/penalties", h.handleApplyPenalty).Methods(http.MethodPost)
	api.HandleFunc("/games/{id:[0-9]+}/penalties", h.handleListPenalties).Methods(http.MethodGet)
	api.HandleFunc("/penalties/{id:[0-9]+}", h.handleDeletePenalty).Methods(http.MethodDelete)

	return ChainMiddleware(r, WithLogging, WithRecovery, WithRequestID)
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID reads a numeric path variable. The route patterns guarantee
// digits, so the parse only fails on overflow.
func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}
