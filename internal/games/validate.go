// internal/games/validate.go
package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/powerplayhq/powerplay/internal/db/store"
	"github.com/powerplayhq/powerplay/internal/models"
)

// Validation messages are the Czech strings the admin forms show.
const (
	msgSameTeams            = "Domácí a hostující tým nesmí být stejný."
	msgLeagueRequired       = "Ligový zápas musí mít vybranou ligu."
	msgLeagueNoTournament   = "Ligový zápas nesmí mít vyplněný turnaj."
	msgHomeTeamNotInLeague  = "Domácí tým nepatří do zvolené ligy."
	msgAwayTeamNotInLeague  = "Hostující tým nepatří do zvolené ligy."
	msgOutsideLeagueSeason  = "Termín zápasu je mimo rozmezí sezóny ligy."
	msgTournamentRequired   = "Turnajový zápas musí mít vybraný turnaj."
	msgTournamentNoLeague   = "Turnajový zápas nesmí mít vybranou ligu."
	msgOutsideTournament    = "Termín zápasu je mimo rozmezí turnaje."
	msgFriendlyNoContext    = "Přátelský zápas nesmí mít vyplněnou ligu/turnaj."
	msgPlayerNotOnTeam      = "Hráč nepatří do vybraného týmu."
	msgTeamNotInGame        = "Tým v nominaci není účastníkem tohoto zápasu."
	msgLineTeamNotInGame    = "Lajna může patřit jen domácímu nebo hostujícímu týmu daného zápasu."
	msgAssignmentWrongTeam  = "Hráč v lajně musí patřit do stejného týmu jako lajna."
	msgGoalieLineSlotOnly   = "V brankářské lajně (0) je povolen pouze post Brankář."
	msgGoalieLineGoalieOnly = "Do brankářské lajny lze přiřadit jen hráče s pozicí Brankář."
	msgPlayerAlreadyInLine  = "Hráč už je přiřazen v jiné lajně v tomto zápase."
	msgGoalWrongTeam        = "Střelec i asistenti musí být z týmu, který gól vstřelil."
	msgGoalNotNominated     = "Střelec/asistenti musí být nominováni do tohoto zápasu."
	msgAssist1IsScorer      = "Asistent 1 nesmí být zároveň střelcem."
	msgAssist2Duplicate     = "Asistent 2 nesmí být střelcem ani shodný s Asistentem 1."
	msgPenaltyWrongTeam     = "Trest musí být připsán týmu, za který faulující hráč hraje v zápase."
	msgPenaltyNotNominated  = "Faulující hráč musí být nominován do tohoto zápasu."
	msgSeasonEndBeforeStart = "Konec sezóny musí být po začátku."
)

func msgGoalsExceedScore(isHome bool, count, limit int64) string {
	side := "hostů"
	if isHome {
		side = "domácích"
	}
	return fmt.Sprintf("Počet gólů %s (%d) by překročil skóre (%d). Nejdřív upravte Skóre v hlavičce zápasu.", side, count, limit)
}

// validateGame checks team distinctness and the competition-specific
// rules for league, tournament and friendly games.
func validateGame(ctx context.Context, q *store.Queries, input CreateGameInput) error {
	if input.HomeTeamID == input.AwayTeamID {
		return models.Invalid(msgSameTeams)
	}
	if !input.Competition.Valid() {
		return models.InvalidField("competition", fmt.Sprintf("Neznámý typ utkání: %s", input.Competition))
	}

	switch input.Competition {
	case models.CompetitionLeague:
		if input.LeagueID == 0 {
			return models.InvalidField("league", msgLeagueRequired)
		}
		if input.TournamentID != 0 {
			return models.InvalidField("tournament", msgLeagueNoTournament)
		}
		league, err := q.GetLeague(ctx, input.LeagueID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrLeagueNotFound
			}
			return fmt.Errorf("load league %d: %w", input.LeagueID, err)
		}

		home, err := q.GetTeam(ctx, input.HomeTeamID)
		if err != nil {
			return teamLookupErr(input.HomeTeamID, err)
		}
		if home.LeagueID != league.ID {
			return models.InvalidField("home_team", msgHomeTeamNotInLeague)
		}
		away, err := q.GetTeam(ctx, input.AwayTeamID)
		if err != nil {
			return teamLookupErr(input.AwayTeamID, err)
		}
		if away.LeagueID != league.ID {
			return models.InvalidField("away_team", msgAwayTeamNotInLeague)
		}

		if !withinWindow(input.StartsAt, league.DateStart, league.DateEnd) {
			return models.InvalidField("starts_at", msgOutsideLeagueSeason)
		}

	case models.CompetitionTournament:
		if input.TournamentID == 0 {
			return models.InvalidField("tournament", msgTournamentRequired)
		}
		if input.LeagueID != 0 {
			return models.InvalidField("league", msgTournamentNoLeague)
		}
		tournament, err := q.GetTournament(ctx, input.TournamentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrTournamentNotFound
			}
			return fmt.Errorf("load tournament %d: %w", input.TournamentID, err)
		}
		if tournament.DateStart.Valid && tournament.DateEnd.Valid &&
			!withinWindow(input.StartsAt, tournament.DateStart.Time, tournament.DateEnd.Time) {
			return models.InvalidField("starts_at", msgOutsideTournament)
		}

	case models.CompetitionFriendly:
		if input.LeagueID != 0 || input.TournamentID != 0 {
			return models.Invalid(msgFriendlyNoContext)
		}
	}

	return nil
}

// withinWindow compares by calendar date, not instant; a game on the
// season's last day is in season regardless of time of day.
func withinWindow(startsAt, dateStart, dateEnd time.Time) bool {
	if dateStart.IsZero() || dateEnd.IsZero() {
		return true
	}
	day := startsAt.Truncate(24 * time.Hour)
	return !day.Before(dateStart.Truncate(24*time.Hour)) && !day.After(dateEnd.Truncate(24*time.Hour))
}

// validateEventParticipant checks that a goal or penalty participant
// belongs to the credited team and is nominated to the game.
func validateEventParticipant(ctx context.Context, q *store.Queries, gameID, teamID, playerID int64, wrongTeamMsg, notNominatedMsg string) error {
	player, err := q.GetPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrPlayerNotFound
		}
		return fmt.Errorf("load player %d: %w", playerID, err)
	}
	if !player.TeamID.Valid || player.TeamID.Int64 != teamID {
		return models.Invalid(wrongTeamMsg)
	}

	nominated, err := q.NominationExists(ctx, gameID, playerID)
	if err != nil {
		return fmt.Errorf("check nomination for player %d: %w", playerID, err)
	}
	if !nominated {
		return models.Invalid(notNominatedMsg)
	}
	return nil
}

func isGameParticipant(game store.Game, teamID int64) bool {
	return teamID == game.HomeTeamID || teamID == game.AwayTeamID
}

func teamLookupErr(teamID int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrTeamNotFound
	}
	return fmt.Errorf("load team %d: %w", teamID, err)
}
