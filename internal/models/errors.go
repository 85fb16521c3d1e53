// internal/models/errors.go
package models

import "errors"

// Common errors used across the application
var (
	ErrLeagueNotFound     = errors.New("league not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrLineNotFound       = errors.New("line not found")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrPenaltyNotFound    = errors.New("penalty not found")
	ErrNominationNotFound = errors.New("nomination not found")
)

// ValidationError is a domain rule violation. Messages are the Czech
// strings surfaced to admin forms.
type ValidationError struct {
	// Field names the offending input field when the rule is bound to
	// one; empty for cross-field rules.
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a cross-field validation error.
func Invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// InvalidField builds a validation error bound to a single field.
func InvalidField(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
