// internal/models/enums.go
package models

// Competition is the type of competition a game belongs to.
type Competition string

const (
	CompetitionLeague     Competition = "league"
	CompetitionTournament Competition = "tournament"
	CompetitionFriendly   Competition = "friendly"
)

func (c Competition) Valid() bool {
	switch c {
	case CompetitionLeague, CompetitionTournament, CompetitionFriendly:
		return true
	}
	return false
}

// Position is a player's position on the ice.
type Position string

const (
	PositionForward Position = "forward"
	PositionDefense Position = "defense"
	PositionGoalie  Position = "goalie"
)

func (p Position) Valid() bool {
	switch p {
	case PositionForward, PositionDefense, PositionGoalie:
		return true
	}
	return false
}

// LineSlot is a named position within a line. Line 0 is goalie-only and
// accepts only SlotG.
type LineSlot string

const (
	SlotLW LineSlot = "LW"
	SlotC  LineSlot = "C"
	SlotRW LineSlot = "RW"
	SlotLD LineSlot = "LD"
	SlotRD LineSlot = "RD"
	SlotG  LineSlot = "G"
)

func (s LineSlot) Valid() bool {
	switch s {
	case SlotLW, SlotC, SlotRW, SlotLD, SlotRD, SlotG:
		return true
	}
	return false
}

// GoalieLineNumber is the reserved line number for the goalie slot.
const GoalieLineNumber = 0

// Period enumerates game periods; 4 is overtime, 5 the shootout.
type Period int64

const (
	PeriodFirst  Period = 1
	PeriodSecond Period = 2
	PeriodThird  Period = 3
	PeriodOT     Period = 4
	PeriodSO     Period = 5
)

func (p Period) Valid() bool {
	return p >= PeriodFirst && p <= PeriodSO
}

// Strength is the game strength at the moment of a goal.
type Strength string

const (
	StrengthEV Strength = "EV"
	StrengthPP Strength = "PP"
	StrengthSH Strength = "OS"
	StrengthEN Strength = "EN"
	StrengthPS Strength = "PS"
)

func (s Strength) Valid() bool {
	switch s {
	case StrengthEV, StrengthPP, StrengthSH, StrengthEN, StrengthPS:
		return true
	}
	return false
}

// PenaltyType encodes penalty categories by their nominal duration.
type PenaltyType string

const (
	PenaltyMinor      PenaltyType = "2"
	PenaltyMajor      PenaltyType = "5"
	PenaltyMisconduct PenaltyType = "10"
	PenaltyGame       PenaltyType = "20"
)

func (p PenaltyType) Valid() bool {
	switch p {
	case PenaltyMinor, PenaltyMajor, PenaltyMisconduct, PenaltyGame:
		return true
	}
	return false
}
