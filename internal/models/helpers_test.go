package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	cases := []struct {
		second int64
		want   string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{754, "12:34"},
		{1200, "20:00"},
		{-5, ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Clock(c.second), "Clock(%d)", c.second)
	}
}

func TestSeasonLabel(t *testing.T) {
	start := time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025/2026", SeasonLabel(start, end))
	assert.Empty(t, SeasonLabel(time.Time{}, end))
}

func TestValidPhone(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"+420 777 123 456", true},
		{"777123456", true},
		{"not a phone", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ValidPhone(c.value), "ValidPhone(%q)", c.value)
	}
}

func TestGameSlug(t *testing.T) {
	startsAt := time.Date(2025, time.October, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-10-15-hc-vlci-vs-hc-medv-di", GameSlug(startsAt, "HC Vlci", "HC Medvědi"))
	assert.Equal(t, "game-a-vs-b", GameSlug(time.Time{}, "A", "B"))
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, CompetitionLeague.Valid())
	assert.False(t, Competition("cup").Valid())
	assert.True(t, PositionGoalie.Valid())
	assert.False(t, Position("coach").Valid())
	assert.True(t, SlotC.Valid())
	assert.False(t, LineSlot("X").Valid())
	assert.True(t, PeriodOT.Valid())
	assert.False(t, Period(9).Valid())
	assert.True(t, StrengthPP.Valid())
	assert.False(t, Strength("6v6").Valid())
	assert.True(t, PenaltyMisconduct.Valid())
	assert.False(t, PenaltyType("3").Valid())
}
