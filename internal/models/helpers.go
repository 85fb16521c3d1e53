// internal/models/helpers.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
)

// Clock renders seconds elapsed in a period as mm:ss.
func Clock(secondInPeriod int64) string {
	if secondInPeriod < 0 {
		return ""
	}
	m := secondInPeriod / 60
	s := secondInPeriod % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

// SeasonLabel derives a season label like "2025/2026" from the season
// date range.
func SeasonLabel(dateStart, dateEnd time.Time) string {
	if dateStart.IsZero() || dateEnd.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d/%d", dateStart.Year(), dateEnd.Year())
}

// default region for numbers entered without a country prefix
const phoneRegion = "CZ"

// ValidPhone reports whether the value parses as a possible phone
// number. Empty values are allowed; the field is optional.
func ValidPhone(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	num, err := phonenumbers.Parse(value, phoneRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsPossibleNumber(num)
}

// GameSlug builds the canonical human-readable slug for a game:
// YYYY-MM-DD-home-vs-away.
func GameSlug(startsAt time.Time, homeName, awayName string) string {
	datePart := "game"
	if !startsAt.IsZero() {
		datePart = startsAt.Format("2006-01-02")
	}
	return fmt.Sprintf("%s-%s-vs-%s", datePart, slugify(homeName), slugify(awayName))
}

func slugify(value string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
