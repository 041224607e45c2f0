package rootsmagic

import (
	"strconv"
	"strings"

	"github.com/shuskey/Timeline-Traveler-sub000/family"
)

// DecodeDate decodes a RootsMagic packed date string into a Date.
//
// RootsMagic stores dates as fixed-layout strings, e.g.
//
//	D.+19520815..+00000000..
//
// where "D." marks an exact date, the sign marks the era, and the next eight
// digits are YYYYMMDD with zero components for unknown month or day.
// Quarter-coded and free-text dates ("Q...", "T...") carry no reliable
// year-month-day and decode to the zero Date, as does anything malformed.
func DecodeDate(raw string) family.Date {
	if len(raw) < 11 || !strings.HasPrefix(raw, "D.") {
		return family.Date{}
	}
	if raw[2] != '+' && raw[2] != '-' {
		return family.Date{}
	}

	digits := raw[3:11]
	if _, err := strconv.Atoi(digits); err != nil {
		return family.Date{}
	}

	year, _ := strconv.Atoi(digits[0:4])
	month, _ := strconv.Atoi(digits[4:6])
	day, _ := strconv.Atoi(digits[6:8])
	if month > 12 || day > 31 {
		return family.Date{}
	}
	return family.Date{Year: year, Month: month, Day: day}
}
