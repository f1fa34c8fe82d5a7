// Package dateutils provides date parsing for the formats banks put in SMS.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts observed across Indian bank SMS. Day-first layouts are
// tried before US-style ones.
var SmsDateFormats = []string{
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02-01-06",
	"02-Jan-2006",
	"02-Jan-06",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"02/01/06",
	"2Jan06",
	"02Jan06",
	"January 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// ParseDate parses a date token from an SMS body into a time.Time in UTC.
// Returns an error if no known layout matches.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, layout := range SmsDateFormats {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.UTC(), nil
		}
	}

	// Month abbreviations often arrive upper-cased ("04-MAR-23").
	title := properCaseMonth(cleaned)
	if title != cleaned {
		for _, layout := range SmsDateFormats {
			if t, err := time.Parse(layout, title); err == nil {
				return t.UTC(), nil
			}
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format '%s'", dateStr)
}

// properCaseMonth rewrites JAN/FEB/... tokens to Jan/Feb/... so the stdlib
// layouts match.
func properCaseMonth(s string) string {
	months := []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}
	out := s
	for _, m := range months {
		proper := m[:1] + strings.ToLower(m[1:])
		out = strings.ReplaceAll(out, m, proper)
		out = strings.ReplaceAll(out, strings.ToLower(m), proper)
	}
	return out
}

// DaysBetween returns the number of days between two instants as a float,
// used by the recurring detector's interval math.
func DaysBetween(a, b time.Time) float64 {
	return b.Sub(a).Hours() / 24
}
