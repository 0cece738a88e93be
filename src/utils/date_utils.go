package utils

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalDateFormat is the fixed representation every report date is
// normalized to before it becomes part of an aggregation key.
const CanonicalDateFormat = "2006-01-02"

// Report exports arrive with whatever date format the seller portal was set
// to. Layouts are tried in order; ISO forms first since they are unambiguous.
// Day-first European layouts are deliberately absent: 03/04/2024 cannot be
// told apart from its MM/DD reading, and a silently swapped month corrupts
// aggregation keys. Unrecognized forms fail loudly instead.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"02 Jan 2006",
}

// NormalizeDate parses a raw report date string and returns it as
// YYYY-MM-DD. An unparseable date is an error; callers treat it as fatal
// for the whole file rather than dropping the row.
func NormalizeDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty date value")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(CanonicalDateFormat), nil
		}
	}
	return "", fmt.Errorf("unrecognized date format: %q", raw)
}
