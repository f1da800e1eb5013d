package models

import (
	"strings"
	"time"
)

var whenLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseWhen is lenient about the timestamp layouts the platform emits.
// Unparseable dates come back as zero time, which sorts them to the end of
// newest-first lists; the raw string is still what gets displayed.
func ParseWhen(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
