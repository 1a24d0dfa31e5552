package pdfdate

import (
	"regexp"
	"time"
)

// Layout is the human-readable rendering used in reports.
const Layout = "2006-01-02 15:04:05"

const digitsLayout = "20060102150405"

var reDate = regexp.MustCompile(`^D:(\d{14})`)

// Parse extracts the timestamp from a PDF date string.
//
// It returns (t, true) when s starts with "D:" followed by fourteen digits that
// form a valid calendar date and time. Anything else, including out-of-range
// components such as month 13 or year 0000, yields (time.Time{}, false).
// If loc is nil, UTC is used.
func Parse(s string, loc *time.Location) (time.Time, bool) {
	m := reDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	// time.ParseInLocation rejects out-of-range fields (day 31 in April, hour 24).
	t, err := time.ParseInLocation(digitsLayout, m[1], loc)
	if err != nil || t.Year() < 1 {
		return time.Time{}, false
	}
	return t, true
}

// Format renders t with Layout. The zero time renders as "".
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}
