package timeparse

import (
	"strings"
	"time"
)

// ParseLoose accepts the handful of date-time formats seen on the command line
// and in delivery records.
func ParseLoose(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// "5/7/2015 1:24:46 PM"
	if t, err := time.Parse("1/2/2006 3:04:05 PM", s); err == nil {
		return t, true
	}
	// "2015-05-07 13:24:46"
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t, true
	}
	// RFC3339
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	// "07-May-2015 13:24:46" (log entry-time style)
	if t, err := time.Parse("02-Jan-2006 15:04:05", s); err == nil {
		return t, true
	}
	// Date only
	if t, err := time.Parse("1/2/2006", s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
