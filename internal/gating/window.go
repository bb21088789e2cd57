package gating

import (
	"fmt"
	"time"

	"github.com/mwgeurts/viewray-decisionlogs/internal/timeparse"
)

// Window restricts collection to decisions with Start <= ts < End. A nil
// *Window accepts everything. An inverted window (Start >= End) is legal and
// matches nothing.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w *Window) Contains(ts time.Time) bool {
	if w == nil {
		return true
	}
	return !ts.Before(w.Start) && w.End.After(ts)
}

// ParseWindow builds a Window from two date-time strings.
func ParseWindow(start, end string) (*Window, error) {
	s, ok := timeparse.ParseLoose(start)
	if !ok {
		return nil, fmt.Errorf("unrecognized start time %q", start)
	}
	e, ok := timeparse.ParseLoose(end)
	if !ok {
		return nil, fmt.Errorf("unrecognized end time %q", end)
	}
	return &Window{Start: s, End: e}, nil
}
