package gating

import (
	"bufio"
	"io"
)

// ScanStats reports what a single scan saw, for progress logging.
type ScanStats struct {
	Lines    int64 // lines read
	Matched  int64 // decision lines paired with an entry time
	Unpaired int64 // decision lines with no entry time on the preceding line
	Filtered int64 // paired decisions rejected by the time window
	Err      error // read error that ended the scan early, if any
}

// ScanReader reads a log stream line by line and extracts gating decisions.
// A decision line only produces a record when the line immediately before it
// carries a parseable <LogEntryTime>; no other adjacency is recognized.
// Unpaired or malformed decision lines are dropped, never fatal.
func ScanReader(r io.Reader, w *Window) ([]Decision, ScanStats) {
	var (
		out   []Decision
		stats ScanStats
		prev  string
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		stats.Lines++
		d, ok := ParseDecisionLine(line)
		if ok {
			ts, ok := ParseEntryTime(prev)
			if !ok {
				stats.Unpaired++
			} else {
				d.Timestamp = ts
				if w.Contains(ts) {
					out = append(out, d)
					stats.Matched++
				} else {
					stats.Filtered++
				}
			}
		}
		prev = line
	}
	// A read error mid-file leaves the decisions read so far intact; the
	// caller decides whether a partial scan is worth a warning.
	stats.Err = sc.Err()
	return out, stats
}
