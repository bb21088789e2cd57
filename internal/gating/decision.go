package gating

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Decision is one deform-ROI gating decision extracted from a delivery log.
// Timestamp carries millisecond resolution; the raw counts and fraction are
// passed through exactly as the log reported them.
type Decision struct {
	Timestamp   time.Time `json:"timestamp"`
	Flag        int       `json:"decision"`
	VoxelsOut   int       `json:"voxels_out"`
	TotalVoxels int       `json:"total_voxels"`
	FractionOut float64   `json:"fraction_out"`
}

var (
	decisionRe  = regexp.MustCompile(`MRTC deformROI target out decision = (-?\d+): voxels out (\d+), total = (\d+), tgt out fraction = ([0-9eE.+-]+)`)
	entryTimeRe = regexp.MustCompile(`<LogEntryTime>([^<]*)</LogEntryTime>`)
)

// Entry-time strings look like "07-May-2015 13:24:46.867...": a 20-char
// date-time, a separator, then a zero-padded three-digit millisecond field.
const (
	entryTimeLayout    = "02-Jan-2006 15:04:05"
	entryTimeAltLayout = "2006-01-02 15:04:05"
	entryTimeLen       = 20
)

// ParseDecisionLine matches the fixed deform-ROI decision pattern. The
// timestamp is left zero; the caller pairs it with the preceding entry-time
// line. Returns false for non-decision lines and for decision lines whose
// numeric fields do not parse.
func ParseDecisionLine(line string) (Decision, bool) {
	m := decisionRe.FindStringSubmatch(line)
	if m == nil {
		return Decision{}, false
	}
	flag, err := strconv.Atoi(m[1])
	if err != nil {
		return Decision{}, false
	}
	out, err := strconv.Atoi(m[2])
	if err != nil {
		return Decision{}, false
	}
	total, err := strconv.Atoi(m[3])
	if err != nil {
		return Decision{}, false
	}
	frac, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return Decision{}, false
	}
	return Decision{
		Flag:        flag,
		VoxelsOut:   out,
		TotalVoxels: total,
		FractionOut: frac,
	}, true
}

// ParseEntryTime extracts the <LogEntryTime> timestamp from a log line. The
// first 20 captured characters are the date-time; characters 22-24 are the
// millisecond field when present. A capture shorter than 20 characters, or one
// that does not parse as a date-time, fails the record.
func ParseEntryTime(line string) (time.Time, bool) {
	m := entryTimeRe.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	s := strings.TrimSpace(m[1])
	if len(s) < entryTimeLen {
		return time.Time{}, false
	}
	t, err := time.Parse(entryTimeLayout, s[:entryTimeLen])
	if err != nil {
		t, err = time.Parse(entryTimeAltLayout, s[:entryTimeLen])
		if err != nil {
			return time.Time{}, false
		}
	}
	if len(s) >= entryTimeLen+4 {
		ms, err := strconv.Atoi(s[entryTimeLen+1 : entryTimeLen+4])
		if err != nil {
			return time.Time{}, false
		}
		t = t.Add(time.Duration(ms) * time.Millisecond)
	}
	return t, true
}
