// Package writer bulk-inserts a collected decision sequence and its
// histogram into MySQL, replacing any previous rows for the same course.
package writer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mwgeurts/viewray-decisionlogs/internal/gating"
	"github.com/mwgeurts/viewray-decisionlogs/internal/histogram"
)

const tsLayout = "2006-01-02 15:04:05.000"

// Payload is everything one ingest run writes for a course.
type Payload struct {
	Course    string
	Decisions []gating.Decision
	Bins      []histogram.Bin
}

// InsertRun replaces the stored rows for p.Course with the new sequence and
// histogram. The seq column records the collector's file-then-line order,
// which is what the circular transition count was computed over.
func InsertRun(ctx context.Context, conn *sql.DB, p Payload) error {
	if p.Course == "" {
		return fmt.Errorf("writer: course label is required")
	}

	for _, table := range []string{"gating_decision", "gating_histogram"} {
		if _, err := conn.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE course = ?", p.Course,
		); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	rows := make([][]any, 0, len(p.Decisions))
	for i, d := range p.Decisions {
		rows = append(rows, []any{
			p.Course,
			i,
			d.Timestamp.Format(tsLayout),
			d.Flag,
			d.VoxelsOut,
			d.TotalVoxels,
			d.FractionOut,
		})
	}
	if err := chunkedExec(ctx, conn, "gating_decision",
		[]string{"course", "seq", "ts", "decision", "voxels_out", "total_voxels", "fraction_out"},
		rows, 2000,
	); err != nil {
		return fmt.Errorf("insert decisions: %w", err)
	}

	rows = rows[:0]
	for _, b := range p.Bins {
		rows = append(rows, []any{
			p.Course,
			b.Threshold,
			b.DutyCyclePct,
			b.ShutterPerMin,
		})
	}
	if err := chunkedExec(ctx, conn, "gating_histogram",
		[]string{"course", "threshold_pct", "duty_cycle_pct", "shutter_per_min"},
		rows, 2000,
	); err != nil {
		return fmt.Errorf("insert histogram: %w", err)
	}
	return nil
}

func chunkedExec(ctx context.Context, conn *sql.DB, table string, cols []string, rows [][]any, chunk int) error {
	if len(rows) == 0 {
		return nil
	}
	if chunk <= 0 {
		chunk = 2000
	}
	for i := 0; i < len(rows); i += chunk {
		j := i + chunk
		if j > len(rows) {
			j = len(rows)
		}
		if err := bulkInsert(ctx, conn, table, cols, rows[i:j]); err != nil {
			return err
		}
	}
	return nil
}

func bulkInsert(ctx context.Context, conn *sql.DB, table string, cols []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	pl := "(" + strings.TrimRight(strings.Repeat("?,", len(cols)), ",") + ")"
	valPlace := strings.TrimRight(strings.Repeat(pl+",", len(rows)), ",")
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, strings.Join(cols, ","), valPlace)

	args := make([]any, 0, len(rows)*len(cols))
	for _, r := range rows {
		args = append(args, r...)
	}
	_, err := conn.ExecContext(ctx, query, args...)
	return err
}
