// Package export writes the decision sequence and the histogram table to
// CSV, JSONL, and plain text. Paths ending in .gz are compressed.
package export

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mwgeurts/viewray-decisionlogs/internal/gating"
	"github.com/mwgeurts/viewray-decisionlogs/internal/histogram"
	"github.com/mwgeurts/viewray-decisionlogs/internal/iox"
)

// TimestampLayout preserves the millisecond resolution of the log entries.
const TimestampLayout = "2006-01-02 15:04:05.000"

func writeCSV(path string, header []string, rows func(w *csv.Writer) error) error {
	out, err := iox.CreateAuto(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	bw := bufio.NewWriterSize(out, 1<<20)
	cw := csv.NewWriter(bw)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := rows(cw); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return bw.Flush()
}

// WriteDecisionsCSV writes one row per gating decision, in sequence order.
func WriteDecisionsCSV(path string, decisions []gating.Decision) error {
	header := []string{"timestamp", "decision", "voxels_out", "total_voxels", "fraction_out"}
	return writeCSV(path, header, func(cw *csv.Writer) error {
		for _, d := range decisions {
			row := []string{
				d.Timestamp.Format(TimestampLayout),
				strconv.Itoa(d.Flag),
				strconv.Itoa(d.VoxelsOut),
				strconv.Itoa(d.TotalVoxels),
				strconv.FormatFloat(d.FractionOut, 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		return nil
	})
}

// WriteHistogramCSV writes the 101-bin threshold table.
func WriteHistogramCSV(path string, bins []histogram.Bin) error {
	header := []string{"threshold_pct", "duty_cycle_pct", "shutter_per_min"}
	return writeCSV(path, header, func(cw *csv.Writer) error {
		for _, b := range bins {
			row := []string{
				strconv.Itoa(b.Threshold),
				strconv.FormatFloat(b.DutyCyclePct, 'f', 4, 64),
				strconv.FormatFloat(b.ShutterPerMin, 'f', 4, 64),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write row: %w", err)
			}
		}
		return nil
	})
}

// PrintHistogram renders the bin table as aligned text, for stdout use when
// no CSV output path is given.
func PrintHistogram(w io.Writer, bins []histogram.Bin) error {
	if _, err := fmt.Fprintf(w, "%9s  %13s  %15s\n", "threshold", "duty cycle %", "shutter per min"); err != nil {
		return err
	}
	for _, b := range bins {
		if _, err := fmt.Fprintf(w, "%8d%%  %13.2f  %15.3f\n", b.Threshold, b.DutyCyclePct, b.ShutterPerMin); err != nil {
			return err
		}
	}
	return nil
}
