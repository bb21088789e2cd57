package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mwgeurts/viewray-decisionlogs/internal/gating"
	"github.com/mwgeurts/viewray-decisionlogs/internal/histogram"
	"github.com/mwgeurts/viewray-decisionlogs/internal/ingest/config"
	"github.com/mwgeurts/viewray-decisionlogs/internal/ingest/db"
	"github.com/mwgeurts/viewray-decisionlogs/internal/ingest/schema"
	"github.com/mwgeurts/viewray-decisionlogs/internal/ingest/writer"
)

func main() {
	// CLI flags
	var (
		flagCourse  string
		flagLogDir  string
		flagStart   string
		flagEnd     string
		flagWorkers int
		flagHz      float64
		flagDryRun  bool
		flagCheck   bool
	)
	flag.StringVar(&flagCourse, "course", "", "Course label the rows are stored under (required unless -check-schema)")
	flag.StringVar(&flagLogDir, "logdir", "", "Delivery log directory (default from .env LOG_DIR)")
	flag.StringVar(&flagStart, "start", "", "Window start, e.g. \"5/7/2015 1:00:00 PM\" (optional, requires -end)")
	flag.StringVar(&flagEnd, "end", "", "Window end (optional, requires -start)")
	flag.IntVar(&flagWorkers, "workers", 1, "Parallel log scans")
	flag.Float64Var(&flagHz, "hz", histogram.DefaultSamplingHz, "Decision sampling rate in Hz")
	flag.BoolVar(&flagDryRun, "dry-run", false, "Do not write to DB (just collect, aggregate and log)")
	flag.BoolVar(&flagCheck, "check-schema", false, "Only check schema and exit")
	flag.Parse()

	// Config + DB
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	if flagLogDir != "" {
		cfg.LogDir = flagLogDir
	}
	conn, err := db.Open(cfg)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer conn.Close()

	if flagCheck {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		missing, err := schema.Check(ctx, conn)
		if err != nil {
			log.Fatalf("[SCHEMA] error: %v", err)
		}
		if len(missing) == 0 {
			log.Printf("[SCHEMA] required OK: %v", schema.Required)
		} else {
			log.Printf("[SCHEMA] MISSING tables: %v", missing)
		}
		log.Printf("[SCHEMA] check completed (only-check mode). Exiting.")
		return
	}

	if flagCourse == "" {
		log.Fatalf("-course is required")
	}
	if (flagStart == "") != (flagEnd == "") {
		log.Fatalf("-start and -end must be given together")
	}

	var window *gating.Window
	if flagStart != "" {
		window, err = gating.ParseWindow(flagStart, flagEnd)
		if err != nil {
			log.Fatalf("window parse error: %v", err)
		}
	}

	// Advisory lock per course (short timeout)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		got, err := db.AcquireLock(ctx, conn, flagCourse, 10)
		cancel()
		if err != nil {
			log.Fatalf("GET_LOCK error: %v", err)
		}
		if !got {
			log.Fatalf("another ingest run is active for course %q", flagCourse)
		}
		defer func() { _ = db.ReleaseLock(context.Background(), conn, flagCourse) }()
	}

	start := time.Now()
	decisions, err := gating.Collect(context.Background(), cfg.LogDir, window, gating.CollectOptions{
		Workers: flagWorkers,
	})
	if err != nil {
		log.Fatalf("collect error: %v", err)
	}
	log.Printf("[INFO] collected %d decisions from %s in %v", len(decisions), cfg.LogDir, time.Since(start))

	bins, err := histogram.Compute(decisions, histogram.Options{SamplingHz: flagHz})
	if err != nil {
		log.Fatalf("aggregate error: %v", err)
	}

	if flagDryRun {
		var sb strings.Builder
		for _, t := range []int{0, 25, 50, 75, 100} {
			fmt.Fprintf(&sb, "t=%d duty=%.2f%% shutter=%.3f/min; ", t, bins[t].DutyCyclePct, bins[t].ShutterPerMin)
		}
		log.Printf("[DRY-RUN] course=%s decisions=%d %s", flagCourse, len(decisions), sb.String())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()
	if err := writer.InsertRun(ctx, conn, writer.Payload{
		Course:    flagCourse,
		Decisions: decisions,
		Bins:      bins,
	}); err != nil {
		log.Fatalf("insert error: %v", err)
	}
	log.Printf("[INFO] ingest done: course=%s decisions=%d bins=%d time=%v",
		flagCourse, len(decisions), len(bins), time.Since(start))
}
