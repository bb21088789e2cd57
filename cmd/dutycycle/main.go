package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mwgeurts/viewray-decisionlogs/internal/config"
	"github.com/mwgeurts/viewray-decisionlogs/internal/export"
	"github.com/mwgeurts/viewray-decisionlogs/internal/gating"
	"github.com/mwgeurts/viewray-decisionlogs/internal/histogram"
)

var version = "v1.0"

const usage = `usage: dutycycle [flags] LOGDIR [START END]

Scans LOGDIR recursively for .xmlLog delivery logs, extracts deform-ROI
gating decisions, and prints the per-threshold duty-cycle / shutter-rate
table. START and END restrict decisions to [START, END), e.g.
"5/7/2015 1:00:00 PM" "5/7/2015 2:00:00 PM".`

// initLogger builds a zap logger from config plus CLI overrides.
func initLogger(cfg config.LoggingConfig, levelOverride, formatOverride string) (*zap.Logger, error) {
	level := cfg.Level
	if levelOverride != "" {
		level = levelOverride
	}
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := cfg.Format
	if formatOverride != "" {
		format = formatOverride
	}
	var zc zap.Config
	switch format {
	case "console":
		zc = zap.NewDevelopmentConfig()
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zc.Level = zap.NewAtomicLevelAt(zapLevel)
	return zc.Build()
}

func main() {
	configPath := flag.String("config", "", "path to YAML analysis config")
	decisionsOut := flag.String("decisions-out", "", "write decisions CSV to this path (.gz supported)")
	histogramOut := flag.String("histogram-out", "", "write histogram CSV to this path instead of a stdout table")
	jsonlOut := flag.String("jsonl-out", "", "write decisions JSONL to this path (.gz supported)")
	workers := flag.Int("workers", 0, "parallel log scans (overrides config)")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "log format override (console, json)")
	showPlan := flag.Bool("plan", false, "show plan and exit")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		fmt.Fprintln(os.Stderr, "\nflags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 && len(args) != 3 {
		flag.Usage()
		os.Exit(2)
	}
	root := args[0]

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dutycycle: %v\n", err)
			os.Exit(1)
		}
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	var window *gating.Window
	if len(args) == 3 {
		var err error
		window, err = gating.ParseWindow(args[1], args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "dutycycle: %v\n", err)
			os.Exit(2)
		}
	}

	if *showPlan {
		fmt.Printf("==== dutycycle %s execution plan ====\n", version)
		fmt.Printf("Log directory   : %s\n", root)
		if window != nil {
			fmt.Printf("Window          : [%s, %s)\n", window.Start, window.End)
		} else {
			fmt.Printf("Window          : none\n")
		}
		fmt.Printf("Log marker      : %s\n", cfg.LogMarker)
		fmt.Printf("Sampling (Hz)   : %g\n", cfg.SamplingHz)
		fmt.Printf("Workers         : %d\n", cfg.Workers)
		fmt.Printf("Decisions CSV   : %s\n", *decisionsOut)
		fmt.Printf("Histogram CSV   : %s\n", *histogramOut)
		fmt.Printf("Decisions JSONL : %s\n", *jsonlOut)
		return
	}

	logger, err := initLogger(cfg.Logging, *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dutycycle: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	start := time.Now()
	decisions, err := gating.Collect(context.Background(), root, window, gating.CollectOptions{
		Marker:  cfg.LogMarker,
		Workers: cfg.Workers,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("log collection failed", zap.Error(err))
	}
	logger.Info("collected gating decisions",
		zap.Int("decisions", len(decisions)),
		zap.Duration("elapsed", time.Since(start)),
	)

	bins, err := histogram.Compute(decisions, histogram.Options{SamplingHz: cfg.SamplingHz})
	if err != nil {
		logger.Fatal("aggregation failed", zap.Error(err))
	}

	if *decisionsOut != "" {
		if err := export.WriteDecisionsCSV(*decisionsOut, decisions); err != nil {
			logger.Fatal("decisions CSV export failed", zap.Error(err))
		}
		logger.Info("wrote decisions CSV", zap.String("path", *decisionsOut))
	}
	if *jsonlOut != "" {
		if err := export.WriteDecisionsJSONL(*jsonlOut, decisions); err != nil {
			logger.Fatal("decisions JSONL export failed", zap.Error(err))
		}
		logger.Info("wrote decisions JSONL", zap.String("path", *jsonlOut))
	}
	if *histogramOut != "" {
		if err := export.WriteHistogramCSV(*histogramOut, bins); err != nil {
			logger.Fatal("histogram CSV export failed", zap.Error(err))
		}
		logger.Info("wrote histogram CSV", zap.String("path", *histogramOut))
	} else {
		if err := export.PrintHistogram(os.Stdout, bins); err != nil {
			logger.Fatal("histogram print failed", zap.Error(err))
		}
	}
}
