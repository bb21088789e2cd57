package gating

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/mwgeurts/viewray-decisionlogs/internal/iox"
)

// DefaultMarker is the substring identifying delivery log files.
const DefaultMarker = ".xmlLog"

type CollectOptions struct {
	Marker  string      // log file name marker; "" -> DefaultMarker
	Workers int         // parallel file scans; <= 1 -> sequential
	Logger  *zap.Logger // nil -> zap.NewNop()
}

// Collect walks the tree under root, scans every file whose name contains the
// log marker, and returns the surviving decisions. Files are processed in
// lexicographic path order so the output sequence is deterministic across
// runs; with Workers > 1 files are scanned concurrently but results are
// reassembled in that same order, which matters because the downstream
// transition count is order-sensitive. Unreadable files are skipped with a
// warning.
func Collect(ctx context.Context, root string, w *Window, opt CollectOptions) ([]Decision, error) {
	if opt.Marker == "" {
		opt.Marker = DefaultMarker
	}
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	log := opt.Logger

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat log directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	pattern := filepath.Join(root, "**", "*"+opt.Marker+"*")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil || fi.IsDir() {
			continue
		}
		files = append(files, m)
	}
	sort.Strings(files)
	log.Debug("log discovery complete", zap.Int("files", len(files)), zap.String("root", root))

	if opt.Workers <= 1 {
		var out []Decision
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out = append(out, scanFile(path, w, log)...)
		}
		return out, nil
	}

	// One result slot per file keeps concurrent scans order-preserving.
	perFile := make([][]Decision, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup
	wg.Add(opt.Workers)
	for i := 0; i < opt.Workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				perFile[idx] = scanFile(files[idx], w, log)
			}
		}()
	}
dispatch:
	for idx := range files {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []Decision
	for _, ds := range perFile {
		out = append(out, ds...)
	}
	return out, nil
}

func scanFile(path string, w *Window, log *zap.Logger) []Decision {
	f, err := iox.OpenAuto(path)
	if err != nil {
		log.Warn("skipping unreadable log", zap.String("path", path), zap.Error(err))
		return nil
	}
	defer f.Close()

	ds, stats := ScanReader(f, w)
	if stats.Err != nil {
		log.Warn("log scan ended early", zap.String("path", path), zap.Error(stats.Err))
	}
	log.Debug("scanned log",
		zap.String("path", path),
		zap.Int64("lines", stats.Lines),
		zap.Int64("matched", stats.Matched),
		zap.Int64("unpaired", stats.Unpaired),
		zap.Int64("filtered", stats.Filtered),
	)
	return ds
}
