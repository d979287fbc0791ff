package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/terrapull/terrapull/internal/config"
	"github.com/terrapull/terrapull/internal/fetcher"
	"github.com/terrapull/terrapull/internal/fetchhttp"
	"github.com/terrapull/terrapull/internal/progress"
	"github.com/terrapull/terrapull/internal/report"
	"github.com/terrapull/terrapull/pkg/tiles"
)

func runDownload(args []string) int {
	fs := flag.NewFlagSet("download", flag.ExitOnError)

	defaults := config.Default()
	configPath := fs.String("config", "", "YAML config file")
	zoom := fs.String("zoom", defaults.ZoomRange, "Zoom range: min_zoom,max_zoom")
	output := fs.String("output", defaults.OutputDir, "Output directory or bucket URL")
	concurrency := fs.Int("concurrency", defaults.Concurrency, "Number of concurrent download workers")
	baseURL := fs.String("base-url", defaults.BaseURL, "Tile URL template ({z}/{x}/{y})")
	onlyMissing := fs.Bool("only-missing", false, "Only download tiles that are missing")
	yes := fs.Bool("yes", false, "Skip confirmation prompt")
	showProgress := fs.Bool("progress", false, "Show live progress output")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: terrapull download [options] <min_lon,min_lat,max_lon,max_lat>

Download terrain tiles covering the bounding box across the zoom range.
Already-present tiles are skipped; failed tiles are recorded in
download_report.json and can be fetched later with -only-missing.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one bounding box argument is required")
		fs.Usage()
		return ExitInvalidArgs
	}

	// Defaults, then config file, then environment, then explicit flags.
	cfg := defaults
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitInvalidArgs
		}
		cfg = loaded
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	var override config.Config
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "zoom":
			override.ZoomRange = *zoom
		case "output":
			override.OutputDir = *output
		case "concurrency":
			override.Concurrency = *concurrency
		case "base-url":
			override.BaseURL = *baseURL
		case "progress":
			override.Progress = *showProgress
		}
	})
	cfg = cfg.Merge(override)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	bbox, err := tiles.ParseBoundingBox(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	zooms, err := tiles.ParseZoomRange(cfg.ZoomRange)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	if cfg.Concurrency <= 0 {
		fmt.Fprintf(os.Stderr, "[terrapull] Concurrency must be positive; using default (%d)\n", fetcher.DefaultConcurrency)
		cfg.Concurrency = fetcher.DefaultConcurrency
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[terrapull] Received interrupt, shutting down...")
		cancel()
	}()

	url, err := bucketURL(cfg.OutputDir, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	bucket, err := blob.OpenBucket(ctx, url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening tile store: %v\n", err)
		return ExitStorageError
	}
	defer bucket.Close()

	fmt.Fprintf(os.Stderr, "[terrapull] Output: %s\n", cfg.OutputDir)
	fmt.Fprintln(os.Stderr, "[terrapull] Calculating expected tiles...")

	expected := tiles.NewSet()
	perZoom := make(map[int]int)
	for _, z := range zooms.Levels() {
		b := tiles.TileBounds(bbox, z)
		warnSwapped(b)
		set := b.Tiles()
		perZoom[z] = len(set)
		expected.Union(set)
	}

	if len(expected) == 0 {
		fmt.Fprintln(os.Stderr, "[terrapull] Bounding box and zoom range resulted in 0 expected tiles.")
		return ExitSuccess
	}

	// Determine the tiles this run will actually request.
	target := expected
	title := "Download Plan (Will Overwrite Nothing; Existing Tiles Are Skipped)"
	if *onlyMissing {
		fmt.Fprintln(os.Stderr, "[terrapull] Checking for missing tiles...")
		missing, err := tiles.ScanMissing(ctx, bucket, expected)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitStorageError
		}
		if len(missing) == 0 {
			fmt.Fprintln(os.Stderr, "[terrapull] All expected tiles already exist. Nothing to download.")
			return ExitSuccess
		}
		target = missing
		perZoom = make(map[int]int)
		for c := range missing {
			perZoom[c.Zoom]++
		}
		title = "Download Plan (Missing Tiles Only)"
	}

	printSummary(os.Stderr, bbox, zooms, perZoom, title)
	fmt.Fprintf(os.Stderr, "[terrapull] Using %d concurrent workers.\n", cfg.Concurrency)
	if cfg.Insecure {
		fmt.Fprintln(os.Stderr, "[terrapull] Warning: TLS certificate verification is disabled for downloads!")
	}

	if !*yes && !confirm("\nProceed with download?") {
		fmt.Fprintln(os.Stderr, "[terrapull] Aborted.")
		return ExitAborted
	}

	var reporter *progress.Reporter
	if cfg.Progress {
		reporter = progress.NewReporter(progress.Options{
			TotalTiles: len(target),
			Workers:    cfg.Concurrency,
		})
		reporter.Start()
	}

	start := time.Now()
	result := fetcher.FetchAll(ctx, bucket, target, fetcher.Options{
		Concurrency: cfg.Concurrency,
		BaseURL:     cfg.BaseURL,
		HTTPOptions: fetchhttp.Options{
			Timeout:            cfg.Timeout,
			InsecureSkipVerify: cfg.Insecure,
		},
		Progress: reporter,
		Descriptor: &fetcher.Descriptor{
			Name:  filepath.Base(cfg.OutputDir),
			BBox:  bbox,
			Zooms: zooms,
		},
	})
	duration := time.Since(start)

	if reporter != nil {
		reporter.Stop()
	}

	doc := &report.DownloadReport{
		Timestamp:        start.Format(time.RFC3339),
		DurationSeconds:  duration.Seconds(),
		BBoxInput:        bbox.String(),
		ZoomRangeInput:   zooms.String(),
		OutputDirectory:  cfg.OutputDir,
		Concurrency:      cfg.Concurrency,
		OnlyMissingMode:  *onlyMissing,
		TotalTilesInPlan: len(target),
		DownloadedCount:  len(result.Downloaded),
		FailedCount:      len(result.Failed),
		SkippedCount:     len(result.Skipped),
		FailedTiles:      result.Failed,
	}
	if err := report.Write(ctx, bucket, report.DownloadReportKey, doc); err != nil {
		fmt.Fprintf(os.Stderr, "[terrapull] Error saving download report: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "\n[terrapull] Download report saved to %s\n", report.DownloadReportKey)
	}

	fmt.Fprintln(os.Stderr, "\n--- Download Complete ---")
	fmt.Fprintf(os.Stderr, "Duration: %s\n", duration.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Downloaded: %d tiles\n", len(result.Downloaded))
	fmt.Fprintf(os.Stderr, "Failed: %d tiles\n", len(result.Failed))
	fmt.Fprintf(os.Stderr, "Skipped (already existed): %d tiles\n", len(result.Skipped))

	if len(result.Failed) > 0 {
		fmt.Fprintf(os.Stderr, "Check %s for the list of failed tiles; run again with -only-missing to retry them.\n", report.DownloadReportKey)
		return ExitDownloadFailed
	}
	return ExitSuccess
}

// warnSwapped surfaces the enumerator's lenient bounds swap, which usually
// means an antimeridian-crossing box the wrapped tile set won't match.
func warnSwapped(b tiles.Bounds) {
	if b.Swapped {
		fmt.Fprintf(os.Stderr, "[terrapull] Warning: tile bounds at zoom %d were inverted and have been swapped; check the bounding box for antimeridian crossing\n", b.Zoom)
	}
}
