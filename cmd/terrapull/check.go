package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gocloud.dev/blob"

	"github.com/terrapull/terrapull/internal/config"
	"github.com/terrapull/terrapull/internal/report"
	"github.com/terrapull/terrapull/pkg/tiles"
)

// runCheck verifies an existing tile set for completeness and integrity:
// every expected tile must exist and decode as a 256x256 PNG.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	defaults := config.Default()
	zoom := fs.String("zoom", defaults.ZoomRange, "Zoom range: min_zoom,max_zoom")
	output := fs.String("output", defaults.OutputDir, "Tiles directory or bucket URL to check")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: terrapull check [options] <min_lon,min_lat,max_lon,max_lat>

Check existing tiles for completeness and basic integrity. Every expected
tile is verified to exist and to decode as a 256x256 PNG; results are saved
to check_report.json. Opening each image makes this slower than a download
with -only-missing.

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

	bbox, err := tiles.ParseBoundingBox(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	zooms, err := tiles.ParseZoomRange(*zoom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	url, err := bucketURL(*output, false)
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

	fmt.Fprintf(os.Stderr, "[terrapull] Checking tiles in: %s\n", *output)
	fmt.Fprintln(os.Stderr, "[terrapull] Note: the corruption check opens every image file and may be slow.")
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

	printSummary(os.Stderr, bbox, zooms, perZoom, "Tile Check Plan")

	start := time.Now()
	scan, err := tiles.ScanFull(ctx, bucket, expected)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitStorageError
	}
	duration := time.Since(start)

	details := make(map[string]report.ZoomDetail)
	for _, z := range zooms.Levels() {
		detail := report.ZoomDetail{Expected: perZoom[z]}
		for c := range scan.Existing {
			if c.Zoom == z {
				detail.Existing++
			}
		}
		for c := range scan.Missing {
			if c.Zoom == z {
				detail.Missing++
			}
		}
		for c := range scan.Corrupt {
			if c.Zoom == z {
				detail.Corrupt++
			}
		}
		details[strconv.Itoa(z)] = detail
	}

	doc := &report.CheckReport{
		Timestamp:       start.Format(time.RFC3339),
		DurationSeconds: duration.Seconds(),
		BBoxInput:       bbox.String(),
		ZoomRangeInput:  zooms.String(),
		CheckedDir:      *output,
		TotalExpected:   len(expected),
		TotalExisting:   len(scan.Existing),
		TotalMissing:    len(scan.Missing),
		TotalCorrupt:    len(scan.Corrupt),
		DetailsByZoom:   details,
		MissingByZoom:   report.GroupByZoom(scan.Missing),
		CorruptByZoom:   report.GroupByZoom(scan.Corrupt),
	}
	if err := report.Write(ctx, bucket, report.CheckReportKey, doc); err != nil {
		fmt.Fprintf(os.Stderr, "[terrapull] Error saving check report: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "\n[terrapull] Check report saved to %s\n", report.CheckReportKey)
	}

	fmt.Fprintln(os.Stderr, "\n--- Check Complete ---")
	fmt.Fprintf(os.Stderr, "Duration: %s\n", duration.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "Total Expected: %d\n", len(expected))
	fmt.Fprintf(os.Stderr, "Total Existing (valid): %d\n", len(scan.Existing))
	fmt.Fprintf(os.Stderr, "Total Missing: %d\n", len(scan.Missing))
	fmt.Fprintf(os.Stderr, "Total Corrupt (unreadable or wrong size): %d\n", len(scan.Corrupt))

	if len(scan.Missing) > 0 || len(scan.Corrupt) > 0 {
		fmt.Fprintf(os.Stderr, "Issues found; see %s for details.\n", report.CheckReportKey)
		if len(scan.Missing) > 0 {
			fmt.Fprintln(os.Stderr, "Consider running 'download -only-missing' to fetch missing tiles.")
		}
		return ExitCheckFailed
	}
	return ExitSuccess
}
