package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/terrapull/terrapull/internal/report"
	"github.com/terrapull/terrapull/pkg/tiles"
)

// printSummary renders the operation plan: bounding box corners, per-zoom
// tile counts, and the size estimate.
func printSummary(w io.Writer, bbox tiles.BoundingBox, zooms tiles.ZoomRange, perZoom map[int]int, title string) {
	total := 0
	for _, count := range perZoom {
		total += count
	}
	totalSize, totalUnit := report.EstimateSize(total)

	fmt.Fprintf(w, "\n--- %s ---\n", title)
	fmt.Fprintln(w, "Bounding Box:")
	fmt.Fprintf(w, "  SW Corner (lon, lat): %.6f, %.6f\n", bbox.MinLon, bbox.MinLat)
	fmt.Fprintf(w, "  NE Corner (lon, lat): %.6f, %.6f\n", bbox.MaxLon, bbox.MaxLat)
	fmt.Fprintf(w, "Zoom Levels: %d to %d\n", zooms.Min, zooms.Max)
	fmt.Fprintf(w, "Estimated Total Tiles: %d\n", total)
	fmt.Fprintf(w, "Estimated Total Size: %.2f %s\n", totalSize, totalUnit)

	fmt.Fprintln(w, "\nBreakdown by Zoom Level:")
	for _, z := range zooms.Levels() {
		count := perZoom[z]
		if count == 0 {
			continue
		}
		size, unit := report.EstimateSize(count)
		fmt.Fprintf(w, "  Zoom %d: %d tiles (~%.2f %s)\n", z, count, size, unit)
	}
	fmt.Fprintln(w, strings.Repeat("-", len(title)+8))
}
