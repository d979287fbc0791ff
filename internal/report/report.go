package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gocloud.dev/blob"

	"github.com/terrapull/terrapull/pkg/tiles"
)

// Storage keys of the persisted reports.
const (
	DownloadReportKey = "download_report.json"
	CheckReportKey    = "check_report.json"
)

// TileSizeEstimate is the assumed average tile size for estimates.
const TileSizeEstimate = 100 * 1024

// EstimateSize converts a tile count into an estimated size with a unit,
// using GB once the estimate reaches one gibibyte and MB below that.
func EstimateSize(tileCount int) (float64, string) {
	sizeBytes := int64(tileCount) * TileSizeEstimate
	const (
		mb = 1024 * 1024
		gb = 1024 * mb
	)
	if sizeBytes >= gb {
		return float64(sizeBytes) / float64(gb), "GB"
	}
	return float64(sizeBytes) / float64(mb), "MB"
}

// DownloadReport is the persisted outcome of one download run.
type DownloadReport struct {
	Timestamp        string   `json:"timestamp"`
	DurationSeconds  float64  `json:"duration_seconds"`
	BBoxInput        string   `json:"bbox_input"`
	ZoomRangeInput   string   `json:"zoom_range_input"`
	OutputDirectory  string   `json:"output_directory"`
	Concurrency      int      `json:"concurrency"`
	OnlyMissingMode  bool     `json:"only_missing_mode"`
	TotalTilesInPlan int      `json:"total_tiles_in_plan"`
	DownloadedCount  int      `json:"downloaded_count"`
	FailedCount      int      `json:"failed_count"`
	SkippedCount     int      `json:"skipped_count"`
	FailedTiles      []string `json:"failed_tiles,omitempty"`
}

// ZoomDetail is the per-zoom breakdown in a check report.
type ZoomDetail struct {
	Expected int `json:"expected"`
	Existing int `json:"existing"`
	Missing  int `json:"missing"`
	Corrupt  int `json:"corrupt"`
}

// CheckReport is the persisted outcome of one check run.
type CheckReport struct {
	Timestamp       string                `json:"timestamp"`
	DurationSeconds float64               `json:"duration_seconds"`
	BBoxInput       string                `json:"bbox_input"`
	ZoomRangeInput  string                `json:"zoom_range_input"`
	CheckedDir      string                `json:"checked_directory"`
	TotalExpected   int                   `json:"total_expected"`
	TotalExisting   int                   `json:"total_existing_valid_size"`
	TotalMissing    int                   `json:"total_missing"`
	TotalCorrupt    int                   `json:"total_corrupt_or_unreadable"`
	DetailsByZoom   map[string]ZoomDetail `json:"details_by_zoom"`
	MissingByZoom   map[string][]string   `json:"missing_tiles_by_zoom,omitempty"`
	CorruptByZoom   map[string][]string   `json:"corrupt_tiles_by_zoom,omitempty"`
}

// GroupByZoom serializes a coordinate set as sorted "x_y" strings keyed by
// zoom level. Zoom keys are strings because they name JSON object members.
// Returns nil for an empty set so the field is omitted from reports.
func GroupByZoom(set tiles.Set) map[string][]string {
	if len(set) == 0 {
		return nil
	}

	grouped := make(map[string][]string)
	for c := range set {
		key := strconv.Itoa(c.Zoom)
		grouped[key] = append(grouped[key], fmt.Sprintf("%d_%d", c.X, c.Y))
	}
	for _, ids := range grouped {
		sort.Strings(ids)
	}
	return grouped
}

// Write persists a report document as indented JSON in the bucket.
func Write(ctx context.Context, bucket *blob.Bucket, key string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal %s: %w", key, err)
	}
	if err := bucket.WriteAll(ctx, key, data, nil); err != nil {
		return fmt.Errorf("report: write %s: %w", key, err)
	}
	return nil
}
