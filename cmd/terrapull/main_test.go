package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/terrapull/terrapull/internal/report"
	"github.com/terrapull/terrapull/internal/testutils"
)

// The -10,-10,10,10 box at zoom 2 covers x 1-2, y 1-2: four tiles.
const testBBox = "-10,-10,10,10"

var testTilePaths = []string{"2/1/1.png", "2/1/2.png", "2/2/1.png", "2/2/2.png"}

func TestDownloadAndCheck(t *testing.T) {
	dir := t.TempDir()
	server := testutils.TileServer(t, testutils.ValidTile(t), nil)

	code := run([]string{
		"download",
		"-zoom", "2,2",
		"-output", dir,
		"-base-url", server.URL + "/{z}/{x}/{y}.png",
		"-yes",
		"--", testBBox,
	})
	if code != ExitSuccess {
		t.Fatalf("download exit = %d, want %d", code, ExitSuccess)
	}

	for _, p := range testTilePaths {
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p))); err != nil {
			t.Errorf("expected tile file %s: %v", p, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "tiles.json")); err != nil {
		t.Errorf("expected tiles.json: %v", err)
	}

	reportPath := filepath.Join(dir, "download_report.json")
	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("read download report: %v", err)
	}
	var dl report.DownloadReport
	if err := json.Unmarshal(data, &dl); err != nil {
		t.Fatalf("unmarshal download report: %v", err)
	}
	if dl.DownloadedCount != 4 || dl.FailedCount != 0 {
		t.Errorf("report counts = %d/%d downloaded/failed, want 4/0", dl.DownloadedCount, dl.FailedCount)
	}

	code = run([]string{
		"check",
		"-zoom", "2,2",
		"-output", dir,
		"--", testBBox,
	})
	if code != ExitSuccess {
		t.Fatalf("check exit = %d, want %d", code, ExitSuccess)
	}
}

func TestDownloadIdempotent(t *testing.T) {
	dir := t.TempDir()
	server := testutils.TileServer(t, testutils.ValidTile(t), nil)

	args := []string{
		"download",
		"-zoom", "2,2",
		"-output", dir,
		"-base-url", server.URL + "/{z}/{x}/{y}.png",
		"-yes",
		"--", testBBox,
	}

	if code := run(args); code != ExitSuccess {
		t.Fatalf("first download exit = %d", code)
	}
	if code := run(args); code != ExitSuccess {
		t.Fatalf("second download exit = %d", code)
	}

	data, err := os.ReadFile(filepath.Join(dir, "download_report.json"))
	if err != nil {
		t.Fatalf("read download report: %v", err)
	}
	var dl report.DownloadReport
	if err := json.Unmarshal(data, &dl); err != nil {
		t.Fatalf("unmarshal download report: %v", err)
	}
	if dl.SkippedCount != 4 || dl.DownloadedCount != 0 {
		t.Errorf("second run = %d skipped / %d downloaded, want 4/0", dl.SkippedCount, dl.DownloadedCount)
	}
}

func TestDownloadReportsFailures(t *testing.T) {
	dir := t.TempDir()
	server := testutils.TileServer(t, testutils.ValidTile(t), map[string]bool{
		"/2/1/1.png": true,
	})

	code := run([]string{
		"download",
		"-zoom", "2,2",
		"-output", dir,
		"-base-url", server.URL + "/{z}/{x}/{y}.png",
		"-yes",
		"--", testBBox,
	})
	if code != ExitDownloadFailed {
		t.Fatalf("exit = %d, want %d", code, ExitDownloadFailed)
	}

	data, err := os.ReadFile(filepath.Join(dir, "download_report.json"))
	if err != nil {
		t.Fatalf("read download report: %v", err)
	}
	var dl report.DownloadReport
	if err := json.Unmarshal(data, &dl); err != nil {
		t.Fatalf("unmarshal download report: %v", err)
	}
	if dl.FailedCount != 1 || len(dl.FailedTiles) != 1 || dl.FailedTiles[0] != "2/1/1" {
		t.Errorf("failed tiles = %v, want [2/1/1]", dl.FailedTiles)
	}
}

func TestCheckFindsCorruptTile(t *testing.T) {
	dir := t.TempDir()
	server := testutils.TileServer(t, testutils.ValidTile(t), nil)

	code := run([]string{
		"download",
		"-zoom", "2,2",
		"-output", dir,
		"-base-url", server.URL + "/{z}/{x}/{y}.png",
		"-yes",
		"--", testBBox,
	})
	if code != ExitSuccess {
		t.Fatalf("download exit = %d", code)
	}

	// Truncate one tile so it no longer decodes.
	corrupt := filepath.Join(dir, "2", "1", "1.png")
	if err := os.WriteFile(corrupt, []byte("broken"), 0644); err != nil {
		t.Fatalf("corrupt tile: %v", err)
	}

	code = run([]string{
		"check",
		"-zoom", "2,2",
		"-output", dir,
		"--", testBBox,
	})
	if code != ExitCheckFailed {
		t.Fatalf("check exit = %d, want %d", code, ExitCheckFailed)
	}

	data, err := os.ReadFile(filepath.Join(dir, "check_report.json"))
	if err != nil {
		t.Fatalf("read check report: %v", err)
	}
	var cr report.CheckReport
	if err := json.Unmarshal(data, &cr); err != nil {
		t.Fatalf("unmarshal check report: %v", err)
	}
	if cr.TotalCorrupt != 1 || cr.TotalExisting != 3 {
		t.Errorf("check totals = %d corrupt / %d existing, want 1/3", cr.TotalCorrupt, cr.TotalExisting)
	}
	if got := cr.CorruptByZoom["2"]; len(got) != 1 || got[0] != "1_1" {
		t.Errorf("corrupt_tiles_by_zoom = %v, want [1_1]", got)
	}
}

func TestOnlyMissingDownloadsTheGap(t *testing.T) {
	dir := t.TempDir()
	server := testutils.TileServer(t, testutils.ValidTile(t), nil)

	args := []string{
		"download",
		"-zoom", "2,2",
		"-output", dir,
		"-base-url", server.URL + "/{z}/{x}/{y}.png",
		"-yes",
		"--", testBBox,
	}
	if code := run(args); code != ExitSuccess {
		t.Fatalf("seed download exit = %d", code)
	}

	// Remove one tile, then fetch only what is missing.
	if err := os.Remove(filepath.Join(dir, "2", "2", "2.png")); err != nil {
		t.Fatalf("remove tile: %v", err)
	}

	code := run([]string{
		"download",
		"-zoom", "2,2",
		"-output", dir,
		"-base-url", server.URL + "/{z}/{x}/{y}.png",
		"-only-missing",
		"-yes",
		"--", testBBox,
	})
	if code != ExitSuccess {
		t.Fatalf("only-missing exit = %d", code)
	}

	data, err := os.ReadFile(filepath.Join(dir, "download_report.json"))
	if err != nil {
		t.Fatalf("read download report: %v", err)
	}
	var dl report.DownloadReport
	if err := json.Unmarshal(data, &dl); err != nil {
		t.Fatalf("unmarshal download report: %v", err)
	}
	if !dl.OnlyMissingMode {
		t.Error("report should record only-missing mode")
	}
	if dl.TotalTilesInPlan != 1 || dl.DownloadedCount != 1 {
		t.Errorf("plan/downloaded = %d/%d, want 1/1", dl.TotalTilesInPlan, dl.DownloadedCount)
	}
}

func TestInvalidArguments(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"upload"}},
		{"missing bbox", []string{"download", "-yes"}},
		{"bad bbox", []string{"download", "-yes", "not-a-bbox"}},
		{"bad zoom", []string{"download", "-zoom", "0,99", "-yes", "--", testBBox}},
		{"inverted bbox", []string{"download", "-yes", "--", "10,10,-10,-10"}},
	}

	for _, tc := range cases {
		if code := run(tc.args); code != ExitInvalidArgs {
			t.Errorf("%s: exit = %d, want %d", tc.name, code, ExitInvalidArgs)
		}
	}
}
