// Package progress provides terminal progress reporting for tile batches.
//
// A Reporter tracks downloaded, failed, and skipped tile counts plus bytes
// written, and periodically renders a single-line status to its output.
// Counters use atomics so workers can report completions concurrently.
//
// # Usage
//
//	reporter := progress.NewReporter(progress.Options{
//	    TotalTiles: len(set),
//	    Workers:    10,
//	})
//	reporter.Start()
//	defer reporter.Stop()
//
//	// from workers:
//	reporter.TileStarted()
//	reporter.TileCompleted(bytesWritten)
package progress
