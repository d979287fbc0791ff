// Package fetcher downloads tile sets concurrently into a blob bucket.
//
// This package coordinates between the HTTP client and the tile store. A
// bounded worker pool consumes tile coordinates from a channel, fetches each
// tile once, and records the outcome into a shared, mutex-guarded result.
// Per-tile failures never abort the batch.
//
// # Usage
//
//	result := fetcher.FetchAll(ctx, bucket, set, fetcher.Options{
//	    Concurrency: 10,
//	    Progress:    reporter,
//	})
//	// result.Downloaded / result.Failed / result.Skipped
//
// # Semantics
//
//   - A tile whose blob already exists is skipped without a request.
//   - A network error, non-2xx status, or write failure marks the tile
//     failed and removes any partial blob.
//   - No tile is retried; a later run (optionally missing-only) picks up
//     failures.
package fetcher
