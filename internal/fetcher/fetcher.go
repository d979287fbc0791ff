package fetcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gocloud.dev/blob"

	"github.com/terrapull/terrapull/internal/fetchhttp"
	"github.com/terrapull/terrapull/internal/progress"
	"github.com/terrapull/terrapull/pkg/tiles"
)

const (
	// DefaultBaseURL is the AWS terrain tile endpoint, parameterized by
	// {z}, {x}, {y}.
	DefaultBaseURL = "https://s3.amazonaws.com/elevation-tiles-prod/terrarium/{z}/{x}/{y}.png"

	// DefaultConcurrency is the worker pool size when none is given.
	DefaultConcurrency = 10
)

// status classifies the outcome of one tile fetch.
type status string

const (
	statusDownloaded status = "downloaded"
	statusSkipped    status = "skipped"
	statusFailed     status = "failed"
)

// outcome records the result of one tile fetch. Failure details are logged
// at the point of failure; the aggregate Result carries only identifiers.
type outcome struct {
	tile   tiles.Coord
	status status
	bytes  int64
}

// Descriptor describes the tile set for tiles.json generation after a run.
type Descriptor struct {
	Name  string
	BBox  tiles.BoundingBox
	Zooms tiles.ZoomRange
}

// Options configures the fetch engine.
type Options struct {
	// Concurrency is the worker pool size.
	// Values <= 0 fall back to DefaultConcurrency.
	Concurrency int

	// BaseURL is the tile URL template with {z}, {x}, {y} placeholders.
	// Default: DefaultBaseURL
	BaseURL string

	// HTTPOptions configures the shared HTTP client.
	HTTPOptions fetchhttp.Options

	// Progress is an optional progress reporter.
	Progress *progress.Reporter

	// Descriptor, when set, triggers tiles.json generation after the run
	// if at least one tile was downloaded or skipped. Generation failure
	// is logged, never fatal.
	Descriptor *Descriptor

	// Log receives per-tile failure notes.
	// Default: os.Stderr
	Log io.Writer
}

// Result aggregates fetch outcomes by status. Tile identifiers are sorted
// "z/x/y" strings.
type Result struct {
	Downloaded []string
	Failed     []string
	Skipped    []string
}

// Total returns the number of tiles accounted for.
func (r *Result) Total() int {
	return len(r.Downloaded) + len(r.Failed) + len(r.Skipped)
}

// FetchAll downloads every tile in set into the bucket using a bounded
// worker pool. Per-tile failures are recorded, never returned: the batch
// always runs to completion and the caller inspects the Result. There is no
// retry and no batch deadline; each request carries its own timeout.
func FetchAll(ctx context.Context, bucket *blob.Bucket, set tiles.Set, opts Options) *Result {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Log == nil {
		opts.Log = os.Stderr
	}

	// One client shared across workers for connection reuse.
	client := fetchhttp.NewClient(opts.HTTPOptions)

	var (
		mu     sync.Mutex
		result Result
	)

	jobs := make(chan tiles.Coord)
	var wg sync.WaitGroup

	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for coord := range jobs {
				if opts.Progress != nil {
					opts.Progress.TileStarted()
				}
				out := fetchTile(ctx, client, bucket, opts.BaseURL, coord, opts.Log)

				mu.Lock()
				switch out.status {
				case statusDownloaded:
					result.Downloaded = append(result.Downloaded, out.tile.ID())
				case statusSkipped:
					result.Skipped = append(result.Skipped, out.tile.ID())
				case statusFailed:
					result.Failed = append(result.Failed, out.tile.ID())
				}
				mu.Unlock()

				if opts.Progress != nil {
					switch out.status {
					case statusDownloaded:
						opts.Progress.TileCompleted(out.bytes)
					case statusSkipped:
						opts.Progress.TileSkipped()
					case statusFailed:
						opts.Progress.TileFailed()
					}
				}
			}
		}()
	}

	// Feed jobs to workers. Sorted dispatch keeps runs deterministic even
	// though completion order is not.
	go func() {
		defer close(jobs)
		for _, coord := range set.Sorted() {
			select {
			case jobs <- coord:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	sort.Strings(result.Downloaded)
	sort.Strings(result.Failed)
	sort.Strings(result.Skipped)

	if opts.Descriptor != nil && len(result.Downloaded)+len(result.Skipped) > 0 {
		doc := tiles.NewTileJSON(opts.Descriptor.Name, opts.Descriptor.BBox, opts.Descriptor.Zooms)
		if err := tiles.WriteTileJSON(ctx, bucket, doc); err != nil {
			fmt.Fprintf(opts.Log, "[terrapull] Failed to generate tiles.json: %v\n", err)
		}
	}

	return &result
}

// fetchTile downloads one tile into the bucket. It skips the request when
// the tile blob already exists, and on any failure deletes whatever may
// have been written before reporting the failure.
func fetchTile(ctx context.Context, client *fetchhttp.Client, bucket *blob.Bucket, baseURL string, coord tiles.Coord, logw io.Writer) outcome {
	key := coord.Key()

	// Last-moment existence guard, independent of any earlier missing scan.
	if exists, err := bucket.Exists(ctx, key); err == nil && exists {
		return outcome{tile: coord, status: statusSkipped}
	}

	body, err := client.Get(ctx, TileURL(baseURL, coord))
	if err != nil {
		fmt.Fprintf(logw, "[terrapull] Failed downloading %s: %v\n", coord.ID(), err)
		return outcome{tile: coord, status: statusFailed}
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		fmt.Fprintf(logw, "[terrapull] Failed reading %s: %v\n", coord.ID(), err)
		return outcome{tile: coord, status: statusFailed}
	}

	if err := bucket.WriteAll(ctx, key, data, nil); err != nil {
		// Clean up a partially committed blob; best effort.
		_ = bucket.Delete(ctx, key)
		fmt.Fprintf(logw, "[terrapull] Failed writing %s: %v\n", coord.ID(), err)
		return outcome{tile: coord, status: statusFailed}
	}

	return outcome{tile: coord, status: statusDownloaded, bytes: int64(len(data))}
}

// TileURL expands a URL template's {z}, {x}, {y} placeholders.
func TileURL(baseURL string, coord tiles.Coord) string {
	r := strings.NewReplacer(
		"{z}", strconv.Itoa(coord.Zoom),
		"{x}", strconv.Itoa(coord.X),
		"{y}", strconv.Itoa(coord.Y),
	)
	return r.Replace(baseURL)
}
