package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures the progress reporter.
type Options struct {
	// TotalTiles is the number of tiles scheduled for this run.
	TotalTiles int

	// Workers is the number of parallel workers (for display).
	Workers int

	// Label describes the operation, e.g. "Downloading".
	// Default: "Downloading"
	Label string

	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often to update the progress display.
	// Default: 500ms
	UpdateInterval time.Duration
}

// Reporter outputs human-readable progress information for a tile batch.
type Reporter struct {
	opts Options

	mu         sync.Mutex
	downloaded atomic.Int64
	failed     atomic.Int64
	skipped    atomic.Int64
	bytes      atomic.Int64
	inProgress atomic.Int32
	startTime  time.Time
	lastUpdate time.Time
	lastBytes  int64
	stopCh     chan struct{}
	done       chan struct{}
	started    bool
	stopped    bool
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}
	if opts.Label == "" {
		opts.Label = "Downloading"
	}

	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start begins outputting progress information.
func (r *Reporter) Start() {
	r.mu.Lock()
	r.started = true
	r.mu.Unlock()

	r.startTime = time.Now()
	r.lastUpdate = r.startTime

	fmt.Fprintf(r.opts.Output, "[terrapull] %s %d tiles | Workers: %d\n",
		r.opts.Label, r.opts.TotalTiles, r.opts.Workers)

	go r.updateLoop()
}

// Stop stops the progress reporter. It blocks until the update loop has
// written the final status line, so callers may use the output writer
// as soon as Stop returns.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	started := r.started
	r.mu.Unlock()

	close(r.stopCh)
	if started {
		<-r.done
	}
}

// TileStarted marks a tile as in progress.
func (r *Reporter) TileStarted() {
	r.inProgress.Add(1)
}

// TileCompleted marks a tile as downloaded.
func (r *Reporter) TileCompleted(size int64) {
	r.downloaded.Add(1)
	r.bytes.Add(size)
	r.inProgress.Add(-1)
}

// TileFailed marks a tile as failed.
func (r *Reporter) TileFailed() {
	r.failed.Add(1)
	r.inProgress.Add(-1)
}

// TileSkipped marks a tile as skipped because it already existed.
func (r *Reporter) TileSkipped() {
	r.skipped.Add(1)
	r.inProgress.Add(-1)
}

// Downloaded returns the number of tiles downloaded so far.
func (r *Reporter) Downloaded() int64 {
	return r.downloaded.Load()
}

// Bytes returns the number of tile bytes written so far.
func (r *Reporter) Bytes() int64 {
	return r.bytes.Load()
}

// updateLoop periodically updates the progress display.
func (r *Reporter) updateLoop() {
	defer close(r.done)

	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printFinalStatus()
			return
		case <-ticker.C:
			r.printProgress()
		}
	}
}

// printProgress outputs the current progress.
func (r *Reporter) printProgress() {
	now := time.Now()
	downloaded := r.downloaded.Load()
	failed := r.failed.Load()
	skipped := r.skipped.Load()
	bytes := r.bytes.Load()
	done := downloaded + failed + skipped

	elapsed := now.Sub(r.lastUpdate).Seconds()
	if elapsed < 0.1 {
		elapsed = 0.1
	}
	speed := float64(bytes-r.lastBytes) / elapsed

	r.lastUpdate = now
	r.lastBytes = bytes

	var percent float64
	if r.opts.TotalTiles > 0 {
		percent = float64(done) / float64(r.opts.TotalTiles) * 100
	}

	fmt.Fprintf(r.opts.Output, "\r[terrapull] %s: %.1f%% | %d/%d tiles | %d failed | %d skipped | %s/s    ",
		r.opts.Label,
		percent,
		done,
		r.opts.TotalTiles,
		failed,
		skipped,
		formatBytes(int64(speed)),
	)
}

// printFinalStatus outputs the final status.
func (r *Reporter) printFinalStatus() {
	downloaded := r.downloaded.Load()
	failed := r.failed.Load()
	skipped := r.skipped.Load()
	bytes := r.bytes.Load()
	duration := time.Since(r.startTime)
	avgSpeed := float64(bytes) / duration.Seconds()

	fmt.Fprintf(r.opts.Output, "\r[terrapull] %s complete: %d downloaded | %d failed | %d skipped    \n",
		r.opts.Label, downloaded, failed, skipped)
	fmt.Fprintf(r.opts.Output, "[terrapull] Total: %s in %s (%s/s)\n",
		formatBytes(bytes),
		formatDuration(duration),
		formatBytes(int64(avgSpeed)),
	)
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case b >= TB:
		return fmt.Sprintf("%.2f TB", float64(b)/float64(TB))
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatBytes is exported for use by other packages.
func FormatBytes(b int64) string {
	return formatBytes(b)
}
