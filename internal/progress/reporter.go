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
	// TotalFiles is the number of manifest entries in the run.
	TotalFiles int

	// Workers is the number of parallel workers.
	Workers int

	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often to update the progress display.
	// Default: 500ms
	UpdateInterval time.Duration

	// Manifest is the manifest path being mirrored (for display).
	Manifest string
}

// Reporter outputs human-readable progress for a mirror run. Transfer
// counters are updated by the transport as bodies stream; the skip
// counter by workers as entries resolve without a download.
type Reporter struct {
	opts Options

	transferredBytes atomic.Int64
	expectedBytes    atomic.Int64
	completed        atomic.Int32
	failed           atomic.Int32
	skipped          atomic.Int32
	inProgress       atomic.Int32

	mu         sync.Mutex
	startTime  time.Time
	lastUpdate time.Time
	lastBytes  int64
	stopCh     chan struct{}
	doneCh     chan struct{}
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

	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins outputting progress information.
func (r *Reporter) Start() {
	r.mu.Lock()
	r.started = true
	r.startTime = time.Now()
	r.lastUpdate = r.startTime
	r.mu.Unlock()

	fmt.Fprintf(r.opts.Output, "[wikimirror] Mirroring: %s\n", r.opts.Manifest)
	fmt.Fprintf(r.opts.Output, "[wikimirror] Files: %d | Workers: %d\n",
		r.opts.TotalFiles,
		r.opts.Workers,
	)

	go r.updateLoop()
}

// Stop stops the progress reporter and waits for the final status line
// to be written.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped || !r.started {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

// TransferStarted marks one download as in progress. total is the
// declared content length, or a non-positive value when the server
// omitted it.
func (r *Reporter) TransferStarted(total int64) {
	r.inProgress.Add(1)
	if total > 0 {
		r.expectedBytes.Add(total)
	}
}

// BytesWritten records bytes streamed to the destination.
func (r *Reporter) BytesWritten(n int64) {
	r.transferredBytes.Add(n)
}

// TransferCompleted marks one download as finished.
func (r *Reporter) TransferCompleted() {
	r.completed.Add(1)
	r.inProgress.Add(-1)
}

// TransferFailed marks one download as failed (removes from in-progress).
func (r *Reporter) TransferFailed() {
	r.failed.Add(1)
	r.inProgress.Add(-1)
}

// FileSkipped records a manifest entry whose local copy already
// matched and was not downloaded.
func (r *Reporter) FileSkipped() {
	r.skipped.Add(1)
}

// updateLoop periodically updates the progress display.
func (r *Reporter) updateLoop() {
	defer close(r.doneCh)

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
	transferred := r.transferredBytes.Load()

	r.mu.Lock()
	elapsed := now.Sub(r.lastUpdate).Seconds()
	if elapsed < 0.1 {
		elapsed = 0.1
	}
	speed := float64(transferred-r.lastBytes) / elapsed
	r.lastUpdate = now
	r.lastBytes = transferred
	r.mu.Unlock()

	fmt.Fprintf(r.opts.Output, "\r[wikimirror] Transferred: %s | Speed: %s/s | Downloads: %d done, %d active, %d failed | Skipped: %d    ",
		formatBytes(transferred),
		formatBytes(int64(speed)),
		r.completed.Load(),
		r.inProgress.Load(),
		r.failed.Load(),
		r.skipped.Load(),
	)
}

// printFinalStatus outputs the final status.
func (r *Reporter) printFinalStatus() {
	transferred := r.transferredBytes.Load()
	duration := time.Since(r.startTime)
	avgSpeed := float64(transferred) / duration.Seconds()

	fmt.Fprintf(r.opts.Output, "\r[wikimirror] Downloads: %d completed | %d failed | %d files skipped    \n",
		r.completed.Load(),
		r.failed.Load(),
		r.skipped.Load(),
	)
	fmt.Fprintf(r.opts.Output, "[wikimirror] Total: %s in %s | Average speed: %s/s\n",
		formatBytes(transferred),
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
