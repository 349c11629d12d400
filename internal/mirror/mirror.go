package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"gocloud.dev/blob"

	"github.com/Mylezz/wiki-scripts/internal/errlog"
	"github.com/Mylezz/wiki-scripts/internal/manifest"
	"github.com/Mylezz/wiki-scripts/internal/progress"
	"github.com/Mylezz/wiki-scripts/internal/transport"
	"github.com/Mylezz/wiki-scripts/internal/verify"
)

// DefaultWorkers is the worker pool size used when Options.Workers is
// not set.
const DefaultWorkers = 10

// Options configures a mirror run.
type Options struct {
	// Workers is the number of parallel workers. Default: 10.
	Workers int

	// BaseURL is the wiki base URL used to build description-document
	// export URLs.
	BaseURL string

	// Assets is the destination bucket for the primary files.
	Assets *blob.Bucket

	// Descs is the destination bucket for description documents.
	Descs *blob.Bucket

	// Client performs the downloads.
	Client *transport.Client

	// Errors receives one record per 404 outcome.
	Errors *errlog.Sink

	// Reporter is an optional progress reporter.
	Reporter *progress.Reporter

	// Output is where per-entry notices are written.
	// Default: os.Stdout
	Output io.Writer
}

// Report aggregates the outcome of one run.
type Report struct {
	// Processed is the number of manifest entries handled.
	Processed int

	// Errors holds every entry's error strings. Order follows worker
	// completion, not manifest order.
	Errors []string
}

// OK reports whether the run completed without any errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// Run processes all entries with a fixed-size worker pool and collects
// every worker's errors into one Report. A per-entry failure never
// stops the pool; cancelling ctx stops feeding new entries, and the
// run returns once every dispatched entry has finished.
func Run(ctx context.Context, entries []manifest.Entry, opts Options) *Report {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	verifier := verify.New(opts.Assets)

	jobs := make(chan manifest.Entry)
	results := make(chan []string)

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				results <- processEntry(ctx, entry, verifier, opts)
			}
		}()
	}

	// Feed jobs to workers
	go func() {
		defer close(jobs)
		for _, entry := range entries {
			select {
			case jobs <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := &Report{}
	for errs := range results {
		report.Processed++
		report.Errors = append(report.Errors, errs...)
	}
	return report
}

// processEntry handles one manifest entry: verify the local asset,
// re-download it when absent or stale, then unconditionally fetch the
// description document. All failures are returned as strings; nothing
// escapes the entry boundary.
func processEntry(ctx context.Context, entry manifest.Entry, verifier *verify.Verifier, opts Options) []string {
	var errs []string

	download := true
	exists, err := verifier.Exists(ctx, entry.Filename)
	if err != nil {
		return []string{unexpected(entry, err)}
	}
	if exists {
		match, err := verifier.Matches(ctx, entry.Filename, entry.Size, entry.SHA1)
		if err != nil {
			return []string{unexpected(entry, err)}
		}
		if match {
			download = false
			fmt.Fprintf(opts.Output, "%s: already up to date.\n", entry.Filename)
			if opts.Reporter != nil {
				opts.Reporter.FileSkipped()
			}
		} else {
			fmt.Fprintf(opts.Output, "%s: hash/size mismatch, re-downloading.\n", entry.Filename)
		}
	}

	if download {
		_, err := opts.Client.Fetch(ctx, entry.URL, opts.Assets, entry.Filename, opts.Reporter)
		switch {
		case errors.Is(err, transport.ErrNotFound):
			if logErr := opts.Errors.Record(entry.Filename, entry.URL); logErr != nil {
				return append(errs, unexpected(entry, logErr))
			}
			errs = append(errs, fmt.Sprintf("%s - image failed: 404 Not Found", entry.Filename))
		case err != nil:
			errs = append(errs, fmt.Sprintf("%s - image failed: %v", entry.Filename, err))
		}
	}

	// Always (re)download the description document
	descURL := manifest.ExportURL(opts.BaseURL, entry.Filename)
	_, err = opts.Client.Fetch(ctx, descURL, opts.Descs, entry.DescName(), opts.Reporter)
	switch {
	case errors.Is(err, transport.ErrNotFound):
		if logErr := opts.Errors.Record(entry.DescName(), descURL); logErr != nil {
			return append(errs, unexpected(entry, logErr))
		}
		errs = append(errs, fmt.Sprintf("%s - desc failed: 404 Not Found", entry.Filename))
	case err != nil:
		errs = append(errs, fmt.Sprintf("%s - desc failed: %v", entry.Filename, err))
	}

	return errs
}

func unexpected(entry manifest.Entry, err error) string {
	return fmt.Sprintf("%s - unexpected error: %v", entry.Filename, err)
}
