package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gocloud.dev/blob"

	"github.com/Mylezz/wiki-scripts/internal/progress"
)

// copyChunkSize is the buffer size used when streaming response bodies.
const copyChunkSize = 8 * 1024

// ErrNotFound is returned when the remote resource does not exist
// (HTTP 404). The destination object is left untouched.
var ErrNotFound = errors.New("transport: resource not found")

// Options configures the HTTP client.
type Options struct {
	// Timeout for individual requests, covering connect and body read.
	// Default: 30s
	Timeout time.Duration

	// MaxIdleConnsPerHost sets the maximum idle connections per host.
	// Default: 32
	MaxIdleConnsPerHost int
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Timeout:             30 * time.Second,
		MaxIdleConnsPerHost: 32,
	}
}

// Client downloads single resources into bucket objects.
type Client struct {
	client *http.Client
}

// NewClient creates a new client with the given options.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxIdleConnsPerHost == 0 {
		opts.MaxIdleConnsPerHost = 32
	}

	transport := &http.Transport{
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		MaxIdleConns:        opts.MaxIdleConnsPerHost * 2,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
	}
}

// Fetch performs a streaming GET of url and writes the body to the
// bucket object at key. It returns the number of bytes written.
//
//   - 404 responses return ErrNotFound and do not touch the destination.
//   - Other non-2xx responses and transport-level errors return a
//     descriptive error; the destination is not committed.
//   - On success the full body has been streamed and flushed to key,
//     overwriting any previous object.
//
// reporter may be nil; when set it receives the declared content
// length (or -1) and incremental byte counts as the body streams.
func (c *Client) Fetch(ctx context.Context, url string, bucket *blob.Bucket, key string, reporter *progress.Reporter) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("transport: create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("transport: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("transport: get %s: unexpected status %s", url, resp.Status)
	}

	if reporter != nil {
		reporter.TransferStarted(resp.ContentLength)
	}

	written, err := c.writeBody(ctx, resp.Body, bucket, key, reporter)
	if err != nil {
		if reporter != nil {
			reporter.TransferFailed()
		}
		return written, fmt.Errorf("transport: write %s: %w", key, err)
	}

	if reporter != nil {
		reporter.TransferCompleted()
	}
	return written, nil
}

// writeBody streams body into the bucket object at key in fixed-size
// chunks. On failure the writer's context is cancelled before Close so
// no partial object is committed.
func (c *Client) writeBody(ctx context.Context, body io.Reader, bucket *blob.Bucket, key string, reporter *progress.Reporter) (int64, error) {
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := bucket.NewWriter(wctx, key, nil)
	if err != nil {
		return 0, err
	}

	var written int64
	buf := make([]byte, copyChunkSize)
	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			nw, writeErr := w.Write(buf[:n])
			written += int64(nw)
			if reporter != nil && nw > 0 {
				reporter.BytesWritten(int64(nw))
			}
			if writeErr != nil {
				cancel()
				w.Close()
				return written, writeErr
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			cancel()
			w.Close()
			return written, readErr
		}
	}

	if err := w.Close(); err != nil {
		return written, err
	}
	return written, nil
}
