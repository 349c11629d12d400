//go:build integration

package mirror

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/Mylezz/wiki-scripts/internal/errlog"
	"github.com/Mylezz/wiki-scripts/internal/manifest"
	"github.com/Mylezz/wiki-scripts/internal/testutils"
	"github.com/Mylezz/wiki-scripts/internal/transport"
)

// TestMirrorToObjectStorage runs a full mirror into a real
// S3-compatible bucket: initial download, then a second run that must
// skip every asset.
func TestMirrorToObjectStorage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var files []testutils.WikiFile
	for i := 0; i < 8; i++ {
		f := testutils.WikiFile{
			Name: fmt.Sprintf("image-%d.png", i),
			Size: 128 * 1024,
			Desc: fmt.Sprintf("uploaded by user %d", i),
		}
		f.Data = testutils.GenerateTestData(t, f.Size)
		files = append(files, f)
	}

	t.Log("Starting HTTP test server...")
	server := testutils.StartWikiServer(t, files)
	defer server.Close()

	t.Log("Starting Minio container...")
	minio := testutils.StartMinioContainer(t, ctx, "mirror-test-bucket")
	defer func() {
		if err := minio.Close(ctx); err != nil {
			t.Logf("failed to terminate minio container: %v", err)
		}
	}()

	bucket, err := minio.OpenBucket(ctx)
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	defer bucket.Close()

	assets := blob.PrefixedBucket(bucket, "images/")
	descs := blob.PrefixedBucket(bucket, "descs/")
	defer assets.Close()
	defer descs.Close()

	var entries []manifest.Entry
	for _, f := range files {
		entries = append(entries, manifest.Entry{
			Filename: f.Name,
			URL:      server.URL + "/files/" + f.Name,
			Uploader: "tester",
			Size:     strconv.FormatInt(f.Size, 10),
			SHA1:     sha1Hex(f.Data),
		})
	}

	sink := errlog.New(filepath.Join(t.TempDir(), "error_log.txt"))
	defer sink.Close()

	opts := Options{
		Workers: 4,
		BaseURL: server.URL,
		Assets:  assets,
		Descs:   descs,
		Client:  transport.NewClient(transport.DefaultOptions()),
		Errors:  sink,
		Output:  &syncWriter{},
	}

	t.Log("First run: everything downloads")
	report := Run(ctx, entries, opts)
	if !report.OK() {
		t.Fatalf("first run errors: %v", report.Errors)
	}
	if report.Processed != len(entries) {
		t.Fatalf("expected %d processed, got %d", len(entries), report.Processed)
	}

	for _, f := range files {
		stored, err := assets.ReadAll(ctx, f.Name)
		if err != nil {
			t.Fatalf("read %s: %v", f.Name, err)
		}
		if !bytes.Equal(stored, f.Data) {
			t.Errorf("%s: stored content mismatch", f.Name)
		}
		if exists, _ := descs.Exists(ctx, f.Name+".desc"); !exists {
			t.Errorf("%s: missing description document", f.Name)
		}
	}

	t.Log("Second run: every asset skips")
	out := &syncWriter{}
	opts.Output = out
	report = Run(ctx, entries, opts)
	if !report.OK() {
		t.Fatalf("second run errors: %v", report.Errors)
	}
	for _, f := range files {
		notice := f.Name + ": already up to date."
		if !strings.Contains(out.String(), notice) {
			t.Errorf("expected skip notice for %s", f.Name)
		}
	}
}
