package verify

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"testing"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/memblob"
)

func newTestBucket(t *testing.T) *blob.Bucket {
	t.Helper()
	bucket, err := blob.OpenBucket(context.Background(), "mem://")
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	t.Cleanup(func() { bucket.Close() })
	return bucket
}

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func TestMatches(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)

	data := make([]byte, 40*1024) // several hash chunks
	for i := range data {
		data[i] = byte(i % 251)
	}
	if err := bucket.WriteAll(ctx, "cat.png", data, nil); err != nil {
		t.Fatalf("write object: %v", err)
	}

	v := New(bucket)
	match, err := v.Matches(ctx, "cat.png", strconv.Itoa(len(data)), sha1Hex(data))
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if !match {
		t.Error("expected match for identical content")
	}
}

func TestMatchesSizeMismatch(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)

	data := []byte("hello world")
	if err := bucket.WriteAll(ctx, "cat.png", data, nil); err != nil {
		t.Fatalf("write object: %v", err)
	}

	v := New(bucket)
	match, err := v.Matches(ctx, "cat.png", "9999", sha1Hex(data))
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if match {
		t.Error("expected mismatch for wrong size")
	}
}

func TestMatchesSizeIsLiteralString(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)

	data := []byte("hello")
	if err := bucket.WriteAll(ctx, "cat.png", data, nil); err != nil {
		t.Fatalf("write object: %v", err)
	}

	v := New(bucket)

	// "05" is numerically equal but not the literal decimal string.
	match, err := v.Matches(ctx, "cat.png", "05", sha1Hex(data))
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if match {
		t.Error("expected mismatch for non-canonical size string")
	}

	// A non-numeric size never matches and is not an error.
	match, err = v.Matches(ctx, "cat.png", "unknown", sha1Hex(data))
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if match {
		t.Error("expected mismatch for non-numeric size string")
	}
}

func TestMatchesHashMismatch(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)

	data := []byte("hello world")
	if err := bucket.WriteAll(ctx, "cat.png", data, nil); err != nil {
		t.Fatalf("write object: %v", err)
	}

	v := New(bucket)
	match, err := v.Matches(ctx, "cat.png", strconv.Itoa(len(data)), sha1Hex([]byte("other content")))
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if match {
		t.Error("expected mismatch for wrong hash")
	}
}

func TestExists(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)

	if err := bucket.WriteAll(ctx, "cat.png", []byte("x"), nil); err != nil {
		t.Fatalf("write object: %v", err)
	}

	v := New(bucket)

	ok, err := v.Exists(ctx, "cat.png")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("expected cat.png to exist")
	}

	ok, err = v.Exists(ctx, "dog.png")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("expected dog.png to not exist")
	}
}

func TestMatchesMissingObject(t *testing.T) {
	ctx := context.Background()
	bucket := newTestBucket(t)

	v := New(bucket)
	_, err := v.Matches(ctx, "missing.png", "1", "00")
	if err == nil {
		t.Error("expected error for missing object")
	}
}
