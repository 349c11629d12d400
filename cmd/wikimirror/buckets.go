package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// openBucket opens a destination given either a bucket URL (s3://,
// gs://, file://) or a plain local directory path. Local directories
// are created if absent and opened without sidecar metadata, so the
// output tree contains exactly the mirrored files.
func openBucket(ctx context.Context, dest string) (*blob.Bucket, error) {
	if strings.Contains(dest, "://") {
		bucket, err := blob.OpenBucket(ctx, dest)
		if err != nil {
			return nil, fmt.Errorf("open bucket %s: %w", dest, err)
		}
		return bucket, nil
	}

	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dest, err)
	}

	bucket, err := fileblob.OpenBucket(dest, &fileblob.Options{
		Metadata: fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("open directory %s: %w", dest, err)
	}
	return bucket, nil
}
