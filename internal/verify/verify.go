package verify

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"gocloud.dev/blob"
)

// readChunkSize is the buffer size used when hashing object content.
const readChunkSize = 8 * 1024

// Verifier checks stored objects against expected size and SHA-1
// values from a manifest. Nothing is cached; every check re-reads the
// object's current state.
type Verifier struct {
	bucket *blob.Bucket
}

// New returns a Verifier reading from bucket.
func New(bucket *blob.Bucket) *Verifier {
	return &Verifier{bucket: bucket}
}

// Exists reports whether the object exists in the bucket.
func (v *Verifier) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := v.bucket.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("verify: stat %s: %w", key, err)
	}
	return ok, nil
}

// Matches reports whether the object's byte length and SHA-1 digest
// both equal the expected manifest values. The size is compared as a
// decimal string against the manifest's literal representation, the
// digest as lowercase hex. The object must exist; check Exists first.
func (v *Verifier) Matches(ctx context.Context, key, wantSize, wantSHA1 string) (bool, error) {
	attrs, err := v.bucket.Attributes(ctx, key)
	if err != nil {
		return false, fmt.Errorf("verify: attributes %s: %w", key, err)
	}

	if strconv.FormatInt(attrs.Size, 10) != wantSize {
		return false, nil
	}

	digest, err := v.digest(ctx, key)
	if err != nil {
		return false, err
	}

	return digest == wantSHA1, nil
}

// digest streams the object through SHA-1 in fixed-size chunks and
// returns the lowercase hex digest.
func (v *Verifier) digest(ctx context.Context, key string) (string, error) {
	r, err := v.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return "", fmt.Errorf("verify: open %s: %w", key, err)
	}
	defer r.Close()

	h := sha1.New()
	buf := make([]byte, readChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("verify: read %s: %w", key, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
