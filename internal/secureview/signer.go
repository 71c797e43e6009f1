package secureview

import (
	"context"
	"net/http"
	"time"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // local filesystem driver for development
	_ "gocloud.dev/blob/s3blob"   // S3 and S3-compatible stores (R2, MinIO)

	apperrors "github.com/afrireads/bookgate/internal/errors"
)

// URLSigner mints short-lived direct URLs for stored book files.
type URLSigner interface {
	// SignedURL returns a time-limited GET URL for the given file key.
	SignedURL(ctx context.Context, fileKey string) (string, error)
}

// BlobURLSigner implements URLSigner on a gocloud.dev blob bucket.
type BlobURLSigner struct {
	bucket *blob.Bucket
	ttl    time.Duration
}

// SignedURL mints a GET URL that expires after the configured TTL.
func (b *BlobURLSigner) SignedURL(ctx context.Context, fileKey string) (string, error) {
	url, err := b.bucket.SignedURL(ctx, fileKey, &blob.SignedURLOptions{
		Expiry: b.ttl,
		Method: http.MethodGet,
	})
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign document URL")
	}
	return url, nil
}

// Close releases the underlying bucket.
func (b *BlobURLSigner) Close() error {
	return b.bucket.Close()
}

// NewBlobURLSigner opens the bucket at the given URL (s3://, file://) and
// returns a signer minting URLs valid for ttl.
func NewBlobURLSigner(ctx context.Context, bucketURL string, ttl time.Duration) (*BlobURLSigner, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open document bucket")
	}

	return &BlobURLSigner{
		bucket: bucket,
		ttl:    ttl,
	}, nil
}
