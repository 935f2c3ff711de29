package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

// Bucket provides read access to workflow definitions and node units stored
// in a gocloud.dev/blob bucket, supporting local directories, S3, GCS, Azure
// Blob Storage, and in-memory stores
type Bucket struct {
	bucket *blob.Bucket
	url    string
}

const schemeSeparator = "://"

var (
	ErrNotFound   = errors.New("object not found")
	ErrOpenBucket = errors.New("failed to open bucket")
	ErrReadObject = errors.New("failed to read object")
)

// URL converts a bucket location into a gocloud.dev bucket URL. Locations
// that already carry a scheme are returned untouched; anything else is
// treated as a local directory and mapped to an absolute file:// URL
func URL(location string) (string, error) {
	trimmed := strings.TrimSpace(location)
	if strings.Contains(trimmed, schemeSeparator) {
		return trimmed, nil
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrOpenBucket, location, err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// Open opens the bucket at the given location
func Open(ctx context.Context, location string) (*Bucket, error) {
	u, err := URL(location)
	if err != nil {
		return nil, err
	}
	b, err := blob.OpenBucket(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenBucket, u, err)
	}
	return New(b, u), nil
}

// New wraps an already opened bucket
func New(b *blob.Bucket, url string) *Bucket {
	return &Bucket{bucket: b, url: url}
}

// Read opens the bucket at location, reads key, and closes the bucket
func Read(ctx context.Context, location, key string) ([]byte, error) {
	b, err := Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()
	return b.ReadAll(ctx, key)
}

// ReadAll returns the full contents of the object stored under key
func (b *Bucket) ReadAll(ctx context.Context, key string) ([]byte, error) {
	data, err := b.bucket.ReadAll(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, b.describe(key))
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrReadObject, b.describe(key), err)
	}
	return data, nil
}

// Exists reports whether an object is stored under key
func (b *Bucket) Exists(ctx context.Context, key string) (bool, error) {
	return b.bucket.Exists(ctx, key)
}

// URL returns the bucket URL this Bucket was opened from
func (b *Bucket) URL() string {
	return b.url
}

// Close releases the underlying bucket
func (b *Bucket) Close() error {
	return b.bucket.Close()
}

func (b *Bucket) describe(key string) string {
	if strings.HasSuffix(b.url, schemeSeparator) {
		return b.url + key
	}
	return strings.TrimRight(b.url, "/") + "/" + key
}
