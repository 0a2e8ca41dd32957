package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Scheme prefixes object references accepted wherever a file path is.
const Scheme = "s3://"

// XLSXContentType is the media type of uploaded workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ParseURI splits s3://bucket/key. ok is false for anything else,
// including references without a key.
func ParseURI(uri string) (bucket, key string, ok bool) {
	if !strings.HasPrefix(uri, Scheme) {
		return "", "", false
	}
	rest := strings.TrimPrefix(uri, Scheme)
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// Open returns a reader for an object. The first read surfaces a missing
// object, so Open stats the object eagerly through a zero-length read.
func Open(ctx context.Context, c Client, bucket, key string) (io.ReadCloser, error) {
	obj, err := c.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
	}
	if o, ok := obj.(*minio.Object); ok {
		if _, err := o.Stat(); err != nil {
			_ = o.Close()
			return nil, fmt.Errorf("failed to get object %s/%s: %w", bucket, key, err)
		}
	}
	return obj, nil
}

// Upload stores r under bucket/key, creating the bucket when it is missing,
// and returns the s3:// reference of the stored object.
func Upload(ctx context.Context, c Client, bucket, key string, r io.Reader, size int64, contentType string) (string, error) {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}

	if _, err := c.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return Scheme + bucket + "/" + key, nil
}
