// Package storage wraps the MinIO client for the two places the extractor
// touches object storage: CSV inputs referenced as s3://bucket/key, and
// workbook uploads after a successful extraction.
//
// The Client interface is the subset of minio.Client the package needs, so
// tests substitute core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	ref, err := storage.Upload(ctx, client, cfg.Storage.Bucket, "users.xlsx", f, size, storage.XLSXContentType)
package storage
