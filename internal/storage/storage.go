package storage

import (
	"context"
	"io"
	"time"
)

// Package storage holds the object storage abstraction the document gate uses
// for digitized artifacts. Implementations stream to an S3-compatible backend;
// nothing ever touches local disk.

// PutObjectOptions define optional parameters for uploading artifacts.
// Size should be the exact byte count when known; -1 lets the backend chunk.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored artifact.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the S3-compatible object store behind document digitization.
// Safe for concurrent use.
type Storage interface {
	// Put uploads an artifact under the given key from the provided reader.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an artifact's content as a streaming reader with its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an artifact by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL usable without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
