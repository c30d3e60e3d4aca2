// Package storage abstracts where uploaded file bytes live.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound means no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// Storage is a flat key/blob store that can hand out upload and download
// URLs for its objects. URLs may point at the store itself (S3 presigned)
// or back at the application server (in-memory backend).
type Storage interface {
	// UploadURL returns a URL the client can PUT the object's bytes to.
	UploadURL(ctx context.Context, key string) (string, error)
	// FetchURL returns a URL the object can be downloaded from.
	FetchURL(ctx context.Context, key string) (string, error)

	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
