// Package blob defines the storage interface the Attachment Store (C6)
// writes file bytes through. Object storage is an out-of-scope external
// collaborator (spec.md §1); the engine only depends on this interface.
package blob

import (
	"context"
	"io"
)

// Backend persists attachment bytes under a caller-chosen key and
// returns an opaque storage reference the engine stores on Attachment.
type Backend interface {
	Put(ctx context.Context, key string, data io.Reader, size int64) (storageRef string, err error)
	Get(ctx context.Context, storageRef string) (io.ReadCloser, error)
}
