// Package localdisk is a local-filesystem blob.Backend, grounded on the
// teacher's utils/file_upload.go (which writes uploads to a local
// directory and names the stored file with uuid.NewString()). It is
// meant for tests and single-node deployments; production deployments
// behind S3/GCS supply their own blob.Backend.
package localdisk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Backend struct {
	baseDir string
}

func New(baseDir string) (*Backend, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob base dir: %w", err)
	}
	return &Backend{baseDir: baseDir}, nil
}

// Put writes data under a generated name, namespaced by the caller's
// key (typically the request ID), matching the teacher's
// uuid.NewString()-based naming to avoid collisions.
func (b *Backend) Put(_ context.Context, key string, data io.Reader, _ int64) (string, error) {
	dir := filepath.Join(b.baseDir, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}

	storedName := uuid.NewString()
	fullPath := filepath.Join(dir, storedName)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create blob file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return "", fmt.Errorf("write blob file: %w", err)
	}

	return filepath.Join(key, storedName), nil
}

func (b *Backend) Get(_ context.Context, storageRef string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(b.baseDir, storageRef))
	if err != nil {
		return nil, fmt.Errorf("open blob file: %w", err)
	}
	return f, nil
}
