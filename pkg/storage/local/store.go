package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"notes-repository-be/pkg/storage"
)

// Store implements ObjectStore on the local filesystem. Objects land in
// <baseDir>/<bucket>/<key> and are expected to be served statically from
// <publicBaseURL>/<bucket>/<key>.
type Store struct {
	baseDir       string
	bucket        string
	publicBaseURL string
}

func New(baseDir, bucket, publicBaseURL string) *Store {
	return &Store{baseDir: baseDir, bucket: bucket, publicBaseURL: publicBaseURL}
}

func (s *Store) Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	clean, err := storage.CleanKey(key)
	if err != nil {
		return 0, err
	}

	fullPath := filepath.Join(s.baseDir, s.bucket, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}

	// O_EXCL: objects are write-once.
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}
	_ = contentType
	return written, nil
}

func (s *Store) PublicURL(key string) string {
	return storage.JoinURL(s.publicBaseURL, s.bucket, key)
}

var _ storage.ObjectStore = (*Store)(nil)
