package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// ObjectStore saves binary objects under caller-chosen keys and derives the
// public URL they are served from. Keys are "/"-separated and relative.
type ObjectStore interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	PublicURL(key string) string
}

// CleanKey normalizes key and rejects keys escaping the bucket root.
func CleanKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", fmt.Errorf("empty storage key")
	}
	clean := path.Clean("/" + trimmed)[1:]
	if clean == "" || clean != strings.TrimLeft(trimmed, "/") || strings.Contains(trimmed, "..") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return clean, nil
}

// JoinURL appends key to base with exactly one separating slash.
func JoinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		out += "/" + p
	}
	return out
}

type CountingReader struct {
	R io.Reader
	N int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
