package object

import (
	"context"
	"errors"
	"io"
	"path"

	"resumegen/internal/shared/util"
)

// ErrInvalidKey is returned for keys that escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("object not found")

// Store persists binary objects under caller-chosen keys.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// Key joins sanitized segments with "/".
func Key(segments ...string) (string, error) {
	clean := make([]string, 0, len(segments))
	for _, s := range segments {
		name, err := util.SanitizeFileName(s)
		if err != nil {
			return "", ErrInvalidKey
		}
		clean = append(clean, name)
	}
	if len(clean) == 0 {
		return "", ErrInvalidKey
	}
	return path.Join(clean...), nil
}

// CountingReader counts bytes read through it.
type CountingReader struct {
	R io.Reader
	N int64
}

func (c *CountingReader) Read(p []byte) (int, error) {
	n, err := c.R.Read(p)
	c.N += int64(n)
	return n, err
}
