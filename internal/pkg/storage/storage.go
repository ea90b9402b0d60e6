package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNotFound    = errors.New("file not found")
)

type FileStorage interface {
	// Upload stores file at path and returns the cleaned path.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Open retrieves a file. Callers close the reader.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file. Missing files are not an error.
	Delete(ctx context.Context, path string) error

	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public address of path.
	URL(path string) string
}
