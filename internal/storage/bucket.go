package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrObjectNotFound = errors.New("storage object not found")
	ErrObjectExists   = errors.New("storage object already exists")
	ErrInvalidKey     = errors.New("invalid storage key")
)

// Bucket is a flat key/value object store.
type Bucket interface {
	// Name returns the bucket name
	Name() string

	// Upload stores r under key. Without overwrite an existing key fails with ErrObjectExists.
	Upload(ctx context.Context, key string, r io.Reader, overwrite bool) error

	// PublicURL returns the URL the object is served from
	PublicURL(key string) string

	// Download opens the object for reading
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}
