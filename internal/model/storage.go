package model

import (
	"context"
	"io"
)

// Storage is an object store holding upload bytes under storage keys.
// Objects are always written with private access.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
