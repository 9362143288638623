package model

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// MaxContentTypeLength is the column limit of an upload's content type.
const MaxContentTypeLength = 255

// UploadStore defines persistence operations for upload metadata.
type UploadStore interface {
	Create(ctx context.Context, upload Upload) (Upload, error)
	GetByID(ctx context.Context, id uuid.UUID) (Upload, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Upload, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Upload is the metadata row of a stored object.
type Upload struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Filename    string
	StorageKey  string
	ContentType string
	Size        int64
	UploadedAt  time.Time
}

// UploadParams describes a file received from a client.
type UploadParams struct {
	UserID      uuid.UUID
	Filename    string
	ContentType string
	// Size is -1 when unknown.
	Size int64
	Body io.Reader
}
