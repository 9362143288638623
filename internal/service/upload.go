package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

const defaultContentType = "application/octet-stream"

type Upload struct {
	uploadStore model.UploadStore
	storage     model.Storage
	logger      *logger.Logger
}

func NewUpload(
	uploadStore model.UploadStore,
	storage model.Storage,
	logger *logger.Logger,
) *Upload {
	return &Upload{
		uploadStore: uploadStore,
		storage:     storage,
		logger:      logger,
	}
}

// countingReader records how many bytes the storage consumed.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Upload writes the file to storage under a fresh key and then records its
// metadata. When the metadata insert fails the stored object is removed again.
func (s *Upload) Upload(ctx context.Context, params model.UploadParams) (model.Upload, error) {
	filename := SecureFilename(params.Filename)
	if filename == "" || params.Body == nil {
		return model.Upload{}, fmt.Errorf("no file selected: %w", model.ErrValidation)
	}

	contentType := params.ContentType
	if contentType == "" || len(contentType) > model.MaxContentTypeLength {
		contentType = defaultContentType
	}

	id := uuid.New()
	key := id.String() + "_" + filename
	body := &countingReader{r: params.Body}

	s.logger.Debug("Upload service: storing object",
		"user_id", params.UserID,
		"storage_key", key)

	err := s.storage.Upload(ctx, key, body, params.Size, contentType)
	if err != nil {
		s.logger.Error("Upload service: failed to store object",
			"user_id", params.UserID,
			"storage_key", key,
			"error", err.Error())
		return model.Upload{}, fmt.Errorf("failed to store object: %w: %w", model.ErrStorage, err)
	}

	upload, err := s.uploadStore.Create(ctx, model.Upload{
		ID:          id,
		UserID:      params.UserID,
		Filename:    filename,
		StorageKey:  key,
		ContentType: contentType,
		Size:        body.n,
		UploadedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Upload service: failed to save upload metadata",
			"user_id", params.UserID,
			"storage_key", key,
			"error", err.Error())
		s.removeOrphan(ctx, key)
		return model.Upload{}, fmt.Errorf("failed to save upload: %w", err)
	}

	s.logger.Info("Upload service: upload completed successfully",
		"user_id", params.UserID,
		"upload_id", upload.ID,
		"size", upload.Size)

	return upload, nil
}

func (s *Upload) removeOrphan(ctx context.Context, key string) {
	err := s.storage.Delete(context.WithoutCancel(ctx), key)
	if err != nil {
		s.logger.Error("Upload service: failed to remove orphaned object",
			"storage_key", key,
			"error", err.Error())
	}
}

// removeStaleRow drops metadata whose object is gone, so the dashboard stops
// listing it.
func (s *Upload) removeStaleRow(ctx context.Context, id uuid.UUID) {
	err := s.uploadStore.Delete(context.WithoutCancel(ctx), id)
	if err != nil {
		s.logger.Error("Upload service: failed to remove stale upload",
			"upload_id", id,
			"error", err.Error())
	}
}

// List returns the user's uploads, most recent first.
func (s *Upload) List(ctx context.Context, userID uuid.UUID) ([]model.Upload, error) {
	uploads, err := s.uploadStore.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}

	return uploads, nil
}

// Open returns the upload and a reader over its bytes. Uploads of other
// users are reported as model.ErrNotFound.
func (s *Upload) Open(ctx context.Context, userID, uploadID uuid.UUID) (model.Upload, io.ReadCloser, error) {
	upload, err := s.uploadStore.GetByID(ctx, uploadID)
	if err != nil {
		return model.Upload{}, nil, fmt.Errorf("failed to get upload by id: %w", err)
	}

	if upload.UserID != userID {
		return model.Upload{}, nil, fmt.Errorf("upload %s: %w", uploadID, model.ErrNotFound)
	}

	exists, err := s.storage.Exists(ctx, upload.StorageKey)
	if err != nil {
		return model.Upload{}, nil, fmt.Errorf("failed to check object: %w", err)
	}
	if !exists {
		s.logger.Error("Upload service: object missing for upload, removing metadata",
			"upload_id", upload.ID,
			"storage_key", upload.StorageKey)
		s.removeStaleRow(ctx, upload.ID)
		return model.Upload{}, nil, fmt.Errorf("object %s: %w", upload.StorageKey, model.ErrNotFound)
	}

	reader, err := s.storage.Download(ctx, upload.StorageKey)
	if err != nil {
		return model.Upload{}, nil, fmt.Errorf("failed to download from storage: %w", err)
	}

	return upload, reader, nil
}
