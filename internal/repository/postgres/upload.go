package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/filedrop/internal/model"
)

var _ model.UploadStore = (*UploadRepository)(nil)

type UploadRepository struct {
	db *Connection
}

func NewUploadRepository(db *Connection) *UploadRepository {
	return &UploadRepository{db: db}
}

func (r *UploadRepository) Create(ctx context.Context, upload model.Upload) (model.Upload, error) {
	const query = `
        INSERT INTO uploads (id, user_id, filename, storage_key, content_type, size, uploaded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, user_id, filename, storage_key, content_type, size, uploaded_at
    `

	var saved model.Upload
	if err := r.db.DB.QueryRowContext(ctx, query,
		upload.ID,
		upload.UserID,
		upload.Filename,
		upload.StorageKey,
		upload.ContentType,
		upload.Size,
		upload.UploadedAt,
	).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.Filename,
		&saved.StorageKey,
		&saved.ContentType,
		&saved.Size,
		&saved.UploadedAt,
	); err != nil {
		return model.Upload{}, wrapQueryError(err, "failed to create upload")
	}
	return saved, nil
}

func (r *UploadRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Upload, error) {
	const query = `
        SELECT id, user_id, filename, storage_key, content_type, size, uploaded_at
        FROM uploads
        WHERE id = $1
    `
	var u model.Upload
	if err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.UserID,
		&u.Filename,
		&u.StorageKey,
		&u.ContentType,
		&u.Size,
		&u.UploadedAt,
	); err != nil {
		return model.Upload{}, wrapQueryError(err, "failed to get upload by id")
	}
	return u, nil
}

// ListByUser returns the user's uploads, most recent first.
func (r *UploadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Upload, error) {
	const query = `
        SELECT id, user_id, filename, storage_key, content_type, size, uploaded_at
        FROM uploads
        WHERE user_id = $1
        ORDER BY uploaded_at DESC, id DESC
    `
	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, wrapQueryError(err, "failed to list uploads")
	}
	defer rows.Close()

	uploads := make([]model.Upload, 0)
	for rows.Next() {
		var u model.Upload
		if err := rows.Scan(
			&u.ID,
			&u.UserID,
			&u.Filename,
			&u.StorageKey,
			&u.ContentType,
			&u.Size,
			&u.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryError(err, "failed to iterate uploads")
	}

	return uploads, nil
}

func (r *UploadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM uploads WHERE id = $1`

	res, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return wrapQueryError(err, "failed to delete upload")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("failed to delete upload: %w", model.ErrNotFound)
	}
	return nil
}
