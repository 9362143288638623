package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/filedrop/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// GetByIdentity looks a user up by username or email.
func (r *UserRepository) GetByIdentity(ctx context.Context, usernameOrEmail string) (model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password_hash, created_at
			  FROM users WHERE username = $1 OR email = $1
			  ORDER BY username = $1 DESC
			  LIMIT 1`

	err := r.db.DB.QueryRowContext(ctx, query, usernameOrEmail).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return model.User{}, wrapQueryError(err, "failed to get user by identity")
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	var user model.User
	query := `SELECT id, username, email, password_hash, created_at
			  FROM users WHERE id = $1`

	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		return model.User{}, wrapQueryError(err, "failed to get user by id")
	}

	return user, nil
}

// Create inserts the user. The UNIQUE constraints on username and email are
// the uniqueness check: a violation is reported as model.ErrAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, username, email, password_hash, created_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, username, email, password_hash, created_at`

	var savedUser model.User
	err := r.db.DB.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(
		&savedUser.ID, &savedUser.Username, &savedUser.Email, &savedUser.PasswordHash, &savedUser.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, fmt.Errorf("failed to create user: %w", model.ErrAlreadyExists)
		}
		return model.User{}, wrapQueryError(err, "failed to create user")
	}

	return savedUser, nil
}

func wrapQueryError(err error, msg string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("%s: %w", msg, model.ErrNotFound)
	case isValueTooLong(err):
		return fmt.Errorf("%s: %w", msg, model.ErrTooLong)
	case isConnectionError(err):
		return fmt.Errorf("%s: %w: %w", msg, model.ErrUnavailable, err)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
