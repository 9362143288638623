package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Column limits of the users table, counted in characters.
const (
	MaxUsernameLength = 80
	MaxEmailLength    = 120
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByIdentity(ctx context.Context, usernameOrEmail string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// PasswordHasher derives and checks salted password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
	VerifyMissing(password string)
}

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupParams contains the signup form values.
type SignupParams struct {
	Username string
	Email    string
	Password string
}
