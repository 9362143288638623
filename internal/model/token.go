package model

import "github.com/google/uuid"

// TokenManager signs and validates session tokens.
type TokenManager interface {
	Issue(userID uuid.UUID, username string) (token string, session Session, err error)
	Parse(token string) (Session, error)
}
