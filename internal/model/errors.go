package model

import (
	"errors"
	"fmt"
)

// Error kinds shared by every layer. Lower layers wrap them with %w and the
// HTTP handlers branch on them with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("username or email already exists")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnavailable        = errors.New("service unavailable")
	ErrStorage            = errors.New("storage write failed")
	ErrSessionRevoked     = errors.New("session revoked")
)

// ErrTooLong is the validation failure of a value exceeding its column size.
var ErrTooLong = fmt.Errorf("%w: value too long", ErrValidation)
