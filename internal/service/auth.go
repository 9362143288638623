package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dtroode/filedrop/internal/logger"
	"github.com/dtroode/filedrop/internal/model"
)

type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		logger:    logger,
	}
}

// Signup registers a new user. Uniqueness of username and email is left to
// the store's constraints, so a duplicate surfaces as model.ErrAlreadyExists.
func (a *Auth) Signup(ctx context.Context, params model.SignupParams) (model.User, error) {
	username := strings.TrimSpace(params.Username)
	email := strings.TrimSpace(params.Email)

	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if username == "" || email == "" || params.Password == "" {
		return model.User{}, fmt.Errorf("all fields are required: %w", model.ErrValidation)
	}
	if utf8.RuneCountInString(username) > model.MaxUsernameLength {
		return model.User{}, fmt.Errorf("username longer than %d characters: %w", model.MaxUsernameLength, model.ErrTooLong)
	}
	if utf8.RuneCountInString(email) > model.MaxEmailLength {
		return model.User{}, fmt.Errorf("email longer than %d characters: %w", model.MaxEmailLength, model.ErrTooLong)
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, model.ErrAlreadyExists) {
		a.logger.Info("Auth service: username or email already taken",
			"username", username)
		return model.User{}, err
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registration completed successfully",
		"username", username,
		"user_id", user.ID)

	return user, nil
}

// Login checks the password of the user known by username or email.
// Unknown users and wrong passwords both yield model.ErrInvalidCredentials
// and cost one hash comparison.
func (a *Auth) Login(ctx context.Context, identity, password string) (model.User, error) {
	identity = strings.TrimSpace(identity)

	a.logger.Debug("Auth service: starting user login",
		"identity", identity)

	if identity == "" || password == "" {
		return model.User{}, fmt.Errorf("empty credentials: %w", model.ErrInvalidCredentials)
	}

	user, err := a.userStore.GetByIdentity(ctx, identity)
	if errors.Is(err, model.ErrNotFound) {
		a.hasher.VerifyMissing(password)
		a.logger.Info("Auth service: login failed",
			"identity", identity)
		return model.User{}, fmt.Errorf("user not found: %w", model.ErrInvalidCredentials)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to get user",
			"identity", identity,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		a.logger.Info("Auth service: login failed",
			"identity", identity)
		return model.User{}, fmt.Errorf("password mismatch: %w", model.ErrInvalidCredentials)
	}

	a.logger.Info("Auth service: login completed successfully",
		"user_id", user.ID)

	return user, nil
}

// Resolve returns the account a session belongs to. A session whose user is
// gone is reported as model.ErrSessionRevoked.
func (a *Auth) Resolve(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: session refers to unknown user",
			"user_id", userID)
		return model.User{}, fmt.Errorf("user %s: %w", userID, model.ErrSessionRevoked)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}
