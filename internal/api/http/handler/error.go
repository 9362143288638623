package handler

import (
	"errors"
	"net/http"

	"github.com/dtroode/filedrop/internal/model"
)

// Messages shown to the user.
const (
	msgFieldsRequired     = "All fields are required!"
	msgTooLong            = "Username must be at most 80 and email at most 120 characters!"
	msgAlreadyExists      = "Username or email already exists!"
	msgSignupSuccess      = "Registration successful! Please login."
	msgInvalidCredentials = "Invalid username or password!"
	msgNoFile             = "No file selected!"
	msgTooLarge           = "File is too large!"
	msgUploadFailed       = "Upload failed"
	msgUploadSuccess      = "File uploaded successfully!"
	msgLoggedOut          = "You have been logged out."
	msgFetchUploads       = "Error fetching uploads."
	msgUnavailable        = "Service is temporarily unavailable. Please try again later."
	msgInternal           = "Something went wrong. Please try again."
	msgNotFound           = "File not found"
)

// handleError maps an error kind to the message and status of a re-rendered page.
func handleError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrTooLong):
		return http.StatusBadRequest, msgTooLong
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest, msgFieldsRequired
	case errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict, msgAlreadyExists
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, model.ErrStorage):
		return http.StatusBadGateway, msgUploadFailed
	case errors.Is(err, model.ErrUnavailable):
		return http.StatusServiceUnavailable, msgUnavailable
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
