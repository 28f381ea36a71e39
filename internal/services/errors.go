package services

import (
	"errors"

	"erp-backend/internal/repository"
)

var (
	ErrNotFound  = repository.ErrNotFound
	ErrInvalidID = repository.ErrInvalidID
	ErrConflict  = errors.New("conflict")

	// ErrInvalidInput marks a well-formed request whose values do not fit
	// the stored data, such as an unknown vehicle or a meter going backwards.
	ErrInvalidInput = errors.New("invalid input")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
)
