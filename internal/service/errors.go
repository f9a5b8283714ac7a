package service

import (
	"errors"

	"github.com/cvforge/cvforge-go/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrEmailTaken         = errors.New("User already exists with this email")
	ErrGoogleTokenMissing = errors.New("Google token is required")
	ErrCVNotFound         = errors.New("CV not found")
	ErrNotOwner           = errors.New("Not authorized")
	ErrCVNotPublic        = errors.New("This CV is not public")
)

// ValidationError carries one entry per offending request field.
type ValidationError struct {
	Message string
	Fields  []model.FieldError
}

func (e *ValidationError) Error() string { return e.Message }

// DuplicateError names the field rejected by a store uniqueness constraint.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return e.Field + " already exists" }
