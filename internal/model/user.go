package model

import (
	"regexp"
	"time"
)

// User represents a user account in the database.
type User struct {
	ID            int64
	Username      string
	Email         string
	PasswordHash  string
	ContactNumber string
	GoogleID      string
	Avatar        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	ContactNumber string `json:"contactNumber"`
}

// LoginRequest represents a password login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FederatedLoginRequest carries an externally issued identity token.
type FederatedLoginRequest struct {
	ExternalToken string `json:"externalToken"`
}

// AuthResponse is the public projection returned by every auth operation.
// The password hash is never part of it.
type AuthResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar,omitempty"`
	Token    string `json:"token"`
}

// FieldError names a single offending request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9\+\-\(\)\s]{7,}$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// MissingFields returns one FieldError per absent required field.
func (r RegisterRequest) MissingFields() []FieldError {
	var errs []FieldError
	if r.Username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "Username is required"})
	}
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

// Validate checks the registration payload shape, returning one FieldError
// per offending field.
func (r RegisterRequest) Validate() []FieldError {
	var errs []FieldError
	if len(r.Username) < 2 {
		errs = append(errs, FieldError{Field: "username", Message: "Username must be at least 2 characters"})
	}
	if !emailPattern.MatchString(r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Please provide a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	} else if !upperPattern.MatchString(r.Password) || !lowerPattern.MatchString(r.Password) || !digitPattern.MatchString(r.Password) {
		errs = append(errs, FieldError{Field: "password", Message: "Password must contain uppercase, lowercase, and numbers"})
	}
	if r.ContactNumber != "" && !phonePattern.MatchString(r.ContactNumber) {
		errs = append(errs, FieldError{Field: "contactNumber", Message: "Please provide a valid phone number"})
	}
	return errs
}

// MissingFields returns one FieldError per absent required field.
func (r LoginRequest) MissingFields() []FieldError {
	var errs []FieldError
	if r.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}
