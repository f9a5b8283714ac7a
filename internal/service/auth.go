package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cvforge/cvforge-go/internal/crypto"
	"github.com/cvforge/cvforge-go/internal/identity"
	"github.com/cvforge/cvforge-go/internal/model"
	"github.com/cvforge/cvforge-go/internal/repository"
)

// UserStore is the subset of user persistence the auth service needs.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthService handles registration, password login and Google login.
type AuthService struct {
	users     UserStore
	verifier  identity.Verifier
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, verifier identity.Verifier, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		verifier:  verifier,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

// Register creates a new user account and returns the public projection with
// a fresh token. The existence pre-check is a fast path only; the store's
// unique index on email is the authoritative guard, so a concurrent
// registration racing past the pre-check still surfaces as DuplicateError.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return model.AuthResponse{}, &ValidationError{Message: "Please fill in all required fields", Fields: missing}
	}

	req.Email = normalizeEmail(req.Email)

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return model.AuthResponse{}, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	if fields := req.Validate(); len(fields) > 0 {
		return model.AuthResponse{}, &ValidationError{Message: "Validation error", Fields: fields}
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  hash,
		ContactNumber: req.ContactNumber,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, &DuplicateError{Field: "email"}
		}
		return model.AuthResponse{}, err
	}

	return s.authResponse(user)
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password produce the same error, so the response never reveals
// whether an account exists.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return model.AuthResponse{}, &ValidationError{Message: "Validation error", Fields: missing}
	}

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// GoogleLogin authenticates via a Google-issued ID token, creating the user
// account on first sight of a verified email. An existing account with the
// same email is reused as-is, without comparing its stored Google subject.
func (s *AuthService) GoogleLogin(ctx context.Context, req model.FederatedLoginRequest) (model.AuthResponse, error) {
	if req.ExternalToken == "" {
		return model.AuthResponse{}, ErrGoogleTokenMissing
	}

	claims, err := s.verifier.Verify(ctx, req.ExternalToken)
	if err != nil {
		return model.AuthResponse{}, err
	}

	email := normalizeEmail(claims.Email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, err
		}

		// The account gets a credential derived from the Google subject id.
		// The raw subject is never known to the user, so the password path
		// stays unusable for accounts created here.
		hash, err := crypto.HashPassword(claims.Subject)
		if err != nil {
			return model.AuthResponse{}, err
		}

		user = &model.User{
			Username:     claims.Name,
			Email:        email,
			PasswordHash: hash,
			GoogleID:     claims.Subject,
			Avatar:       claims.Picture,
		}

		if err := s.users.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				// Lost the creation race to a concurrent login; reuse the row.
				user, err = s.users.GetByEmail(ctx, email)
				if err != nil {
					return model.AuthResponse{}, err
				}
			} else {
				return model.AuthResponse{}, err
			}
		}
	}

	return s.authResponse(user)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) authResponse(user *model.User) (model.AuthResponse, error) {
	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("generating token: %w", err)
	}

	return model.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Avatar:   user.Avatar,
		Token:    token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
