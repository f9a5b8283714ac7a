package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/cvforge/cvforge-go/internal/model"
	"github.com/cvforge/cvforge-go/internal/repository"
)

// CVStore is the subset of CV persistence the CV service needs.
type CVStore interface {
	Create(ctx context.Context, cv *model.CV) error
	GetByID(ctx context.Context, id string) (*model.CV, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CV, error)
	Update(ctx context.Context, cv *model.CV) error
	Delete(ctx context.Context, id string) error
}

// CVService handles CV business logic. Every operation except GetPublic is
// scoped to the owning user.
type CVService struct {
	store CVStore
}

// NewCVService creates a new CVService.
func NewCVService(store CVStore) *CVService {
	return &CVService{store: store}
}

// Create stores a new CV owned by userID. The owner comes from the
// authenticated principal, never from the payload.
func (s *CVService) Create(ctx context.Context, userID int64, req model.CVRequest) (*model.CV, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Message: "Validation error", Fields: fields}
	}

	cv := &model.CV{
		ID:             uuid.NewString(),
		UserID:         userID,
		Layout:         req.NormalizedLayout(),
		BasicDetails:   req.BasicDetails,
		Education:      req.Education,
		Experience:     req.Experience,
		Projects:       req.Projects,
		Skills:         req.Skills,
		SocialProfiles: req.SocialProfiles,
		IsPublic:       req.IsPublic,
	}

	if err := s.store.Create(ctx, cv); err != nil {
		return nil, err
	}

	// Re-read so the response carries the store-assigned timestamps.
	return s.store.GetByID(ctx, cv.ID)
}

// List returns all CVs owned by userID, most recently updated first.
func (s *CVService) List(ctx context.Context, userID int64) ([]model.CV, error) {
	return s.store.ListByUser(ctx, userID)
}

// Get returns a CV by id, enforcing ownership.
func (s *CVService) Get(ctx context.Context, userID int64, id string) (*model.CV, error) {
	return s.loadOwned(ctx, userID, id)
}

// Update replaces the writable fields of an owned CV and returns the updated
// document with its advanced update timestamp.
func (s *CVService) Update(ctx context.Context, userID int64, id string, req model.CVRequest) (*model.CV, error) {
	cv, err := s.loadOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if fields := req.Validate(); len(fields) > 0 {
		return nil, &ValidationError{Message: "Validation error", Fields: fields}
	}

	cv.Layout = req.NormalizedLayout()
	cv.BasicDetails = req.BasicDetails
	cv.Education = req.Education
	cv.Experience = req.Experience
	cv.Projects = req.Projects
	cv.Skills = req.Skills
	cv.SocialProfiles = req.SocialProfiles
	cv.IsPublic = req.IsPublic

	if err := s.store.Update(ctx, cv); err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return nil, ErrCVNotFound
		}
		return nil, err
	}

	return s.store.GetByID(ctx, id)
}

// Delete removes an owned CV.
func (s *CVService) Delete(ctx context.Context, userID int64, id string) error {
	if _, err := s.loadOwned(ctx, userID, id); err != nil {
		return err
	}

	err := s.store.Delete(ctx, id)
	if errors.Is(err, repository.ErrCVNotFound) {
		return ErrCVNotFound
	}
	return err
}

// GetPublic returns a CV by id regardless of owner, but only when its
// visibility flag is set.
func (s *CVService) GetPublic(ctx context.Context, id string) (*model.CV, error) {
	cv, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return nil, ErrCVNotFound
		}
		return nil, err
	}

	if !cv.IsPublic {
		return nil, ErrCVNotPublic
	}

	return cv, nil
}

func (s *CVService) loadOwned(ctx context.Context, userID int64, id string) (*model.CV, error) {
	cv, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCVNotFound) {
			return nil, ErrCVNotFound
		}
		return nil, err
	}

	if cv.UserID != userID {
		return nil, ErrNotOwner
	}

	return cv, nil
}
