package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cvforge/cvforge-go/internal/model"
)

var ErrCVNotFound = errors.New("CV not found")

// CVRepository handles CV document persistence operations. Nested sections
// are stored as JSON columns.
type CVRepository struct {
	db *sql.DB
}

// NewCVRepository creates a new CVRepository.
func NewCVRepository(db *sql.DB) *CVRepository {
	return &CVRepository{db: db}
}

const cvColumns = `id, user_id, layout, basic_details, education, experience,
	projects, skills, social_profiles, is_public, created_at, updated_at`

// Create inserts a new CV document.
func (r *CVRepository) Create(ctx context.Context, cv *model.CV) error {
	sections, err := marshalSections(cv)
	if err != nil {
		return err
	}

	query := `INSERT INTO cvs (id, user_id, layout, basic_details, education, experience,
		projects, skills, social_profiles, is_public)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		cv.ID, cv.UserID, cv.Layout,
		sections.basicDetails, sections.education, sections.experience,
		sections.projects, sections.skills, sections.socialProfiles,
		cv.IsPublic,
	)
	return err
}

// GetByID retrieves a CV document by its ID.
func (r *CVRepository) GetByID(ctx context.Context, id string) (*model.CV, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs WHERE id = ?`

	cv, err := scanCV(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCVNotFound
		}
		return nil, err
	}

	return cv, nil
}

// ListByUser retrieves all CVs owned by a user, most recently updated first.
func (r *CVRepository) ListByUser(ctx context.Context, userID int64) ([]model.CV, error) {
	query := `SELECT ` + cvColumns + ` FROM cvs WHERE user_id = ? ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cvs []model.CV
	for rows.Next() {
		cv, err := scanCV(rows)
		if err != nil {
			return nil, err
		}
		cvs = append(cvs, *cv)
	}

	return cvs, rows.Err()
}

// Update replaces the writable fields of a CV. The owner reference is never
// touched. Returns ErrCVNotFound when no row matches.
func (r *CVRepository) Update(ctx context.Context, cv *model.CV) error {
	sections, err := marshalSections(cv)
	if err != nil {
		return err
	}

	query := `UPDATE cvs SET layout = ?, basic_details = ?, education = ?, experience = ?,
		projects = ?, skills = ?, social_profiles = ?, is_public = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		cv.Layout,
		sections.basicDetails, sections.education, sections.experience,
		sections.projects, sections.skills, sections.socialProfiles,
		cv.IsPublic, cv.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCVNotFound
	}

	return nil
}

// Delete removes a CV document. Returns ErrCVNotFound when no row matches.
func (r *CVRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM cvs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCVNotFound
	}

	return nil
}

type sectionBlobs struct {
	basicDetails   []byte
	education      []byte
	experience     []byte
	projects       []byte
	skills         []byte
	socialProfiles []byte
}

func marshalSections(cv *model.CV) (sectionBlobs, error) {
	var s sectionBlobs
	var err error

	if s.basicDetails, err = json.Marshal(cv.BasicDetails); err != nil {
		return s, fmt.Errorf("marshaling basic details: %w", err)
	}
	if s.education, err = json.Marshal(cv.Education); err != nil {
		return s, fmt.Errorf("marshaling education: %w", err)
	}
	if s.experience, err = json.Marshal(cv.Experience); err != nil {
		return s, fmt.Errorf("marshaling experience: %w", err)
	}
	if s.projects, err = json.Marshal(cv.Projects); err != nil {
		return s, fmt.Errorf("marshaling projects: %w", err)
	}
	if s.skills, err = json.Marshal(cv.Skills); err != nil {
		return s, fmt.Errorf("marshaling skills: %w", err)
	}
	if s.socialProfiles, err = json.Marshal(cv.SocialProfiles); err != nil {
		return s, fmt.Errorf("marshaling social profiles: %w", err)
	}

	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCV(row rowScanner) (*model.CV, error) {
	cv := &model.CV{}
	var s sectionBlobs

	err := row.Scan(
		&cv.ID, &cv.UserID, &cv.Layout,
		&s.basicDetails, &s.education, &s.experience,
		&s.projects, &s.skills, &s.socialProfiles,
		&cv.IsPublic, &cv.CreatedAt, &cv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(s.basicDetails, &cv.BasicDetails); err != nil {
		return nil, fmt.Errorf("unmarshaling basic details: %w", err)
	}
	if err := json.Unmarshal(s.education, &cv.Education); err != nil {
		return nil, fmt.Errorf("unmarshaling education: %w", err)
	}
	if err := json.Unmarshal(s.experience, &cv.Experience); err != nil {
		return nil, fmt.Errorf("unmarshaling experience: %w", err)
	}
	if err := json.Unmarshal(s.projects, &cv.Projects); err != nil {
		return nil, fmt.Errorf("unmarshaling projects: %w", err)
	}
	if err := json.Unmarshal(s.skills, &cv.Skills); err != nil {
		return nil, fmt.Errorf("unmarshaling skills: %w", err)
	}
	if err := json.Unmarshal(s.socialProfiles, &cv.SocialProfiles); err != nil {
		return nil, fmt.Errorf("unmarshaling social profiles: %w", err)
	}

	return cv, nil
}
