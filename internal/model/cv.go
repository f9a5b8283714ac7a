package model

import (
	"fmt"
	"time"
)

// CV layout tags. LayoutProfessional is the default when none is given.
const (
	LayoutProfessional = "professional"
	LayoutModern       = "modern"
	LayoutCreative     = "creative"
)

// BasicDetails holds the headline section of a CV.
type BasicDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
	Image   string `json:"image,omitempty"` // URL or base64
	Intro   string `json:"intro,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	Percentage  *float64 `json:"percentage,omitempty"`
	Year        string   `json:"year,omitempty"`
	StartDate   string   `json:"startDate,omitempty"`
	EndDate     string   `json:"endDate,omitempty"`
}

// Experience is a single work experience entry.
type Experience struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	Location     string   `json:"location,omitempty"`
	JoiningDate  string   `json:"joiningDate,omitempty"`
	LeavingDate  string   `json:"leavingDate,omitempty"`
	CTC          string   `json:"ctc,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// Project is a single project entry.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	TeamSize     *int     `json:"teamSize,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Role         string   `json:"role,omitempty"`
}

// Skill is a named skill with an optional 0-100 proficiency.
type Skill struct {
	Name        string `json:"name"`
	Proficiency *int   `json:"proficiency,omitempty"`
}

// SocialProfile links to an external profile.
type SocialProfile struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// CV represents a stored CV document. UserID is set once at creation from
// the authenticated principal and never taken from request input.
type CV struct {
	ID             string          `json:"id"`
	UserID         int64           `json:"user"`
	Layout         string          `json:"layout"`
	BasicDetails   BasicDetails    `json:"basicDetails"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Projects       []Project       `json:"projects"`
	Skills         []Skill         `json:"skills"`
	SocialProfiles []SocialProfile `json:"socialProfiles"`
	IsPublic       bool            `json:"isPublic"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// CVRequest is the writable portion of a CV, shared by create and update.
type CVRequest struct {
	Layout         string          `json:"layout"`
	BasicDetails   BasicDetails    `json:"basicDetails"`
	Education      []Education     `json:"education"`
	Experience     []Experience    `json:"experience"`
	Projects       []Project       `json:"projects"`
	Skills         []Skill         `json:"skills"`
	SocialProfiles []SocialProfile `json:"socialProfiles"`
	IsPublic       bool            `json:"isPublic"`
}

// Validate checks the CV payload against the section rules, returning one
// FieldError per offending field. A zero-length result means valid.
func (r CVRequest) Validate() []FieldError {
	var errs []FieldError

	switch r.Layout {
	case "", LayoutProfessional, LayoutModern, LayoutCreative:
	default:
		errs = append(errs, FieldError{Field: "layout", Message: "Layout must be one of professional, modern, creative"})
	}

	if r.BasicDetails.Name == "" {
		errs = append(errs, FieldError{Field: "basicDetails.name", Message: "Name is required"})
	}
	if r.BasicDetails.Email == "" {
		errs = append(errs, FieldError{Field: "basicDetails.email", Message: "Email is required"})
	}

	for i, e := range r.Education {
		if e.Degree == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("education.%d.degree", i), Message: "Degree is required"})
		}
		if e.Institution == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("education.%d.institution", i), Message: "Institution is required"})
		}
	}

	for i, e := range r.Experience {
		if e.Company == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("experience.%d.company", i), Message: "Company is required"})
		}
		if e.Position == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("experience.%d.position", i), Message: "Position is required"})
		}
	}

	for i, p := range r.Projects {
		if p.Title == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("projects.%d.title", i), Message: "Title is required"})
		}
	}

	for i, s := range r.Skills {
		if s.Name == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("skills.%d.name", i), Message: "Skill name is required"})
		}
		if s.Proficiency != nil && (*s.Proficiency < 0 || *s.Proficiency > 100) {
			errs = append(errs, FieldError{Field: fmt.Sprintf("skills.%d.proficiency", i), Message: "Proficiency must be between 0 and 100"})
		}
	}

	for i, s := range r.SocialProfiles {
		if s.Platform == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("socialProfiles.%d.platform", i), Message: "Platform is required"})
		}
		if s.URL == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("socialProfiles.%d.url", i), Message: "URL is required"})
		}
	}

	return errs
}

// NormalizedLayout returns the layout tag with the default applied.
func (r CVRequest) NormalizedLayout() string {
	if r.Layout == "" {
		return LayoutProfessional
	}
	return r.Layout
}
