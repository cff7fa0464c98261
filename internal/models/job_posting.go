package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type JobKind string

const (
	JobKindGovernment JobKind = "government"
	JobKindPrivate    JobKind = "private"
)

// JobPosting is a tagged variant: Kind discriminates between government and
// private postings, each with its own detail fields. Shared fields are always
// set; detail fields belong to exactly one kind.
type JobPosting struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID   string    `gorm:"size:255;uniqueIndex" json:"external_id"`
	Kind         JobKind   `gorm:"size:20;not null;index" json:"kind"`
	Title        string    `gorm:"size:500;not null" json:"title"`
	Organization string    `gorm:"size:255;not null" json:"organization"`
	Location     string    `gorm:"size:255" json:"location"`
	Salary       string    `gorm:"size:255" json:"salary"`
	Description  string    `gorm:"type:text" json:"description"`
	IsActive     bool      `gorm:"not null;default:true;index" json:"is_active"`
	PostedAt     time.Time `gorm:"index" json:"posted_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Government postings only.
	Department          string `gorm:"size:255" json:"department,omitempty"`
	ApplicationDeadline string `gorm:"size:64" json:"application_deadline,omitempty"`
	Qualifications      string `gorm:"type:text" json:"qualifications,omitempty"`
	AgeLimit            string `gorm:"size:64" json:"age_limit,omitempty"`
	TotalVacancies      string `gorm:"size:64" json:"total_vacancies,omitempty"`
	ApplicationFee      string `gorm:"size:64" json:"application_fee,omitempty"`
	SelectionProcess    string `gorm:"type:text" json:"selection_process,omitempty"`
	OfficialWebsite     string `gorm:"size:500" json:"official_website,omitempty"`

	// Private postings only.
	JobType            string   `gorm:"size:64" json:"job_type,omitempty"`
	ExperienceRequired string   `gorm:"size:255" json:"experience_required,omitempty"`
	Requirements       string   `gorm:"type:text" json:"requirements,omitempty"`
	Benefits           string   `gorm:"type:text" json:"benefits,omitempty"`
	Skills             []string `gorm:"serializer:json" json:"skills,omitempty"`
	Remote             bool     `gorm:"not null;default:false" json:"remote"`
	ApplicationEmail   string   `gorm:"size:255" json:"application_email,omitempty"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// Validate checks the discriminator and the fields it requires.
func (j *JobPosting) Validate() error {
	if j.Title == "" || j.Organization == "" {
		return fmt.Errorf("job posting requires title and organization")
	}
	switch j.Kind {
	case JobKindGovernment:
		if j.Department == "" {
			return fmt.Errorf("government posting requires a department")
		}
		return nil
	case JobKindPrivate:
		if j.JobType == "" {
			return fmt.Errorf("private posting requires a job type")
		}
		return nil
	default:
		return fmt.Errorf("unknown job kind %q", j.Kind)
	}
}

// Matches reports whether the posting matches a case-insensitive search term,
// including the kind-specific detail fields.
func (j *JobPosting) Matches(query string) bool {
	q := strings.ToLower(query)
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), q)
	}

	if contains(j.Title) || contains(j.Organization) || contains(j.Location) || contains(j.Description) {
		return true
	}

	switch j.Kind {
	case JobKindGovernment:
		return contains(j.Department) || contains(j.Qualifications)
	case JobKindPrivate:
		for _, skill := range j.Skills {
			if contains(skill) {
				return true
			}
		}
		return contains(j.Requirements)
	default:
		return false
	}
}
