package domain

import (
	"context"
	"time"
)

// Availability describes how soon a candidate can start.
type Availability string

const (
	AvailabilityImmediate   Availability = "immediate"
	AvailabilityTwoWeeks    Availability = "two_weeks"
	AvailabilityOneMonth    Availability = "one_month"
	AvailabilityUnavailable Availability = "unavailable"
)

// ProfileNoteType classifies a profile note.
type ProfileNoteType string

const (
	ProfileNoteGeneral     ProfileNoteType = "general"
	ProfileNoteInterview   ProfileNoteType = "interview"
	ProfileNoteFeedback    ProfileNoteType = "feedback"
	ProfileNotePerformance ProfileNoteType = "performance"
)

const DefaultProfileStatus = "active"

// Profile is a candidate or contractor record
type Profile struct {
	ID                 string                 `json:"id"`
	FirstName          string                 `json:"firstName"`
	LastName           string                 `json:"lastName"`
	Email              string                 `json:"email"`
	Phone              *string                `json:"phone"`
	Skills             []string               `json:"skills"`
	Summary            string                 `json:"summary"`
	YearsOfExperience  int                    `json:"yearsOfExperience"`
	ExpectedRate       *float64               `json:"expectedRate"`
	Availability       Availability           `json:"availability"`
	LinkedInURL        *string                `json:"linkedInUrl"`
	GithubURL          *string                `json:"githubUrl"`
	PortfolioURL       *string                `json:"portfolioUrl"`
	IsAvailable        bool                   `json:"isAvailable"`
	PreferredLocations []string               `json:"preferredLocations"`
	Status             string                 `json:"status"`
	AdditionalInfo     map[string]interface{} `json:"additionalInfo"`
	Assignments        []Assignment           `json:"assignments,omitempty"`
	Notes              []ProfileNote          `json:"notes,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

// ProfileNote is a typed annotation owned by one profile
type ProfileNote struct {
	ID        string          `json:"id"`
	ProfileID string          `json:"profileId"`
	Content   string          `json:"content"`
	Type      ProfileNoteType `json:"type"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ApplyDefaults fills the values a freshly created profile gets when omitted.
func (p *Profile) ApplyDefaults() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.PreferredLocations == nil {
		p.PreferredLocations = []string{}
	}
	if p.AdditionalInfo == nil {
		p.AdditionalInfo = map[string]interface{}{}
	}
	if p.Availability == "" {
		p.Availability = AvailabilityImmediate
	}
	if p.Status == "" {
		p.Status = DefaultProfileStatus
	}
}

// ProfileUpdate carries the fields of a partial update; nil means unchanged.
type ProfileUpdate struct {
	FirstName          *string
	LastName           *string
	Email              *string
	Phone              *string
	Skills             *[]string
	Summary            *string
	YearsOfExperience  *int
	ExpectedRate       *float64
	Availability       *Availability
	LinkedInURL        *string
	GithubURL          *string
	PortfolioURL       *string
	IsAvailable        *bool
	PreferredLocations *[]string
	Status             *string
	AdditionalInfo     *map[string]interface{}
}

// Apply overlays the supplied fields onto p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Phone != nil {
		p.Phone = u.Phone
	}
	if u.Skills != nil {
		p.Skills = *u.Skills
	}
	if u.Summary != nil {
		p.Summary = *u.Summary
	}
	if u.YearsOfExperience != nil {
		p.YearsOfExperience = *u.YearsOfExperience
	}
	if u.ExpectedRate != nil {
		p.ExpectedRate = u.ExpectedRate
	}
	if u.Availability != nil {
		p.Availability = *u.Availability
	}
	if u.LinkedInURL != nil {
		p.LinkedInURL = u.LinkedInURL
	}
	if u.GithubURL != nil {
		p.GithubURL = u.GithubURL
	}
	if u.PortfolioURL != nil {
		p.PortfolioURL = u.PortfolioURL
	}
	if u.IsAvailable != nil {
		p.IsAvailable = *u.IsAvailable
	}
	if u.PreferredLocations != nil {
		p.PreferredLocations = *u.PreferredLocations
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.AdditionalInfo != nil {
		p.AdditionalInfo = *u.AdditionalInfo
	}
}

// ProfileFilter holds the optional list constraints; zero values mean no constraint.
type ProfileFilter struct {
	Page
	SearchTerm    string
	Skills        []string
	Availability  Availability
	MinExperience *int
	MaxExperience *int
}

// ProfileRepository defines storage operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	Fetch(ctx context.Context, filter ProfileFilter) ([]Profile, error)
	// GetByID returns the profile with its assignments (and their clients) and notes.
	GetByID(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	Delete(ctx context.Context, id string) error
	FetchByAnySkill(ctx context.Context, skills []string) ([]Profile, error)
	FetchAvailable(ctx context.Context) ([]Profile, error)
	AddNote(ctx context.Context, note *ProfileNote) error
	DeleteNote(ctx context.Context, profileID, noteID string) error
}

// ProfileUsecase defines business logic operations
type ProfileUsecase interface {
	Create(ctx context.Context, profile *Profile) (*Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]Profile, error)
	FindOne(ctx context.Context, id string) (*Profile, error)
	Update(ctx context.Context, id string, update ProfileUpdate) (*Profile, error)
	Remove(ctx context.Context, id string) error
	SearchBySkills(ctx context.Context, skills []string) ([]Profile, error)
	FindAvailable(ctx context.Context) ([]Profile, error)
	AddNote(ctx context.Context, profileID string, note *ProfileNote) (*ProfileNote, error)
	DeleteNote(ctx context.Context, profileID, noteID string) error
}
