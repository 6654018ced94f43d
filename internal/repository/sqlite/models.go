// Package sqlite is the embedded store, backed by gorm over a pure-Go SQLite driver.
// Lists and maps are kept as JSON text so json_each can query into them.
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"profiler-backend/internal/domain"
)

type profileModel struct {
	ID                 string `gorm:"primaryKey;type:text"`
	FirstName          string `gorm:"not null"`
	LastName           string `gorm:"not null"`
	Email              string `gorm:"not null"`
	Phone              *string
	Skills             datatypes.JSON
	Summary            string
	YearsOfExperience  int `gorm:"not null"`
	ExpectedRate       *float64
	Availability       string `gorm:"not null"`
	LinkedInURL        *string
	GithubURL          *string
	PortfolioURL       *string
	IsAvailable        bool `gorm:"not null"`
	PreferredLocations datatypes.JSON
	Status             string `gorm:"not null"`
	AdditionalInfo     datatypes.JSON
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
}

func (profileModel) TableName() string { return "profiles" }

type profileNoteModel struct {
	ID        string `gorm:"primaryKey;type:text"`
	ProfileID string `gorm:"index;not null"`
	Content   string `gorm:"not null"`
	Type      string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (profileNoteModel) TableName() string { return "profile_notes" }

type clientModel struct {
	ID                  string `gorm:"primaryKey;type:text"`
	CompanyName         string `gorm:"not null;index"`
	Industry            string `gorm:"not null"`
	Website             *string
	Description         *string
	PrimaryContactName  string `gorm:"not null"`
	PrimaryContactEmail string `gorm:"not null"`
	PrimaryContactPhone *string
	Locations           datatypes.JSON
	Status              string `gorm:"not null;index"`
	Requirements        datatypes.JSON
	AdditionalInfo      datatypes.JSON
	CreatedAt           time.Time `gorm:"index"`
	UpdatedAt           time.Time
}

func (clientModel) TableName() string { return "clients" }

type assignmentModel struct {
	ID        string  `gorm:"primaryKey;type:text"`
	ProfileID *string `gorm:"index"`
	ClientID  *string `gorm:"index"`
	// YYYY-MM-DD, so text comparison orders chronologically
	StartDate      *string `gorm:"index"`
	EndDate        *string
	Status         string `gorm:"not null;index"`
	Rate           *float64
	Feedback       datatypes.JSON
	AdditionalInfo datatypes.JSON
	CreatedAt      time.Time `gorm:"index"`
	UpdatedAt      time.Time
}

func (assignmentModel) TableName() string { return "assignments" }

type assignmentNoteModel struct {
	ID           string `gorm:"primaryKey;type:text"`
	AssignmentID string `gorm:"index;not null"`
	Content      string `gorm:"not null"`
	Type         string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (assignmentNoteModel) TableName() string { return "assignment_notes" }

// AutoMigrate creates or updates the embedded schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&profileModel{},
		&profileNoteModel{},
		&clientModel{},
		&assignmentModel{},
		&assignmentNoteModel{},
	)
}

func encodeJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// jsonColumns decodes JSON text columns and keeps the first failure.
type jsonColumns struct {
	err error
}

func (d *jsonColumns) decode(column string, raw datatypes.JSON, v any) {
	if len(raw) == 0 || d.err != nil {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		d.err = fmt.Errorf("decode %s: %w", column, err)
	}
}

func (d *jsonColumns) list(column string, raw datatypes.JSON) []string {
	out := []string{}
	d.decode(column, raw, &out)
	if out == nil {
		out = []string{}
	}
	return out
}

func (d *jsonColumns) object(column string, raw datatypes.JSON) map[string]interface{} {
	out := map[string]interface{}{}
	d.decode(column, raw, &out)
	if out == nil {
		out = map[string]interface{}{}
	}
	return out
}

func listOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func mapOrEmpty(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}

func newProfileModel(p *domain.Profile) (*profileModel, error) {
	skills, err := encodeJSON(listOrEmpty(p.Skills))
	if err != nil {
		return nil, err
	}
	locations, err := encodeJSON(listOrEmpty(p.PreferredLocations))
	if err != nil {
		return nil, err
	}
	info, err := encodeJSON(mapOrEmpty(p.AdditionalInfo))
	if err != nil {
		return nil, err
	}
	return &profileModel{
		ID:                 p.ID,
		FirstName:          p.FirstName,
		LastName:           p.LastName,
		Email:              p.Email,
		Phone:              p.Phone,
		Skills:             skills,
		Summary:            p.Summary,
		YearsOfExperience:  p.YearsOfExperience,
		ExpectedRate:       p.ExpectedRate,
		Availability:       string(p.Availability),
		LinkedInURL:        p.LinkedInURL,
		GithubURL:          p.GithubURL,
		PortfolioURL:       p.PortfolioURL,
		IsAvailable:        p.IsAvailable,
		PreferredLocations: locations,
		Status:             p.Status,
		AdditionalInfo:     info,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}, nil
}

func (m *profileModel) toDomain() (domain.Profile, error) {
	var cols jsonColumns
	p := domain.Profile{
		ID:                 m.ID,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		Email:              m.Email,
		Phone:              m.Phone,
		Skills:             cols.list("skills", m.Skills),
		Summary:            m.Summary,
		YearsOfExperience:  m.YearsOfExperience,
		ExpectedRate:       m.ExpectedRate,
		Availability:       domain.Availability(m.Availability),
		LinkedInURL:        m.LinkedInURL,
		GithubURL:          m.GithubURL,
		PortfolioURL:       m.PortfolioURL,
		IsAvailable:        m.IsAvailable,
		PreferredLocations: cols.list("preferred_locations", m.PreferredLocations),
		Status:             m.Status,
		AdditionalInfo:     cols.object("additional_info", m.AdditionalInfo),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	return p, cols.err
}

func newClientModel(c *domain.Client) (*clientModel, error) {
	locations, err := encodeJSON(listOrEmpty(c.Locations))
	if err != nil {
		return nil, err
	}
	requirements, err := encodeJSON(mapOrEmpty(c.Requirements))
	if err != nil {
		return nil, err
	}
	info, err := encodeJSON(mapOrEmpty(c.AdditionalInfo))
	if err != nil {
		return nil, err
	}
	return &clientModel{
		ID:                  c.ID,
		CompanyName:         c.CompanyName,
		Industry:            c.Industry,
		Website:             c.Website,
		Description:         c.Description,
		PrimaryContactName:  c.PrimaryContactName,
		PrimaryContactEmail: c.PrimaryContactEmail,
		PrimaryContactPhone: c.PrimaryContactPhone,
		Locations:           locations,
		Status:              string(c.Status),
		Requirements:        requirements,
		AdditionalInfo:      info,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}, nil
}

func (m *clientModel) toDomain() (domain.Client, error) {
	var cols jsonColumns
	c := domain.Client{
		ID:                  m.ID,
		CompanyName:         m.CompanyName,
		Industry:            m.Industry,
		Website:             m.Website,
		Description:         m.Description,
		PrimaryContactName:  m.PrimaryContactName,
		PrimaryContactEmail: m.PrimaryContactEmail,
		PrimaryContactPhone: m.PrimaryContactPhone,
		Locations:           cols.list("locations", m.Locations),
		Status:              domain.ClientStatus(m.Status),
		Requirements:        cols.object("requirements", m.Requirements),
		AdditionalInfo:      cols.object("additional_info", m.AdditionalInfo),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	return c, cols.err
}

func dateText(d *domain.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDateText(s *string) *domain.Date {
	if s == nil {
		return nil
	}
	d, err := domain.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}

func newAssignmentModel(a *domain.Assignment) (*assignmentModel, error) {
	feedback, err := encodeJSON(mapOrEmpty(a.Feedback))
	if err != nil {
		return nil, err
	}
	info, err := encodeJSON(mapOrEmpty(a.AdditionalInfo))
	if err != nil {
		return nil, err
	}
	return &assignmentModel{
		ID:             a.ID,
		ProfileID:      a.ProfileID,
		ClientID:       a.ClientID,
		StartDate:      dateText(a.StartDate),
		EndDate:        dateText(a.EndDate),
		Status:         a.Status,
		Rate:           a.Rate,
		Feedback:       feedback,
		AdditionalInfo: info,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}, nil
}

func (m *assignmentModel) toDomain() (domain.Assignment, error) {
	var cols jsonColumns
	a := domain.Assignment{
		ID:             m.ID,
		ProfileID:      m.ProfileID,
		ClientID:       m.ClientID,
		StartDate:      parseDateText(m.StartDate),
		EndDate:        parseDateText(m.EndDate),
		Status:         m.Status,
		Rate:           m.Rate,
		Feedback:       cols.object("feedback", m.Feedback),
		AdditionalInfo: cols.object("additional_info", m.AdditionalInfo),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	return a, cols.err
}
