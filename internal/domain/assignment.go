package domain

import (
	"context"
	"time"
)

// AssignmentNoteType classifies an assignment note.
type AssignmentNoteType string

const (
	AssignmentNoteGeneral     AssignmentNoteType = "general"
	AssignmentNoteInterview   AssignmentNoteType = "interview"
	AssignmentNoteFeedback    AssignmentNoteType = "feedback"
	AssignmentNotePerformance AssignmentNoteType = "performance"
	AssignmentNoteIssue       AssignmentNoteType = "issue"
)

// Conventional assignment statuses. The field is free text and none of
// these are enforced, nor are transitions between them.
const (
	AssignmentStatusPending   = "pending"
	AssignmentStatusActive    = "active"
	AssignmentStatusCompleted = "completed"
	AssignmentStatusCancelled = "cancelled"
)

// Assignment places one profile at one client for a time window.
// ProfileID and ClientID become nil when the referenced row is deleted.
type Assignment struct {
	ID             string                 `json:"id"`
	ProfileID      *string                `json:"profileId"`
	ClientID       *string                `json:"clientId"`
	Profile        *Profile               `json:"profile,omitempty"`
	Client         *Client                `json:"client,omitempty"`
	StartDate      *Date                  `json:"startDate"`
	EndDate        *Date                  `json:"endDate"`
	Status         string                 `json:"status"`
	Rate           *float64               `json:"rate"`
	Feedback       map[string]interface{} `json:"feedback"`
	AdditionalInfo map[string]interface{} `json:"additionalInfo"`
	Notes          []AssignmentNote       `json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// AssignmentNote is a typed annotation owned by one assignment
type AssignmentNote struct {
	ID           string             `json:"id"`
	AssignmentID string             `json:"assignmentId"`
	Content      string             `json:"content"`
	Type         AssignmentNoteType `json:"type"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// AssignmentInput is the payload of an assignment creation.
type AssignmentInput struct {
	ProfileID      string
	ClientID       string
	StartDate      *Date
	EndDate        *Date
	Status         string
	Rate           *float64
	Feedback       map[string]interface{}
	AdditionalInfo map[string]interface{}
}

// AssignmentUpdate carries the fields of a partial update; nil means unchanged.
type AssignmentUpdate struct {
	ProfileID      *string
	ClientID       *string
	StartDate      *Date
	EndDate        *Date
	Status         *string
	Rate           *float64
	Feedback       *map[string]interface{}
	AdditionalInfo *map[string]interface{}
}

// Apply overlays the non-reference fields onto a. References are resolved by the usecase.
func (u AssignmentUpdate) Apply(a *Assignment) {
	if u.StartDate != nil {
		a.StartDate = u.StartDate
	}
	if u.EndDate != nil {
		a.EndDate = u.EndDate
	}
	if u.Status != nil {
		a.Status = *u.Status
	}
	if u.Rate != nil {
		a.Rate = u.Rate
	}
	if u.Feedback != nil {
		a.Feedback = *u.Feedback
	}
	if u.AdditionalInfo != nil {
		a.AdditionalInfo = *u.AdditionalInfo
	}
}

// AssignmentFilter holds the optional list constraints.
type AssignmentFilter struct {
	Page
	Status    string
	StartDate *Date
	EndDate   *Date
	ProfileID string
	ClientID  string
}

// AssignmentRepository defines storage operations. Every read hydrates Profile and Client.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *Assignment) error
	Fetch(ctx context.Context, filter AssignmentFilter) ([]Assignment, error)
	// GetByID additionally loads the assignment's notes.
	GetByID(ctx context.Context, id string) (*Assignment, error)
	Update(ctx context.Context, assignment *Assignment) error
	Delete(ctx context.Context, id string) error
	FetchActive(ctx context.Context) ([]Assignment, error)
	FetchByDateRange(ctx context.Context, start, end Date) ([]Assignment, error)
	FetchByProfile(ctx context.Context, profileID string) ([]Assignment, error)
	FetchByClient(ctx context.Context, clientID string) ([]Assignment, error)
	AddNote(ctx context.Context, note *AssignmentNote) error
	DeleteNote(ctx context.Context, assignmentID, noteID string) error
}

// AssignmentUsecase defines business logic operations
type AssignmentUsecase interface {
	Create(ctx context.Context, in AssignmentInput) (*Assignment, error)
	List(ctx context.Context, filter AssignmentFilter) ([]Assignment, error)
	FindOne(ctx context.Context, id string) (*Assignment, error)
	Update(ctx context.Context, id string, update AssignmentUpdate) (*Assignment, error)
	Remove(ctx context.Context, id string) error
	FindActiveAssignments(ctx context.Context) ([]Assignment, error)
	FindAssignmentsByDateRange(ctx context.Context, start, end Date) ([]Assignment, error)
	FindAssignmentsByProfile(ctx context.Context, profileID string) ([]Assignment, error)
	FindAssignmentsByClient(ctx context.Context, clientID string) ([]Assignment, error)
	AddNote(ctx context.Context, assignmentID string, note *AssignmentNote) (*AssignmentNote, error)
	RemoveNote(ctx context.Context, assignmentID, noteID string) error
}
