package domain

import (
	"context"
	"time"
)

// ClientStatus is the lifecycle state of a client company.
type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusPending  ClientStatus = "pending"
)

// Client is a company that can receive assignments
type Client struct {
	ID                  string                 `json:"id"`
	CompanyName         string                 `json:"companyName"`
	Industry            string                 `json:"industry"`
	Website             *string                `json:"website"`
	Description         *string                `json:"description"`
	PrimaryContactName  string                 `json:"primaryContactName"`
	PrimaryContactEmail string                 `json:"primaryContactEmail"`
	PrimaryContactPhone *string                `json:"primaryContactPhone"`
	Locations           []string               `json:"locations"`
	Status              ClientStatus           `json:"status"`
	Requirements        map[string]interface{} `json:"requirements"`
	AdditionalInfo      map[string]interface{} `json:"additionalInfo"`
	Assignments         []Assignment           `json:"assignments,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func (c *Client) ApplyDefaults() {
	if c.Locations == nil {
		c.Locations = []string{}
	}
	if c.Requirements == nil {
		c.Requirements = map[string]interface{}{}
	}
	if c.AdditionalInfo == nil {
		c.AdditionalInfo = map[string]interface{}{}
	}
	if c.Status == "" {
		c.Status = ClientStatusActive
	}
}

// ClientUpdate carries the fields of a partial update; nil means unchanged.
type ClientUpdate struct {
	CompanyName         *string
	Industry            *string
	Website             *string
	Description         *string
	PrimaryContactName  *string
	PrimaryContactEmail *string
	PrimaryContactPhone *string
	Locations           *[]string
	Status              *ClientStatus
	Requirements        *map[string]interface{}
	AdditionalInfo      *map[string]interface{}
}

func (u ClientUpdate) Apply(c *Client) {
	if u.CompanyName != nil {
		c.CompanyName = *u.CompanyName
	}
	if u.Industry != nil {
		c.Industry = *u.Industry
	}
	if u.Website != nil {
		c.Website = u.Website
	}
	if u.Description != nil {
		c.Description = u.Description
	}
	if u.PrimaryContactName != nil {
		c.PrimaryContactName = *u.PrimaryContactName
	}
	if u.PrimaryContactEmail != nil {
		c.PrimaryContactEmail = *u.PrimaryContactEmail
	}
	if u.PrimaryContactPhone != nil {
		c.PrimaryContactPhone = u.PrimaryContactPhone
	}
	if u.Locations != nil {
		c.Locations = *u.Locations
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.Requirements != nil {
		c.Requirements = *u.Requirements
	}
	if u.AdditionalInfo != nil {
		c.AdditionalInfo = *u.AdditionalInfo
	}
}

// ClientFilter holds the optional list constraints; blank values mean no constraint.
type ClientFilter struct {
	Page
	SearchTerm string
	Industry   string
	Status     string
	Location   string
}

// ClientRepository defines storage operations
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	// Fetch returns one page and the number of rows matching the filter regardless of the page.
	Fetch(ctx context.Context, filter ClientFilter) ([]Client, int64, error)
	// GetByID returns the client with its assignments and each assignment's profile.
	GetByID(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, client *Client) error
	Delete(ctx context.Context, id string) error
	FetchByIndustry(ctx context.Context, industry string) ([]Client, error)
	FetchByStatus(ctx context.Context, status ClientStatus) ([]Client, error)
	FetchByLocation(ctx context.Context, location string) ([]Client, error)
}

// ClientUsecase defines business logic operations
type ClientUsecase interface {
	Create(ctx context.Context, client *Client) (*Client, error)
	List(ctx context.Context, filter ClientFilter) ([]Client, int64, error)
	FindOne(ctx context.Context, id string) (*Client, error)
	Update(ctx context.Context, id string, update ClientUpdate) (*Client, error)
	Remove(ctx context.Context, id string) error
	FindByIndustry(ctx context.Context, industry string) ([]Client, error)
	FindActiveClients(ctx context.Context) ([]Client, error)
	SearchByLocation(ctx context.Context, location string) ([]Client, error)
}
