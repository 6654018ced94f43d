package sqlite

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"profiler-backend/internal/domain"
)

type clientRepo struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) domain.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *domain.Client) error {
	c.ApplyDefaults()
	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now

	m, err := newClientModel(c)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

const locationMatch = "EXISTS (SELECT 1 FROM json_each(clients.locations) WHERE json_each.value = ?)"

func clientFilterScope(f domain.ClientFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.SearchTerm != "" {
			like := "%" + strings.ToLower(f.SearchTerm) + "%"
			q = q.Where(
				"(LOWER(company_name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ? OR LOWER(primary_contact_name) LIKE ? OR LOWER(industry) LIKE ?)",
				like, like, like, like,
			)
		}
		if f.Industry != "" {
			q = q.Where("LOWER(industry) LIKE ?", "%"+strings.ToLower(f.Industry)+"%")
		}
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		if f.Location != "" {
			q = q.Where(locationMatch, f.Location)
		}
		return q
	}
}

func (r *clientRepo) Fetch(ctx context.Context, f domain.ClientFilter) ([]domain.Client, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&clientModel{}).Scopes(clientFilterScope(f)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []clientModel
	err := db.Scopes(clientFilterScope(f)).
		Order("created_at DESC").
		Offset(f.Skip).Limit(f.Take).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}
	clients, err := clientsToDomain(models)
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	db := r.db.WithContext(ctx)

	var m clientModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	client, err := m.toDomain()
	if err != nil {
		return nil, err
	}

	var assignments []assignmentModel
	if err := db.Where("client_id = ?", id).Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	if client.Assignments, err = assignmentsToDomain(assignments); err != nil {
		return nil, err
	}
	if err := attachProfiles(db, client.Assignments); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	c.UpdatedAt = time.Now().UTC()
	m, err := newClientModel(c)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&clientModel{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"company_name":          m.CompanyName,
		"industry":              m.Industry,
		"website":               m.Website,
		"description":           m.Description,
		"primary_contact_name":  m.PrimaryContactName,
		"primary_contact_email": m.PrimaryContactEmail,
		"primary_contact_phone": m.PrimaryContactPhone,
		"locations":             m.Locations,
		"status":                m.Status,
		"requirements":          m.Requirements,
		"additional_info":       m.AdditionalInfo,
		"updated_at":            m.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the client and detaches its assignments.
func (r *clientRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&clientModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Model(&assignmentModel{}).Where("client_id = ?", id).Update("client_id", nil).Error
	})
}

func (r *clientRepo) FetchByIndustry(ctx context.Context, industry string) ([]domain.Client, error) {
	var models []clientModel
	err := r.db.WithContext(ctx).
		Where("LOWER(industry) LIKE ?", "%"+strings.ToLower(industry)+"%").
		Order("company_name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return clientsToDomain(models)
}

func (r *clientRepo) FetchByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error) {
	var models []clientModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return clientsToDomain(models)
}

func (r *clientRepo) FetchByLocation(ctx context.Context, location string) ([]domain.Client, error) {
	var models []clientModel
	err := r.db.WithContext(ctx).
		Where(locationMatch, location).
		Order("company_name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return clientsToDomain(models)
}

func clientsToDomain(models []clientModel) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(models))
	for i := range models {
		v, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
