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

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	p.ApplyDefaults()
	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	m, err := newProfileModel(p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func profileFilterScope(f domain.ProfileFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.SearchTerm != "" {
			like := "%" + strings.ToLower(f.SearchTerm) + "%"
			q = q.Where("(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", like, like)
		}
		for _, skill := range f.Skills {
			q = q.Where("EXISTS (SELECT 1 FROM json_each(profiles.skills) WHERE LOWER(json_each.value) = LOWER(?))", skill)
		}
		if f.Availability != "" {
			q = q.Where("availability = ?", string(f.Availability))
		}
		if f.MinExperience != nil {
			q = q.Where("years_of_experience >= ?", *f.MinExperience)
		}
		if f.MaxExperience != nil {
			q = q.Where("years_of_experience <= ?", *f.MaxExperience)
		}
		return q
	}
}

func (r *profileRepo) Fetch(ctx context.Context, f domain.ProfileFilter) ([]domain.Profile, error) {
	var models []profileModel
	err := r.db.WithContext(ctx).
		Scopes(profileFilterScope(f)).
		Order("created_at DESC").
		Offset(f.Skip).Limit(f.Take).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return profilesToDomain(models)
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	db := r.db.WithContext(ctx)

	var m profileModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	profile, err := m.toDomain()
	if err != nil {
		return nil, err
	}

	var assignments []assignmentModel
	if err := db.Where("profile_id = ?", id).Order("created_at DESC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	if profile.Assignments, err = assignmentsToDomain(assignments); err != nil {
		return nil, err
	}
	if err := attachClients(db, profile.Assignments); err != nil {
		return nil, err
	}

	var notes []profileNoteModel
	if err := db.Where("profile_id = ?", id).Order("created_at ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	profile.Notes = make([]domain.ProfileNote, 0, len(notes))
	for _, n := range notes {
		profile.Notes = append(profile.Notes, domain.ProfileNote{
			ID:        n.ID,
			ProfileID: n.ProfileID,
			Content:   n.Content,
			Type:      domain.ProfileNoteType(n.Type),
			CreatedAt: n.CreatedAt,
			UpdatedAt: n.UpdatedAt,
		})
	}

	return &profile, nil
}

func (r *profileRepo) Update(ctx context.Context, p *domain.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	m, err := newProfileModel(p)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&profileModel{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"first_name":          m.FirstName,
		"last_name":           m.LastName,
		"email":               m.Email,
		"phone":               m.Phone,
		"skills":              m.Skills,
		"summary":             m.Summary,
		"years_of_experience": m.YearsOfExperience,
		"expected_rate":       m.ExpectedRate,
		"availability":        m.Availability,
		"linked_in_url":       m.LinkedInURL,
		"github_url":          m.GithubURL,
		"portfolio_url":       m.PortfolioURL,
		"is_available":        m.IsAvailable,
		"preferred_locations": m.PreferredLocations,
		"status":              m.Status,
		"additional_info":     m.AdditionalInfo,
		"updated_at":          m.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the profile and its notes and detaches its assignments.
func (r *profileRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&profileModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Where("profile_id = ?", id).Delete(&profileNoteModel{}).Error; err != nil {
			return err
		}
		return tx.Model(&assignmentModel{}).Where("profile_id = ?", id).Update("profile_id", nil).Error
	})
}

func (r *profileRepo) FetchByAnySkill(ctx context.Context, skills []string) ([]domain.Profile, error) {
	if len(skills) == 0 {
		return []domain.Profile{}, nil
	}
	var models []profileModel
	err := r.db.WithContext(ctx).
		Where("EXISTS (SELECT 1 FROM json_each(profiles.skills) WHERE json_each.value IN ?)", skills).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return profilesToDomain(models)
}

func (r *profileRepo) FetchAvailable(ctx context.Context) ([]domain.Profile, error) {
	var models []profileModel
	err := r.db.WithContext(ctx).
		Where("is_available = ?", true).
		Order("years_of_experience DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return profilesToDomain(models)
}

func (r *profileRepo) AddNote(ctx context.Context, note *domain.ProfileNote) error {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&profileModel{}).Where("id = ?", note.ProfileID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}

	if note.Type == "" {
		note.Type = domain.ProfileNoteGeneral
	}
	now := time.Now().UTC()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.UpdatedAt = now

	return db.Create(&profileNoteModel{
		ID:        note.ID,
		ProfileID: note.ProfileID,
		Content:   note.Content,
		Type:      string(note.Type),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}).Error
}

func (r *profileRepo) DeleteNote(ctx context.Context, profileID, noteID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND profile_id = ?", noteID, profileID).Delete(&profileNoteModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func profilesToDomain(models []profileModel) ([]domain.Profile, error) {
	out := make([]domain.Profile, 0, len(models))
	for i := range models {
		v, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
