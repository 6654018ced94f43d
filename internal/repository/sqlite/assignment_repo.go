package sqlite

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"profiler-backend/internal/domain"
)

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) domain.AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	if a.Status == "" {
		a.Status = domain.AssignmentStatusPending
	}
	now := time.Now().UTC()
	a.ID = uuid.New().String()
	a.CreatedAt = now
	a.UpdatedAt = now

	m, err := newAssignmentModel(a)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func assignmentFilterScope(f domain.AssignmentFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.Status != "" {
			q = q.Where("status = ?", f.Status)
		}
		switch {
		case f.StartDate != nil && f.EndDate != nil:
			q = q.Where("start_date BETWEEN ? AND ?", f.StartDate.String(), f.EndDate.String())
		case f.StartDate != nil:
			q = q.Where("start_date >= ?", f.StartDate.String())
		case f.EndDate != nil:
			q = q.Where("end_date <= ?", f.EndDate.String())
		}
		if f.ProfileID != "" {
			q = q.Where("profile_id = ?", f.ProfileID)
		}
		if f.ClientID != "" {
			q = q.Where("client_id = ?", f.ClientID)
		}
		return q
	}
}

func (r *assignmentRepo) Fetch(ctx context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error) {
	return r.fetchHydrated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Scopes(assignmentFilterScope(f)).
			Order("created_at DESC").
			Offset(f.Skip).Limit(f.Take)
	})
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	db := r.db.WithContext(ctx)

	var m assignmentModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	a, err := m.toDomain()
	if err != nil {
		return nil, err
	}
	single := []domain.Assignment{a}
	if err := attachProfiles(db, single); err != nil {
		return nil, err
	}
	if err := attachClients(db, single); err != nil {
		return nil, err
	}
	a = single[0]

	var notes []assignmentNoteModel
	if err := db.Where("assignment_id = ?", id).Order("created_at ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	a.Notes = make([]domain.AssignmentNote, 0, len(notes))
	for _, n := range notes {
		a.Notes = append(a.Notes, domain.AssignmentNote{
			ID:           n.ID,
			AssignmentID: n.AssignmentID,
			Content:      n.Content,
			Type:         domain.AssignmentNoteType(n.Type),
			CreatedAt:    n.CreatedAt,
			UpdatedAt:    n.UpdatedAt,
		})
	}
	return &a, nil
}

func (r *assignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	a.UpdatedAt = time.Now().UTC()
	m, err := newAssignmentModel(a)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&assignmentModel{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"profile_id":      m.ProfileID,
		"client_id":       m.ClientID,
		"start_date":      m.StartDate,
		"end_date":        m.EndDate,
		"status":          m.Status,
		"rate":            m.Rate,
		"feedback":        m.Feedback,
		"additional_info": m.AdditionalInfo,
		"updated_at":      m.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&assignmentModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("assignment_id = ?", id).Delete(&assignmentNoteModel{}).Error
	})
}

func (r *assignmentRepo) FetchActive(ctx context.Context) ([]domain.Assignment, error) {
	return r.fetchHydrated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", domain.AssignmentStatusActive).Order("start_date DESC")
	})
}

func (r *assignmentRepo) FetchByDateRange(ctx context.Context, start, end domain.Date) ([]domain.Assignment, error) {
	s, e := start.String(), end.String()
	return r.fetchHydrated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where(
			"(start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?) OR (start_date <= ? AND end_date >= ?)",
			s, e, s, e, s, e,
		).Order("start_date ASC")
	})
}

func (r *assignmentRepo) FetchByProfile(ctx context.Context, profileID string) ([]domain.Assignment, error) {
	return r.fetchHydrated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("profile_id = ?", profileID).Order("created_at DESC")
	})
}

func (r *assignmentRepo) FetchByClient(ctx context.Context, clientID string) ([]domain.Assignment, error) {
	return r.fetchHydrated(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("client_id = ?", clientID).Order("created_at DESC")
	})
}

func (r *assignmentRepo) AddNote(ctx context.Context, note *domain.AssignmentNote) error {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&assignmentModel{}).Where("id = ?", note.AssignmentID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrNotFound
	}

	if note.Type == "" {
		note.Type = domain.AssignmentNoteGeneral
	}
	now := time.Now().UTC()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.UpdatedAt = now

	return db.Create(&assignmentNoteModel{
		ID:           note.ID,
		AssignmentID: note.AssignmentID,
		Content:      note.Content,
		Type:         string(note.Type),
		CreatedAt:    note.CreatedAt,
		UpdatedAt:    note.UpdatedAt,
	}).Error
}

func (r *assignmentRepo) DeleteNote(ctx context.Context, assignmentID, noteID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND assignment_id = ?", noteID, assignmentID).Delete(&assignmentNoteModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) fetchHydrated(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.Assignment, error) {
	db := r.db.WithContext(ctx)

	var models []assignmentModel
	if err := db.Scopes(scope).Find(&models).Error; err != nil {
		return nil, err
	}
	assignments, err := assignmentsToDomain(models)
	if err != nil {
		return nil, err
	}
	if err := attachProfiles(db, assignments); err != nil {
		return nil, err
	}
	if err := attachClients(db, assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func assignmentsToDomain(models []assignmentModel) ([]domain.Assignment, error) {
	out := make([]domain.Assignment, 0, len(models))
	for i := range models {
		a, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func referencedIDs(assignments []domain.Assignment, ref func(*domain.Assignment) *string) []string {
	seen := map[string]struct{}{}
	var ids []string
	for i := range assignments {
		id := ref(&assignments[i])
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		ids = append(ids, *id)
	}
	return ids
}

// attachProfiles fills Assignment.Profile in one query. Dangling references stay nil.
func attachProfiles(db *gorm.DB, assignments []domain.Assignment) error {
	ids := referencedIDs(assignments, func(a *domain.Assignment) *string { return a.ProfileID })
	if len(ids) == 0 {
		return nil
	}
	var models []profileModel
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return err
	}
	byID := make(map[string]domain.Profile, len(models))
	for i := range models {
		p, err := models[i].toDomain()
		if err != nil {
			return err
		}
		byID[models[i].ID] = p
	}
	for i := range assignments {
		if id := assignments[i].ProfileID; id != nil {
			if p, ok := byID[*id]; ok {
				assignments[i].Profile = &p
			}
		}
	}
	return nil
}

// attachClients fills Assignment.Client in one query. Dangling references stay nil.
func attachClients(db *gorm.DB, assignments []domain.Assignment) error {
	ids := referencedIDs(assignments, func(a *domain.Assignment) *string { return a.ClientID })
	if len(ids) == 0 {
		return nil
	}
	var models []clientModel
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return err
	}
	byID := make(map[string]domain.Client, len(models))
	for i := range models {
		c, err := models[i].toDomain()
		if err != nil {
			return err
		}
		byID[models[i].ID] = c
	}
	for i := range assignments {
		if id := assignments[i].ClientID; id != nil {
			if c, ok := byID[*id]; ok {
				assignments[i].Client = &c
			}
		}
	}
	return nil
}
