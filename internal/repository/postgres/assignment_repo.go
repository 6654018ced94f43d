package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"profiler-backend/internal/domain"
	"profiler-backend/pkg/database"
)

const assignmentColumns = `id, profile_id, client_id, start_date, end_date, status, rate,
		       feedback, additional_info, created_at, updated_at`

type assignmentRepo struct {
	db database.Queryer
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db database.Queryer) domain.AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	if a.Status == "" {
		a.Status = domain.AssignmentStatusPending
	}
	feedback, err := jsonParam(a.Feedback)
	if err != nil {
		return err
	}
	info, err := jsonParam(a.AdditionalInfo)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	a.ID = uuid.New().String()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO assignments (
			id, profile_id, client_id, start_date, end_date, status, rate,
			feedback, additional_info, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = r.db.Exec(ctx, query,
		a.ID, a.ProfileID, a.ClientID, a.StartDate.TimePtr(), a.EndDate.TimePtr(), a.Status, a.Rate,
		feedback, info, a.CreatedAt, a.UpdatedAt,
	)
	return translatePgError(err)
}

// buildAssignmentQuery renders the list query for f, which must already be normalized.
func buildAssignmentQuery(f domain.AssignmentFilter) (string, []any) {
	w := &whereBuilder{}

	if f.Status != "" {
		w.add("status = " + w.arg(f.Status))
	}
	switch {
	case f.StartDate != nil && f.EndDate != nil:
		w.add("start_date BETWEEN " + w.arg(f.StartDate.Time) + " AND " + w.arg(f.EndDate.Time))
	case f.StartDate != nil:
		w.add("start_date >= " + w.arg(f.StartDate.Time))
	case f.EndDate != nil:
		w.add("end_date <= " + w.arg(f.EndDate.Time))
	}
	if f.ProfileID != "" {
		w.add("profile_id = " + w.arg(f.ProfileID))
	}
	if f.ClientID != "" {
		w.add("client_id = " + w.arg(f.ClientID))
	}

	query := "SELECT " + assignmentColumns + " FROM assignments" + w.clause() +
		" ORDER BY created_at DESC" + w.page(f.Page)
	return query, w.args
}

func (r *assignmentRepo) Fetch(ctx context.Context, f domain.AssignmentFilter) ([]domain.Assignment, error) {
	query, args := buildAssignmentQuery(f)
	return r.fetchHydrated(ctx, query, args...)
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.db.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
	if err != nil {
		return nil, translatePgError(err)
	}

	single := []domain.Assignment{*a}
	if err := attachProfiles(ctx, r.db, single); err != nil {
		return nil, err
	}
	if err := attachClients(ctx, r.db, single); err != nil {
		return nil, err
	}
	a = &single[0]

	notes, err := r.fetchNotes(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Notes = notes
	return a, nil
}

func (r *assignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	feedback, err := jsonParam(a.Feedback)
	if err != nil {
		return err
	}
	info, err := jsonParam(a.AdditionalInfo)
	if err != nil {
		return err
	}
	a.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE assignments SET
			profile_id = $1, client_id = $2, start_date = $3, end_date = $4, status = $5,
			rate = $6, feedback = $7, additional_info = $8, updated_at = $9
		WHERE id = $10`

	tag, err := r.db.Exec(ctx, query,
		a.ProfileID, a.ClientID, a.StartDate.TimePtr(), a.EndDate.TimePtr(), a.Status,
		a.Rate, feedback, info, a.UpdatedAt,
		a.ID,
	)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) FetchActive(ctx context.Context) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE status = $1 ORDER BY start_date DESC`
	return r.fetchHydrated(ctx, query, domain.AssignmentStatusActive)
}

// FetchByDateRange returns assignments starting or ending inside [start, end], or spanning it.
func (r *assignmentRepo) FetchByDateRange(ctx context.Context, start, end domain.Date) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE (start_date BETWEEN $1 AND $2)
		   OR (end_date BETWEEN $1 AND $2)
		   OR (start_date <= $1 AND end_date >= $2)
		ORDER BY start_date ASC`
	return r.fetchHydrated(ctx, query, start.Time, end.Time)
}

func (r *assignmentRepo) FetchByProfile(ctx context.Context, profileID string) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE profile_id = $1 ORDER BY created_at DESC`
	return r.fetchHydrated(ctx, query, profileID)
}

func (r *assignmentRepo) FetchByClient(ctx context.Context, clientID string) ([]domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE client_id = $1 ORDER BY created_at DESC`
	return r.fetchHydrated(ctx, query, clientID)
}

func (r *assignmentRepo) AddNote(ctx context.Context, note *domain.AssignmentNote) error {
	if note.Type == "" {
		note.Type = domain.AssignmentNoteGeneral
	}
	now := time.Now().UTC()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `
		INSERT INTO assignment_notes (id, assignment_id, content, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		note.ID, note.AssignmentID, note.Content, string(note.Type), note.CreatedAt, note.UpdatedAt)
	return translatePgError(err)
}

func (r *assignmentRepo) DeleteNote(ctx context.Context, assignmentID, noteID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assignment_notes WHERE id = $1 AND assignment_id = $2`, noteID, assignmentID)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) fetchHydrated(ctx context.Context, query string, args ...any) ([]domain.Assignment, error) {
	assignments, err := queryAssignments(ctx, r.db, query, args...)
	if err != nil {
		return nil, err
	}
	if err := attachProfiles(ctx, r.db, assignments); err != nil {
		return nil, err
	}
	if err := attachClients(ctx, r.db, assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepo) fetchNotes(ctx context.Context, assignmentID string) ([]domain.AssignmentNote, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, assignment_id, content, type, created_at, updated_at
		FROM assignment_notes WHERE assignment_id = $1 ORDER BY created_at ASC`, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.AssignmentNote{}
	for rows.Next() {
		var n domain.AssignmentNote
		var noteType string
		if err := rows.Scan(&n.ID, &n.AssignmentID, &n.Content, &noteType, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.Type = domain.AssignmentNoteType(noteType)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var (
		a          domain.Assignment
		start, end *time.Time
		feedback   []byte
		info       []byte
	)
	err := row.Scan(
		&a.ID, &a.ProfileID, &a.ClientID, &start, &end, &a.Status, &a.Rate,
		&feedback, &info, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.StartDate = domain.DatePtr(start)
	a.EndDate = domain.DatePtr(end)
	if a.Feedback, err = decodeJSON(feedback); err != nil {
		return nil, err
	}
	if a.AdditionalInfo, err = decodeJSON(info); err != nil {
		return nil, err
	}
	return &a, nil
}

func queryAssignments(ctx context.Context, db database.Queryer, query string, args ...any) ([]domain.Assignment, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []domain.Assignment{}
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

// attachProfiles loads the referenced profiles in one query. Dangling references stay nil.
func attachProfiles(ctx context.Context, db database.Queryer, assignments []domain.Assignment) error {
	refs := make([]*string, len(assignments))
	for i := range assignments {
		refs[i] = assignments[i].ProfileID
	}
	ids := uniqueIDs(refs)
	if len(ids) == 0 {
		return nil
	}

	profiles, err := queryProfiles(ctx, db,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}
	for i := range assignments {
		if id := assignments[i].ProfileID; id != nil {
			assignments[i].Profile = byID[*id]
		}
	}
	return nil
}

// attachClients loads the referenced clients in one query. Dangling references stay nil.
func attachClients(ctx context.Context, db database.Queryer, assignments []domain.Assignment) error {
	refs := make([]*string, len(assignments))
	for i := range assignments {
		refs[i] = assignments[i].ClientID
	}
	ids := uniqueIDs(refs)
	if len(ids) == 0 {
		return nil
	}

	clients, err := queryClients(ctx, db,
		`SELECT `+clientColumns+` FROM clients WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return err
	}
	byID := make(map[string]*domain.Client, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}
	for i := range assignments {
		if id := assignments[i].ClientID; id != nil {
			assignments[i].Client = byID[*id]
		}
	}
	return nil
}
