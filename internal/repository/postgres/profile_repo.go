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

const profileColumns = `id, first_name, last_name, email, phone, skills, summary,
		       years_of_experience, expected_rate, availability, linked_in_url, github_url,
		       portfolio_url, is_available, preferred_locations, status, additional_info,
		       created_at, updated_at`

type profileRepo struct {
	db database.Queryer
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db database.Queryer) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	p.ApplyDefaults()
	info, err := jsonParam(p.AdditionalInfo)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO profiles (
			id, first_name, last_name, email, phone, skills, summary,
			years_of_experience, expected_rate, availability, linked_in_url, github_url,
			portfolio_url, is_available, preferred_locations, status, additional_info,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err = r.db.Exec(ctx, query,
		p.ID, p.FirstName, p.LastName, p.Email, p.Phone, pq.Array(p.Skills), p.Summary,
		p.YearsOfExperience, p.ExpectedRate, string(p.Availability), p.LinkedInURL, p.GithubURL,
		p.PortfolioURL, p.IsAvailable, pq.Array(p.PreferredLocations), p.Status, info,
		p.CreatedAt, p.UpdatedAt,
	)
	return translatePgError(err)
}

// buildProfileQuery renders the list query for f, which must already be normalized.
func buildProfileQuery(f domain.ProfileFilter) (string, []any) {
	w := &whereBuilder{}

	if f.SearchTerm != "" {
		ph := w.arg("%" + f.SearchTerm + "%")
		w.add("(LOWER(first_name) LIKE LOWER(" + ph + ") OR LOWER(last_name) LIKE LOWER(" + ph + "))")
	}
	for _, skill := range f.Skills {
		w.add("EXISTS (SELECT 1 FROM unnest(skills) AS s(skill) WHERE LOWER(s.skill) = LOWER(" + w.arg(skill) + "))")
	}
	if f.Availability != "" {
		w.add("availability = " + w.arg(string(f.Availability)))
	}
	if f.MinExperience != nil {
		w.add("years_of_experience >= " + w.arg(*f.MinExperience))
	}
	if f.MaxExperience != nil {
		w.add("years_of_experience <= " + w.arg(*f.MaxExperience))
	}

	query := "SELECT " + profileColumns + " FROM profiles" + w.clause() +
		" ORDER BY created_at DESC" + w.page(f.Page)
	return query, w.args
}

func (r *profileRepo) Fetch(ctx context.Context, f domain.ProfileFilter) ([]domain.Profile, error) {
	query, args := buildProfileQuery(f)
	return queryProfiles(ctx, r.db, query, args...)
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	profile, err := scanProfile(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translatePgError(err)
	}

	assignments, err := queryAssignments(ctx, r.db,
		`SELECT `+assignmentColumns+` FROM assignments WHERE profile_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	if err := attachClients(ctx, r.db, assignments); err != nil {
		return nil, err
	}
	profile.Assignments = assignments

	notes, err := r.fetchNotes(ctx, id)
	if err != nil {
		return nil, err
	}
	profile.Notes = notes

	return profile, nil
}

func (r *profileRepo) Update(ctx context.Context, p *domain.Profile) error {
	info, err := jsonParam(p.AdditionalInfo)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE profiles SET
			first_name = $1, last_name = $2, email = $3, phone = $4, skills = $5, summary = $6,
			years_of_experience = $7, expected_rate = $8, availability = $9, linked_in_url = $10,
			github_url = $11, portfolio_url = $12, is_available = $13, preferred_locations = $14,
			status = $15, additional_info = $16, updated_at = $17
		WHERE id = $18`

	tag, err := r.db.Exec(ctx, query,
		p.FirstName, p.LastName, p.Email, p.Phone, pq.Array(nonNil(p.Skills)), p.Summary,
		p.YearsOfExperience, p.ExpectedRate, string(p.Availability), p.LinkedInURL,
		p.GithubURL, p.PortfolioURL, p.IsAvailable, pq.Array(nonNil(p.PreferredLocations)),
		p.Status, info, p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FetchByAnySkill matches profiles holding at least one of skills, exact and case-sensitive.
func (r *profileRepo) FetchByAnySkill(ctx context.Context, skills []string) ([]domain.Profile, error) {
	if len(skills) == 0 {
		return []domain.Profile{}, nil
	}
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE skills && $1 ORDER BY created_at DESC`
	return queryProfiles(ctx, r.db, query, pq.Array(skills))
}

func (r *profileRepo) FetchAvailable(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE is_available = TRUE ORDER BY years_of_experience DESC`
	return queryProfiles(ctx, r.db, query)
}

func (r *profileRepo) AddNote(ctx context.Context, note *domain.ProfileNote) error {
	if note.Type == "" {
		note.Type = domain.ProfileNoteGeneral
	}
	now := time.Now().UTC()
	note.ID = uuid.New().String()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `
		INSERT INTO profile_notes (id, profile_id, content, type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		note.ID, note.ProfileID, note.Content, string(note.Type), note.CreatedAt, note.UpdatedAt)
	return translatePgError(err)
}

func (r *profileRepo) DeleteNote(ctx context.Context, profileID, noteID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profile_notes WHERE id = $1 AND profile_id = $2`, noteID, profileID)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) fetchNotes(ctx context.Context, profileID string) ([]domain.ProfileNote, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, content, type, created_at, updated_at
		FROM profile_notes WHERE profile_id = $1 ORDER BY created_at ASC`, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.ProfileNote{}
	for rows.Next() {
		var n domain.ProfileNote
		var noteType string
		if err := rows.Scan(&n.ID, &n.ProfileID, &n.Content, &noteType, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		n.Type = domain.ProfileNoteType(noteType)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var (
		p            domain.Profile
		availability string
		info         []byte
	)
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Skills, &p.Summary,
		&p.YearsOfExperience, &p.ExpectedRate, &availability, &p.LinkedInURL, &p.GithubURL,
		&p.PortfolioURL, &p.IsAvailable, &p.PreferredLocations, &p.Status, &info,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Availability = domain.Availability(availability)
	p.Skills = nonNil(p.Skills)
	p.PreferredLocations = nonNil(p.PreferredLocations)
	if p.AdditionalInfo, err = decodeJSON(info); err != nil {
		return nil, err
	}
	return &p, nil
}

func queryProfiles(ctx context.Context, db database.Queryer, query string, args ...any) ([]domain.Profile, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}
