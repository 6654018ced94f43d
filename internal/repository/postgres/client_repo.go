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

const clientColumns = `id, company_name, industry, website, description,
		       primary_contact_name, primary_contact_email, primary_contact_phone,
		       locations, status, requirements, additional_info, created_at, updated_at`

type clientRepo struct {
	db database.Queryer
}

// NewClientRepository creates a new client repository
func NewClientRepository(db database.Queryer) domain.ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) Create(ctx context.Context, c *domain.Client) error {
	c.ApplyDefaults()
	requirements, err := jsonParam(c.Requirements)
	if err != nil {
		return err
	}
	info, err := jsonParam(c.AdditionalInfo)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now

	query := `
		INSERT INTO clients (
			id, company_name, industry, website, description,
			primary_contact_name, primary_contact_email, primary_contact_phone,
			locations, status, requirements, additional_info, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = r.db.Exec(ctx, query,
		c.ID, c.CompanyName, c.Industry, c.Website, c.Description,
		c.PrimaryContactName, c.PrimaryContactEmail, c.PrimaryContactPhone,
		pq.Array(c.Locations), string(c.Status), requirements, info, c.CreatedAt, c.UpdatedAt,
	)
	return translatePgError(err)
}

func clientConditions(f domain.ClientFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.SearchTerm != "" {
		ph := w.arg("%" + f.SearchTerm + "%")
		w.add("(company_name ILIKE " + ph + " OR description ILIKE " + ph +
			" OR primary_contact_name ILIKE " + ph + " OR industry ILIKE " + ph + ")")
	}
	if f.Industry != "" {
		w.add("industry ILIKE " + w.arg("%"+f.Industry+"%"))
	}
	if f.Status != "" {
		w.add("status = " + w.arg(f.Status))
	}
	if f.Location != "" {
		w.add(w.arg(f.Location) + " = ANY(locations)")
	}
	return w
}

// buildClientQueries renders the page query and the matching count query for f.
func buildClientQueries(f domain.ClientFilter) (string, string, []any, []any) {
	w := clientConditions(f)
	countQuery := "SELECT COUNT(*) FROM clients" + w.clause()
	countArgs := append([]any(nil), w.args...)

	query := "SELECT " + clientColumns + " FROM clients" + w.clause() +
		" ORDER BY created_at DESC" + w.page(f.Page)
	return query, countQuery, w.args, countArgs
}

func (r *clientRepo) Fetch(ctx context.Context, f domain.ClientFilter) ([]domain.Client, int64, error) {
	query, countQuery, args, countArgs := buildClientQueries(f)

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	clients, err := queryClients(ctx, r.db, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	client, err := scanClient(r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, translatePgError(err)
	}

	assignments, err := queryAssignments(ctx, r.db,
		`SELECT `+assignmentColumns+` FROM assignments WHERE client_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	if err := attachProfiles(ctx, r.db, assignments); err != nil {
		return nil, err
	}
	client.Assignments = assignments

	return client, nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	requirements, err := jsonParam(c.Requirements)
	if err != nil {
		return err
	}
	info, err := jsonParam(c.AdditionalInfo)
	if err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE clients SET
			company_name = $1, industry = $2, website = $3, description = $4,
			primary_contact_name = $5, primary_contact_email = $6, primary_contact_phone = $7,
			locations = $8, status = $9, requirements = $10, additional_info = $11, updated_at = $12
		WHERE id = $13`

	tag, err := r.db.Exec(ctx, query,
		c.CompanyName, c.Industry, c.Website, c.Description,
		c.PrimaryContactName, c.PrimaryContactEmail, c.PrimaryContactPhone,
		pq.Array(nonNil(c.Locations)), string(c.Status), requirements, info, c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clientRepo) FetchByIndustry(ctx context.Context, industry string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE industry ILIKE $1 ORDER BY company_name ASC`
	return queryClients(ctx, r.db, query, "%"+industry+"%")
}

func (r *clientRepo) FetchByStatus(ctx context.Context, status domain.ClientStatus) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE status = $1 ORDER BY created_at DESC`
	return queryClients(ctx, r.db, query, string(status))
}

func (r *clientRepo) FetchByLocation(ctx context.Context, location string) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE $1 = ANY(locations) ORDER BY company_name ASC`
	return queryClients(ctx, r.db, query, location)
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var (
		c            domain.Client
		status       string
		requirements []byte
		info         []byte
	)
	err := row.Scan(
		&c.ID, &c.CompanyName, &c.Industry, &c.Website, &c.Description,
		&c.PrimaryContactName, &c.PrimaryContactEmail, &c.PrimaryContactPhone,
		&c.Locations, &status, &requirements, &info, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = domain.ClientStatus(status)
	c.Locations = nonNil(c.Locations)
	if c.Requirements, err = decodeJSON(requirements); err != nil {
		return nil, err
	}
	if c.AdditionalInfo, err = decodeJSON(info); err != nil {
		return nil, err
	}
	return &c, nil
}

func queryClients(ctx context.Context, db database.Queryer, query string, args ...any) ([]domain.Client, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}
