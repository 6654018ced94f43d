package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"profiler-backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestBuildProfileQuery(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		query, args := buildProfileQuery(domain.ProfileFilter{Page: domain.Page{Take: 50}})

		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, "ORDER BY created_at DESC LIMIT $1 OFFSET $2")
		assert.Equal(t, []any{50, 0}, args)
	})

	t.Run("all filters", func(t *testing.T) {
		query, args := buildProfileQuery(domain.ProfileFilter{
			Page:          domain.Page{Skip: 10, Take: 5},
			SearchTerm:    "ann",
			Skills:        []string{"Go", "SQL"},
			Availability:  "immediate",
			MinExperience: intPtr(2),
			MaxExperience: intPtr(8),
		})

		assert.Contains(t, query, "(LOWER(first_name) LIKE LOWER($1) OR LOWER(last_name) LIKE LOWER($1))")
		assert.Contains(t, query, "LOWER(s.skill) = LOWER($2)")
		assert.Contains(t, query, "LOWER(s.skill) = LOWER($3)")
		assert.Contains(t, query, "availability = $4")
		assert.Contains(t, query, "years_of_experience >= $5")
		assert.Contains(t, query, "years_of_experience <= $6")
		assert.Contains(t, query, "LIMIT $7 OFFSET $8")
		assert.Equal(t, []any{"%ann%", "Go", "SQL", "immediate", 2, 8, 5, 10}, args)
	})

	t.Run("only max experience", func(t *testing.T) {
		query, args := buildProfileQuery(domain.ProfileFilter{
			Page:          domain.Page{Take: 50},
			MaxExperience: intPtr(3),
		})

		assert.Contains(t, query, "WHERE years_of_experience <= $1")
		assert.NotContains(t, query, ">=")
		assert.Equal(t, []any{3, 50, 0}, args)
	})
}

func TestBuildClientQueries(t *testing.T) {
	query, countQuery, args, countArgs := buildClientQueries(domain.ClientFilter{
		Page:       domain.Page{Take: 10},
		SearchTerm: "acme",
		Industry:   "tech",
		Status:     "active",
		Location:   "Berlin",
	})

	assert.Contains(t, query, "company_name ILIKE $1 OR description ILIKE $1 OR primary_contact_name ILIKE $1 OR industry ILIKE $1")
	assert.Contains(t, query, "industry ILIKE $2")
	assert.Contains(t, query, "status = $3")
	assert.Contains(t, query, "$4 = ANY(locations)")
	assert.Contains(t, query, "LIMIT $5 OFFSET $6")
	assert.Equal(t, []any{"%acme%", "%tech%", "active", "Berlin", 10, 0}, args)

	assert.Contains(t, countQuery, "SELECT COUNT(*) FROM clients WHERE")
	assert.NotContains(t, countQuery, "LIMIT")
	assert.Equal(t, []any{"%acme%", "%tech%", "active", "Berlin"}, countArgs)
}

func TestBuildAssignmentQuery(t *testing.T) {
	start, _ := domain.ParseDate("2024-01-01")
	end, _ := domain.ParseDate("2024-03-31")

	t.Run("both dates", func(t *testing.T) {
		query, args := buildAssignmentQuery(domain.AssignmentFilter{
			Page:      domain.Page{Take: 50},
			StartDate: &start,
			EndDate:   &end,
		})
		assert.Contains(t, query, "start_date BETWEEN $1 AND $2")
		assert.Equal(t, []any{start.Time, end.Time, 50, 0}, args)
	})

	t.Run("start only", func(t *testing.T) {
		query, _ := buildAssignmentQuery(domain.AssignmentFilter{Page: domain.Page{Take: 50}, StartDate: &start})
		assert.Contains(t, query, "start_date >= $1")
		assert.NotContains(t, query, "end_date <=")
	})

	t.Run("end only", func(t *testing.T) {
		query, _ := buildAssignmentQuery(domain.AssignmentFilter{Page: domain.Page{Take: 50}, EndDate: &end})
		assert.Contains(t, query, "end_date <= $1")
		assert.NotContains(t, query, "start_date >=")
	})

	t.Run("status and references", func(t *testing.T) {
		query, args := buildAssignmentQuery(domain.AssignmentFilter{
			Page:      domain.Page{Take: 50},
			Status:    "active",
			ProfileID: "p-1",
			ClientID:  "c-1",
		})
		assert.Contains(t, query, "status = $1 AND profile_id = $2 AND client_id = $3")
		assert.Equal(t, []any{"active", "p-1", "c-1", 50, 0}, args)
	})
}

func TestTranslatePgError(t *testing.T) {
	assert.ErrorIs(t, translatePgError(pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, translatePgError(&pgconn.PgError{Code: pgForeignKeyViolation}), domain.ErrNotFound)

	other := errors.New("random")
	assert.Equal(t, other, translatePgError(other))
	assert.Nil(t, translatePgError(nil))
}

func TestUniqueIDs(t *testing.T) {
	ids := uniqueIDs([]*string{strPtr("a"), nil, strPtr("b"), strPtr("a")})
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Empty(t, uniqueIDs(nil))
}

func TestJSONHelpers(t *testing.T) {
	s, err := jsonParam(nil)
	assert.NoError(t, err)
	assert.Equal(t, "{}", s)

	s, err = jsonParam(map[string]interface{}{"level": "senior"})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"level":"senior"}`, s)

	m, err := decodeJSON(nil)
	assert.NoError(t, err)
	assert.Empty(t, m)

	m, err = decodeJSON([]byte(`{"remote":true}`))
	assert.NoError(t, err)
	assert.Equal(t, true, m["remote"])
}
