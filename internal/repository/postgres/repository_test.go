package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profiler-backend/internal/domain"
)

var (
	profileCols = []string{
		"id", "first_name", "last_name", "email", "phone", "skills", "summary",
		"years_of_experience", "expected_rate", "availability", "linked_in_url", "github_url",
		"portfolio_url", "is_available", "preferred_locations", "status", "additional_info",
		"created_at", "updated_at",
	}
	clientCols = []string{
		"id", "company_name", "industry", "website", "description",
		"primary_contact_name", "primary_contact_email", "primary_contact_phone",
		"locations", "status", "requirements", "additional_info", "created_at", "updated_at",
	}
	assignmentCols = []string{
		"id", "profile_id", "client_id", "start_date", "end_date", "status", "rate",
		"feedback", "additional_info", "created_at", "updated_at",
	}
	noteCols = []string{"id", "parent_id", "content", "type", "created_at", "updated_at"}
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func addProfileRow(rows *pgxmock.Rows, id, first string, skills []string, now time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id, first, "Doe", first+"@example.com", nil, skills, "summary",
		5, nil, "immediate", nil, nil,
		nil, true, []string{"Remote"}, "active", []byte(`{"source":"referral"}`),
		now, now,
	)
}

func addClientRow(rows *pgxmock.Rows, id, name string, now time.Time) *pgxmock.Rows {
	return rows.AddRow(
		id, name, "Technology", nil, nil,
		"Jane", "jane@example.com", nil,
		[]string{"Berlin"}, "active", []byte(`{}`), []byte(`{}`), now, now,
	)
}

func TestProfileRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(anyArgs(19)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	p := &domain.Profile{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", IsAvailable: true}
	require.NoError(t, repo.Create(context.Background(), p))

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, domain.AvailabilityImmediate, p.Availability)
	assert.Equal(t, "active", p.Status)
	assert.Equal(t, []string{}, p.Skills)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Fetch(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)
	now := time.Now().UTC()

	rows := pgxmock.NewRows(profileCols)
	addProfileRow(rows, "p-1", "Ann", []string{"Go", "SQL"}, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE availability = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("immediate", 50, 0).
		WillReturnRows(rows)

	profiles, err := repo.Fetch(context.Background(), domain.ProfileFilter{
		Page:         domain.Page{Take: 50},
		Availability: "immediate",
	})
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, []string{"Go", "SQL"}, profiles[0].Skills)
	assert.Equal(t, "referral", profiles[0].AdditionalInfo["source"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_GetByID(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProfileRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE id = $1")).
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows(profileCols))

		_, err := repo.GetByID(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hydrates assignments and notes", func(t *testing.T) {
		mock := newMock(t)
		repo := NewProfileRepository(mock)
		now := time.Now().UTC()

		profileRows := pgxmock.NewRows(profileCols)
		addProfileRow(profileRows, "p-1", "Ann", []string{"Go"}, now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM profiles WHERE id = $1")).
			WithArgs("p-1").
			WillReturnRows(profileRows)

		mock.ExpectQuery(regexp.QuoteMeta("FROM assignments WHERE profile_id = $1")).
			WithArgs("p-1").
			WillReturnRows(pgxmock.NewRows(assignmentCols).AddRow(
				"a-1", strPtr("p-1"), strPtr("c-1"), nil, nil, "active", nil,
				[]byte(`{}`), []byte(`{}`), now, now,
			))

		clientRows := pgxmock.NewRows(clientCols)
		addClientRow(clientRows, "c-1", "Acme", now)
		mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = ANY($1)")).
			WithArgs(pgxmock.AnyArg()).
			WillReturnRows(clientRows)

		mock.ExpectQuery(regexp.QuoteMeta("FROM profile_notes WHERE profile_id = $1")).
			WithArgs("p-1").
			WillReturnRows(pgxmock.NewRows(noteCols).AddRow("n-1", "p-1", "Strong Go", "interview", now, now))

		profile, err := repo.GetByID(context.Background(), "p-1")
		require.NoError(t, err)
		require.Len(t, profile.Assignments, 1)
		require.NotNil(t, profile.Assignments[0].Client)
		assert.Equal(t, "Acme", profile.Assignments[0].Client.CompanyName)
		require.Len(t, profile.Notes, 1)
		assert.Equal(t, domain.ProfileNoteInterview, profile.Notes[0].Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProfileRepository_Delete(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM profiles WHERE id = $1")).
		WithArgs("p-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM profiles WHERE id = $1")).
		WithArgs("p-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), "p-1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "p-1"), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_Update_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE profiles SET")).
		WithArgs(anyArgs(18)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), &domain.Profile{ID: "p-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_FetchByAnySkill_Empty(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	profiles, err := repo.FetchByAnySkill(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, profiles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_AddNote_MissingProfile(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profile_notes")).
		WithArgs(anyArgs(6)...).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	err := repo.AddNote(context.Background(), &domain.ProfileNote{ProfileID: "missing", Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_DeleteNote_ScopedToProfile(t *testing.T) {
	mock := newMock(t)
	repo := NewProfileRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM profile_notes WHERE id = $1 AND profile_id = $2")).
		WithArgs("n-1", "p-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteNote(context.Background(), "p-2", "n-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_Fetch(t *testing.T) {
	mock := newMock(t)
	repo := NewClientRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM clients WHERE status = $1")).
		WithArgs("active").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(12)))

	rows := pgxmock.NewRows(clientCols)
	addClientRow(rows, "c-1", "Acme", now)
	addClientRow(rows, "c-2", "Globex", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")).
		WithArgs("active", 2, 0).
		WillReturnRows(rows)

	clients, total, err := repo.Fetch(context.Background(), domain.ClientFilter{
		Page:   domain.Page{Take: 2},
		Status: "active",
	})
	require.NoError(t, err)
	assert.Len(t, clients, 2)
	assert.Equal(t, int64(12), total)
	assert.Equal(t, []string{"Berlin"}, clients[0].Locations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_FetchByLocation(t *testing.T) {
	mock := newMock(t)
	repo := NewClientRepository(mock)
	now := time.Now().UTC()

	rows := pgxmock.NewRows(clientCols)
	addClientRow(rows, "c-1", "Acme", now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE $1 = ANY(locations) ORDER BY company_name ASC")).
		WithArgs("Berlin").
		WillReturnRows(rows)

	clients, err := repo.FetchByLocation(context.Background(), "Berlin")
	require.NoError(t, err)
	assert.Len(t, clients, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientRepository_FetchByIndustry(t *testing.T) {
	mock := newMock(t)
	repo := NewClientRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE industry ILIKE $1 ORDER BY company_name ASC")).
		WithArgs("%tech%").
		WillReturnRows(pgxmock.NewRows(clientCols))

	clients, err := repo.FetchByIndustry(context.Background(), "tech")
	require.NoError(t, err)
	assert.Empty(t, clients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO assignments")).
		WithArgs(anyArgs(11)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rate := 100.0
	a := &domain.Assignment{ProfileID: strPtr("p-1"), ClientID: strPtr("c-1"), Rate: &rate}
	require.NoError(t, repo.Create(context.Background(), a))

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, domain.AssignmentStatusPending, a.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_GetByID_DanglingProfile(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)
	now := time.Now().UTC()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM assignments WHERE id = $1")).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(assignmentCols).AddRow(
			"a-1", nil, strPtr("c-1"), &start, nil, "active", nil,
			[]byte(`{"score":5}`), []byte(`{}`), now, now,
		))

	clientRows := pgxmock.NewRows(clientCols)
	addClientRow(clientRows, "c-1", "Acme", now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE id = ANY($1)")).
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(clientRows)

	mock.ExpectQuery(regexp.QuoteMeta("FROM assignment_notes WHERE assignment_id = $1")).
		WithArgs("a-1").
		WillReturnRows(pgxmock.NewRows(noteCols).AddRow("n-1", "a-1", "Late start", "issue", now, now))

	a, err := repo.GetByID(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Nil(t, a.ProfileID)
	assert.Nil(t, a.Profile)
	require.NotNil(t, a.Client)
	assert.Equal(t, "Acme", a.Client.CompanyName)
	require.NotNil(t, a.StartDate)
	assert.Equal(t, "2024-01-01", a.StartDate.String())
	assert.Equal(t, float64(5), a.Feedback["score"])
	require.Len(t, a.Notes, 1)
	assert.Equal(t, domain.AssignmentNoteIssue, a.Notes[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_FetchByDateRange(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	start, _ := domain.ParseDate("2024-01-01")
	end, _ := domain.ParseDate("2024-01-31")

	mock.ExpectQuery(`(?s)WHERE \(start_date BETWEEN \$1 AND \$2\).*OR \(end_date BETWEEN \$1 AND \$2\).*OR \(start_date <= \$1 AND end_date >= \$2\).*ORDER BY start_date ASC`).
		WithArgs(start.Time, end.Time).
		WillReturnRows(pgxmock.NewRows(assignmentCols))

	assignments, err := repo.FetchByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	assert.Empty(t, assignments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_FetchActive(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 ORDER BY start_date DESC")).
		WithArgs("active").
		WillReturnRows(pgxmock.NewRows(assignmentCols))

	assignments, err := repo.FetchActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, assignments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepository_RemoveNote_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewAssignmentRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assignment_notes WHERE id = $1 AND assignment_id = $2")).
		WithArgs("n-1", "a-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.DeleteNote(context.Background(), "a-1", "n-1"), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
