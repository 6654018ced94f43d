package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"profiler-backend/internal/domain"
	"profiler-backend/pkg/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func mustDate(t *testing.T, s string) *domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return &d
}

func seedProfile(t *testing.T, repo domain.ProfileRepository, first string, years int, skills ...string) *domain.Profile {
	t.Helper()
	p := &domain.Profile{
		FirstName:         first,
		LastName:          "Tester",
		Email:             first + "@example.com",
		Skills:            skills,
		YearsOfExperience: years,
		IsAvailable:       true,
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func seedClient(t *testing.T, repo domain.ClientRepository, name, industry string, status domain.ClientStatus, locations ...string) *domain.Client {
	t.Helper()
	c := &domain.Client{
		CompanyName:         name,
		Industry:            industry,
		PrimaryContactName:  "Jane",
		PrimaryContactEmail: "jane@example.com",
		Locations:           locations,
		Status:              status,
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	p := seedProfile(t, repo, "Ann", 4, "Go", "PostgreSQL", "Go")

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Go"}, got.Skills, "order and duplicates survive")
	assert.Equal(t, []string{}, got.PreferredLocations)
	assert.Equal(t, domain.AvailabilityImmediate, got.Availability)
	assert.Equal(t, "active", got.Status)
	assert.Empty(t, got.Assignments)
	assert.Empty(t, got.Notes)

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileRepository_CorruptJSONColumn(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	p := seedProfile(t, repo, "Ann", 4, "Go")
	require.NoError(t, db.Exec("UPDATE profiles SET skills = ? WHERE id = ?", "not json", p.ID).Error)

	_, err := repo.GetByID(ctx, p.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode skills")

	_, err = repo.Fetch(ctx, domain.ProfileFilter{Page: domain.Page{Take: 10}})
	assert.Error(t, err)
}

func TestProfileRepository_Fetch(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	seedProfile(t, repo, "Alice", 2, "Go", "Docker")
	seedProfile(t, repo, "Bob", 6, "go")
	seedProfile(t, repo, "Carol", 10, "Java")

	page := domain.Page{Take: 50}

	t.Run("every skill must match, case-insensitive", func(t *testing.T) {
		got, err := repo.Fetch(ctx, domain.ProfileFilter{Page: page, Skills: []string{"GO", "docker"}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Alice", got[0].FirstName)
	})

	t.Run("search term on names", func(t *testing.T) {
		got, err := repo.Fetch(ctx, domain.ProfileFilter{Page: page, SearchTerm: "CAR"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Carol", got[0].FirstName)
	})

	t.Run("experience bounds are inclusive", func(t *testing.T) {
		got, err := repo.Fetch(ctx, domain.ProfileFilter{Page: page, MinExperience: intPtr(2), MaxExperience: intPtr(6)})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("newest first with paging", func(t *testing.T) {
		got, err := repo.Fetch(ctx, domain.ProfileFilter{Page: domain.Page{Skip: 1, Take: 1}})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Bob", got[0].FirstName)
	})
}

func TestProfileRepository_FetchByAnySkill(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	seedProfile(t, repo, "Alice", 2, "Go")
	seedProfile(t, repo, "Bob", 6, "go")
	seedProfile(t, repo, "Carol", 10, "Rust")

	got, err := repo.FetchByAnySkill(ctx, []string{"Go", "Rust"})
	require.NoError(t, err)
	names := []string{}
	for _, p := range got {
		names = append(names, p.FirstName)
	}
	assert.ElementsMatch(t, []string{"Alice", "Carol"}, names, "exact and case-sensitive")

	got, err = repo.FetchByAnySkill(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProfileRepository_FetchAvailable(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	seedProfile(t, repo, "Junior", 1)
	seedProfile(t, repo, "Senior", 9)
	busy := seedProfile(t, repo, "Busy", 20)
	busy.IsAvailable = false
	require.NoError(t, repo.Update(ctx, busy))

	got, err := repo.FetchAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Senior", got[0].FirstName)
	assert.Equal(t, "Junior", got[1].FirstName)
}

func TestProfileRepository_Notes(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	p := seedProfile(t, repo, "Ann", 3)
	other := seedProfile(t, repo, "Ben", 3)

	note := &domain.ProfileNote{ProfileID: p.ID, Content: "Great interview", Type: domain.ProfileNoteInterview}
	require.NoError(t, repo.AddNote(ctx, note))
	assert.NotEmpty(t, note.ID)

	defaulted := &domain.ProfileNote{ProfileID: p.ID, Content: "Follow up"}
	require.NoError(t, repo.AddNote(ctx, defaulted))
	assert.Equal(t, domain.ProfileNoteGeneral, defaulted.Type)

	err := repo.AddNote(ctx, &domain.ProfileNote{ProfileID: "missing", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, 2)

	assert.ErrorIs(t, repo.DeleteNote(ctx, other.ID, note.ID), domain.ErrNotFound, "note belongs to another profile")
	assert.NoError(t, repo.DeleteNote(ctx, p.ID, note.ID))
	assert.ErrorIs(t, repo.DeleteNote(ctx, p.ID, note.ID), domain.ErrNotFound)
}

func TestProfileRepository_UpdateDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	p := seedProfile(t, repo, "Ann", 3, "Go")
	p.Summary = "Backend engineer"
	p.Skills = []string{"Go", "Kafka"}
	p.AdditionalInfo = map[string]interface{}{"visa": "EU"}
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend engineer", got.Summary)
	assert.Equal(t, []string{"Go", "Kafka"}, got.Skills)
	assert.Equal(t, "EU", got.AdditionalInfo["visa"])

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, p), domain.ErrNotFound)
}

func TestClientRepository_Fetch(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	seedClient(t, repo, "Acme", "Technology", domain.ClientStatusActive, "Berlin", "Paris")
	seedClient(t, repo, "Globex", "FinTech", domain.ClientStatusInactive, "London")
	seedClient(t, repo, "Initech", "Software", domain.ClientStatusActive, "Berlin")

	t.Run("total ignores the page window", func(t *testing.T) {
		got, total, err := repo.Fetch(ctx, domain.ClientFilter{Page: domain.Page{Take: 1}})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(3), total)
	})

	t.Run("location membership", func(t *testing.T) {
		got, total, err := repo.Fetch(ctx, domain.ClientFilter{Page: domain.Page{Take: 10}, Location: "Berlin"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, int64(2), total)
	})

	t.Run("industry substring and status", func(t *testing.T) {
		got, _, err := repo.Fetch(ctx, domain.ClientFilter{Page: domain.Page{Take: 10}, Industry: "TECH", Status: "active"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Acme", got[0].CompanyName)
	})

	t.Run("search term", func(t *testing.T) {
		got, _, err := repo.Fetch(ctx, domain.ClientFilter{Page: domain.Page{Take: 10}, SearchTerm: "jane"})
		require.NoError(t, err)
		assert.Len(t, got, 3, "matches the primary contact")
	})
}

func TestClientRepository_Lookups(t *testing.T) {
	db := newTestDB(t)
	repo := NewClientRepository(db)
	ctx := context.Background()

	seedClient(t, repo, "Zeta", "Technology", domain.ClientStatusActive, "Berlin")
	seedClient(t, repo, "Alpha", "biotech", domain.ClientStatusPending, "Berlin")
	seedClient(t, repo, "Mid", "Retail", domain.ClientStatusActive, "Rome")

	byIndustry, err := repo.FetchByIndustry(ctx, "tech")
	require.NoError(t, err)
	require.Len(t, byIndustry, 2)
	assert.Equal(t, "Alpha", byIndustry[0].CompanyName)
	assert.Equal(t, "Zeta", byIndustry[1].CompanyName)

	active, err := repo.FetchByStatus(ctx, domain.ClientStatusActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Mid", active[0].CompanyName, "newest first")

	berlin, err := repo.FetchByLocation(ctx, "Berlin")
	require.NoError(t, err)
	require.Len(t, berlin, 2)
	assert.Equal(t, "Alpha", berlin[0].CompanyName)
}

func TestAssignmentRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	clients := NewClientRepository(db)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	p := seedProfile(t, profiles, "Ann", 3)
	c := seedClient(t, clients, "Acme", "Technology", domain.ClientStatusActive)

	rate := 100.0
	a := &domain.Assignment{
		ProfileID: strPtr(p.ID),
		ClientID:  strPtr(c.ID),
		StartDate: mustDate(t, "2024-02-01"),
		Rate:      &rate,
	}
	require.NoError(t, repo.Create(ctx, a))
	assert.Equal(t, domain.AssignmentStatusPending, a.Status)

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Profile)
	require.NotNil(t, got.Client)
	assert.Equal(t, p.ID, got.Profile.ID)
	assert.Equal(t, c.ID, got.Client.ID)
	assert.Equal(t, "2024-02-01", got.StartDate.String())
	assert.Nil(t, got.EndDate)
	assert.Equal(t, 100.0, *got.Rate)

	hydrated, err := profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, hydrated.Assignments, 1)
	require.NotNil(t, hydrated.Assignments[0].Client)

	withProfiles, err := clients.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, withProfiles.Assignments, 1)
	require.NotNil(t, withProfiles.Assignments[0].Profile)

	note := &domain.AssignmentNote{AssignmentID: a.ID, Content: "Late start", Type: domain.AssignmentNoteIssue}
	require.NoError(t, repo.AddNote(ctx, note))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, got.Notes, 1)

	require.NoError(t, profiles.Delete(ctx, p.ID))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err, "assignment survives profile deletion")
	assert.Nil(t, got.ProfileID)
	assert.Nil(t, got.Profile)
	assert.NotNil(t, got.Client)

	require.NoError(t, repo.DeleteNote(ctx, a.ID, note.ID))
	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), domain.ErrNotFound)
	assert.ErrorIs(t, repo.AddNote(ctx, &domain.AssignmentNote{AssignmentID: a.ID, Content: "x"}), domain.ErrNotFound)
}

func TestAssignmentRepository_Queries(t *testing.T) {
	db := newTestDB(t)
	profiles := NewProfileRepository(db)
	clients := NewClientRepository(db)
	repo := NewAssignmentRepository(db)
	ctx := context.Background()

	p := seedProfile(t, profiles, "Ann", 3)
	c := seedClient(t, clients, "Acme", "Technology", domain.ClientStatusActive)
	other := seedClient(t, clients, "Globex", "Finance", domain.ClientStatusActive)

	create := func(clientID, status, start, end string) *domain.Assignment {
		a := &domain.Assignment{ProfileID: strPtr(p.ID), ClientID: strPtr(clientID), Status: status}
		if start != "" {
			a.StartDate = mustDate(t, start)
		}
		if end != "" {
			a.EndDate = mustDate(t, end)
		}
		require.NoError(t, repo.Create(ctx, a))
		return a
	}

	inside := create(c.ID, "active", "2024-03-05", "2024-03-20")
	spanning := create(c.ID, "active", "2024-01-01", "2024-12-31")
	endsInside := create(other.ID, "completed", "2023-11-01", "2024-03-10")
	create(other.ID, "pending", "2025-01-01", "2025-02-01")

	t.Run("date range window", func(t *testing.T) {
		got, err := repo.FetchByDateRange(ctx, *mustDate(t, "2024-03-01"), *mustDate(t, "2024-03-31"))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, endsInside.ID, got[0].ID, "ordered by start date")
		assert.Equal(t, spanning.ID, got[1].ID)
		assert.Equal(t, inside.ID, got[2].ID)
	})

	t.Run("active ordered by start date desc", func(t *testing.T) {
		got, err := repo.FetchActive(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, inside.ID, got[0].ID)
		assert.NotNil(t, got[0].Profile)
		assert.NotNil(t, got[0].Client)
	})

	t.Run("by client", func(t *testing.T) {
		got, err := repo.FetchByClient(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by profile", func(t *testing.T) {
		got, err := repo.FetchByProfile(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("list filters", func(t *testing.T) {
		page := domain.Page{Take: 50}

		got, err := repo.Fetch(ctx, domain.AssignmentFilter{Page: page, StartDate: mustDate(t, "2024-01-01"), EndDate: mustDate(t, "2024-06-30")})
		require.NoError(t, err)
		assert.Len(t, got, 2, "start date between bounds")

		got, err = repo.Fetch(ctx, domain.AssignmentFilter{Page: page, EndDate: mustDate(t, "2024-03-31")})
		require.NoError(t, err)
		assert.Len(t, got, 2, "end date on or before")

		got, err = repo.Fetch(ctx, domain.AssignmentFilter{Page: page, Status: "pending", ClientID: other.ID})
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}
