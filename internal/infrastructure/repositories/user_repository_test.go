package repositories

import (
	"context"
	"testing"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryImpl_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{
		Name:         "Lead One",
		Email:        "lead@example.com",
		PasswordHash: "hash",
		Role:         domain.RoleAdmin1,
		StationID:    uintPtr(3),
		RegionID:     uintPtr(1),
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	tests := []struct {
		name   string
		lookup func() (*domain.User, error)
	}{
		{"by id", func() (*domain.User, error) { return repo.FindByID(ctx, user.ID) }},
		{"by email", func() (*domain.User, error) { return repo.FindByEmail(ctx, "lead@example.com") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := tt.lookup()
			require.NoError(t, err)
			assert.Equal(t, user.ID, found.ID)
			assert.Equal(t, "Lead One", found.Name)
			assert.Equal(t, domain.RoleAdmin1, found.Role)
			require.NotNil(t, found.StationID)
			assert.Equal(t, uint(3), *found.StationID)
		})
	}

	_, err := repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_Create_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.User{Name: "A", Email: "dup@example.com", Role: domain.RoleSuperAdmin}))
	err := repo.Create(ctx, &domain.User{Name: "B", Email: "dup@example.com", Role: domain.RoleAdmin0})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestUserRepositoryImpl_UpdateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Name: "Officer", Email: "o@example.com", PasswordHash: "h1", Role: domain.RoleAdmin2, StationID: uintPtr(1), RegionID: uintPtr(1)}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Officer Renamed"
	user.Role = domain.RoleAdmin1
	require.NoError(t, repo.Update(ctx, user))

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "h2"))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Officer Renamed", found.Name)
	assert.Equal(t, domain.RoleAdmin1, found.Role)
	assert.Equal(t, "h2", found.PasswordHash)

	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: 999, Name: "x", Email: "x@example.com"}), domain.ErrUserNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, 999, "h"), domain.ErrUserNotFound)

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), domain.ErrUserNotFound)
}

func TestUserRepositoryImpl_Queries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	users := []*domain.User{
		{Name: "Root", Email: "root@example.com", Role: domain.RoleSuperAdmin},
		{Name: "Supervisor North", Email: "sn@example.com", Role: domain.RoleAdmin0, RegionID: uintPtr(1)},
		{Name: "Lead North", Email: "ln@example.com", Role: domain.RoleAdmin1, StationID: uintPtr(10), RegionID: uintPtr(1)},
		{Name: "Officer North", Email: "on@example.com", Role: domain.RoleAdmin2, StationID: uintPtr(10), RegionID: uintPtr(1)},
		{Name: "Officer South", Email: "os@example.com", Role: domain.RoleAdmin2, StationID: uintPtr(20), RegionID: uintPtr(2)},
	}
	for _, u := range users {
		require.NoError(t, repo.Create(ctx, u))
	}

	tests := []struct {
		name     string
		query    func() ([]*domain.User, error)
		expected []string
	}{
		{
			name:     "list all sorted by name",
			query:    func() ([]*domain.User, error) { return repo.List(ctx, domain.UserFilter{}) },
			expected: []string{"Lead North", "Officer North", "Officer South", "Root", "Supervisor North"},
		},
		{
			name:     "list officers of a station",
			query:    func() ([]*domain.User, error) { return repo.List(ctx, domain.UserFilter{Role: domain.RoleAdmin2, StationID: uintPtr(10)}) },
			expected: []string{"Officer North"},
		},
		{
			name:     "station leads",
			query:    func() ([]*domain.User, error) { return repo.FindByStationRole(ctx, 10, domain.RoleAdmin1) },
			expected: []string{"Lead North"},
		},
		{
			name:     "region supervisors",
			query:    func() ([]*domain.User, error) { return repo.FindByRegionRole(ctx, 1, domain.RoleAdmin0) },
			expected: []string{"Supervisor North"},
		},
		{
			name:     "no supervisors in region 2",
			query:    func() ([]*domain.User, error) { return repo.FindByRegionRole(ctx, 2, domain.RoleAdmin0) },
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query()
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, u := range got {
				names = append(names, u.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}

	exists, err := repo.ExistsWithRole(ctx, domain.RoleSuperAdmin)
	require.NoError(t, err)
	assert.True(t, exists)
}
