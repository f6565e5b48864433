package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepositoryImpl_CreateAndFind(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewSessionRepository(client, 30*time.Minute)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess-1",
		UserID:    7,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(30 * time.Minute),
	}
	require.NoError(t, repo.Create(ctx, session))

	assert.True(t, mr.Exists("session:sess-1"))
	assert.InDelta(t, (30 * time.Minute).Seconds(), mr.TTL("session:sess-1").Seconds(), 1)

	found, err := repo.FindByID(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, uint(7), found.UserID)
}

func TestSessionRepositoryImpl_FindByID_Errors(t *testing.T) {
	tests := []struct {
		name          string
		session       *domain.Session
		lookup        string
		expectedError error
	}{
		{
			name:          "missing session",
			lookup:        "nope",
			expectedError: domain.ErrSessionNotFound,
		},
		{
			name: "expired session is removed",
			session: &domain.Session{
				ID:        "old",
				UserID:    2,
				CreatedAt: time.Now().Add(-2 * time.Hour),
				ExpiresAt: time.Now().Add(-time.Hour),
			},
			lookup:        "old",
			expectedError: domain.ErrSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mr := setupTestRedis(t)
			repo := NewSessionRepository(client, time.Hour)
			ctx := context.Background()

			if tt.session != nil {
				require.NoError(t, repo.Create(ctx, tt.session))
			}

			found, err := repo.FindByID(ctx, tt.lookup)
			assert.Nil(t, found)
			assert.ErrorIs(t, err, tt.expectedError)
			assert.False(t, mr.Exists("session:"+tt.lookup))
		})
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Session{ID: "s", UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, repo.Delete(ctx, "s"))

	_, err := repo.FindByID(ctx, "s")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// deleting twice is not an error
	assert.NoError(t, repo.Delete(ctx, "s"))
}
