package repositories

import (
	"context"
	"testing"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRepositoryImpl(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	batch := []*domain.Notification{
		{UserID: 1, Title: "New Verification Request", Body: "first", Meta: map[string]any{"verificationId": "abc"}},
		{UserID: 1, Title: "New Verification Request", Body: "second", Meta: map[string]any{"verificationId": "def"}},
		{UserID: 2, Title: "Assigned", Body: "other user"},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	for _, n := range batch {
		assert.NotZero(t, n.ID)
	}
	require.NoError(t, repo.CreateBatch(ctx, nil))

	list, err := repo.ListForUser(ctx, 1, 50)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Body, "newest first")
	assert.Equal(t, "def", list[0].Meta["verificationId"])
	assert.False(t, list[0].Read)

	limited, err := repo.ListForUser(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	// user 2 cannot mark user 1's notification
	assert.ErrorIs(t, repo.MarkRead(ctx, batch[0].ID, 2), domain.ErrNotificationNotFound)
	require.NoError(t, repo.MarkRead(ctx, batch[0].ID, 1))

	n, err := repo.MarkAllRead(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err = repo.ListForUser(ctx, 1, 50)
	require.NoError(t, err)
	for _, item := range list {
		assert.True(t, item.Read)
	}

	others, err := repo.ListForUser(ctx, 2, 50)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.False(t, others[0].Read)
	assert.Empty(t, others[0].Meta)
}
