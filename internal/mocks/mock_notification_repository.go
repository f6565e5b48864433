package mocks

import (
	"context"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// MockNotificationRepository implements domain.NotificationRepository for testing
type MockNotificationRepository struct {
	CreateBatchFunc func(ctx context.Context, notifications []*domain.Notification) error
	ListForUserFunc func(ctx context.Context, userID uint, limit int) ([]*domain.Notification, error)
	MarkReadFunc    func(ctx context.Context, id, userID uint) error
	MarkAllReadFunc func(ctx context.Context, userID uint) (int64, error)

	Created []*domain.Notification
}

func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{}
}

func (m *MockNotificationRepository) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	if m.CreateBatchFunc != nil {
		if err := m.CreateBatchFunc(ctx, notifications); err != nil {
			return err
		}
	}
	m.Created = append(m.Created, notifications...)
	return nil
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]*domain.Notification, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID, limit)
	}
	return []*domain.Notification{}, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID uint) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return 0, nil
}

var _ domain.NotificationRepository = (*MockNotificationRepository)(nil)
