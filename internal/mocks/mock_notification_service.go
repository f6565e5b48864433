package mocks

import (
	"context"
	"sync"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/google/uuid"
)

// Notice is one recorded Notify call
type Notice struct {
	Recipients []uint
	Title      string
	Body       string
	RequestID  uuid.UUID
}

// MockNotificationService implements domain.NotificationService for testing.
// Notify calls are recorded in Notices.
type MockNotificationService struct {
	mu      sync.Mutex
	Notices []Notice

	ListFunc        func(ctx context.Context, actor domain.Actor) ([]*domain.Notification, error)
	MarkReadFunc    func(ctx context.Context, actor domain.Actor, id uint) error
	MarkAllReadFunc func(ctx context.Context, actor domain.Actor) (int64, error)
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) Notify(ctx context.Context, recipients []uint, title, body string, requestID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notices = append(m.Notices, Notice{Recipients: recipients, Title: title, Body: body, RequestID: requestID})
}

func (m *MockNotificationService) List(ctx context.Context, actor domain.Actor) ([]*domain.Notification, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, actor)
	}
	return []*domain.Notification{}, nil
}

func (m *MockNotificationService) MarkRead(ctx context.Context, actor domain.Actor, id uint) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, actor, id)
	}
	return nil
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error) {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, actor)
	}
	return 0, nil
}

var _ domain.NotificationService = (*MockNotificationService)(nil)
