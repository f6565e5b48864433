package services

import (
	"context"
	"log/slog"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/google/uuid"
)

// notificationPageSize caps List results
const notificationPageSize = 50

// NotificationServiceImpl implements domain.NotificationService
type NotificationServiceImpl struct {
	repo   domain.NotificationRepository
	logger *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo domain.NotificationRepository, logger *slog.Logger) domain.NotificationService {
	return &NotificationServiceImpl{
		repo:   repo,
		logger: logger.With("component", "notifications"),
	}
}

// Notify writes one notification per recipient. It runs after the
// triggering transition has committed, so failures are only logged.
func (s *NotificationServiceImpl) Notify(ctx context.Context, recipients []uint, title, body string, requestID uuid.UUID) {
	if len(recipients) == 0 {
		return
	}

	batch := make([]*domain.Notification, 0, len(recipients))
	for _, id := range recipients {
		batch = append(batch, &domain.Notification{
			UserID: id,
			Title:  title,
			Body:   body,
			Meta:   map[string]any{"verificationId": requestID.String()},
		})
	}

	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		s.logger.ErrorContext(ctx, "failed to write notifications",
			slog.String("request_id", requestID.String()),
			slog.Any("recipients", recipients),
			slog.String("title", title),
			slog.Any("error", err))
	}
}

// List returns the actor's newest notifications
func (s *NotificationServiceImpl) List(ctx context.Context, actor domain.Actor) ([]*domain.Notification, error) {
	return s.repo.ListForUser(ctx, actor.UserID(), notificationPageSize)
}

// MarkRead marks one of the actor's notifications as read
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, actor domain.Actor, id uint) error {
	return s.repo.MarkRead(ctx, id, actor.UserID())
}

// MarkAllRead marks every notification of the actor as read
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context, actor domain.Actor) (int64, error) {
	return s.repo.MarkAllRead(ctx, actor.UserID())
}
