package repositories

import (
	"context"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationRepositoryImpl implements domain.NotificationRepository using GORM
type NotificationRepositoryImpl struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) domain.NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

// CreateBatch implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) CreateBatch(ctx context.Context, notifications []*domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	rows := make([]DBNotification, 0, len(notifications))
	for _, n := range notifications {
		rows = append(rows, DBNotification{
			UserID: n.UserID,
			Title:  n.Title,
			Body:   n.Body,
			Meta:   datatypes.JSONMap(n.Meta),
			Read:   n.Read,
		})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}
	for i := range rows {
		notifications[i].ID = rows[i].ID
		notifications[i].CreatedAt = rows[i].CreatedAt
	}
	return nil
}

// ListForUser implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) ListForUser(ctx context.Context, userID uint, limit int) ([]*domain.Notification, error) {
	var rows []DBNotification
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Notification, 0, len(rows))
	for i := range rows {
		out = append(out, r.dbToDomain(&rows[i]))
	}
	return out, nil
}

// MarkRead implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) MarkRead(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Model(&DBNotification{}).
		Where("id = ? AND user_id = ?", id, userID).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead implements domain.NotificationRepository
func (r *NotificationRepositoryImpl) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&DBNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepositoryImpl) dbToDomain(row *DBNotification) *domain.Notification {
	return &domain.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Title:     row.Title,
		Body:      row.Body,
		Meta:      map[string]any(row.Meta),
		Read:      row.Read,
		CreatedAt: row.CreatedAt,
	}
}
