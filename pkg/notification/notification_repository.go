package notification

import (
	"context"
	"time"

	"Expiry-Reminder/entities"

	"gorm.io/gorm"
)

type (
	NotificationRepository interface {
		// GetUnnotifiedItemsExpiringOn returns not-yet-notified items whose
		// expiry date is day, with Receipt and Receipt.User loaded.
		GetUnnotifiedItemsExpiringOn(ctx context.Context, day time.Time) ([]*entities.Item, error)
		MarkNotified(ctx context.Context, itemID string) error
	}

	notificationRepository struct {
		db *gorm.DB
	}
)

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetUnnotifiedItemsExpiringOn(ctx context.Context, day time.Time) ([]*entities.Item, error) {
	var items []*entities.Item
	if err := r.db.WithContext(ctx).
		Preload("Receipt.User").
		Where("expiry_date >= ? AND expiry_date < ? AND notified = ?", day, day.AddDate(0, 0, 1), false).
		Order("receipt_id asc, position asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// MarkNotified only moves notified from false to true.
func (r *notificationRepository) MarkNotified(ctx context.Context, itemID string) error {
	return r.db.WithContext(ctx).Model(&entities.Item{}).
		Where("id = ? AND notified = ?", itemID, false).
		Update("notified", true).Error
}
