package item

import (
	"context"

	"Expiry-Reminder/entities"

	"gorm.io/gorm"
)

type (
	ItemRepository interface {
		GetItemByID(ctx context.Context, id string) (*entities.Item, error)
		GetItemsByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Item, int64, error)
		UpdateItemDetails(ctx context.Context, item *entities.Item) error
		DeleteItem(ctx context.Context, id string) error
	}

	itemRepository struct {
		db *gorm.DB
	}
)

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetItemByID(ctx context.Context, id string) (*entities.Item, error) {
	var item entities.Item
	if err := r.db.WithContext(ctx).Preload("Receipt").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) GetItemsByUser(ctx context.Context, userID string, page, limit int) ([]*entities.Item, int64, error) {
	var items []*entities.Item
	var count int64

	offset := (page - 1) * limit

	ownedBy := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&entities.Item{}).
			Joins("JOIN receipts ON receipts.id = items.receipt_id").
			Where("receipts.user_id = ?", userID)
	}

	if err := ownedBy().Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := ownedBy().Select("items.*").
		Offset(offset).Limit(limit).
		Order("items.expiry_date asc").Order("items.position asc").
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

// UpdateItemDetails writes only the user-editable columns; notified is never touched here.
func (r *itemRepository) UpdateItemDetails(ctx context.Context, item *entities.Item) error {
	return r.db.WithContext(ctx).Model(&entities.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"expiry_date": item.ExpiryDate,
		}).Error
}

func (r *itemRepository) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Item{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
