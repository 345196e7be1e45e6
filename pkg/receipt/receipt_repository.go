package receipt

import (
	"context"

	"Expiry-Reminder/entities"

	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		// CreateReceiptWithItems writes the owner (if new), the receipt and
		// its items in one transaction.
		CreateReceiptWithItems(ctx context.Context, receipt *entities.Receipt, items []*entities.Item) error
		GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error)
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceiptWithItems(ctx context.Context, receipt *entities.Receipt, items []*entities.Item) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := entities.User{ID: receipt.UserID}
		if err := tx.Where(entities.User{ID: receipt.UserID}).FirstOrCreate(&user).Error; err != nil {
			return err
		}

		if err := tx.Omit("User", "Items").Create(receipt).Error; err != nil {
			return err
		}

		if len(items) == 0 {
			return nil
		}
		for i, item := range items {
			item.ReceiptID = receipt.ID
			item.Position = i
		}
		return tx.Omit("Receipt").Create(&items).Error
	})
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id string) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("id = ?", id).
		First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}
