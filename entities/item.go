package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Item struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID  uuid.UUID `gorm:"type:uuid;index;not null" json:"receipt_id"`
	Name       string    `json:"name"`
	ExpiryDate time.Time `gorm:"type:date;index" json:"expiry_date"`
	Notified   bool      `gorm:"default:false;index" json:"notified"`
	Position   int       `json:"position"`

	Receipt *Receipt `gorm:"foreignKey:ReceiptID"`
	Timestamp
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
