package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Receipt struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     string    `gorm:"index;not null" json:"user_id"`
	Text       string    `gorm:"type:text" json:"text"`
	ImageURL   string    `json:"image_url,omitempty"`
	UploadTime time.Time `json:"upload_time"`

	User  *User   `gorm:"foreignKey:UserID"`
	Items []*Item `gorm:"foreignKey:ReceiptID"`
	Timestamp
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
