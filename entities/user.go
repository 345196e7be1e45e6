package entities

// User is keyed by the identity provider's uid.
type User struct {
	ID        string  `gorm:"primary_key" json:"id"`
	PushToken *string `json:"push_token,omitempty"`

	Receipts []*Receipt `gorm:"foreignKey:UserID"`
	Timestamp
}

func (u *User) HasPushToken() bool {
	return u.PushToken != nil && *u.PushToken != ""
}
