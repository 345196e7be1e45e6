package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetItems   = "items retrieved successfully"
	MessageSuccessUpdateItem = "item updated successfully"
	MessageSuccessDeleteItem = "item deleted successfully"

	MessageFailedGetItems   = "failed to retrieve items"
	MessageFailedUpdateItem = "failed to update item"
	MessageFailedDeleteItem = "failed to delete item"

	ErrItemNotFound      = errors.New("item not found")
	ErrInvalidExpiryDate = errors.New("invalid expiry date")
	ErrInvalidItemName   = errors.New("item name must not be empty")
)

type (
	// ExtractedItem is one deduplicated receipt line with its estimated expiry.
	ExtractedItem struct {
		Name       string    `json:"name"`
		ExpiryDate time.Time `json:"expiry_date"`
	}

	UpdateItemRequest struct {
		Name       string `json:"name" validate:"omitempty,max=255"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	}

	ItemResponse struct {
		ID         string    `json:"id"`
		ReceiptID  string    `json:"receipt_id"`
		Name       string    `json:"name"`
		ExpiryDate string    `json:"expiry_date"`
		Notified   bool      `json:"notified"`
		CreatedAt  time.Time `json:"created_at"`
	}
)
