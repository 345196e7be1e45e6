package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessUpdatePushToken = "push token updated successfully"
	MessageFailedUpdatePushToken  = "failed to update push token"
	MessageSuccessGetProfile      = "profile retrieved successfully"
	MessageFailedGetProfile       = "failed to retrieve profile"

	ErrUserNotFound = errors.New("user not found")
)

type UpdatePushTokenRequest struct {
	// An empty token clears the registration.
	PushToken string `json:"push_token" validate:"omitempty,max=512"`
}

type UserResponse struct {
	ID           string    `json:"id"`
	HasPushToken bool      `json:"has_push_token"`
	CreatedAt    time.Time `json:"created_at"`
}
