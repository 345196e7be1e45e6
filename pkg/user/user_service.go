package user

import (
	"context"
	"errors"
	"strings"

	"Expiry-Reminder/domain"

	"gorm.io/gorm"
)

type (
	UserService interface {
		GetProfile(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdatePushToken(ctx context.Context, userID string, req domain.UpdatePushTokenRequest) error
	}

	userService struct {
		userRepository UserRepository
	}
)

func NewUserService(userRepository UserRepository) UserService {
	return &userService{userRepository: userRepository}
}

func (s *userService) UpdatePushToken(ctx context.Context, userID string, req domain.UpdatePushTokenRequest) error {
	var token *string
	if t := strings.TrimSpace(req.PushToken); t != "" {
		token = &t
	}
	return s.userRepository.UpsertPushToken(ctx, userID, token)
}

// GetProfile reports ErrUserNotFound until the user has uploaded a receipt
// or registered a push token.
func (s *userService) GetProfile(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return domain.UserResponse{
		ID:           user.ID,
		HasPushToken: user.HasPushToken(),
		CreatedAt:    user.CreatedAt,
	}, nil
}
