package item

import (
	"context"
	"errors"
	"strings"
	"time"

	"Expiry-Reminder/domain"
	"Expiry-Reminder/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ItemService interface {
		GetItems(ctx context.Context, userID string, page, limit int) ([]domain.ItemResponse, int64, error)
		GetItemByID(ctx context.Context, id string, userID string) (domain.ItemResponse, error)
		UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest, userID string) (domain.ItemResponse, error)
		DeleteItem(ctx context.Context, id string, userID string) error
	}

	itemService struct {
		itemRepository ItemRepository
	}
)

func NewItemService(itemRepository ItemRepository) ItemService {
	return &itemService{itemRepository: itemRepository}
}

func (s *itemService) GetItems(ctx context.Context, userID string, page, limit int) ([]domain.ItemResponse, int64, error) {
	items, count, err := s.itemRepository.GetItemsByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return ToItemResponses(items), count, nil
}

func (s *itemService) GetItemByID(ctx context.Context, id string, userID string) (domain.ItemResponse, error) {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.ItemResponse{}, err
	}
	return ToItemResponse(item), nil
}

func (s *itemService) UpdateItem(ctx context.Context, id string, req domain.UpdateItemRequest, userID string) (domain.ItemResponse, error) {
	item, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.ItemResponse{}, err
	}

	if req.Name != "" {
		name := NormalizeName(req.Name)
		if name == "" {
			return domain.ItemResponse{}, domain.ErrInvalidItemName
		}
		item.Name = name
	}

	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse(domain.DateLayout, req.ExpiryDate)
		if err != nil {
			return domain.ItemResponse{}, domain.ErrInvalidExpiryDate
		}
		item.ExpiryDate = expiryDate
	}

	if err := s.itemRepository.UpdateItemDetails(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}
	return ToItemResponse(item), nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string, userID string) error {
	if _, err := s.ownedItem(ctx, id, userID); err != nil {
		return err
	}
	if err := s.itemRepository.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}
	return nil
}

func (s *itemService) ownedItem(ctx context.Context, id string, userID string) (*entities.Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrItemNotFound
	}

	item, err := s.itemRepository.GetItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}

	if item.Receipt == nil || item.Receipt.UserID != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return item, nil
}

// NormalizeName lower-cases and trims an item label.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func ToItemResponses(items []*entities.Item) []domain.ItemResponse {
	response := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, ToItemResponse(item))
	}
	return response
}

func ToItemResponse(item *entities.Item) domain.ItemResponse {
	return domain.ItemResponse{
		ID:         item.ID.String(),
		ReceiptID:  item.ReceiptID.String(),
		Name:       item.Name,
		ExpiryDate: item.ExpiryDate.Format(domain.DateLayout),
		Notified:   item.Notified,
		CreatedAt:  item.CreatedAt,
	}
}
