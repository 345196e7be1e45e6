package item

import (
	"context"
	"testing"
	"time"

	"Expiry-Reminder/domain"
	"Expiry-Reminder/entities"
	"Expiry-Reminder/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T, db *gorm.DB, userID string, names ...string) []*entities.Item {
	t.Helper()
	require.NoError(t, db.FirstOrCreate(&entities.User{ID: userID}, entities.User{ID: userID}).Error)
	receipt := &entities.Receipt{UserID: userID, UploadTime: time.Now().UTC()}
	require.NoError(t, db.Omit("User", "Items").Create(receipt).Error)

	items := make([]*entities.Item, 0, len(names))
	for i, name := range names {
		items = append(items, &entities.Item{
			ReceiptID:  receipt.ID,
			Name:       name,
			ExpiryDate: time.Date(2026, 4, 1+i, 0, 0, 0, 0, time.UTC),
			Position:   i,
		})
	}
	if len(items) > 0 {
		require.NoError(t, db.Omit("Receipt").Create(&items).Error)
	}
	return items
}

func TestGetItemsForOwnerOnly(t *testing.T) {
	db := testutil.NewDB(t)
	seed(t, db, "uid-1", "milk", "bread", "eggs")
	seed(t, db, "uid-2", "lettuce")
	svc := NewItemService(NewItemRepository(db))

	items, count, err := svc.GetItems(context.Background(), "uid-1", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
	require.Len(t, items, 2)
	assert.Equal(t, "milk", items[0].Name)
	assert.Equal(t, "bread", items[1].Name)

	items, _, err = svc.GetItems(context.Background(), "uid-1", 2, 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "eggs", items[0].Name)
}

func TestGetItemByID(t *testing.T) {
	db := testutil.NewDB(t)
	items := seed(t, db, "uid-1", "milk")
	svc := NewItemService(NewItemRepository(db))

	res, err := svc.GetItemByID(context.Background(), items[0].ID.String(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "milk", res.Name)
	assert.Equal(t, "2026-04-01", res.ExpiryDate)

	_, err = svc.GetItemByID(context.Background(), items[0].ID.String(), "uid-2")
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	_, err = svc.GetItemByID(context.Background(), uuid.NewString(), "uid-1")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = svc.GetItemByID(context.Background(), "garbage", "uid-1")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestUpdateItem(t *testing.T) {
	db := testutil.NewDB(t)
	items := seed(t, db, "uid-1", "milk")
	require.NoError(t, db.Model(&entities.Item{}).Where("id = ?", items[0].ID).Update("notified", true).Error)
	svc := NewItemService(NewItemRepository(db))
	id := items[0].ID.String()

	res, err := svc.UpdateItem(context.Background(), id, domain.UpdateItemRequest{Name: "  Oat Milk ", ExpiryDate: "2026-05-02"}, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "oat milk", res.Name)
	assert.Equal(t, "2026-05-02", res.ExpiryDate)

	var stored entities.Item
	require.NoError(t, db.First(&stored, "id = ?", id).Error)
	assert.Equal(t, "oat milk", stored.Name)
	assert.Equal(t, "2026-05-02", stored.ExpiryDate.Format(domain.DateLayout))
	assert.True(t, stored.Notified, "editing must not reset notified")

	_, err = svc.UpdateItem(context.Background(), id, domain.UpdateItemRequest{ExpiryDate: "02/05/2026"}, "uid-1")
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)

	_, err = svc.UpdateItem(context.Background(), id, domain.UpdateItemRequest{Name: "   "}, "uid-1")
	assert.ErrorIs(t, err, domain.ErrInvalidItemName)

	_, err = svc.UpdateItem(context.Background(), id, domain.UpdateItemRequest{Name: "x"}, "uid-2")
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)
}

func TestDeleteItem(t *testing.T) {
	db := testutil.NewDB(t)
	items := seed(t, db, "uid-1", "milk", "bread")
	svc := NewItemService(NewItemRepository(db))
	id := items[0].ID.String()

	assert.ErrorIs(t, svc.DeleteItem(context.Background(), id, "uid-2"), domain.ErrUnauthorizedAccess)
	require.NoError(t, svc.DeleteItem(context.Background(), id, "uid-1"))
	assert.ErrorIs(t, svc.DeleteItem(context.Background(), id, "uid-1"), domain.ErrItemNotFound)

	var count int64
	require.NoError(t, db.Model(&entities.Item{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "chicken breast", NormalizeName("  CHICKEN Breast\t"))
}
