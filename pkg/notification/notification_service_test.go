package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"Expiry-Reminder/domain"
	"Expiry-Reminder/entities"
	"Expiry-Reminder/internal/testutil"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMessage struct {
	token, title, body string
}

type fakeTransport struct {
	sent []sentMessage
	fail map[string]bool
}

func (f *fakeTransport) Send(_ context.Context, token, title, body string) error {
	f.sent = append(f.sent, sentMessage{token, title, body})
	if f.fail[token] {
		return errors.New("push gateway unavailable")
	}
	return nil
}

var now = time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

var tomorrow = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func seedItem(t *testing.T, db *gorm.DB, userID string, token *string, name string, expiry time.Time, notified bool) *entities.Item {
	t.Helper()
	require.NoError(t, db.FirstOrCreate(&entities.User{ID: userID, PushToken: token}, entities.User{ID: userID}).Error)
	receipt := &entities.Receipt{UserID: userID, UploadTime: now}
	require.NoError(t, db.Omit("User", "Items").Create(receipt).Error)
	item := &entities.Item{ReceiptID: receipt.ID, Name: name, ExpiryDate: expiry}
	require.NoError(t, db.Omit("Receipt").Create(item).Error)
	if notified {
		require.NoError(t, db.Model(item).Update("notified", true).Error)
	}
	return item
}

func notifiedFlag(t *testing.T, db *gorm.DB, id uuid.UUID) bool {
	t.Helper()
	var item entities.Item
	require.NoError(t, db.First(&item, "id = ?", id).Error)
	return item.Notified
}

func newSweeper(db *gorm.DB, transport *fakeTransport) NotificationService {
	return NewNotificationService(NewNotificationRepository(db), transport, time.Second, zerolog.Nop(), clock)
}

func TestSweepDeliversAndMarksNotified(t *testing.T) {
	db := testutil.NewDB(t)
	token := "ExponentPushToken[ok]"
	item := seedItem(t, db, "uid-1", &token, "milk", tomorrow, false)
	transport := &fakeTransport{}

	report, err := newSweeper(db, transport).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Sent)
	require.Len(t, transport.sent, 1)
	assert.Equal(t, sentMessage{token, domain.ExpiryReminderTitle, "milk expires tomorrow!"}, transport.sent[0])
	assert.True(t, notifiedFlag(t, db, item.ID))
}

func TestSweepSkipsOwnerWithoutToken(t *testing.T) {
	db := testutil.NewDB(t)
	item := seedItem(t, db, "uid-1", nil, "milk", tomorrow, false)
	transport := &fakeTransport{}

	report, err := newSweeper(db, transport).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.Sent)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, transport.sent)
	assert.False(t, notifiedFlag(t, db, item.ID))
}

func TestSweepIsIdempotentWithinADay(t *testing.T) {
	db := testutil.NewDB(t)
	token := "tok"
	seedItem(t, db, "uid-1", &token, "milk", tomorrow, false)
	seedItem(t, db, "uid-1", &token, "bread", tomorrow, false)
	transport := &fakeTransport{}
	sweeper := newSweeper(db, transport)

	first, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	second, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, first.Sent)
	assert.Equal(t, 0, second.Sent)
	assert.Equal(t, 0, second.Selected)
	assert.Len(t, transport.sent, 2)
}

func TestSweepSelectsOnlyTomorrowsUnnotifiedItems(t *testing.T) {
	db := testutil.NewDB(t)
	token := "tok"
	due := seedItem(t, db, "uid-1", &token, "milk", tomorrow, false)
	seedItem(t, db, "uid-1", &token, "eggs", tomorrow.AddDate(0, 0, 1), false)
	seedItem(t, db, "uid-1", &token, "bread", tomorrow.AddDate(0, 0, -1), false)
	seedItem(t, db, "uid-1", &token, "lettuce", tomorrow, true)
	transport := &fakeTransport{}

	report, err := newSweeper(db, transport).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Selected)
	require.Len(t, transport.sent, 1)
	assert.Equal(t, "milk expires tomorrow!", transport.sent[0].body)
	assert.True(t, notifiedFlag(t, db, due.ID))
}

func TestSweepLeavesFailedDeliveriesEligible(t *testing.T) {
	db := testutil.NewDB(t)
	good, bad := "good", "bad"
	delivered := seedItem(t, db, "uid-1", &good, "milk", tomorrow, false)
	failed := seedItem(t, db, "uid-2", &bad, "bread", tomorrow, false)
	transport := &fakeTransport{fail: map[string]bool{bad: true}}
	sweeper := newSweeper(db, transport)

	report, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, notifiedFlag(t, db, delivered.ID))
	assert.False(t, notifiedFlag(t, db, failed.ID))

	delete(transport.fail, bad)
	report, err = sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.True(t, notifiedFlag(t, db, failed.ID))
}

type brokenRepo struct{}

func (brokenRepo) GetUnnotifiedItemsExpiringOn(context.Context, time.Time) ([]*entities.Item, error) {
	return nil, errors.New("connection reset")
}

func (brokenRepo) MarkNotified(context.Context, string) error { return nil }

func TestSweepSurfacesQueryFailure(t *testing.T) {
	transport := &fakeTransport{}
	_, err := NewNotificationService(brokenRepo{}, transport, 0, zerolog.Nop(), clock).Sweep(context.Background())
	assert.Error(t, err)
	assert.Empty(t, transport.sent)
}

type markFailRepo struct {
	items []*entities.Item
}

func (r markFailRepo) GetUnnotifiedItemsExpiringOn(context.Context, time.Time) ([]*entities.Item, error) {
	return r.items, nil
}

func (markFailRepo) MarkNotified(context.Context, string) error { return errors.New("write failed") }

func TestSweepCountsDeliveryEvenIfFlagWriteFails(t *testing.T) {
	token := "tok"
	items := []*entities.Item{{
		ID:      uuid.New(),
		Name:    "milk",
		Receipt: &entities.Receipt{User: &entities.User{ID: "uid-1", PushToken: &token}},
	}}
	transport := &fakeTransport{}

	report, err := NewNotificationService(markFailRepo{items: items}, transport, 0, zerolog.Nop(), clock).Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)
	assert.Len(t, transport.sent, 1)
}

type cancellingTransport struct {
	fakeTransport
	cancel context.CancelFunc
}

func (c *cancellingTransport) Send(ctx context.Context, token, title, body string) error {
	err := c.fakeTransport.Send(ctx, token, title, body)
	c.cancel()
	return err
}

func TestSweepStopsWhenCancelled(t *testing.T) {
	db := testutil.NewDB(t)
	token := "tok"
	first := seedItem(t, db, "uid-1", &token, "milk", tomorrow, false)
	second := seedItem(t, db, "uid-1", &token, "bread", tomorrow, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	transport := &cancellingTransport{cancel: cancel}
	sweeper := NewNotificationService(NewNotificationRepository(db), transport, time.Second, zerolog.Nop(), clock)

	report, err := sweeper.Sweep(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, domain.SweepReport{Selected: 2, Sent: 1}, report)
	assert.Len(t, transport.sent, 1)

	// the delivered item is committed, the untried one stays eligible
	flags := []bool{notifiedFlag(t, db, first.ID), notifiedFlag(t, db, second.ID)}
	assert.ElementsMatch(t, []bool{true, false}, flags)
}

func TestUnnotifiedItemsGroupedByReceipt(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&entities.User{ID: "uid-1"}).Error)

	var receiptIDs []uuid.UUID
	for r := 0; r < 2; r++ {
		receipt := &entities.Receipt{UserID: "uid-1", UploadTime: now}
		require.NoError(t, db.Omit("User", "Items").Create(receipt).Error)
		receiptIDs = append(receiptIDs, receipt.ID)
		for _, pos := range []int{2, 0, 1} {
			item := &entities.Item{ReceiptID: receipt.ID, Name: "item", ExpiryDate: tomorrow, Position: pos}
			require.NoError(t, db.Omit("Receipt").Create(item).Error)
		}
	}

	items, err := NewNotificationRepository(db).GetUnnotifiedItemsExpiringOn(context.Background(), tomorrow)
	require.NoError(t, err)
	require.Len(t, items, 6)

	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		if prev.ReceiptID == cur.ReceiptID {
			assert.Less(t, prev.Position, cur.Position)
		}
	}
	// each receipt's items are contiguous
	assert.Equal(t, items[0].ReceiptID, items[2].ReceiptID)
	assert.Equal(t, items[3].ReceiptID, items[5].ReceiptID)
	assert.NotEqual(t, items[0].ReceiptID, items[3].ReceiptID)
	assert.ElementsMatch(t, receiptIDs, []uuid.UUID{items[0].ReceiptID, items[3].ReceiptID})
}
