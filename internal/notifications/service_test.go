package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/campusworks/hosteldesk-backend/pkg/db/models"
	"github.com/campusworks/hosteldesk-backend/pkg/enums"
	pkgerrors "github.com/campusworks/hosteldesk-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS notifications (
  id TEXT PRIMARY KEY,
  sender_id TEXT,
  audience TEXT NOT NULL,
  receiver_id TEXT,
  receiver_role TEXT,
  title TEXT NOT NULL,
  message TEXT NOT NULL,
  read_at DATETIME,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestNotificationService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	db := setupNotificationsTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func TestNotificationSendValidation(t *testing.T) {
	svc, _ := newTestNotificationService(t)
	ctx := context.Background()

	_, err := svc.Send(ctx, SendInput{Audience: enums.NotificationAudienceUser, Title: "t", Message: "m"})
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	receiverID := uuid.New()
	sent, err := svc.Send(ctx, SendInput{
		Audience:   enums.NotificationAudienceUser,
		ReceiverID: &receiverID,
		Title:      "Room inspection",
		Message:    "Block A inspection on Friday",
	})
	require.NoError(t, err)
	assert.Equal(t, receiverID, *sent.ReceiverID)
	assert.Nil(t, sent.ReceiverRole)
}

func TestNotificationListVisibility(t *testing.T) {
	svc, db := newTestNotificationService(t)
	ctx := context.Background()

	userID := uuid.New()
	senderID := uuid.New()
	wardenRole := enums.UserRoleWarden

	direct, err := svc.Send(ctx, SendInput{
		SenderID:   &senderID,
		Audience:   enums.NotificationAudienceUser,
		ReceiverID: &userID,
		Title:      "Direct",
		Message:    "for you",
	})
	require.NoError(t, err)

	_, err = svc.Send(ctx, SendInput{
		SenderID:     &senderID,
		Audience:     enums.NotificationAudienceRole,
		ReceiverRole: &wardenRole,
		Title:        "Wardens only",
		Message:      "staff meeting",
	})
	require.NoError(t, err)

	broadcast, err := svc.Send(ctx, SendInput{
		SenderID: &senderID,
		Audience: enums.NotificationAudienceAll,
		Title:    "Everyone",
		Message:  "water outage",
	})
	require.NoError(t, err)

	// Unrelated direct message must stay invisible.
	otherID := uuid.New()
	_, err = svc.Send(ctx, SendInput{
		Audience:   enums.NotificationAudienceUser,
		ReceiverID: &otherID,
		Title:      "Not yours",
		Message:    "private",
	})
	require.NoError(t, err)

	// Stagger created_at so ordering is deterministic.
	require.NoError(t, db.Model(&models.Notification{}).
		Where("id = ?", direct.ID).
		UpdateColumn("created_at", time.Now().UTC().Add(-time.Hour)).Error)

	result, err := svc.List(ctx, ListInput{UserID: userID, Role: enums.UserRoleStudent, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Notifications, 2)
	ids := []uuid.UUID{result.Notifications[0].ID, result.Notifications[1].ID}
	assert.Contains(t, ids, direct.ID)
	assert.Contains(t, ids, broadcast.ID)

	// A warden additionally sees the role broadcast.
	wardenResult, err := svc.List(ctx, ListInput{UserID: uuid.New(), Role: enums.UserRoleWarden, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, wardenResult.Notifications, 2)
}

func TestNotificationListPagination(t *testing.T) {
	svc, db := newTestNotificationService(t)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		sent, err := svc.Send(ctx, SendInput{
			Audience:   enums.NotificationAudienceUser,
			ReceiverID: &userID,
			Title:      "Page test",
			Message:    "entry",
		})
		require.NoError(t, err)
		require.NoError(t, db.Model(&models.Notification{}).
			Where("id = ?", sent.ID).
			UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	first, err := svc.List(ctx, ListInput{UserID: userID, Role: enums.UserRoleStudent, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Notifications, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := svc.List(ctx, ListInput{UserID: userID, Role: enums.UserRoleStudent, Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Notifications, 1)
	assert.Empty(t, second.NextCursor)
}

func TestNotificationMarkRead(t *testing.T) {
	svc, _ := newTestNotificationService(t)
	ctx := context.Background()

	userID := uuid.New()
	sent, err := svc.Send(ctx, SendInput{
		Audience:   enums.NotificationAudienceUser,
		ReceiverID: &userID,
		Title:      "Read me",
		Message:    "please",
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkRead(ctx, userID, sent.ID))

	// Marking again is a no-op, not an error.
	require.NoError(t, svc.MarkRead(ctx, userID, sent.ID))

	// Another user cannot mark it.
	err = svc.MarkRead(ctx, uuid.New(), sent.ID)
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	unread, err := svc.List(ctx, ListInput{UserID: userID, Role: enums.UserRoleStudent, Limit: 10, UnreadOnly: true})
	require.NoError(t, err)
	assert.Empty(t, unread.Notifications)
}

func TestNotificationPurgeOld(t *testing.T) {
	svc, db := newTestNotificationService(t)
	ctx := context.Background()

	userID := uuid.New()
	stale, err := svc.Send(ctx, SendInput{
		Audience:   enums.NotificationAudienceUser,
		ReceiverID: &userID,
		Title:      "Stale",
		Message:    "old entry",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Notification{}).
		Where("id = ?", stale.ID).
		UpdateColumn("created_at", time.Now().UTC().AddDate(0, 0, -45)).Error)

	fresh, err := svc.Send(ctx, SendInput{
		Audience:   enums.NotificationAudienceUser,
		ReceiverID: &userID,
		Title:      "Fresh",
		Message:    "recent entry",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Notification{}).
		Where("id = ?", fresh.ID).
		UpdateColumn("created_at", time.Now().UTC()).Error)

	// Zero falls back to the thirty day default.
	deleted, err := svc.PurgeOld(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	result, err := svc.List(ctx, ListInput{UserID: userID, Role: enums.UserRoleStudent, Limit: 10})
	require.NoError(t, err)
	require.Len(t, result.Notifications, 1)
	assert.Equal(t, fresh.ID, result.Notifications[0].ID)

	_, err = svc.PurgeOld(ctx, -1)
	var typed *pkgerrors.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestNotificationMarkAllRead(t *testing.T) {
	svc, _ := newTestNotificationService(t)
	ctx := context.Background()

	userID := uuid.New()
	for i := 0; i < 2; i++ {
		_, err := svc.Send(ctx, SendInput{
			Audience:   enums.NotificationAudienceUser,
			ReceiverID: &userID,
			Title:      "Bulk",
			Message:    "entry",
		})
		require.NoError(t, err)
	}

	updated, err := svc.MarkAllRead(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
}
