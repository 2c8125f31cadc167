package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"social-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotificationRepo struct {
	rows      []models.Notification
	usernames map[uint]string
	nextID    uint
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *models.Notification) error {
	r.nextID++
	notification.ID = r.nextID
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	r.rows = append(r.rows, *notification)
	return nil
}

func (r *fakeNotificationRepo) FindLastByReceiver(_ context.Context, receiverID uint, limit int) ([]models.NotificationPayload, error) {
	var payloads []models.NotificationPayload
	// Newest first, like the SQL ORDER BY created_at DESC.
	for i := len(r.rows) - 1; i >= 0 && len(payloads) < limit; i-- {
		row := r.rows[i]
		if row.ReceiverID != receiverID {
			continue
		}
		payloads = append(payloads, models.NotificationPayload{
			ID:              row.ID,
			EmitterUsername: r.usernames[row.EmitterID],
			Type:            row.Type,
			Description:     row.Description,
			Read:            row.Read,
			CreatedAt:       row.CreatedAt,
		})
	}
	return payloads, nil
}

// Mirrors the real repository's contract: the count stops at cap. The SQL
// implementation is covered by its own repository test.
func (r *fakeNotificationRepo) CountUnreadCapped(_ context.Context, receiverID uint, cap int) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.ReceiverID == receiverID && !row.Read {
			count++
			if count == int64(cap) {
				break
			}
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id uint) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func newTestNotificationService(usernames ...string) (NotificationService, *fakeUserRepo, *fakeNotificationRepo) {
	users := newFakeUserRepo(usernames...)
	ids := make(map[uint]string)
	for username, user := range users.byUsername {
		ids[user.ID] = username
	}
	notifications := &fakeNotificationRepo{usernames: ids}
	return NewNotificationService(users, notifications), users, notifications
}

func TestGetLastNotifications(t *testing.T) {
	svc, users, notifications := newTestNotificationService("andrew", "bobby")
	ctx := context.Background()

	andrew := users.byUsername["andrew"]
	bobby := users.byUsername["bobby"]
	require.NoError(t, notifications.Create(ctx, &models.Notification{
		ReceiverID:  bobby.ID,
		EmitterID:   andrew.ID,
		Type:        models.EventRequestSent,
		Description: "andrew sent you a friend request",
	}))
	require.NoError(t, notifications.Create(ctx, &models.Notification{
		ReceiverID:  bobby.ID,
		EmitterID:   andrew.ID,
		Type:        models.EventRequestCanceled,
		Description: "andrew canceled their friend request",
	}))

	feed, err := svc.GetLastNotifications(ctx, "bobby")
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, models.EventRequestCanceled, feed[0].Type)
	assert.Equal(t, "andrew", feed[0].EmitterUsername)
	assert.Equal(t, models.EventRequestSent, feed[1].Type)

	// andrew received nothing; the feed is empty but never nil.
	feed, err = svc.GetLastNotifications(ctx, "andrew")
	require.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Empty(t, feed)
}

func TestGetLastNotificationsLimit(t *testing.T) {
	svc, users, notifications := newTestNotificationService("andrew", "bobby")
	ctx := context.Background()

	bobby := users.byUsername["bobby"]
	andrew := users.byUsername["andrew"]
	for i := 0; i < notificationFeedLimit+10; i++ {
		require.NoError(t, notifications.Create(ctx, &models.Notification{
			ReceiverID:  bobby.ID,
			EmitterID:   andrew.ID,
			Type:        models.EventRequestSent,
			Description: fmt.Sprintf("event %d", i),
		}))
	}

	feed, err := svc.GetLastNotifications(ctx, "bobby")
	require.NoError(t, err)
	assert.Len(t, feed, notificationFeedLimit)
}

func TestCountUnreadIsCapped(t *testing.T) {
	svc, users, notifications := newTestNotificationService("andrew", "bobby")
	ctx := context.Background()

	bobby := users.byUsername["bobby"]
	andrew := users.byUsername["andrew"]
	for i := 0; i < notificationCountCap+25; i++ {
		require.NoError(t, notifications.Create(ctx, &models.Notification{
			ReceiverID: bobby.ID,
			EmitterID:  andrew.ID,
			Type:       models.EventRequestSent,
		}))
	}

	count, err := svc.CountUnread(ctx, "bobby")
	require.NoError(t, err)
	assert.Equal(t, int64(notificationCountCap), count)
}

func TestRemoveNotification(t *testing.T) {
	svc, users, notifications := newTestNotificationService("andrew", "bobby")
	ctx := context.Background()

	bobby := users.byUsername["bobby"]
	andrew := users.byUsername["andrew"]
	notification := &models.Notification{
		ReceiverID: bobby.ID,
		EmitterID:  andrew.ID,
		Type:       models.EventUnfriended,
	}
	require.NoError(t, notifications.Create(ctx, notification))

	payload, err := svc.RemoveNotification(ctx, notification.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("Notification with id %d removed", notification.ID), payload.Message)
	assert.Empty(t, notifications.rows)
}

func TestNotificationsUnknownUser(t *testing.T) {
	svc, _, _ := newTestNotificationService("andrew")

	_, err := svc.GetLastNotifications(context.Background(), "ghost")
	requireAPIError(t, err, http.StatusNotFound, "User with username ghost not found")

	_, err = svc.CountUnread(context.Background(), "ghost")
	requireAPIError(t, err, http.StatusNotFound, "User with username ghost not found")
}
