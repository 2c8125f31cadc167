package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"social-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newNotificationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Notification{}))
	return db
}

func createNotificationUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "irrelevant",
		Role:     "USER",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCountUnreadCappedStopsAtCap(t *testing.T) {
	db := newNotificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	andrew := createNotificationUser(t, db, "andrew")
	bobby := createNotificationUser(t, db, "bobby")

	for i := 0; i < 80; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			ReceiverID: bobby.ID,
			EmitterID:  andrew.ID,
			Type:       models.EventRequestSent,
		}))
	}

	count, err := repo.CountUnreadCapped(ctx, bobby.ID, 51)
	require.NoError(t, err)
	assert.Equal(t, int64(51), count)
}

func TestCountUnreadCappedExactBelowCap(t *testing.T) {
	db := newNotificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	andrew := createNotificationUser(t, db, "andrew")
	bobby := createNotificationUser(t, db, "bobby")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &models.Notification{
			ReceiverID: bobby.ID,
			EmitterID:  andrew.ID,
			Type:       models.EventRequestSent,
		}))
	}
	// Read rows and other receivers' rows never count.
	require.NoError(t, db.Create(&models.Notification{
		ReceiverID: bobby.ID,
		EmitterID:  andrew.ID,
		Type:       models.EventRequestAccepted,
		Read:       true,
	}).Error)
	require.NoError(t, repo.Create(ctx, &models.Notification{
		ReceiverID: andrew.ID,
		EmitterID:  bobby.ID,
		Type:       models.EventRequestSent,
	}))

	count, err := repo.CountUnreadCapped(ctx, bobby.ID, 51)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = repo.CountUnreadCapped(ctx, andrew.ID, 51)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFindLastByReceiverOrderAndLimit(t *testing.T) {
	db := newNotificationTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	andrew := createNotificationUser(t, db, "andrew")
	bobby := createNotificationUser(t, db, "bobby")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.Notification{
			ReceiverID:  bobby.ID,
			EmitterID:   andrew.ID,
			Type:        models.EventRequestSent,
			Description: fmt.Sprintf("event %d", i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	feed, err := repo.FindLastByReceiver(ctx, bobby.ID, 3)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "event 4", feed[0].Description)
	assert.Equal(t, "event 3", feed[1].Description)
	assert.Equal(t, "event 2", feed[2].Description)
	assert.Equal(t, "andrew", feed[0].EmitterUsername)
}
