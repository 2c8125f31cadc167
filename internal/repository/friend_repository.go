package repository

import (
	"context"
	"fmt"
	"time"

	"social-service/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// FriendRepository is the relationship store: an ordered-pair relation of
// pending requests and an unordered-pair relation of friendships.
// AcceptRequest is the one combined primitive; it deletes the request and
// inserts the friendship in a single transaction.
type FriendRepository interface {
	RequestExists(ctx context.Context, senderID, receiverID uint) (bool, error)
	CreateRequest(ctx context.Context, senderID, receiverID uint) error
	DeleteRequest(ctx context.Context, senderID, receiverID uint) error
	FriendshipExists(ctx context.Context, userID, otherID uint) (bool, error)
	AcceptRequest(ctx context.Context, senderID, receiverID uint) error
	DeleteFriendship(ctx context.Context, userID, otherID uint) error
	FriendUsernamesOf(ctx context.Context, userID uint) ([]string, error)
}

const friendCacheTTL = 5 * time.Minute

type friendRepository struct {
	db          *gorm.DB
	redisClient *redis.Client
}

func NewFriendRepository(db *gorm.DB, redisClient *redis.Client) FriendRepository {
	return &friendRepository{db: db, redisClient: redisClient}
}

func (r *friendRepository) RequestExists(ctx context.Context, senderID, receiverID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) CreateRequest(ctx context.Context, senderID, receiverID uint) error {
	return r.db.WithContext(ctx).Create(&models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
	}).Error
}

func (r *friendRepository) DeleteRequest(ctx context.Context, senderID, receiverID uint) error {
	return r.db.WithContext(ctx).
		Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
		Delete(&models.FriendRequest{}).Error
}

func (r *friendRepository) FriendshipExists(ctx context.Context, userID, otherID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userID, otherID, otherID, userID).
		Count(&count).Error
	return count > 0, err
}

// AcceptRequest removes the pending request and creates the friendship
// all-or-nothing. The friendship row keeps the request's orientation
// (sender as user1), which is irrelevant for unordered-pair queries.
func (r *friendRepository) AcceptRequest(ctx context.Context, senderID, receiverID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
			Delete(&models.FriendRequest{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Friendship{
			User1ID: senderID,
			User2ID: receiverID,
		}).Error
	})
	if err != nil {
		return err
	}
	r.invalidateFriendCache(ctx, senderID, receiverID)
	return nil
}

func (r *friendRepository) DeleteFriendship(ctx context.Context, userID, otherID uint) error {
	err := r.db.WithContext(ctx).
		Where("(user1_id = ? AND user2_id = ?) OR (user1_id = ? AND user2_id = ?)",
			userID, otherID, otherID, userID).
		Delete(&models.Friendship{}).Error
	if err != nil {
		return err
	}
	r.invalidateFriendCache(ctx, userID, otherID)
	return nil
}

// FriendUsernamesOf returns the usernames friended with the user, serving
// from the redis cache when possible. A stale read here is acceptable; every
// mutation invalidates the keys of both users involved.
func (r *friendRepository) FriendUsernamesOf(ctx context.Context, userID uint) ([]string, error) {
	key := friendCacheKey(userID)
	if r.redisClient != nil {
		if cached, err := r.redisClient.SMembers(ctx, key).Result(); err == nil && len(cached) > 0 {
			return cached, nil
		}
	}

	var usernames []string
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Joins("JOIN users ON users.id = CASE WHEN friendships.user1_id = ? THEN friendships.user2_id ELSE friendships.user1_id END", userID).
		Where("friendships.user1_id = ? OR friendships.user2_id = ?", userID, userID).
		Pluck("users.username", &usernames).Error
	if err != nil {
		return nil, err
	}

	if r.redisClient != nil && len(usernames) > 0 {
		members := make([]interface{}, len(usernames))
		for i, u := range usernames {
			members[i] = u
		}
		pipe := r.redisClient.Pipeline()
		pipe.SAdd(ctx, key, members...)
		pipe.Expire(ctx, key, friendCacheTTL)
		pipe.Exec(ctx)
	}

	return usernames, nil
}

func (r *friendRepository) invalidateFriendCache(ctx context.Context, ids ...uint) {
	if r.redisClient == nil {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = friendCacheKey(id)
	}
	r.redisClient.Del(ctx, keys...)
}

func friendCacheKey(userID uint) string {
	return fmt.Sprintf("friends:%d", userID)
}
