package service

import (
	"context"
	"fmt"
	"net/http"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/response"
)

const (
	notificationFeedLimit = 50
	// One past the feed limit so the client can render "50+".
	notificationCountCap = notificationFeedLimit + 1
)

type NotificationService interface {
	GetLastNotifications(ctx context.Context, username string) ([]models.NotificationPayload, error)
	CountUnread(ctx context.Context, username string) (int64, error)
	RemoveNotification(ctx context.Context, id uint) (*response.Payload, error)
}

type notificationService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *notificationService) GetLastNotifications(ctx context.Context, username string) ([]models.NotificationPayload, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, response.NewError(http.StatusNotFound,
			fmt.Sprintf("User with username %s not found", username))
	}

	payloads, err := s.notificationRepo.FindLastByReceiver(ctx, user.ID, notificationFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	if payloads == nil {
		payloads = []models.NotificationPayload{}
	}
	return payloads, nil
}

func (s *notificationService) CountUnread(ctx context.Context, username string) (int64, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return 0, response.NewError(http.StatusNotFound,
			fmt.Sprintf("User with username %s not found", username))
	}

	count, err := s.notificationRepo.CountUnreadCapped(ctx, user.ID, notificationCountCap)
	if err != nil {
		return 0, fmt.Errorf("counting notifications: %w", err)
	}
	return count, nil
}

func (s *notificationService) RemoveNotification(ctx context.Context, id uint) (*response.Payload, error) {
	if err := s.notificationRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("deleting notification: %w", err)
	}
	return response.Ok(fmt.Sprintf("Notification with id %d removed", id)), nil
}
