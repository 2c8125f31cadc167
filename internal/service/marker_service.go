package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/response"

	"gorm.io/gorm"
)

type MarkerService interface {
	AddMarker(ctx context.Context, username string, req *models.MarkerRequest) (*models.Marker, error)
	GetMarkersOf(ctx context.Context, username string) ([]models.Marker, error)
	RemoveMarker(ctx context.Context, username string, id uint) (*response.Payload, error)
}

type markerService struct {
	userRepo   repository.UserRepository
	markerRepo repository.MarkerRepository
}

func NewMarkerService(userRepo repository.UserRepository, markerRepo repository.MarkerRepository) MarkerService {
	return &markerService{userRepo: userRepo, markerRepo: markerRepo}
}

func (s *markerService) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewError(http.StatusNotFound,
				fmt.Sprintf("User with username %s not found", username))
		}
		return nil, fmt.Errorf("looking up user %s: %w", username, err)
	}
	return user, nil
}

func (s *markerService) AddMarker(ctx context.Context, username string, req *models.MarkerRequest) (*models.Marker, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	marker := &models.Marker{
		OwnerID:   user.ID,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := s.markerRepo.Create(ctx, marker); err != nil {
		return nil, fmt.Errorf("creating marker: %w", err)
	}
	return marker, nil
}

func (s *markerService) GetMarkersOf(ctx context.Context, username string) ([]models.Marker, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	markers, err := s.markerRepo.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing markers: %w", err)
	}
	if markers == nil {
		markers = []models.Marker{}
	}
	return markers, nil
}

func (s *markerService) RemoveMarker(ctx context.Context, username string, id uint) (*response.Payload, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.markerRepo.Delete(ctx, id, user.ID); err != nil {
		return nil, fmt.Errorf("deleting marker: %w", err)
	}
	return response.Ok(fmt.Sprintf("Marker with id %d removed", id)), nil
}
