package repository

import (
	"context"

	"social-service/internal/models"

	"gorm.io/gorm"
)

type MarkerRepository interface {
	Create(ctx context.Context, marker *models.Marker) error
	FindByOwner(ctx context.Context, ownerID uint) ([]models.Marker, error)
	Delete(ctx context.Context, id, ownerID uint) error
}

type markerRepository struct {
	db *gorm.DB
}

func NewMarkerRepository(db *gorm.DB) MarkerRepository {
	return &markerRepository{db: db}
}

func (r *markerRepository) Create(ctx context.Context, marker *models.Marker) error {
	return r.db.WithContext(ctx).Create(marker).Error
}

func (r *markerRepository) FindByOwner(ctx context.Context, ownerID uint) ([]models.Marker, error) {
	var markers []models.Marker
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&markers).Error
	return markers, err
}

func (r *markerRepository) Delete(ctx context.Context, id, ownerID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Marker{}).Error
}
