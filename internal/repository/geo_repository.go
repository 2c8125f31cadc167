package repository

import (
	"context"

	"social-service/internal/models"

	"gorm.io/gorm"
)

type GeoRepository interface {
	FindCountryByName(ctx context.Context, name string) (*models.Country, error)
	FindCountryByID(ctx context.Context, id uint) (*models.Country, error)
	CreateCountryWithRegions(ctx context.Context, country *models.Country, regions []models.Region) error
	FindRegionsByCountry(ctx context.Context, countryID uint) ([]models.Region, error)
	FindRegionsOfUser(ctx context.Context, userID uint) ([]models.UserRegion, error)
	SetUserRegion(ctx context.Context, userID, regionID uint, primary bool) error
}

type geoRepository struct {
	db *gorm.DB
}

func NewGeoRepository(db *gorm.DB) GeoRepository {
	return &geoRepository{db: db}
}

func (r *geoRepository) FindCountryByName(ctx context.Context, name string) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&country).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *geoRepository) FindCountryByID(ctx context.Context, id uint) (*models.Country, error) {
	var country models.Country
	if err := r.db.WithContext(ctx).First(&country, id).Error; err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *geoRepository) CreateCountryWithRegions(ctx context.Context, country *models.Country, regions []models.Region) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(country).Error; err != nil {
			return err
		}
		for i := range regions {
			regions[i].CountryID = country.ID
		}
		if len(regions) == 0 {
			return nil
		}
		return tx.Create(&regions).Error
	})
}

func (r *geoRepository) FindRegionsByCountry(ctx context.Context, countryID uint) ([]models.Region, error) {
	var regions []models.Region
	err := r.db.WithContext(ctx).Where("country_id = ?", countryID).Find(&regions).Error
	return regions, err
}

func (r *geoRepository) FindRegionsOfUser(ctx context.Context, userID uint) ([]models.UserRegion, error) {
	var userRegions []models.UserRegion
	err := r.db.WithContext(ctx).
		Preload("Region").
		Where("user_id = ?", userID).
		Find(&userRegions).Error
	return userRegions, err
}

// SetUserRegion upserts the link; marking a region primary demotes any
// previous primary region in the same transaction.
func (r *geoRepository) SetUserRegion(ctx context.Context, userID, regionID uint, primary bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if primary {
			if err := tx.Model(&models.UserRegion{}).
				Where("user_id = ? AND \"primary\" = ?", userID, true).
				Update("primary", false).Error; err != nil {
				return err
			}
		}
		var existing models.UserRegion
		err := tx.Where("user_id = ? AND region_id = ?", userID, regionID).First(&existing).Error
		if err == nil {
			existing.Primary = primary
			return tx.Save(&existing).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(&models.UserRegion{
			UserID:   userID,
			RegionID: regionID,
			Primary:  primary,
		}).Error
	})
}
