package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/pkg/response"

	"gorm.io/gorm"
)

// countryFromJSON mirrors one entry of the seed file.
type countryFromJSON struct {
	Name    string   `json:"name"`
	Regions []string `json:"regions"`
}

type GeoService interface {
	SeedFromFile(ctx context.Context, path string) (*response.Payload, error)
	GetCountryOfUser(ctx context.Context, username string) (*models.CountryOrRegionPayload, error)
	SetCountryForUser(ctx context.Context, username string, countryID uint) (*response.Payload, error)
	GetAvailableRegions(ctx context.Context, username string) ([]models.CountryOrRegionPayload, error)
	GetPrimaryRegionOfUser(ctx context.Context, username string) (*models.CountryOrRegionPayload, error)
	GetSecondaryRegionsOfUser(ctx context.Context, username string) ([]models.CountryOrRegionPayload, error)
	SetRegionForUser(ctx context.Context, username string, regionID uint, primary bool) (*response.Payload, error)
}

type geoService struct {
	userRepo repository.UserRepository
	geoRepo  repository.GeoRepository
}

func NewGeoService(userRepo repository.UserRepository, geoRepo repository.GeoRepository) GeoService {
	return &geoService{userRepo: userRepo, geoRepo: geoRepo}
}

// SeedFromFile loads the countries-and-regions reference data. Countries
// already present are skipped, so seeding is idempotent.
func (s *geoService) SeedFromFile(ctx context.Context, path string) (*response.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var countries []countryFromJSON
	if err := json.Unmarshal(data, &countries); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	inserted := 0
	for _, c := range countries {
		if _, err := s.geoRepo.FindCountryByName(ctx, c.Name); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("checking country %s: %w", c.Name, err)
		}

		regions := make([]models.Region, 0, len(c.Regions))
		for _, name := range c.Regions {
			regions = append(regions, models.Region{Name: name})
		}
		if err := s.geoRepo.CreateCountryWithRegions(ctx, &models.Country{Name: c.Name}, regions); err != nil {
			return nil, fmt.Errorf("inserting country %s: %w", c.Name, err)
		}
		inserted++
	}

	return response.Ok(fmt.Sprintf("Seeded %d countries", inserted)), nil
}

func (s *geoService) resolveUser(ctx context.Context, username string) (*models.User, error) {
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

func (s *geoService) GetCountryOfUser(ctx context.Context, username string) (*models.CountryOrRegionPayload, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.CountryID == nil {
		return nil, response.NewError(http.StatusNotFound,
			fmt.Sprintf("No country set (for %s)", username))
	}

	country, err := s.geoRepo.FindCountryByID(ctx, *user.CountryID)
	if err != nil {
		return nil, fmt.Errorf("loading country: %w", err)
	}
	return &models.CountryOrRegionPayload{ID: country.ID, Name: country.Name}, nil
}

func (s *geoService) SetCountryForUser(ctx context.Context, username string, countryID uint) (*response.Payload, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	country, err := s.geoRepo.FindCountryByID(ctx, countryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewError(http.StatusNotFound, "Country not found")
		}
		return nil, fmt.Errorf("loading country: %w", err)
	}

	user.CountryID = &country.ID
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user country: %w", err)
	}
	return response.Ok(fmt.Sprintf("Country set to %s (for %s)", country.Name, username)), nil
}

// GetAvailableRegions lists the regions of the user's country.
func (s *geoService) GetAvailableRegions(ctx context.Context, username string) ([]models.CountryOrRegionPayload, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.CountryID == nil {
		return []models.CountryOrRegionPayload{}, nil
	}

	regions, err := s.geoRepo.FindRegionsByCountry(ctx, *user.CountryID)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}

	payloads := make([]models.CountryOrRegionPayload, 0, len(regions))
	for _, region := range regions {
		payloads = append(payloads, models.CountryOrRegionPayload{ID: region.ID, Name: region.Name})
	}
	return payloads, nil
}

func (s *geoService) GetPrimaryRegionOfUser(ctx context.Context, username string) (*models.CountryOrRegionPayload, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	userRegions, err := s.geoRepo.FindRegionsOfUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing user regions: %w", err)
	}
	for _, ur := range userRegions {
		if ur.Primary {
			return &models.CountryOrRegionPayload{ID: ur.Region.ID, Name: ur.Region.Name}, nil
		}
	}
	return nil, response.NewError(http.StatusNotFound,
		fmt.Sprintf("No primary region set (for %s)", username))
}

func (s *geoService) GetSecondaryRegionsOfUser(ctx context.Context, username string) ([]models.CountryOrRegionPayload, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	userRegions, err := s.geoRepo.FindRegionsOfUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("listing user regions: %w", err)
	}

	payloads := make([]models.CountryOrRegionPayload, 0)
	for _, ur := range userRegions {
		if !ur.Primary {
			payloads = append(payloads, models.CountryOrRegionPayload{ID: ur.Region.ID, Name: ur.Region.Name})
		}
	}
	return payloads, nil
}

func (s *geoService) SetRegionForUser(ctx context.Context, username string, regionID uint, primary bool) (*response.Payload, error) {
	user, err := s.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.geoRepo.SetUserRegion(ctx, user.ID, regionID, primary); err != nil {
		return nil, fmt.Errorf("setting user region: %w", err)
	}
	return response.Ok(fmt.Sprintf("Region set (for %s)", username)), nil
}
