package main

import (
	"context"
	"log"
	"log/slog"

	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/internal/repository"
	"social-service/internal/service"
)

// Seeds the countries-and-regions reference data from the configured JSON
// file. Safe to run repeatedly.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	userRepo := repository.NewUserRepository(db)
	geoRepo := repository.NewGeoRepository(db)
	geoService := service.NewGeoService(userRepo, geoRepo)

	payload, err := geoService.SeedFromFile(context.Background(), cfg.Seed.CountriesFile)
	if err != nil {
		log.Fatal("Failed to seed reference data:", err)
	}

	slog.Info("Seed completed", "result", payload.Message)
}
