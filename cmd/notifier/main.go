package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"social-service/internal/config"
	"social-service/internal/database"
	"social-service/internal/models"
	"social-service/internal/repository"

	"github.com/segmentio/kafka-go"
)

// The notifier consumes relationship events and persists them as
// notification rows. Keeping delivery out of the API process means a slow
// or unavailable broker never blocks a relationship operation.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := database.NewPostgresConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	notificationRepo := repository.NewNotificationRepository(db)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		slog.Info("Notifier shutting down...")
		cancel()
	}()

	slog.Info("Notifier started", "topic", cfg.Kafka.Topic, "group", cfg.Kafka.GroupID)

	for {
		message, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				break
			}
			slog.Error("Failed to read message", "error", err)
			continue
		}

		var event models.RelationshipEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			slog.Error("Failed to decode event", "offset", message.Offset, "error", err)
			continue
		}

		notification := &models.Notification{
			ReceiverID:  event.ReceiverID,
			EmitterID:   event.EmitterID,
			Type:        event.Type,
			Description: event.Description,
		}
		if err := notificationRepo.Create(ctx, notification); err != nil {
			slog.Error("Failed to store notification", "type", event.Type, "error", err)
			continue
		}

		slog.Info("Notification stored", "type", event.Type, "receiver", event.Receiver)
	}

	slog.Info("Notifier stopped")
}
