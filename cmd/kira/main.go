package main

import (
	"context"

	"go.uber.org/zap"

	"kira/internal/bot"
	"kira/internal/catalog"
	"kira/internal/classifier"
	"kira/internal/dialogue"
	"kira/internal/httpserver"
	"kira/internal/models"
	"kira/internal/storage"
	"kira/pkg/config"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Store
	switch cfg.Database.Backend {
	case "postgres":
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	case "mongo":
		logger.Info("Using MongoDB storage")
		store, err = storage.NewMongoStorage(storage.MongoConfig{
			URI:      cfg.Database.MongoURI,
			Database: cfg.Database.MongoDatabase,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	default:
		logger.Info("Using in-memory storage")
		rooms := make([]models.Room, 0, len(cfg.Database.Rooms))
		for _, r := range cfg.Database.Rooms {
			rooms = append(rooms, models.Room{ID: r.ID, Name: r.Name, Location: r.Location})
		}
		store = storage.NewMemoryStorage(rooms)
	}
	defer store.Close()

	// Load the room catalog once; an unreachable store yields an empty one.
	cat := catalog.Load(context.Background(), store, logger)
	logger.Info("Room catalog loaded", zap.Int("rooms", cat.Len()))

	// Initialize classifier and dialogue engine
	clf := classifier.NewOpenAIClassifier(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)
	engine := dialogue.NewEngine(clf, store, cat, logger)

	// Start the Telegram surface
	if cfg.Telegram.Enabled {
		b, err := bot.New(cfg.Telegram.Token, engine, logger)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}
		if cfg.HTTP.Enabled {
			go func() {
				if err := b.Start(); err != nil {
					logger.Fatal("Bot error", zap.Error(err))
				}
			}()
		} else {
			if err := b.Start(); err != nil {
				logger.Fatal("Bot error", zap.Error(err))
			}
			return
		}
	}

	// Start the HTTP surface
	if cfg.HTTP.Enabled {
		srv := httpserver.New(engine, httpserver.Config{
			Port:           cfg.HTTP.Port,
			RateLimitRPS:   cfg.HTTP.RateLimitRPS,
			RateLimitBurst: cfg.HTTP.RateLimitBurst,
		}, logger)
		if err := srv.Run(); err != nil {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}
}
