// main.go
package main

import (
	"context"
	"log"
	"time"

	"storefront-api/cmd"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/usecase"
	"storefront-api/internal/wire"
	"storefront-api/pkg/cache"
	"storefront-api/pkg/database"
	"storefront-api/pkg/events"
	"storefront-api/pkg/storage"
	"storefront-api/pkg/token"
	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	repos := openRepository(config, logger)
	defer repos.Close()

	// Collaborators
	tokens, err := token.NewManager(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour)
	if err != nil {
		logger.Fatal("Failed to init token manager", zap.Error(err))
	}

	images, err := storage.NewOsImageStore(config.Upload.Dir, storage.Options{
		BaseURL:    config.App.HostURL,
		PublicPath: config.Upload.PublicPath,
		MaxBytes:   config.Upload.MaxMB << 20,
		MaxFiles:   config.Upload.MaxFiles,
		Timeout:    config.Upload.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to init image store", zap.Error(err))
	}

	deps := usecase.Deps{
		Tokens: tokens,
		Cache:  openCache(config, logger),
		Events: openPublisher(config, logger),
	}
	defer deps.Events.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, deps, images, config, logger)

	if len(config.App.AdminEmails) > 0 {
		if err := app.Service.User.SeedAdmins(context.Background(), config.App.AdminEmails); err != nil {
			logger.Fatal("Failed to seed admins", zap.Error(err))
		}
		logger.Info("Admins seeded", zap.Int("count", len(config.App.AdminEmails)))
	}

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server exited", zap.Error(err))
	}
}

func openRepository(config *utils.Config, logger *zap.Logger) *repository.Repository {
	db, err := database.InitDB(config.Database)
	if err != nil {
		if !config.Database.MemoryFallback {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		logger.Warn("Database unreachable, using in-memory store", zap.Error(err))
		return repository.NewMemoryRepository()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("Failed to prepare schema", zap.Error(err))
	}

	logger.Info("Database connected successfully")
	return repository.NewRepository(db, config.Database.QueryTimeout, logger)
}

func openCache(config *utils.Config, logger *zap.Logger) cache.Cache {
	if config.Redis.Addr == "" {
		return cache.NewMemoryCache()
	}

	rc, err := cache.NewRedisCache(context.Background(), cache.RedisOptions{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	}, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using in-process cache", zap.Error(err))
		return cache.NewMemoryCache()
	}
	return rc
}

func openPublisher(config *utils.Config, logger *zap.Logger) events.Publisher {
	if len(config.Kafka.Brokers) == 0 {
		logger.Info("No Kafka brokers configured, order events are dropped")
		return events.NopPublisher{}
	}
	return events.NewKafkaPublisher(config.Kafka.Brokers, config.Kafka.Topic, config.Kafka.Buffer, logger)
}
