package main

import (
	"context"
	"log"

	"github.com/sleepwell/sleepwell/internal/api"
	"github.com/sleepwell/sleepwell/internal/config"
	"github.com/sleepwell/sleepwell/internal/database"
	"github.com/sleepwell/sleepwell/internal/dialog"
	"github.com/sleepwell/sleepwell/internal/engagement"
	"github.com/sleepwell/sleepwell/internal/logging"
	"github.com/sleepwell/sleepwell/internal/messages"
	"github.com/sleepwell/sleepwell/internal/repository"
	"github.com/sleepwell/sleepwell/internal/session"
	"github.com/sleepwell/sleepwell/internal/tips"
)

func main() {
	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	var (
		repo     repository.Repository
		sessions dialog.SessionStore
	)

	if cfg.IsDevelopment() {
		// Development mode runs self-contained: in-memory storage with
		// the built-in content pack.
		logger.Info("development mode: using in-memory storage")
		memRepo := repository.NewMemory()
		if err := database.SeedDevData(ctx, memRepo, logger); err != nil {
			log.Fatalf("failed to seed dev data: %v", err)
		}
		repo = memRepo
		sessions = session.NewMemory()
	} else {
		db, err := database.Init(cfg.DatabaseURL, database.Pool{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		})
		if err != nil {
			log.Fatalf("failed to init database: %v", err)
		}
		defer database.Close(db)

		if err := database.RunMigrations(db, logger); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		repo = repository.NewGorm(db)

		redisStore, err := session.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect session store: %v", err)
		}
		defer redisStore.Close()
		sessions = redisStore
	}

	engine := dialog.NewEngine(
		repo,
		sessions,
		messages.NewEnglish(),
		engagement.NewTracker(repo),
		tips.NewSelector(repo),
		logger,
	)

	router := api.NewRouter(engine, logger)
	logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
