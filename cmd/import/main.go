// Command import loads an advice content pack into the database.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/sleepwell/sleepwell/internal/config"
	"github.com/sleepwell/sleepwell/internal/content"
	"github.com/sleepwell/sleepwell/internal/database"
	"github.com/sleepwell/sleepwell/internal/logging"
	"github.com/sleepwell/sleepwell/internal/repository"
)

func main() {
	path := flag.String("file", "content.yaml", "path to the YAML content pack")
	flag.Parse()

	cfg := config.Load()
	logger := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)

	pack, err := content.Load(*path)
	if err != nil {
		log.Fatalf("failed to load content pack: %v", err)
	}

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

	repo := repository.NewGorm(db)
	if err := pack.Apply(context.Background(), repo, time.Now().UTC()); err != nil {
		log.Fatalf("failed to import content: %v", err)
	}

	logger.Info("content pack imported",
		"file", *path,
		"topics", len(pack.Topics),
		"activities", len(pack.Activities),
	)
}
