package database

import (
	"context"
	_ "embed"
	"log/slog"
	"time"

	"github.com/sleepwell/sleepwell/internal/content"
	"github.com/sleepwell/sleepwell/internal/repository"
)

//go:embed seed.yaml
var seedPack []byte

// SeedDevData loads the built-in content pack so a fresh instance has
// topics, tips and activities to serve. Idempotent: skips if content
// already exists.
func SeedDevData(ctx context.Context, repo repository.Repository, logger *slog.Logger) error {
	topics, err := repo.TipsTopics(ctx, 1)
	if err != nil {
		return err
	}
	if len(topics) > 0 {
		logger.Info("seed content already present, skipping")
		return nil
	}

	pack, err := content.Parse(seedPack)
	if err != nil {
		return err
	}
	if err := pack.Apply(ctx, repo, time.Now().UTC()); err != nil {
		return err
	}

	logger.Info("seeded content pack",
		"topics", len(pack.Topics),
		"activities", len(pack.Activities),
	)
	return nil
}
