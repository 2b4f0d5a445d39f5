// Package content loads the advice content pack: the activities, tip
// topics and tips the assistant serves. Packs are YAML files validated
// before anything is written.
package content

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/repository"
)

var validate = validator.New()

// Pack is a full advice content pack.
type Pack struct {
	Activities []ActivitySpec `yaml:"activities" validate:"dive"`
	Topics     []TopicSpec    `yaml:"topics" validate:"required,min=1,dive"`
}

// ActivitySpec describes one evening activity.
type ActivitySpec struct {
	Text     string `yaml:"text" validate:"required,max=512"`
	Speech   string `yaml:"speech" validate:"max=512"`
	Duration string `yaml:"duration" validate:"required"`
}

// TopicSpec describes a tip topic with its tips.
type TopicSpec struct {
	Name        string    `yaml:"name" validate:"required,max=256"`
	Speech      string    `yaml:"speech" validate:"max=256"`
	Description string    `yaml:"description" validate:"max=1024"`
	Tips        []TipSpec `yaml:"tips" validate:"required,min=1,dive"`
}

// TipSpec describes a single tip.
type TipSpec struct {
	Short   string `yaml:"short" validate:"required,max=256"`
	Content string `yaml:"content" validate:"required,max=1024"`
	Speech  string `yaml:"speech" validate:"max=1024"`
}

// Parse decodes and validates a YAML content pack.
func Parse(raw []byte) (*Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(raw, &pack); err != nil {
		return nil, fmt.Errorf("parse content pack: %w", err)
	}
	if err := validate.Struct(&pack); err != nil {
		return nil, fmt.Errorf("invalid content pack: %w", err)
	}
	for _, a := range pack.Activities {
		if _, err := time.ParseDuration(a.Duration); err != nil {
			return nil, fmt.Errorf("invalid activity duration %q: %w", a.Duration, err)
		}
	}
	return &pack, nil
}

// Load reads and parses a content pack from disk.
func Load(path string) (*Pack, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	return Parse(raw)
}

// Apply inserts the pack's entities through the repository. Topic names
// are stored lower-case, matching how users say them.
func (p *Pack) Apply(ctx context.Context, repo repository.Repository, now time.Time) error {
	activities := make([]*models.Activity, 0, len(p.Activities))
	for i, a := range p.Activities {
		occupation, err := time.ParseDuration(a.Duration)
		if err != nil {
			return fmt.Errorf("activity %q: %w", a.Text, err)
		}
		activities = append(activities, &models.Activity{
			ID:             uuid.New(),
			Description:    models.NewSpokenText(a.Text, a.Speech),
			OccupationTime: occupation,
			// Staggered so list order follows pack order.
			CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
		})
	}
	if err := repo.InsertActivities(ctx, activities); err != nil {
		return err
	}

	for _, t := range p.Topics {
		topic := &models.TipsTopic{
			ID:          uuid.New(),
			Name:        models.NewSpokenText(strings.ToLower(t.Name), t.Speech),
			Description: models.NewSpokenText(t.Description, ""),
			CreatedAt:   now,
		}
		if err := repo.InsertTipsTopic(ctx, topic); err != nil {
			return err
		}

		tips := make([]*models.Tip, 0, len(t.Tips))
		for i, tip := range t.Tips {
			tips = append(tips, &models.Tip{
				ID:        uuid.New(),
				TopicID:   topic.ID,
				Short:     models.NewSpokenText(tip.Short, ""),
				Content:   models.NewSpokenText(tip.Content, tip.Speech),
				CreatedAt: now.Add(time.Duration(i) * time.Millisecond),
			})
		}
		if err := repo.InsertTips(ctx, tips); err != nil {
			return err
		}
	}
	return nil
}
