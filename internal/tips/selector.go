// Package tips rotates advice so a user never hears the same tip twice
// before the topic's pool is exhausted.
package tips

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/repository"
)

// ErrNoTips is returned when the requested topic has no tips at all.
var ErrNoTips = errors.New("topic has no tips")

// Selector picks unheard tips and tracks the user's heard history.
type Selector struct {
	repo repository.Repository
	rng  *rand.Rand
}

// NewSelector returns a Selector with a time-seeded RNG.
func NewSelector(repo repository.Repository) *Selector {
	return NewSelectorWithRand(repo, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSelectorWithRand injects the RNG, mainly for deterministic tests.
func NewSelectorWithRand(repo repository.Repository, rng *rand.Rand) *Selector {
	return &Selector{repo: repo, rng: rng}
}

// NextTip picks a tip from the topic the user has not heard in the
// current cycle, marks it heard and persists the user. When every tip of
// the topic has been heard, the topic's history is cleared and the cycle
// starts over. History is scoped per topic: resetting one topic leaves
// the user's progress in other topics untouched.
func (s *Selector) NextTip(ctx context.Context, user *models.User, topic *models.TipsTopic) (*models.Tip, error) {
	pool, err := s.repo.TipsByTopic(ctx, topic.ID)
	if err != nil {
		return nil, fmt.Errorf("next tip: %w", err)
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("topic %q: %w", topic.Name.Text, ErrNoTips)
	}

	candidates := unheard(pool, user)
	if len(candidates) == 0 {
		// Cycle exhausted: forget this topic's tips and retry once.
		resetTopicHistory(user, topic.ID)
		candidates = unheard(pool, user)
	}

	tip := candidates[s.rng.Intn(len(candidates))]
	user.HeardTips = append(user.HeardTips, tip)
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("next tip: %w", err)
	}
	return &tip, nil
}

func unheard(pool []models.Tip, user *models.User) []models.Tip {
	out := make([]models.Tip, 0, len(pool))
	for _, tip := range pool {
		if !user.HasHeard(tip.ID) {
			out = append(out, tip)
		}
	}
	return out
}

func resetTopicHistory(user *models.User, topicID uuid.UUID) {
	kept := user.HeardTips[:0]
	for _, tip := range user.HeardTips {
		if tip.TopicID != topicID {
			kept = append(kept, tip)
		}
	}
	user.HeardTips = kept
}
