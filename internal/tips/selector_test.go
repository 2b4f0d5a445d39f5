package tips

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/repository"
)

func seedTopic(t *testing.T, repo repository.Repository, name string, tipCount int) *models.TipsTopic {
	t.Helper()
	ctx := context.Background()
	topic := &models.TipsTopic{
		ID:        uuid.New(),
		Name:      models.NewSpokenText(name, ""),
		CreatedAt: time.Now(),
	}
	require.NoError(t, repo.InsertTipsTopic(ctx, topic))
	for i := 0; i < tipCount; i++ {
		require.NoError(t, repo.InsertTip(ctx, &models.Tip{
			ID:        uuid.New(),
			TopicID:   topic.ID,
			Short:     models.NewSpokenText(name, ""),
			CreatedAt: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}
	return topic
}

func newSelector(repo repository.Repository) *Selector {
	return NewSelectorWithRand(repo, rand.New(rand.NewSource(1)))
}

func TestNextTipEmptyTopic(t *testing.T) {
	repo := repository.NewMemory()
	topic := seedTopic(t, repo, "night", 0)
	user := &models.User{ID: "u1", JoinDate: time.Now()}
	require.NoError(t, repo.InsertUser(context.Background(), user))

	_, err := newSelector(repo).NextTip(context.Background(), user, topic)
	assert.ErrorIs(t, err, ErrNoTips)
}

func TestNextTipNoRepeatWithinCycle(t *testing.T) {
	const tipCount = 5
	ctx := context.Background()
	repo := repository.NewMemory()
	topic := seedTopic(t, repo, "night", tipCount)
	user := &models.User{ID: "u1", JoinDate: time.Now()}
	require.NoError(t, repo.InsertUser(ctx, user))
	selector := newSelector(repo)

	seen := map[uuid.UUID]bool{}
	for i := 0; i < tipCount; i++ {
		tip, err := selector.NextTip(ctx, user, topic)
		require.NoError(t, err)
		assert.False(t, seen[tip.ID], "tip repeated before cycle ended")
		seen[tip.ID] = true
	}
	assert.Len(t, seen, tipCount)

	// The next call starts a fresh cycle, so a repeat is allowed.
	tip, err := selector.NextTip(ctx, user, topic)
	require.NoError(t, err)
	assert.True(t, seen[tip.ID])
	assert.Len(t, user.HeardTips, 1)
}

func TestNextTipResetIsScopedToTopic(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	night := seedTopic(t, repo, "night", 1)
	day := seedTopic(t, repo, "day", 3)
	user := &models.User{ID: "u1", JoinDate: time.Now()}
	require.NoError(t, repo.InsertUser(ctx, user))
	selector := newSelector(repo)

	_, err := selector.NextTip(ctx, user, day)
	require.NoError(t, err)

	// Exhaust the single-tip night topic twice; day progress must stay.
	for i := 0; i < 2; i++ {
		_, err = selector.NextTip(ctx, user, night)
		require.NoError(t, err)
	}

	dayHeard := 0
	for _, tip := range user.HeardTips {
		if tip.TopicID == day.ID {
			dayHeard++
		}
	}
	assert.Equal(t, 1, dayHeard)
}

func TestNextTipPersistsHistory(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()
	topic := seedTopic(t, repo, "night", 3)
	user := &models.User{ID: "u1", JoinDate: time.Now()}
	require.NoError(t, repo.InsertUser(ctx, user))

	tip, err := newSelector(repo).NextTip(ctx, user, topic)
	require.NoError(t, err)

	persisted, err := repo.UserByID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, persisted.HasHeard(tip.ID))
}
