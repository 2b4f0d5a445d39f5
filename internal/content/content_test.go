package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepwell/sleepwell/internal/repository"
)

const samplePack = `
activities:
  - text: read a chapter
    duration: 30m
  - text: take a walk
    speech: take a short walk
    duration: 45m
topics:
  - name: Night
    description: falling asleep faster
    tips:
      - short: dark room
        content: Keep the bedroom dark.
      - short: no screens
        content: Put screens away an hour before bed.
  - name: Day
    tips:
      - short: daylight
        content: Get daylight in the morning.
`

func TestParseAndApply(t *testing.T) {
	pack, err := Parse([]byte(samplePack))
	require.NoError(t, err)
	assert.Len(t, pack.Activities, 2)
	assert.Len(t, pack.Topics, 2)

	ctx := context.Background()
	repo := repository.NewMemory()
	require.NoError(t, pack.Apply(ctx, repo, time.Now()))

	topic, err := repo.TipsTopicByName(ctx, "night")
	require.NoError(t, err)
	tips, err := repo.TipsByTopic(ctx, topic.ID)
	require.NoError(t, err)
	assert.Len(t, tips, 2)

	activities, err := repo.Activities(ctx, 0)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "take a short walk", activities[1].Description.Speech)
}

func TestParseRejectsMissingTopics(t *testing.T) {
	_, err := Parse([]byte("activities: []\ntopics: []\n"))
	assert.Error(t, err)
}

func TestParseRejectsTopicWithoutTips(t *testing.T) {
	_, err := Parse([]byte("topics:\n  - name: night\n    tips: []\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadDuration(t *testing.T) {
	_, err := Parse([]byte(`
topics:
  - name: night
    tips:
      - short: s
        content: c
activities:
  - text: nap
    duration: soon
`))
	assert.Error(t, err)
}
