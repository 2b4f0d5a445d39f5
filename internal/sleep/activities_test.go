package sleep

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepwell/sleepwell/internal/models"
)

func activity(name string, occupation time.Duration) models.Activity {
	return models.Activity{
		ID:             uuid.New(),
		Description:    models.NewSpokenText(name, ""),
		OccupationTime: occupation,
	}
}

func TestActivitiesLongestFittingFirst(t *testing.T) {
	pool := []models.Activity{
		activity("read a chapter", 30*time.Minute),
		activity("take a walk", 45*time.Minute),
		activity("stretch", 10*time.Minute),
	}

	got, err := Activities(at(21, 0), at(22, 0), pool, DefaultActivityLimit)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "take a walk", got[0].Description.Text)
	assert.Equal(t, "read a chapter", got[1].Description.Text)
}

func TestActivitiesExcludesExactWindowLength(t *testing.T) {
	pool := []models.Activity{activity("movie", time.Hour)}

	got, err := Activities(at(21, 0), at(22, 0), pool, DefaultActivityLimit)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestActivitiesStableOnTies(t *testing.T) {
	pool := []models.Activity{
		activity("first", 20*time.Minute),
		activity("second", 20*time.Minute),
	}

	got, err := Activities(at(21, 0), at(22, 0), pool, DefaultActivityLimit)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Description.Text)
	assert.Equal(t, "second", got[1].Description.Text)
}

func TestActivitiesInvertedWindow(t *testing.T) {
	_, err := Activities(at(22, 0), at(21, 0), nil, DefaultActivityLimit)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestActivitiesEmptyWindowIsValid(t *testing.T) {
	got, err := Activities(at(21, 0), at(21, 0), []models.Activity{activity("stretch", time.Minute)}, DefaultActivityLimit)
	require.NoError(t, err)
	assert.Empty(t, got)
}
