package engagement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/repository"
)

var now = time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)

func newUser(t *testing.T, repo repository.Repository, id string, streak int, lastCheckIn *time.Time) *models.User {
	t.Helper()
	user := &models.User{ID: id, Streak: streak, LastCheckIn: lastCheckIn, JoinDate: now.AddDate(0, -1, 0)}
	require.NoError(t, repo.InsertUser(context.Background(), user))
	return user
}

func ptr(t time.Time) *time.Time { return &t }

func TestCheckInFirstEver(t *testing.T) {
	repo := repository.NewMemory()
	user := newUser(t, repo, "u1", 0, nil)

	res, err := NewTracker(repo).CheckIn(context.Background(), user, now)
	require.NoError(t, err)

	assert.True(t, res.FirstEver)
	assert.Equal(t, 0, res.Streak)
	require.NotNil(t, user.LastCheckIn)
	assert.True(t, user.LastCheckIn.Equal(now))
}

func TestCheckInKeepsStreak(t *testing.T) {
	repo := repository.NewMemory()
	user := newUser(t, repo, "u1", 4, ptr(now.AddDate(0, 0, -1)))

	res, err := NewTracker(repo).CheckIn(context.Background(), user, now)
	require.NoError(t, err)

	assert.False(t, res.FirstEver)
	assert.Equal(t, 5, res.Streak)

	persisted, err := repo.UserByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, persisted.Streak)
}

func TestCheckInSameDayIdempotent(t *testing.T) {
	repo := repository.NewMemory()
	user := newUser(t, repo, "u1", 4, ptr(now.Add(-2*time.Hour)))

	res, err := NewTracker(repo).CheckIn(context.Background(), user, now)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Streak)
}

func TestCheckInDropsStreakAfterGap(t *testing.T) {
	repo := repository.NewMemory()
	user := newUser(t, repo, "u1", 9, ptr(now.AddDate(0, 0, -2)))

	res, err := NewTracker(repo).CheckIn(context.Background(), user, now)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Streak)
}

func TestCheckInExactly24HoursCountsAsYesterday(t *testing.T) {
	repo := repository.NewMemory()
	user := newUser(t, repo, "u1", 1, ptr(now.Add(-24*time.Hour)))

	res, err := NewTracker(repo).CheckIn(context.Background(), user, now)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Streak)
}

func TestScoreboardPercentile(t *testing.T) {
	repo := repository.NewMemory()
	// Four users: streaks 0, 2, 2, 5. For the streak-2 user, two others
	// have an equal-or-lower streak (excluding self): 2/4 -> 50%.
	newUser(t, repo, "a", 0, ptr(now))
	subject := newUser(t, repo, "b", 2, ptr(now))
	newUser(t, repo, "c", 2, ptr(now))
	newUser(t, repo, "d", 5, ptr(now))

	got, err := NewTracker(repo).Scoreboard(context.Background(), subject)
	require.NoError(t, err)
	assert.Equal(t, 50, got)
}

func TestCheckInReportsPercentileForReturningUser(t *testing.T) {
	repo := repository.NewMemory()
	newUser(t, repo, "low", 0, ptr(now))
	user := newUser(t, repo, "u1", 3, ptr(now.AddDate(0, 0, -1)))

	res, err := NewTracker(repo).CheckIn(context.Background(), user, now)
	require.NoError(t, err)
	assert.False(t, res.FirstEver)
	// Both users fall at or below streak 4; excluding self leaves 1 of 2.
	assert.Equal(t, 50, res.Percentile)
}
