// Package engagement maintains the daily check-in streak and ranks users
// on the streak scoreboard.
package engagement

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/repository"
)

// Tracker evaluates check-ins against a user's last one.
type Tracker struct {
	repo repository.Repository
}

// NewTracker returns a Tracker backed by the given repository.
func NewTracker(repo repository.Repository) *Tracker {
	return &Tracker{repo: repo}
}

// Result describes the outcome of a check-in. Percentile is only
// meaningful when FirstEver is false.
type Result struct {
	FirstEver  bool
	Streak     int
	Percentile int
}

// CheckIn updates the user's streak for a session starting at now and
// persists the user. A check-in the day after the previous one extends
// the streak, a same-day one is a no-op, anything older resets it.
func (t *Tracker) CheckIn(ctx context.Context, user *models.User, now time.Time) (Result, error) {
	firstEver := user.LastCheckIn == nil

	if !firstEver {
		last := user.LastCheckIn.In(now.Location())
		yesterday := now.AddDate(0, 0, -1)
		switch {
		case sameDate(last, yesterday):
			user.Streak++
		case sameDate(last, now):
			// Same-day re-entry, idempotent.
		default:
			user.Streak = 0
		}
	}

	checkIn := now
	user.LastCheckIn = &checkIn
	if err := t.repo.UpdateUser(ctx, user); err != nil {
		return Result{}, fmt.Errorf("check in: %w", err)
	}

	result := Result{FirstEver: firstEver, Streak: user.Streak}
	if !firstEver {
		percentile, err := t.Scoreboard(ctx, user)
		if err != nil {
			return Result{}, err
		}
		result.Percentile = percentile
	}
	return result, nil
}

// Scoreboard returns the share of users, in whole percent, whose streak
// the user matches or beats. The user is excluded from their own count.
func (t *Tracker) Scoreboard(ctx context.Context, user *models.User) (int, error) {
	below, err := t.repo.CountUsersWithStreak(ctx, user.Streak, "<=")
	if err != nil {
		return 0, fmt.Errorf("scoreboard: %w", err)
	}
	total, err := t.repo.CountAllUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("scoreboard: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	score := below - 1
	return int(math.Round(float64(score) / float64(total) * 100)), nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
