// Package repository defines the persistence contract the engine works
// against and its GORM and in-memory implementations.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sleepwell/sleepwell/internal/models"
)

var (
	// ErrNotFound is returned when the target of a get, update or delete
	// no longer exists.
	ErrNotFound = errors.New("entity not found")
	// ErrInvalidCondition is returned for an unrecognized streak comparator.
	ErrInvalidCondition = errors.New("invalid condition")
)

// Repository is the persistence surface the engine consumes. List methods
// return entities ordered by creation time; a limit <= 0 means no limit.
type Repository interface {
	InsertUser(ctx context.Context, user *models.User) error
	InsertUsers(ctx context.Context, users []*models.User) error
	InsertActivity(ctx context.Context, activity *models.Activity) error
	InsertActivities(ctx context.Context, activities []*models.Activity) error
	InsertTipsTopic(ctx context.Context, topic *models.TipsTopic) error
	InsertTipsTopics(ctx context.Context, topics []*models.TipsTopic) error
	InsertTip(ctx context.Context, tip *models.Tip) error
	InsertTips(ctx context.Context, tips []*models.Tip) error

	UpdateUser(ctx context.Context, user *models.User) error
	UpdateActivity(ctx context.Context, activity *models.Activity) error
	UpdateTipsTopic(ctx context.Context, topic *models.TipsTopic) error
	UpdateTip(ctx context.Context, tip *models.Tip) error

	DeleteUser(ctx context.Context, id string) error
	DeleteActivity(ctx context.Context, id uuid.UUID) error
	DeleteTipsTopic(ctx context.Context, id uuid.UUID) error
	DeleteTip(ctx context.Context, id uuid.UUID) error

	UserByID(ctx context.Context, id string) (*models.User, error)
	ActivityByID(ctx context.Context, id uuid.UUID) (*models.Activity, error)
	TipsTopicByID(ctx context.Context, id uuid.UUID) (*models.TipsTopic, error)
	TipsTopicByName(ctx context.Context, name string) (*models.TipsTopic, error)
	TipByID(ctx context.Context, id uuid.UUID) (*models.Tip, error)

	Users(ctx context.Context, limit int) ([]models.User, error)
	Activities(ctx context.Context, limit int) ([]models.Activity, error)
	TipsTopics(ctx context.Context, limit int) ([]models.TipsTopic, error)
	Tips(ctx context.Context, limit int) ([]models.Tip, error)
	TipsByTopic(ctx context.Context, topicID uuid.UUID) ([]models.Tip, error)

	CountAllUsers(ctx context.Context) (int64, error)
	CountUsersWithStreak(ctx context.Context, streak int, condition string) (int64, error)
}

// matchStreak evaluates a streak against a threshold under one of the
// supported comparators.
func matchStreak(streak, threshold int, condition string) (bool, error) {
	switch condition {
	case "<":
		return streak < threshold, nil
	case ">":
		return streak > threshold, nil
	case "<=":
		return streak <= threshold, nil
	case ">=":
		return streak >= threshold, nil
	case "==":
		return streak == threshold, nil
	default:
		return false, fmt.Errorf("streak comparator %q: %w", condition, ErrInvalidCondition)
	}
}

// sqlComparator maps a contract comparator to its SQL operator.
func sqlComparator(condition string) (string, error) {
	switch condition {
	case "<", ">", "<=", ">=":
		return condition, nil
	case "==":
		return "=", nil
	default:
		return "", fmt.Errorf("streak comparator %q: %w", condition, ErrInvalidCondition)
	}
}
