package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/sleepwell/sleepwell/internal/models"
)

// MemoryRepository is a map-backed Repository for tests and development
// mode. Safe for concurrent use.
type MemoryRepository struct {
	mu         sync.RWMutex
	users      map[string]models.User
	activities map[uuid.UUID]models.Activity
	topics     map[uuid.UUID]models.TipsTopic
	tips       map[uuid.UUID]models.Tip
}

// NewMemory returns an empty MemoryRepository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		users:      make(map[string]models.User),
		activities: make(map[uuid.UUID]models.Activity),
		topics:     make(map[uuid.UUID]models.TipsTopic),
		tips:       make(map[uuid.UUID]models.Tip),
	}
}

func cloneUser(u models.User) models.User {
	clone := u
	clone.HeardTips = append([]models.Tip(nil), u.HeardTips...)
	if u.LastCheckIn != nil {
		t := *u.LastCheckIn
		clone.LastCheckIn = &t
	}
	if u.LastWakeUpTime != nil {
		w := *u.LastWakeUpTime
		clone.LastWakeUpTime = &w
	}
	return clone
}

func (r *MemoryRepository) InsertUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *MemoryRepository) InsertUsers(ctx context.Context, users []*models.User) error {
	for _, u := range users {
		if err := r.InsertUser(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) InsertActivity(_ context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[activity.ID] = *activity
	return nil
}

func (r *MemoryRepository) InsertActivities(ctx context.Context, activities []*models.Activity) error {
	for _, a := range activities {
		if err := r.InsertActivity(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) InsertTipsTopic(_ context.Context, topic *models.TipsTopic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.topics[topic.ID] = *topic
	return nil
}

func (r *MemoryRepository) InsertTipsTopics(ctx context.Context, topics []*models.TipsTopic) error {
	for _, t := range topics {
		if err := r.InsertTipsTopic(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) InsertTip(_ context.Context, tip *models.Tip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tips[tip.ID] = *tip
	return nil
}

func (r *MemoryRepository) InsertTips(ctx context.Context, tips []*models.Tip) error {
	for _, t := range tips {
		if err := r.InsertTip(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryRepository) UpdateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	r.users[user.ID] = cloneUser(*user)
	return nil
}

func (r *MemoryRepository) UpdateActivity(_ context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[activity.ID]; !ok {
		return fmt.Errorf("activity %s: %w", activity.ID, ErrNotFound)
	}
	r.activities[activity.ID] = *activity
	return nil
}

func (r *MemoryRepository) UpdateTipsTopic(_ context.Context, topic *models.TipsTopic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.topics[topic.ID]; !ok {
		return fmt.Errorf("tips topic %s: %w", topic.ID, ErrNotFound)
	}
	r.topics[topic.ID] = *topic
	return nil
}

func (r *MemoryRepository) UpdateTip(_ context.Context, tip *models.Tip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tips[tip.ID]; !ok {
		return fmt.Errorf("tip %s: %w", tip.ID, ErrNotFound)
	}
	r.tips[tip.ID] = *tip
	return nil
}

func (r *MemoryRepository) DeleteUser(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) DeleteActivity(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.activities[id]; !ok {
		return fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	delete(r.activities, id)
	return nil
}

func (r *MemoryRepository) DeleteTipsTopic(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.topics[id]; !ok {
		return fmt.Errorf("tips topic %s: %w", id, ErrNotFound)
	}
	delete(r.topics, id)
	for tipID, tip := range r.tips {
		if tip.TopicID == id {
			delete(r.tips, tipID)
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteTip(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tips[id]; !ok {
		return fmt.Errorf("tip %s: %w", id, ErrNotFound)
	}
	delete(r.tips, id)
	return nil
}

func (r *MemoryRepository) UserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	clone := cloneUser(user)
	return &clone, nil
}

func (r *MemoryRepository) ActivityByID(_ context.Context, id uuid.UUID) (*models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	activity, ok := r.activities[id]
	if !ok {
		return nil, fmt.Errorf("activity %s: %w", id, ErrNotFound)
	}
	return &activity, nil
}

func (r *MemoryRepository) TipsTopicByID(_ context.Context, id uuid.UUID) (*models.TipsTopic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topic, ok := r.topics[id]
	if !ok {
		return nil, fmt.Errorf("tips topic %s: %w", id, ErrNotFound)
	}
	return &topic, nil
}

func (r *MemoryRepository) TipsTopicByName(_ context.Context, name string) (*models.TipsTopic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, topic := range r.topics {
		if topic.Name.Text == name {
			t := topic
			return &t, nil
		}
	}
	return nil, fmt.Errorf("tips topic %q: %w", name, ErrNotFound)
}

func (r *MemoryRepository) TipByID(_ context.Context, id uuid.UUID) (*models.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tip, ok := r.tips[id]
	if !ok {
		return nil, fmt.Errorf("tip %s: %w", id, ErrNotFound)
	}
	return &tip, nil
}

func (r *MemoryRepository) Users(_ context.Context, limit int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].JoinDate.Before(users[j].JoinDate) })
	return capped(users, limit), nil
}

func (r *MemoryRepository) Activities(_ context.Context, limit int) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	activities := make([]models.Activity, 0, len(r.activities))
	for _, a := range r.activities {
		activities = append(activities, a)
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].CreatedAt.Before(activities[j].CreatedAt) })
	return capped(activities, limit), nil
}

func (r *MemoryRepository) TipsTopics(_ context.Context, limit int) ([]models.TipsTopic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]models.TipsTopic, 0, len(r.topics))
	for _, t := range r.topics {
		topics = append(topics, t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].CreatedAt.Before(topics[j].CreatedAt) })
	return capped(topics, limit), nil
}

func (r *MemoryRepository) Tips(_ context.Context, limit int) ([]models.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tips := make([]models.Tip, 0, len(r.tips))
	for _, t := range r.tips {
		tips = append(tips, t)
	}
	sort.Slice(tips, func(i, j int) bool { return tips[i].CreatedAt.Before(tips[j].CreatedAt) })
	return capped(tips, limit), nil
}

func (r *MemoryRepository) TipsByTopic(_ context.Context, topicID uuid.UUID) ([]models.Tip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var tips []models.Tip
	for _, t := range r.tips {
		if t.TopicID == topicID {
			tips = append(tips, t)
		}
	}
	sort.Slice(tips, func(i, j int) bool { return tips[i].CreatedAt.Before(tips[j].CreatedAt) })
	return tips, nil
}

func (r *MemoryRepository) CountAllUsers(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MemoryRepository) CountUsersWithStreak(_ context.Context, streak int, condition string) (int64, error) {
	// Validate the comparator even when no users exist.
	if _, err := sqlComparator(condition); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, u := range r.users {
		match, err := matchStreak(u.Streak, streak, condition)
		if err != nil {
			return 0, err
		}
		if match {
			count++
		}
	}
	return count, nil
}

func capped[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
