package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sleepwell/sleepwell/internal/models"
)

// GormRepository persists entities through a GORM connection.
type GormRepository struct {
	db *gorm.DB
}

// NewGorm wraps an open GORM connection.
func NewGorm(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) InsertUser(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *GormRepository) InsertUsers(ctx context.Context, users []*models.User) error {
	if len(users) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(users).Error; err != nil {
		return fmt.Errorf("insert users: %w", err)
	}
	return nil
}

func (r *GormRepository) InsertActivity(ctx context.Context, activity *models.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

func (r *GormRepository) InsertActivities(ctx context.Context, activities []*models.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(activities).Error; err != nil {
		return fmt.Errorf("insert activities: %w", err)
	}
	return nil
}

func (r *GormRepository) InsertTipsTopic(ctx context.Context, topic *models.TipsTopic) error {
	if err := r.db.WithContext(ctx).Create(topic).Error; err != nil {
		return fmt.Errorf("insert tips topic: %w", err)
	}
	return nil
}

func (r *GormRepository) InsertTipsTopics(ctx context.Context, topics []*models.TipsTopic) error {
	if len(topics) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(topics).Error; err != nil {
		return fmt.Errorf("insert tips topics: %w", err)
	}
	return nil
}

func (r *GormRepository) InsertTip(ctx context.Context, tip *models.Tip) error {
	if err := r.db.WithContext(ctx).Create(tip).Error; err != nil {
		return fmt.Errorf("insert tip: %w", err)
	}
	return nil
}

func (r *GormRepository) InsertTips(ctx context.Context, tips []*models.Tip) error {
	if len(tips) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(tips).Error; err != nil {
		return fmt.Errorf("insert tips: %w", err)
	}
	return nil
}

// UpdateUser saves the user's own columns and replaces the heard-tips
// association so removals (a rotation-cycle reset) take effect.
func (r *GormRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.First(&existing, "id = ?", user.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
			}
			return fmt.Errorf("update user: %w", err)
		}
		if err := tx.Omit("HeardTips").Save(user).Error; err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		if err := tx.Model(user).Association("HeardTips").Replace(user.HeardTips); err != nil {
			return fmt.Errorf("update heard tips: %w", err)
		}
		return nil
	})
}

func (r *GormRepository) UpdateActivity(ctx context.Context, activity *models.Activity) error {
	return r.updateByID(ctx, &models.Activity{}, activity, "activity", activity.ID)
}

func (r *GormRepository) UpdateTipsTopic(ctx context.Context, topic *models.TipsTopic) error {
	return r.updateByID(ctx, &models.TipsTopic{}, topic, "tips topic", topic.ID)
}

func (r *GormRepository) UpdateTip(ctx context.Context, tip *models.Tip) error {
	return r.updateByID(ctx, &models.Tip{}, tip, "tip", tip.ID)
}

func (r *GormRepository) updateByID(ctx context.Context, probe, value any, kind string, id uuid.UUID) error {
	err := r.db.WithContext(ctx).First(probe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", kind, err)
	}
	if err := r.db.WithContext(ctx).Save(value).Error; err != nil {
		return fmt.Errorf("update %s: %w", kind, err)
	}
	return nil
}

func (r *GormRepository) DeleteUser(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *GormRepository) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.Activity{}, "activity", id)
}

func (r *GormRepository) DeleteTipsTopic(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.TipsTopic{}, "tips topic", id)
}

func (r *GormRepository) DeleteTip(ctx context.Context, id uuid.UUID) error {
	return r.deleteByID(ctx, &models.Tip{}, "tip", id)
}

func (r *GormRepository) deleteByID(ctx context.Context, probe any, kind string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(probe, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete %s: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}

func (r *GormRepository) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("HeardTips").First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *GormRepository) ActivityByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	var activity models.Activity
	if err := r.firstByID(ctx, &activity, "activity", id); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *GormRepository) TipsTopicByID(ctx context.Context, id uuid.UUID) (*models.TipsTopic, error) {
	var topic models.TipsTopic
	if err := r.firstByID(ctx, &topic, "tips topic", id); err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *GormRepository) TipByID(ctx context.Context, id uuid.UUID) (*models.Tip, error) {
	var tip models.Tip
	if err := r.firstByID(ctx, &tip, "tip", id); err != nil {
		return nil, err
	}
	return &tip, nil
}

func (r *GormRepository) firstByID(ctx context.Context, dest any, kind string, id uuid.UUID) error {
	err := r.db.WithContext(ctx).First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", kind, err)
	}
	return nil
}

func (r *GormRepository) TipsTopicByName(ctx context.Context, name string) (*models.TipsTopic, error) {
	var topic models.TipsTopic
	err := r.db.WithContext(ctx).First(&topic, "name_text = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("tips topic %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get tips topic: %w", err)
	}
	return &topic, nil
}

func (r *GormRepository) Users(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Preload("HeardTips").Order("join_date")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *GormRepository) Activities(ctx context.Context, limit int) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.list(ctx, &activities, limit); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (r *GormRepository) TipsTopics(ctx context.Context, limit int) ([]models.TipsTopic, error) {
	var topics []models.TipsTopic
	if err := r.list(ctx, &topics, limit); err != nil {
		return nil, fmt.Errorf("list tips topics: %w", err)
	}
	return topics, nil
}

func (r *GormRepository) Tips(ctx context.Context, limit int) ([]models.Tip, error) {
	var tips []models.Tip
	if err := r.list(ctx, &tips, limit); err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	return tips, nil
}

func (r *GormRepository) list(ctx context.Context, dest any, limit int) error {
	q := r.db.WithContext(ctx).Order("created_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q.Find(dest).Error
}

func (r *GormRepository) TipsByTopic(ctx context.Context, topicID uuid.UUID) ([]models.Tip, error) {
	var tips []models.Tip
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at").
		Find(&tips).Error
	if err != nil {
		return nil, fmt.Errorf("list topic tips: %w", err)
	}
	return tips, nil
}

func (r *GormRepository) CountAllUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *GormRepository) CountUsersWithStreak(ctx context.Context, streak int, condition string) (int64, error) {
	op, err := sqlComparator(condition)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).
		Model(&models.User{}).
		Where(fmt.Sprintf("streak %s ?", op), streak).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count users by streak: %w", err)
	}
	return count, nil
}
