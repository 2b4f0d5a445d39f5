package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity is an evening pastime the assistant can suggest while the user
// waits for bedtime. Immutable once created.
type Activity struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Description    SpokenText    `gorm:"embedded;embeddedPrefix:description_"`
	OccupationTime time.Duration `gorm:"not null"`
	CreatedAt      time.Time
}
