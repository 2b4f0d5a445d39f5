package models

import (
	"time"

	"github.com/google/uuid"
)

// TipsTopic groups tips by theme. Topic names are what users say to pick
// a theme, so they are unique and stored lower-case.
type TipsTopic struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        SpokenText `gorm:"embedded;embeddedPrefix:name_"`
	Description SpokenText `gorm:"embedded;embeddedPrefix:description_"`
	CreatedAt   time.Time

	Tips []Tip `gorm:"foreignKey:TopicID;constraint:OnDelete:CASCADE;"`
}

// Tip is a single piece of sleep advice belonging to a topic.
type Tip struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TopicID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Short     SpokenText `gorm:"embedded;embeddedPrefix:short_"`
	Content   SpokenText `gorm:"embedded;embeddedPrefix:content_"`
	CreatedAt time.Time
}
