package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a person talking to the assistant, keyed by the opaque id the
// voice platform assigns. Streak and LastCheckIn are maintained by the
// engagement tracker; HeardTips by the tip rotation selector.
type User struct {
	ID             string     `gorm:"primaryKey;size:64"`
	Streak         int        `gorm:"not null;default:0"`
	LastCheckIn    *time.Time `gorm:"column:last_check_in"`
	LastWakeUpTime *ClockTime `gorm:"type:varchar(5)"`
	JoinDate       time.Time  `gorm:"not null"`

	HeardTips []Tip `gorm:"many2many:heard_tips;constraint:OnDelete:CASCADE;"`
}

// HasHeard reports whether the tip has already been shown to the user.
func (u *User) HasHeard(tipID uuid.UUID) bool {
	for _, t := range u.HeardTips {
		if t.ID == tipID {
			return true
		}
	}
	return false
}
