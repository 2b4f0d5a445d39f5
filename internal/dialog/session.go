package dialog

import (
	"context"

	"github.com/sleepwell/sleepwell/internal/models"
)

// Session is the per-user conversation state plus the scratch data
// carried between turns. Overwritten whole on every turn.
type Session struct {
	State State `json:"state"`
	// WakeUp is the pending wake-up time collected in the calculator
	// branch, kept until the mode is chosen.
	WakeUp *models.ClockTime `json:"wake_up,omitempty"`
}

// SessionStore is the per-user session state store. Get returns
// (nil, nil) for a user with no session yet; Set is last-write-wins.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*Session, error)
	Set(ctx context.Context, userID string, session *Session) error
}
