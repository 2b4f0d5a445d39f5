package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sleepwell/sleepwell/internal/dialog"
	"github.com/sleepwell/sleepwell/internal/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	sess, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, sess, "unknown user has no session")

	wakeUp := &models.ClockTime{Hour: 7, Minute: 30}
	err = store.Set(ctx, "user-1", &dialog.Session{State: dialog.StateSelectingTime, WakeUp: wakeUp})
	require.NoError(t, err)

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, dialog.StateSelectingTime, got.State)
	require.NotNil(t, got.WakeUp)
	assert.Equal(t, 7, got.WakeUp.Hour)
	assert.Equal(t, 30, got.WakeUp.Minute)

	// Mutating the returned copy must not affect the stored session.
	got.State = dialog.StateMainMenu
	again, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, dialog.StateSelectingTime, again.State)
}

func TestSessionEncodesAsJSON(t *testing.T) {
	sess := dialog.Session{
		State:  dialog.StateInCalculator,
		WakeUp: &models.ClockTime{Hour: 6, Minute: 45},
	}
	raw, err := json.Marshal(&sess)
	require.NoError(t, err)

	var decoded dialog.Session
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, sess.State, decoded.State)
	require.NotNil(t, decoded.WakeUp)
	assert.Equal(t, *sess.WakeUp, *decoded.WakeUp)
}
