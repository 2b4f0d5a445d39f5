package sleep

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestCalculateDirectFit(t *testing.T) {
	// 20m buffer leaves 4h40m, quantized to 4h, inside SHORT's 3h-6h.
	calc, err := Calculate(at(5, 0), at(0, 0), ModeShort)
	require.NoError(t, err)

	assert.Equal(t, ModeShort, calc.SelectedMode)
	assert.Nil(t, calc.ChangedFrom)
	assert.Equal(t, 4*time.Hour, calc.Duration)
	assert.Equal(t, at(1, 0), calc.BedTime)
}

func TestCalculateFallsBackToMedium(t *testing.T) {
	// LONG quantizes 8h40m down to 7h30m, below its 9h minimum; MEDIUM
	// shares the step and accepts 7h30m.
	calc, err := Calculate(at(9, 0), at(0, 0), ModeLong)
	require.NoError(t, err)

	assert.Equal(t, ModeMedium, calc.SelectedMode)
	require.NotNil(t, calc.ChangedFrom)
	assert.Equal(t, ModeLong, *calc.ChangedFrom)
	assert.Equal(t, 7*time.Hour+30*time.Minute, calc.Duration)
	assert.Equal(t, at(1, 30), calc.BedTime)
}

func TestCalculateNoModeFits(t *testing.T) {
	_, err := Calculate(at(0, 10), at(0, 0), ModeLong)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateWakeUpNotAfterOrigin(t *testing.T) {
	_, err := Calculate(at(0, 0), at(5, 0), ModeShort)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Calculate(at(5, 0), at(5, 0), ModeShort)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateUnknownMode(t *testing.T) {
	_, err := Calculate(at(9, 0), at(0, 0), Mode("nap"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCalculateInvariants(t *testing.T) {
	windows := []struct {
		wake time.Time
		mode Mode
	}{
		{at(0, 40), ModeVeryShort},
		{at(3, 25), ModeShort},
		{at(7, 15), ModeMedium},
		{at(11, 50), ModeLong},
		{at(23, 59), ModeLong},
		{at(6, 0), ModeLong},
		{at(1, 0), ModeMedium},
	}
	for _, w := range windows {
		calc, err := Calculate(w.wake, at(0, 0), w.mode)
		if errors.Is(err, ErrInvalidInput) {
			continue
		}
		require.NoError(t, err)

		spec, ok := specFor(calc.SelectedMode)
		require.True(t, ok)
		assert.Zero(t, calc.Duration%spec.Step,
			"duration %s not a multiple of %s step", calc.Duration, calc.SelectedMode)
		assert.GreaterOrEqual(t, calc.Duration, spec.Min)
		assert.LessOrEqual(t, calc.Duration, spec.Max)
		assert.Equal(t, w.wake.Add(-calc.Duration), calc.BedTime)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	first, err := Calculate(at(9, 0), at(0, 0), ModeLong)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Calculate(at(9, 0), at(0, 0), ModeLong)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
