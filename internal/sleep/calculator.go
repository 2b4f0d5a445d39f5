// Package sleep computes when a user should go to bed to wake up at a
// requested time, degrading gracefully to a shorter sleep mode when the
// requested one does not fit the available window.
package sleep

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks a request the calculator cannot serve at all:
// contradictory time ordering, an unknown mode, or a window no mode fits.
var ErrInvalidInput = errors.New("invalid input")

// errModeDoesNotFit is the internal signal driving the fallback search.
// It never leaves this package.
var errModeDoesNotFit = errors.New("sleep mode does not fit")

// Calculation is the result of a bedtime calculation. ChangedFrom is set
// only when the requested mode did not fit and another one was selected;
// it records the original request for user-facing messaging.
type Calculation struct {
	BedTime      time.Time
	SelectedMode Mode
	Duration     time.Duration
	ChangedFrom  *Mode
}

// Calculate returns the bedtime for the given wake-up moment, counting
// from origin. If the requested mode cannot produce a duration inside its
// bounds, the remaining modes are tried in priority order and the first
// that fits wins. Deterministic: no clock reads besides the supplied origin.
func Calculate(wakeUp, origin time.Time, requested Mode) (Calculation, error) {
	if !wakeUp.After(origin) {
		return Calculation{}, fmt.Errorf("wake time not after origin: %w", ErrInvalidInput)
	}
	spec, ok := specFor(requested)
	if !ok {
		return Calculation{}, fmt.Errorf("unknown sleep mode %q: %w", requested, ErrInvalidInput)
	}

	result := Calculation{SelectedMode: requested}
	duration, err := spec.fit(origin, wakeUp)
	if err == nil {
		result.Duration = duration
	} else {
		// Requested mode is impossible here; take the highest-priority
		// mode that fits instead.
		fitted := false
		for _, candidate := range modeTable {
			duration, err = candidate.fit(origin, wakeUp)
			if err != nil {
				continue
			}
			result.SelectedMode = candidate.Mode
			result.Duration = duration
			changed := requested
			result.ChangedFrom = &changed
			fitted = true
			break
		}
		if !fitted {
			return Calculation{}, fmt.Errorf("no sleep mode fits this window: %w", ErrInvalidInput)
		}
	}

	result.BedTime = wakeUp.Add(-result.Duration)
	return result, nil
}
