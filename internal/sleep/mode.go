package sleep

import (
	"sort"
	"time"
)

// Mode is one of the named bedtime targets, each with its own duration
// bounds and quantization step.
type Mode string

const (
	ModeLong      Mode = "long"
	ModeMedium    Mode = "medium"
	ModeShort     Mode = "short"
	ModeVeryShort Mode = "very_short"
)

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLong, ModeMedium, ModeShort, ModeVeryShort:
		return Mode(s), true
	}
	return "", false
}

// modeSpec describes how a mode carves sleep out of the available window:
// a pre-sleep buffer is reserved first, the remainder is floor-quantized
// by Step and clamped into [Min, Max]. Lower Priority is tried first
// during fallback.
type modeSpec struct {
	Mode     Mode
	Buffer   time.Duration
	Step     time.Duration
	Min      time.Duration
	Max      time.Duration
	Priority int
}

var modeTable = []modeSpec{
	{Mode: ModeLong, Buffer: 20 * time.Minute, Step: 90 * time.Minute, Min: 9 * time.Hour, Max: 12 * time.Hour, Priority: 0},
	{Mode: ModeMedium, Buffer: 20 * time.Minute, Step: 90 * time.Minute, Min: 6 * time.Hour, Max: 9 * time.Hour, Priority: 1},
	{Mode: ModeShort, Buffer: 20 * time.Minute, Step: time.Hour, Min: 3 * time.Hour, Max: 6 * time.Hour, Priority: 2},
	{Mode: ModeVeryShort, Buffer: 10 * time.Minute, Step: 15 * time.Minute, Min: 15 * time.Minute, Max: 3 * time.Hour, Priority: 3},
}

func init() {
	sort.SliceStable(modeTable, func(i, j int) bool {
		return modeTable[i].Priority < modeTable[j].Priority
	})
}

func specFor(m Mode) (modeSpec, bool) {
	for _, s := range modeTable {
		if s.Mode == m {
			return s, true
		}
	}
	return modeSpec{}, false
}

// fit computes the sleep duration the mode yields for the given window,
// or errModeDoesNotFit when the window cannot satisfy the mode's bounds.
func (s modeSpec) fit(origin, wakeUp time.Time) (time.Duration, error) {
	available := wakeUp.Sub(origin.Add(s.Buffer))
	if available <= 0 {
		return 0, errModeDoesNotFit
	}
	d := available / s.Step * s.Step
	if d > s.Max {
		d = s.Max
	}
	if d < s.Min {
		return 0, errModeDoesNotFit
	}
	return d, nil
}
