// Package dialog sequences the conversation: it matches the per-user
// state and the recognized signal of a turn to a domain operation and
// decides the next state.
package dialog

import (
	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/sleep"
)

// State is a conversation state persisted between turns.
type State string

const (
	StateMainMenu      State = "main_menu"
	StateAskingForTip  State = "asking_for_tip"
	StateSelectingTime State = "selecting_time"
	StateTimeProposed  State = "time_proposed"
	StateInCalculator  State = "in_calculator"
	StateCalculated    State = "calculated"
)

// SignalKind is the normalized meaning of an inbound turn, produced
// upstream by the transport layer's intent matching.
type SignalKind string

const (
	SignalMenu      SignalKind = "menu"
	SignalHelp      SignalKind = "help"
	SignalQuit      SignalKind = "quit"
	SignalInfo      SignalKind = "info"
	SignalAskTip    SignalKind = "ask_tip"
	SignalTopic     SignalKind = "topic"
	SignalStartCalc SignalKind = "start_calc"
	SignalTime      SignalKind = "time"
	SignalMode      SignalKind = "mode"
	SignalYes       SignalKind = "yes"
	SignalNo        SignalKind = "no"
	SignalUnknown   SignalKind = "unknown"
)

// Signal carries a recognized signal and its payload. Topic is set for
// SignalTopic, WakeUpTime for SignalTime (nil when the time slot was
// missing or malformed), Mode for SignalMode.
type Signal struct {
	Kind       SignalKind
	Topic      string
	WakeUpTime *models.ClockTime
	Mode       sleep.Mode
}
