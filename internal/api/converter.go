package api

import (
	"strings"

	"github.com/sleepwell/sleepwell/internal/dialog"
	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/sleep"
)

// Intent names the platform is configured to match.
const (
	intentSleepCalc = "sleep_calc"
	slotTime        = "time"
)

// Keyword groups for turns the platform delivers as plain text. Matching
// is substring-based on the lower-cased command, mirroring how the
// assistant platform does contains-matching.
var (
	menuWords      = []string{"menu", "start over", "exit to menu"}
	helpWords      = []string{"help", "what can you do"}
	quitWords      = []string{"enough", "goodbye"}
	quitExact      = []string{"quit", "bye"}
	infoWords      = []string{"about the skill", "what do you do"}
	askTipWords    = []string{"tip", "advice", "advise"}
	startCalcWords = []string{"i want to sleep", "when should i go to bed", "bedtime"}
	yesWords       = []string{"yes", "yeah", "yep", "sure"}
	noWords        = []string{"no", "nope", "nah"}

	topicWords = map[string]string{
		"night": "night",
		"day":   "day",
	}
	modeWords = map[string]sleep.Mode{
		"very short": sleep.ModeVeryShort,
		"tiny":       sleep.ModeVeryShort,
		"long":       sleep.ModeLong,
		"big":        sleep.ModeLong,
		"medium":     sleep.ModeMedium,
		"short":      sleep.ModeShort,
		"small":      sleep.ModeShort,
	}
)

// Normalize reduces a webhook request to the single recognized signal
// the engine dispatches on.
func Normalize(req *Request) dialog.Signal {
	if intent, ok := req.Request.NLU.Intents[intentSleepCalc]; ok {
		return timeSignal(intent)
	}

	command := strings.ToLower(strings.TrimSpace(req.Request.Command))

	switch {
	case containsAny(command, menuWords):
		return dialog.Signal{Kind: dialog.SignalMenu}
	case containsAny(command, helpWords):
		return dialog.Signal{Kind: dialog.SignalHelp}
	// "bye" hides inside words like "maybe", so the short quit words are
	// matched on whole tokens only.
	case containsAny(command, quitWords), hasWord(command, quitExact):
		return dialog.Signal{Kind: dialog.SignalQuit}
	case containsAny(command, infoWords):
		return dialog.Signal{Kind: dialog.SignalInfo}
	case containsAny(command, startCalcWords):
		return dialog.Signal{Kind: dialog.SignalStartCalc}
	}

	for word, topic := range topicWords {
		if strings.Contains(command, word) {
			return dialog.Signal{Kind: dialog.SignalTopic, Topic: topic}
		}
	}
	// "very short" must win over "short", so probe longest phrases first.
	for _, phrase := range []string{"very short", "tiny", "long", "big", "medium", "short", "small"} {
		if strings.Contains(command, phrase) {
			return dialog.Signal{Kind: dialog.SignalMode, Mode: modeWords[phrase]}
		}
	}

	// Tip requests often include the word "advice"; match after topics so
	// "night advice" picks the topic while already in the topic question.
	if containsAny(command, askTipWords) {
		return dialog.Signal{Kind: dialog.SignalAskTip}
	}

	// Yes/no are matched on whole words: "no" hides inside too many
	// other words for substring matching.
	switch {
	case hasWord(command, yesWords):
		return dialog.Signal{Kind: dialog.SignalYes}
	case hasWord(command, noWords):
		return dialog.Signal{Kind: dialog.SignalNo}
	}

	return dialog.Signal{Kind: dialog.SignalUnknown}
}

// timeSignal extracts the wake-up time slot. A malformed or incomplete
// slot still yields a time signal, with no value, so the engine can
// reprompt instead of falling back to the menu.
func timeSignal(intent Intent) dialog.Signal {
	slot, ok := intent.Slots[slotTime]
	if !ok || slot.Value.Hour == nil || slot.Value.Minute == nil {
		return dialog.Signal{Kind: dialog.SignalTime}
	}
	hour, minute := *slot.Value.Hour, *slot.Value.Minute
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return dialog.Signal{Kind: dialog.SignalTime}
	}
	return dialog.Signal{
		Kind:       dialog.SignalTime,
		WakeUpTime: &models.ClockTime{Hour: hour, Minute: minute},
	}
}

func containsAny(command string, words []string) bool {
	for _, w := range words {
		if strings.Contains(command, w) {
			return true
		}
	}
	return false
}

func hasWord(command string, words []string) bool {
	for _, token := range strings.Fields(command) {
		for _, w := range words {
			if token == w {
				return true
			}
		}
	}
	return false
}
