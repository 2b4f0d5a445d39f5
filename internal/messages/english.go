// Package messages supplies the wording for every user-facing moment of
// the conversation. The engine never formats text itself.
package messages

import (
	"fmt"
	"strings"
	"time"

	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/sleep"
)

// English renders the conversation in English.
type English struct{}

// NewEnglish returns the English renderer.
func NewEnglish() *English {
	return &English{}
}

func spoken(text string) models.SpokenText {
	return models.NewSpokenText(text, "")
}

func (m *English) FirstWelcome(now time.Time) models.SpokenText {
	return spoken(fmt.Sprintf(
		"%s! I'm your sleep assistant. I can work out when you should go to bed, "+
			"suggest something for the evening and share sleep tips. "+
			"Say \"I want to sleep\" to get started, or ask me for a tip.",
		greeting(now),
	))
}

func (m *English) Comeback(now time.Time, streak, percentile int) models.SpokenText {
	text := fmt.Sprintf("%s, welcome back!", greeting(now))
	if streak > 0 {
		text += fmt.Sprintf(" That's %s in a row.", days(streak))
	}
	text += fmt.Sprintf(" You sleep better than %d%% of users. What shall we do?", percentile)
	return spoken(text)
}

func (m *English) MenuWelcome() models.SpokenText {
	return spoken("You're in the main menu. I can calculate your bedtime or share a sleep tip. What would you like?")
}

func (m *English) Info() models.SpokenText {
	return spoken(
		"I help you sleep better: tell me when you want to wake up and I'll work out " +
			"when to go to bed, keeping whole sleep cycles. I also track how many days " +
			"in a row you've checked in, and I know a few good sleep tips.",
	)
}

func (m *English) Help() models.SpokenText {
	return spoken(
		"Say \"I want to sleep\" to calculate your bedtime, \"give me a tip\" for advice, " +
			"or \"menu\" to start over. Say \"enough\" to leave.",
	)
}

func (m *English) Quit() models.SpokenText {
	return spoken("Good night! Come back tomorrow to keep your streak.")
}

func (m *English) GenericError() models.SpokenText {
	return spoken("Sorry, something went wrong on my side. Let's start over from the menu.")
}

func (m *English) AskTipTopic() models.SpokenText {
	return spoken("Which tips would you like: night or day?")
}

func (m *English) WrongTopic(name string) models.SpokenText {
	if name == "" {
		return spoken("Please choose a topic: night or day.")
	}
	return spoken(fmt.Sprintf("I don't know tips about %q. Please choose a topic: night or day.", name))
}

func (m *English) Tip(tip *models.Tip) models.SpokenText {
	return models.SpokenText{
		Text:   tip.Content.Text,
		Speech: tip.Content.Speech,
	}
}

func (m *English) AskWakeUpTime() models.SpokenText {
	return spoken("When would you like to wake up? Name a time, for example \"at seven thirty\".")
}

func (m *English) InvalidTime() models.SpokenText {
	return spoken("I didn't catch the time. Please name it like \"at seven thirty\".")
}

func (m *English) ProposePreviousTime(t models.ClockTime) models.SpokenText {
	return spoken(fmt.Sprintf("Last time you woke up at %s. Same time again?", t))
}

func (m *English) AskMode() models.SpokenText {
	return spoken("How long would you like to sleep: long, medium, short or very short?")
}

func (m *English) SleepResult(calc sleep.Calculation, activities []models.Activity) models.SpokenText {
	var b strings.Builder
	if calc.ChangedFrom != nil {
		fmt.Fprintf(&b, "A %s sleep won't fit before then, so I picked a %s one. ",
			modeName(*calc.ChangedFrom), modeName(calc.SelectedMode))
	}
	fmt.Fprintf(&b, "Go to bed at %02d:%02d to sleep %s.",
		calc.BedTime.Hour(), calc.BedTime.Minute(), duration(calc.Duration))
	if len(activities) > 0 {
		names := make([]string, len(activities))
		for i, a := range activities {
			names[i] = a.Description.Text
		}
		fmt.Fprintf(&b, " Until then you could %s.", strings.Join(names, " or "))
	}
	b.WriteString(" Would you like a tip for the night?")
	return spoken(b.String())
}

func (m *English) GoodNight() models.SpokenText {
	return spoken("Sleep well! I'll be here in the morning.")
}

func (m *English) MenuButtons() []string {
	return []string{"I want to sleep", "Give me a tip", "What can you do?"}
}

func (m *English) TopicButtons() []string {
	return []string{"Night", "Day"}
}

func (m *English) ModeButtons() []string {
	return []string{"Long", "Medium", "Short", "Very short"}
}

func (m *English) YesNoButtons() []string {
	return []string{"Yes", "No"}
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 5:
		return "Good night"
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func modeName(m sleep.Mode) string {
	switch m {
	case sleep.ModeLong:
		return "long"
	case sleep.ModeMedium:
		return "medium"
	case sleep.ModeShort:
		return "short"
	case sleep.ModeVeryShort:
		return "very short"
	default:
		return string(m)
	}
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func duration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%d minutes", m)
	case m == 0:
		return hours(h)
	default:
		return fmt.Sprintf("%s %d minutes", hours(h), m)
	}
}

func hours(h int) string {
	if h == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", h)
}
