package dialog

import (
	"time"

	"github.com/sleepwell/sleepwell/internal/models"
	"github.com/sleepwell/sleepwell/internal/sleep"
)

// Renderer produces the user-facing wording for every moment of the
// conversation. The engine hands it structured domain values only; all
// phrasing lives behind this interface.
type Renderer interface {
	FirstWelcome(now time.Time) models.SpokenText
	Comeback(now time.Time, streak, percentile int) models.SpokenText
	MenuWelcome() models.SpokenText
	Info() models.SpokenText
	Help() models.SpokenText
	Quit() models.SpokenText
	GenericError() models.SpokenText

	AskTipTopic() models.SpokenText
	WrongTopic(name string) models.SpokenText
	Tip(tip *models.Tip) models.SpokenText

	AskWakeUpTime() models.SpokenText
	InvalidTime() models.SpokenText
	ProposePreviousTime(t models.ClockTime) models.SpokenText
	AskMode() models.SpokenText
	SleepResult(calc sleep.Calculation, activities []models.Activity) models.SpokenText
	GoodNight() models.SpokenText

	MenuButtons() []string
	TopicButtons() []string
	ModeButtons() []string
	YesNoButtons() []string
}
