package models

// SpokenText is a piece of user-facing content in both of its delivery
// forms: display text and the speech-synthesis variant.
type SpokenText struct {
	Text   string `gorm:"not null"`
	Speech string `gorm:"not null"`
}

// NewSpokenText builds a SpokenText. An empty speech variant falls back
// to the display text.
func NewSpokenText(text, speech string) SpokenText {
	if speech == "" {
		speech = text
	}
	return SpokenText{Text: text, Speech: speech}
}
