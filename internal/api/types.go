package api

// Request is the inbound assistant webhook payload. The platform has
// already run speech recognition and intent matching; we only normalize
// its output into a dialogue signal.
type Request struct {
	Version string `json:"version"`
	Session struct {
		UserID string `json:"user_id"`
		New    bool   `json:"new"`
	} `json:"session"`
	Request struct {
		Command string `json:"command"`
		NLU     NLU    `json:"nlu"`
	} `json:"request"`
}

// NLU is the platform's natural-language understanding output.
type NLU struct {
	Tokens  []string          `json:"tokens"`
	Intents map[string]Intent `json:"intents"`
}

// Intent is one matched intent with its filled slots.
type Intent struct {
	Slots map[string]Slot `json:"slots"`
}

// Slot is a structured intent slot value.
type Slot struct {
	Type  string    `json:"type"`
	Value SlotValue `json:"value"`
}

// SlotValue carries the fields we consume from a structured slot.
// Pointers distinguish "absent" from zero.
type SlotValue struct {
	Hour   *int `json:"hour,omitempty"`
	Minute *int `json:"minute,omitempty"`
}

// Response is the webhook reply.
type Response struct {
	Version  string `json:"version"`
	Response Reply  `json:"response"`
}

// Reply is the rendered turn.
type Reply struct {
	Text       string   `json:"text"`
	TTS        string   `json:"tts"`
	Buttons    []Button `json:"buttons,omitempty"`
	EndSession bool     `json:"end_session"`
}

// Button is a suggested reply chip.
type Button struct {
	Title string `json:"title"`
}
