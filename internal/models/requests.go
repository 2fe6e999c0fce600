package models

// Position is where a slide sits in the lecture flow.
type Position string

const (
	PositionFirst  Position = "first"
	PositionMiddle Position = "middle"
	PositionLast   Position = "last"
)

// SentinelNone is passed as the previous narration for the first slide.
const SentinelNone = "none"

// Directives are the user-chosen narration settings for one run.
type Directives struct {
	Tone          string  `json:"tone"`
	Style         string  `json:"style"`
	Voice         string  `json:"voice"`
	Language      string  `json:"language"`
	TargetSeconds int     `json:"target_duration_sec"`
	Speed         float64 `json:"speed"`
}

// Summary is one external snippet used to ground a slide description.
type Summary struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Reference is a citation for an external snippet.
type Reference struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Enrichment is the web context gathered for one slide. It may be empty.
type Enrichment struct {
	Queries    []string    `json:"queries,omitempty"`
	Summaries  []Summary   `json:"summaries,omitempty"`
	References []Reference `json:"references,omitempty"`
}

// ContentRequest asks for a short description of one slide.
type ContentRequest struct {
	Slide      Slide
	Enrichment Enrichment
	Style      string
	Language   string
}

// ScriptRequest asks for the narration segment of one slide.
type ScriptRequest struct {
	Description   string
	Outline       []string
	Index         int
	Title         string
	Previous      string
	Position      Position
	NextTitle     string
	Tone          string
	Language      string
	TargetSeconds int
}

// SpeechRequest asks for the narration of slide Index to be spoken.
type SpeechRequest struct {
	Index int
	Text  string
	Voice string
	Rate  float64
}
