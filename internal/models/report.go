package models

import "time"

// RunStatus is the user-facing state of a lecture run.
type RunStatus string

const (
	StatusRunning  RunStatus = "running"
	StatusComplete RunStatus = "complete"
	StatusPartial  RunStatus = "partial"
	StatusNoVideo  RunStatus = "no_video"
	StatusFailed   RunStatus = "failed"
)

// Report is the persisted outcome of one run.
type Report struct {
	ID           string    `json:"id"`
	DeckPath     string    `json:"deck_path"`
	WorkDir      string    `json:"work_dir"`
	Status       RunStatus `json:"status"`
	TotalSlides  int       `json:"total_slides"`
	FailedSlides []int     `json:"failed_slides"`
	FinalVideo   string    `json:"final_video,omitempty"`
	Handout      string    `json:"handout,omitempty"`
	Quiz         Quiz      `json:"quiz"`
	Error        string    `json:"error,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at,omitempty"`
}
