package orchestrator

import "fmt"

// Step names a leaf call within a slide pass.
type Step string

const (
	StepContent Step = "content synthesis"
	StepScript  Step = "script synthesis"
	StepSpeech  Step = "speech synthesis"
	StepRender  Step = "clip rendering"
)

// SlideError reports a leaf failure that aborted the run.
type SlideError struct {
	Index int
	Title string
	Step  Step
	Err   error
}

func (e *SlideError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("slide index %d (%q): %s: %v", e.Index, e.Title, e.Step, e.Err)
	}
	return fmt.Sprintf("slide index %d: %s: %v", e.Index, e.Step, e.Err)
}

func (e *SlideError) Unwrap() error {
	return e.Err
}
