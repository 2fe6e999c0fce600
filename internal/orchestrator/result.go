package orchestrator

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// Outcome classifies a finished run for the user.
type Outcome string

const (
	OutcomeComplete Outcome = "complete"
	OutcomePartial  Outcome = "partial"
	OutcomeNoVideo  Outcome = "no_video"
)

// Result is what remains of a RunState once the sequence stops, plus the
// outputs assembled at DONE.
type Result struct {
	TotalSlides int
	// Processed is the state index when the sequence stopped.
	Processed  int
	Narration  []string
	Clips      []string
	Verified   []string
	Failed     []int
	FinalVideo string
	Quiz       models.Quiz
}

func newResult(s *RunState) *Result {
	return &Result{
		TotalSlides: s.Total,
		Processed:   s.Index,
		Narration:   append([]string(nil), s.Narration...),
		Clips:       append([]string(nil), s.Clips...),
		Verified:    append([]string(nil), s.Verified...),
		Failed:      append([]int(nil), s.Failed...),
	}
}

// Outcome reports whether the video covers every slide, some of them, or
// none.
func (r *Result) Outcome() Outcome {
	switch {
	case len(r.Verified) == 0:
		return OutcomeNoVideo
	case len(r.Failed) > 0 || len(r.Verified) < r.TotalSlides:
		return OutcomePartial
	default:
		return OutcomeComplete
	}
}

// JoinNarration renders the accumulated narration as one text with a
// marker before each slide's segment.
func JoinNarration(segments []string) string {
	var b strings.Builder
	for i, seg := range segments {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[Slide %d]\n%s", i+1, seg)
	}
	return b.String()
}
