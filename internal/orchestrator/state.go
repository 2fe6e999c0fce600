package orchestrator

import "github.com/nguyentantai21042004/lecture-flow/internal/models"

// RunState is the continuity record of one sequence execution. It is owned
// by a single run and must not be shared.
type RunState struct {
	// Index is the next slide to process. It only moves forward.
	Index int
	// Total is the deck length, fixed at creation.
	Total int
	// Narration holds one segment per slide that finished script synthesis.
	Narration []string
	// Clips holds the clip path produced for each visited slide, by index.
	Clips []string
	// Verified holds clip paths confirmed on disk, in slide order.
	Verified []string
	// Failed holds 1-based numbers of slides whose clip was missing.
	Failed []int

	verified map[int]bool
	failed   map[int]bool
}

// NewRunState returns the initial state for a deck of total slides.
func NewRunState(total int) *RunState {
	return &RunState{
		Total:    total,
		verified: make(map[int]bool),
		failed:   make(map[int]bool),
	}
}

// Previous returns the narration of the slide before index, or SentinelNone
// for the first slide.
func (s *RunState) Previous(index int) string {
	if index <= 0 || index > len(s.Narration) {
		return models.SentinelNone
	}
	return s.Narration[index-1]
}

// RecordNarration stores the segment produced for slide index. Recording the
// same index again replaces the segment instead of appending a duplicate.
func (s *RunState) RecordNarration(index int, segment string) {
	if index < len(s.Narration) {
		s.Narration[index] = segment
		return
	}
	s.Narration = append(s.Narration, segment)
}

// Advance records the clip of slide index, checks that it exists, and moves
// the state past index. It reports whether the clip was verified.
//
// This is the only place where slide numbers become 1-based.
func (s *RunState) Advance(index int, clipPath string, exists func(string) bool) bool {
	for len(s.Clips) <= index {
		s.Clips = append(s.Clips, "")
	}
	s.Clips[index] = clipPath

	ok := exists(clipPath)
	switch {
	case ok && !s.verified[index]:
		s.verified[index] = true
		s.Verified = append(s.Verified, clipPath)
		if s.failed[index] {
			delete(s.failed, index)
			s.Failed = removeInt(s.Failed, index+1)
		}
	case !ok && !s.verified[index] && !s.failed[index]:
		s.failed[index] = true
		s.Failed = append(s.Failed, index+1)
	}

	s.Index = index + 1
	return ok
}

func removeInt(xs []int, v int) []int {
	out := xs[:0]
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
