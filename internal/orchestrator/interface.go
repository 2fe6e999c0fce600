package orchestrator

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/workspace"
)

// Orchestrator walks a deck slide by slide, carrying narration continuity
// forward, and assembles the final video and quiz once every slide has been
// visited.
type Orchestrator interface {
	Run(ctx context.Context, deck models.Deck, opts Options) (*Result, error)
}

// Observer is notified as slides are processed. Calls happen on the
// goroutine running the sequence.
type Observer interface {
	SlideStarted(index, total int, title string)
	SlideFinished(index, total int, verified bool)
}

// Options are the per-run inputs of a sequence.
type Options struct {
	Directives models.Directives
	Workspace  workspace.Workspace
	Observer   Observer
}

type noopObserver struct{}

func (noopObserver) SlideStarted(int, int, string) {}
func (noopObserver) SlideFinished(int, int, bool)  {}
