package processor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/orchestrator"
)

// Processor turns presentation files into narrated lectures.
type Processor interface {
	// Process handles a deck dropped into the input folder; the source is
	// archived afterwards.
	Process(ctx context.Context, deckPath string) error
	// Run executes one job and returns its report. The report is returned
	// even when the run fails.
	Run(ctx context.Context, job Job) (*models.Report, error)
}

// Job describes one lecture run.
type Job struct {
	// ID is generated when empty.
	ID       string
	DeckPath string
	// Directives override the configured lecture defaults when set.
	Directives *models.Directives
	Observer   orchestrator.Observer
	// Archive moves the source deck to the archive folder when done.
	Archive bool
}
