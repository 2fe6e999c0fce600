package extractor

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/workspace"
)

// Extractor reads a presentation into an ordered Deck. Embedded pictures
// and slide snapshots are written into ws.
type Extractor interface {
	Extract(ctx context.Context, deckPath string, ws workspace.Workspace) (models.Deck, error)
}

// SnapshotRenderer rasterizes every slide of a presentation and returns one
// image path per slide, in order.
type SnapshotRenderer interface {
	Render(ctx context.Context, deckPath string, ws workspace.Workspace) ([]string, error)
}
