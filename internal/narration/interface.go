package narration

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// ContentSynthesizer turns one slide plus its enrichment into a short
// description.
type ContentSynthesizer interface {
	Describe(ctx context.Context, req models.ContentRequest) (string, error)
}

// ScriptSynthesizer writes the narration segment for one slide so that it
// reads as a continuation of the previous segment.
type ScriptSynthesizer interface {
	Compose(ctx context.Context, req models.ScriptRequest) (string, error)
}
