package quiz

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// Generator builds a review quiz from the full lecture narration. It never
// fails: any generation or parse problem yields an empty quiz.
type Generator interface {
	Generate(ctx context.Context, narration string) models.Quiz
}
