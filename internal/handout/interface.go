package handout

import (
	"context"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// Lecture is the content of a handout.
type Lecture struct {
	Title       string
	SlideTitles []string
	Narration   []string
	Quiz        models.Quiz
	Failed      []int
}

// Files are the written handout paths. Docx is empty when the document
// could not be produced.
type Files struct {
	Markdown string
	Docx     string
}

// Writer renders lecture notes with the review quiz and answer key.
type Writer interface {
	Write(ctx context.Context, base string, l Lecture) (Files, error)
}
