package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the backend answered without text.
var ErrEmptyResponse = errors.New("empty response from model")

// Prompt is one generation request. Images are local file paths attached
// to the user message.
type Prompt struct {
	System      string
	User        string
	Images      []string
	Temperature float32
	JSON        bool
}

// Generator produces text from a prompt. Implementations are safe for
// concurrent use.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}
