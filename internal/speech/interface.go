package speech

import (
	"context"
	"io"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// Synthesizer converts a narration segment to an audio file and returns its
// path. The returned file is never empty.
type Synthesizer interface {
	Synthesize(ctx context.Context, req models.SpeechRequest) (string, error)
}

// Backend is a text-to-speech provider producing mp3 audio.
type Backend interface {
	Speak(ctx context.Context, text, voice string) (io.ReadCloser, error)
}
