package orchestrator

import (
	"fmt"
	"os"

	"github.com/nguyentantai21042004/lecture-flow/internal/enricher"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/media"
	"github.com/nguyentantai21042004/lecture-flow/internal/narration"
	"github.com/nguyentantai21042004/lecture-flow/internal/quiz"
	"github.com/nguyentantai21042004/lecture-flow/internal/speech"
)

// Leaves are the collaborators driven by the sequence.
type Leaves struct {
	Enricher enricher.Enricher
	Content  narration.ContentSynthesizer
	Script   narration.ScriptSynthesizer
	Speech   speech.Synthesizer
	Clips    media.ClipRenderer
	Concat   media.Concatenator
	Quiz     quiz.Generator
}

func (l Leaves) validate() error {
	missing := ""
	switch {
	case l.Enricher == nil:
		missing = "enricher"
	case l.Content == nil:
		missing = "content synthesizer"
	case l.Script == nil:
		missing = "script synthesizer"
	case l.Speech == nil:
		missing = "speech synthesizer"
	case l.Clips == nil:
		missing = "clip renderer"
	case l.Concat == nil:
		missing = "concatenator"
	case l.Quiz == nil:
		missing = "quiz generator"
	}
	if missing != "" {
		return fmt.Errorf("orchestrator: missing %s", missing)
	}
	return nil
}

type implOrchestrator struct {
	leaves Leaves
	logger logger.Logger
	exists func(path string) bool
}

// New creates an Orchestrator driving the given leaves.
func New(leaves Leaves, log logger.Logger) Orchestrator {
	return &implOrchestrator{
		leaves: leaves,
		logger: log,
		exists: fileExists,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
