package narration

import (
	"errors"

	"github.com/nguyentantai21042004/lecture-flow/internal/llm"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

// ErrEmptyScript is returned when the model produced no usable narration.
var ErrEmptyScript = errors.New("empty narration script")

const (
	contentTemperature = 0.5
	scriptTemperature  = 0.7
)

type implContent struct {
	gen    llm.Generator
	logger logger.Logger
}

type implScript struct {
	gen    llm.Generator
	logger logger.Logger
}

// NewContent creates a ContentSynthesizer backed by gen.
func NewContent(gen llm.Generator, log logger.Logger) ContentSynthesizer {
	return &implContent{gen: gen, logger: log}
}

// NewScript creates a ScriptSynthesizer backed by gen.
func NewScript(gen llm.Generator, log logger.Logger) ScriptSynthesizer {
	return &implScript{gen: gen, logger: log}
}
