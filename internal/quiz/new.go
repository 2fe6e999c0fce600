package quiz

import (
	"github.com/nguyentantai21042004/lecture-flow/internal/llm"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

const optionsPerQuestion = 4

type implGenerator struct {
	gen    llm.Generator
	logger logger.Logger
}

// New creates a Generator asking gen for a JSON quiz.
func New(gen llm.Generator, log logger.Logger) Generator {
	return &implGenerator{gen: gen, logger: log}
}
