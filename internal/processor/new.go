package processor

import (
	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/enricher"
	"github.com/nguyentantai21042004/lecture-flow/internal/extractor"
	"github.com/nguyentantai21042004/lecture-flow/internal/handout"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/media"
	"github.com/nguyentantai21042004/lecture-flow/internal/narration"
	"github.com/nguyentantai21042004/lecture-flow/internal/orchestrator"
	"github.com/nguyentantai21042004/lecture-flow/internal/quiz"
	"github.com/nguyentantai21042004/lecture-flow/internal/speech"
	"github.com/nguyentantai21042004/lecture-flow/internal/store"
	"github.com/nguyentantai21042004/lecture-flow/internal/workspace"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

// Dependencies are the long-lived collaborators shared by every run.
type Dependencies struct {
	Extractor extractor.Extractor
	Enricher  enricher.Enricher
	Content   narration.ContentSynthesizer
	Script    narration.ScriptSynthesizer
	Quiz      quiz.Generator
	Media     media.Toolkit
	Speech    speech.Backend
	Handout   handout.Writer
	Store     store.Store
	Executor  executor.Executor
}

type implProcessor struct {
	cfg       *config.Config
	deps      Dependencies
	logger    logger.Logger
	semaphore *semaphore
	// newOrchestrator builds the per-run sequence; replaced in tests.
	newOrchestrator func(ws workspace.Workspace) orchestrator.Orchestrator
}

// New creates a Processor. Concurrent runs are capped at
// cfg.Performance.MaxConcurrent.
func New(cfg *config.Config, deps Dependencies, log logger.Logger) Processor {
	capacity := cfg.Performance.MaxConcurrent
	if capacity <= 0 {
		capacity = 1
	}
	p := &implProcessor{
		cfg:       cfg,
		deps:      deps,
		logger:    log,
		semaphore: newSemaphore(capacity),
	}
	p.newOrchestrator = p.buildOrchestrator
	return p
}

// buildOrchestrator wires the leaves for one run. Speech output lives in the
// run workspace, so the synthesizer is created per run.
func (p *implProcessor) buildOrchestrator(ws workspace.Workspace) orchestrator.Orchestrator {
	synth := speech.New(p.deps.Speech, p.deps.Executor, ws, p.cfg.FFmpeg, p.logger)
	return orchestrator.New(orchestrator.Leaves{
		Enricher: p.deps.Enricher,
		Content:  p.deps.Content,
		Script:   p.deps.Script,
		Speech:   synth,
		Clips:    p.deps.Media,
		Concat:   p.deps.Media,
		Quiz:     p.deps.Quiz,
	}, p.logger)
}
