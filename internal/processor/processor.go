package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/lecture-flow/internal/handout"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/orchestrator"
	"github.com/nguyentantai21042004/lecture-flow/internal/workspace"
)

// Process runs a deck picked up from the input folder.
func (p *implProcessor) Process(ctx context.Context, deckPath string) error {
	_, err := p.Run(ctx, Job{DeckPath: deckPath, Archive: true})
	return err
}

// Run executes the whole pipeline for one deck
func (p *implProcessor) Run(ctx context.Context, job Job) (*models.Report, error) {
	if err := p.semaphore.acquire(ctx); err != nil {
		return nil, fmt.Errorf("wait for run slot: %w", err)
	}
	defer p.semaphore.release()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	ctx = logger.WithRunID(ctx, job.ID)
	startTime := time.Now()

	ws := workspace.New(filepath.Join(p.cfg.Paths.Output, "run-"+job.ID))
	report := &models.Report{
		ID:        job.ID,
		DeckPath:  job.DeckPath,
		WorkDir:   ws.Root,
		Status:    models.StatusRunning,
		StartedAt: startTime.UTC(),
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting lecture run: %s", job.DeckPath)
	p.logger.Info(ctx, "Workspace: %s", ws.Root)
	p.logger.Info(ctx, "========================================")

	p.save(ctx, report)

	runErr := p.execute(ctx, job, ws, report)
	if runErr != nil {
		report.Status = models.StatusFailed
		report.Error = runErr.Error()
	}
	report.FinishedAt = time.Now().UTC()

	if job.Archive {
		if err := p.moveToArchived(ctx, job.DeckPath); err != nil {
			p.logger.Warn(ctx, "Failed to move source to archived folder: %v", err)
		}
	}
	p.save(ctx, report)

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	if runErr != nil {
		p.logger.Error(ctx, "Lecture run failed after %s: %v", duration, runErr)
	} else {
		p.logger.Info(ctx, "Lecture run finished: %s", report.Status)
		p.logger.Info(ctx, "Output video: %s", valueOr(report.FinalVideo, "(none)"))
		p.logger.Info(ctx, "Handout: %s", valueOr(report.Handout, "(none)"))
		p.logger.Info(ctx, "Processing time: %s", duration)
	}
	p.logger.Info(ctx, "========================================")

	return report, runErr
}

func (p *implProcessor) execute(ctx context.Context, job Job, ws workspace.Workspace, report *models.Report) error {
	if err := ws.Prepare(); err != nil {
		return fmt.Errorf("prepare workspace: %w", err)
	}

	// Step 1: Copy the source into the workspace
	ext := strings.ToLower(filepath.Ext(job.DeckPath))
	deckCopy := ws.DeckPath(ext)
	if err := copyFile(job.DeckPath, deckCopy); err != nil {
		return fmt.Errorf("copy deck: %w", err)
	}

	// Step 2: Extract slides
	deck, err := p.deps.Extractor.Extract(ctx, deckCopy, ws)
	if err != nil {
		return fmt.Errorf("extract slides: %w", err)
	}
	report.TotalSlides = deck.Len()
	p.logger.Info(ctx, "Extracted %d slides", deck.Len())

	// Step 3: Narrate, render and assemble
	runCtx := ctx
	if timeout := p.cfg.Performance.RunTimeout; timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	result, runErr := p.newOrchestrator(ws).Run(runCtx, deck, orchestrator.Options{
		Directives: p.directives(job),
		Workspace:  ws,
		Observer:   job.Observer,
	})
	if result == nil {
		return fmt.Errorf("narrate lecture: %w", runErr)
	}
	report.FailedSlides = result.Failed
	report.FinalVideo = result.FinalVideo
	report.Quiz = result.Quiz
	report.Status = statusFor(result.Outcome())

	// Step 4: Write the handout from whatever narration exists
	if len(result.Narration) > 0 {
		files, err := p.deps.Handout.Write(ctx, ws.HandoutBase(), handout.Lecture{
			Title:       lectureTitle(deck, job.DeckPath),
			SlideTitles: deck.Titles(),
			Narration:   result.Narration,
			Quiz:        result.Quiz,
			Failed:      result.Failed,
		})
		if err != nil {
			p.logger.Warn(ctx, "Failed to write handout: %v", err)
		} else {
			report.Handout = files.Markdown
		}
	}

	if runErr != nil {
		return fmt.Errorf("narrate lecture: %w", runErr)
	}
	return nil
}

func (p *implProcessor) directives(job Job) models.Directives {
	if job.Directives != nil {
		return *job.Directives
	}
	return *p.cfg.Lecture.Directives()
}

// save persists the report; a store failure never fails the run.
func (p *implProcessor) save(ctx context.Context, report *models.Report) {
	if p.deps.Store == nil {
		return
	}
	if err := p.deps.Store.Save(context.WithoutCancel(ctx), report); err != nil {
		p.logger.Warn(ctx, "Failed to save run report: %v", err)
	}
}

func statusFor(o orchestrator.Outcome) models.RunStatus {
	switch o {
	case orchestrator.OutcomeComplete:
		return models.StatusComplete
	case orchestrator.OutcomePartial:
		return models.StatusPartial
	default:
		return models.StatusNoVideo
	}
}

// lectureTitle is the first slide's title, or the file name.
func lectureTitle(deck models.Deck, deckPath string) string {
	if deck.Len() > 0 && deck.Slides[0].Title != "" {
		return deck.Slides[0].Title
	}
	name := filepath.Base(deckPath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
