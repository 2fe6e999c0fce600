package orchestrator

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// Run drives the sequence INIT -> SLIDE_IN_PROGRESS -> DONE over deck.
//
// A leaf error aborts the run: the partial Result is returned together with
// a *SlideError and nothing is assembled. A clip that is missing after
// rendering does not abort; the slide is recorded as failed and the run
// continues. At DONE the verified clips are concatenated and the quiz is
// generated; a concatenation error is returned after the quiz is built.
func (o *implOrchestrator) Run(ctx context.Context, deck models.Deck, opts Options) (*Result, error) {
	if err := o.leaves.validate(); err != nil {
		return nil, err
	}
	if opts.Observer == nil {
		opts.Observer = noopObserver{}
	}

	state := NewRunState(deck.Len())
	outline := deck.Titles()
	o.logger.Info(ctx, "Starting lecture sequence: %d slides", state.Total)

	for Route(state.Index, state.Total) == Continue {
		if err := ctx.Err(); err != nil {
			return newResult(state), fmt.Errorf("sequence stopped before slide index %d: %w", state.Index, err)
		}
		if err := o.runSlide(ctx, deck.Slides[state.Index], outline, state, opts); err != nil {
			o.logger.Error(ctx, "Sequence aborted: %v", err)
			return newResult(state), err
		}
	}

	return o.finish(ctx, state, opts)
}

func (o *implOrchestrator) runSlide(ctx context.Context, slide models.Slide, outline []string, state *RunState, opts Options) error {
	i := state.Index
	d := opts.Directives
	opts.Observer.SlideStarted(i, state.Total, slide.Title)
	o.logger.Info(ctx, "Slide %d/%d: %s", i+1, state.Total, slide.Title)

	enrichment := o.leaves.Enricher.Enrich(ctx, slide.Title, slide.Text)

	description, err := o.leaves.Content.Describe(ctx, models.ContentRequest{
		Slide:      slide,
		Enrichment: enrichment,
		Style:      d.Style,
		Language:   d.Language,
	})
	if err != nil {
		return &SlideError{Index: i, Title: slide.Title, Step: StepContent, Err: err}
	}

	segment, err := o.leaves.Script.Compose(ctx, scriptRequest(state, outline, i, description, d))
	if err != nil {
		return &SlideError{Index: i, Title: slide.Title, Step: StepScript, Err: err}
	}
	state.RecordNarration(i, segment)

	audio, err := o.leaves.Speech.Synthesize(ctx, models.SpeechRequest{
		Index: i,
		Text:  segment,
		Voice: d.Voice,
		Rate:  d.Speed,
	})
	if err != nil {
		return &SlideError{Index: i, Title: slide.Title, Step: StepSpeech, Err: err}
	}

	clip := opts.Workspace.ClipPath(i)
	if err := o.leaves.Clips.Render(ctx, slide.Snapshot, audio, clip); err != nil {
		return &SlideError{Index: i, Title: slide.Title, Step: StepRender, Err: err}
	}

	verified := state.Advance(i, clip, o.exists)
	if !verified {
		o.logger.Warn(ctx, "Clip for slide %d not found, continuing: %s", i+1, clip)
	}
	opts.Observer.SlideFinished(i, state.Total, verified)
	return nil
}

// scriptRequest builds the continuity context for slide index from the
// narration accumulated so far.
func scriptRequest(state *RunState, outline []string, index int, description string, d models.Directives) models.ScriptRequest {
	req := models.ScriptRequest{
		Description:   description,
		Outline:       outline,
		Index:         index,
		Title:         outline[index],
		Previous:      state.Previous(index),
		Position:      PositionFor(index, state.Total),
		Tone:          d.Tone,
		Language:      d.Language,
		TargetSeconds: d.TargetSeconds,
	}
	if index+1 < len(outline) {
		req.NextTitle = outline[index+1]
	}
	return req
}

func (o *implOrchestrator) finish(ctx context.Context, state *RunState, opts Options) (*Result, error) {
	result := newResult(state)

	var concatErr error
	if len(result.Verified) == 0 {
		o.logger.Warn(ctx, "No verified clips, skipping final video")
	} else {
		final, err := o.leaves.Concat.Concat(ctx, result.Verified, opts.Workspace.FinalVideoPath())
		if err != nil {
			concatErr = fmt.Errorf("concatenate clips: %w", err)
			o.logger.Error(ctx, "Final video failed: %v", err)
		} else {
			result.FinalVideo = final
		}
	}

	if len(result.Narration) > 0 {
		result.Quiz = o.leaves.Quiz.Generate(ctx, JoinNarration(result.Narration))
	}

	if len(result.Failed) > 0 {
		o.logger.Warn(ctx, "Slides without a clip: %v", result.Failed)
	}
	o.logger.Info(ctx, "Lecture sequence finished: %d/%d clips, %d quiz questions",
		len(result.Verified), result.TotalSlides, len(result.Quiz.Questions))

	return result, concatErr
}
