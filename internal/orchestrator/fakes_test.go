package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

type fakeEnricher struct{ calls int }

func (f *fakeEnricher) Enrich(ctx context.Context, title, text string) models.Enrichment {
	f.calls++
	return models.Enrichment{Queries: []string{title}}
}

type fakeContent struct {
	failAt int
	calls  int
}

func (f *fakeContent) Describe(ctx context.Context, req models.ContentRequest) (string, error) {
	f.calls++
	if req.Slide.Index == f.failAt {
		return "", fmt.Errorf("content unavailable")
	}
	return "description " + req.Slide.Title, nil
}

type fakeScript struct {
	failAt   int
	requests []models.ScriptRequest
}

func (f *fakeScript) Compose(ctx context.Context, req models.ScriptRequest) (string, error) {
	f.requests = append(f.requests, req)
	if req.Index == f.failAt {
		return "", fmt.Errorf("script unavailable")
	}
	return fmt.Sprintf("narration %d", req.Index), nil
}

type fakeSpeech struct {
	dir    string
	failAt int
	calls  int
}

func (f *fakeSpeech) Synthesize(ctx context.Context, req models.SpeechRequest) (string, error) {
	f.calls++
	if req.Index == f.failAt {
		return "", fmt.Errorf("speech unavailable")
	}
	path := filepath.Join(f.dir, fmt.Sprintf("audio_%d.mp3", req.Index))
	return path, os.WriteFile(path, []byte("audio"), 0644)
}

// fakeClips writes the clip file unless the slide index is in skip.
type fakeClips struct {
	skip     map[int]bool
	failAt   int
	rendered []string
}

func (f *fakeClips) Render(ctx context.Context, image, audio, out string) error {
	f.rendered = append(f.rendered, out)
	idx := len(f.rendered) - 1
	if idx == f.failAt {
		return fmt.Errorf("encoder crashed")
	}
	if f.skip[idx] {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	return os.WriteFile(out, []byte("clip"), 0644)
}

type fakeConcat struct {
	err   error
	calls [][]string
}

func (f *fakeConcat) Concat(ctx context.Context, clips []string, out string) (string, error) {
	f.calls = append(f.calls, append([]string(nil), clips...))
	if f.err != nil {
		return "", f.err
	}
	if len(clips) == 0 {
		return "", nil
	}
	return out, nil
}

type fakeQuiz struct {
	inputs []string
}

func (f *fakeQuiz) Generate(ctx context.Context, narration string) models.Quiz {
	f.inputs = append(f.inputs, narration)
	return models.Quiz{Questions: []models.Question{{
		Question: "q",
		Options:  []string{"1. a", "2. b"},
		Answer:   "1. a",
	}}}
}

type recordingObserver struct {
	mu       sync.Mutex
	started  []int
	finished map[int]bool
}

func (r *recordingObserver) SlideStarted(index, total int, title string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, index)
}

func (r *recordingObserver) SlideFinished(index, total int, verified bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finished == nil {
		r.finished = make(map[int]bool)
	}
	r.finished[index] = verified
}

type harness struct {
	enricher *fakeEnricher
	content  *fakeContent
	script   *fakeScript
	speech   *fakeSpeech
	clips    *fakeClips
	concat   *fakeConcat
	quiz     *fakeQuiz
}

func newHarness(dir string) *harness {
	return &harness{
		enricher: &fakeEnricher{},
		content:  &fakeContent{failAt: -1},
		script:   &fakeScript{failAt: -1},
		speech:   &fakeSpeech{dir: dir, failAt: -1},
		clips:    &fakeClips{failAt: -1, skip: map[int]bool{}},
		concat:   &fakeConcat{},
		quiz:     &fakeQuiz{},
	}
}

func (h *harness) leaves() Leaves {
	return Leaves{
		Enricher: h.enricher,
		Content:  h.content,
		Script:   h.script,
		Speech:   h.speech,
		Clips:    h.clips,
		Concat:   h.concat,
		Quiz:     h.quiz,
	}
}

func newDeck(n int) models.Deck {
	deck := models.Deck{Source: "deck.pptx"}
	for i := 0; i < n; i++ {
		deck.Slides = append(deck.Slides, models.Slide{
			Index:    i,
			Title:    fmt.Sprintf("Title %d", i),
			Text:     fmt.Sprintf("text %d", i),
			Snapshot: fmt.Sprintf("slide_img%d.png", i+1),
		})
	}
	return deck
}
