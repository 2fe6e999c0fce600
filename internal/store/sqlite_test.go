package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	started := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	r := &models.Report{
		ID:          "run-1",
		DeckPath:    "/in/deck.pptx",
		WorkDir:     "/out/run-1",
		Status:      models.StatusRunning,
		TotalSlides: 3,
		StartedAt:   started,
	}
	require.NoError(t, s.Save(ctx, r))

	got, err := s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRunning, got.Status)
	assert.Empty(t, got.FailedSlides)
	assert.True(t, got.FinishedAt.IsZero())
	assert.True(t, started.Equal(got.StartedAt))

	r.Status = models.StatusPartial
	r.FailedSlides = []int{2}
	r.FinalVideo = "/out/run-1/final_lecture.mp4"
	r.FinishedAt = started.Add(5 * time.Minute)
	r.Quiz = models.Quiz{Questions: []models.Question{{Question: "q", Options: []string{"1. a"}, Answer: "1. a"}}}
	require.NoError(t, s.Save(ctx, r))

	got, err = s.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPartial, got.Status)
	assert.Equal(t, []int{2}, got.FailedSlides)
	assert.Equal(t, r.FinalVideo, got.FinalVideo)
	assert.Equal(t, r.Quiz, got.Quiz)
	assert.True(t, r.FinishedAt.Equal(got.FinishedAt))
}

func TestGetNotFound(t *testing.T) {
	_, err := openTestStore(t).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, &models.Report{
			ID:        id,
			DeckPath:  id + ".pptx",
			Status:    models.StatusComplete,
			StartedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	runs, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)

	runs, err = s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
