package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

func TestIsDeckFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/in/lecture.pptx", true},
		{"/in/LECTURE.PPTX", true},
		{"/in/~$lecture.pptx", false},
		{"/in/.lecture.pptx", false},
		{"/in/lecture.ppt", false},
		{"/in/lecture.pdf", false},
		{"/in/notes", false},
	}
	for _, tt := range tests {
		if got := isDeckFile(tt.path); got != tt.want {
			t.Errorf("isDeckFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestClaimRelease(t *testing.T) {
	w := &implWatcher{seen: make(map[string]bool)}
	if !w.claim("a.pptx") {
		t.Fatal("first claim should succeed")
	}
	if w.claim("a.pptx") {
		t.Fatal("second claim should be dropped")
	}
	w.release("a.pptx")
	if !w.claim("a.pptx") {
		t.Fatal("claim after release should succeed")
	}
}

func TestWatcherHandlesNewDeck(t *testing.T) {
	dir := t.TempDir()

	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan struct{}, 1)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		got = append(got, filepath.Base(path))
		mu.Unlock()
		done <- struct{}{}
		return nil
	}

	w, err := New(dir, handler, logger.Nop(), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- w.Start(ctx) }()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "week1.pptx"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	cancel()
	if err := <-stopped; err != context.Canceled {
		t.Fatalf("Start returned %v, want context.Canceled", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "week1.pptx" {
		t.Fatalf("handled %v, want [week1.pptx]", got)
	}
}

func startWatcher(t *testing.T, dir string, settle time.Duration, handler EventHandler) func() {
	t.Helper()
	w, err := New(dir, handler, logger.Nop(), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.(*implWatcher).settle = settle

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error, 1)
	go func() { stopped <- w.Start(ctx) }()
	return func() {
		cancel()
		<-stopped
		w.Stop()
	}
}

func TestWatcherIgnoresDeckMovedOut(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	src := filepath.Join(in, "deck.pptx")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	var (
		mu    sync.Mutex
		calls []string
	)
	stop := startWatcher(t, in, 10*time.Millisecond, func(ctx context.Context, path string) error {
		mu.Lock()
		calls = append(calls, path)
		mu.Unlock()
		return nil
	})

	if err := os.Rename(src, filepath.Join(out, "deck.pptx")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 0 {
		t.Fatalf("handler called for a deck that left the folder: %v", calls)
	}
}

func TestWatcherDropsDeckRemovedBeforeSettle(t *testing.T) {
	in := t.TempDir()

	var (
		mu    sync.Mutex
		calls []string
	)
	stop := startWatcher(t, in, 200*time.Millisecond, func(ctx context.Context, path string) error {
		mu.Lock()
		calls = append(calls, path)
		mu.Unlock()
		return nil
	})

	path := filepath.Join(in, "short-lived.pptx")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)
	stop()

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 0 {
		t.Fatalf("handler called for a removed deck: %v", calls)
	}
}

func TestWatcherHandlesDeckMovedIn(t *testing.T) {
	in := t.TempDir()
	staging := t.TempDir()
	src := filepath.Join(staging, "week2.pptx")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	done := make(chan string, 1)
	stop := startWatcher(t, in, 10*time.Millisecond, func(ctx context.Context, path string) error {
		done <- path
		return nil
	})
	defer stop()

	if err := os.Rename(src, filepath.Join(in, "week2.pptx")); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-done:
		if filepath.Base(got) != "week2.pptx" {
			t.Fatalf("handled %s, want week2.pptx", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called for a deck moved into the folder")
	}
}
