package watcher

import "context"

// Watcher monitors the input folder for new presentations.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one new deck file.
type EventHandler func(ctx context.Context, filePath string) error
