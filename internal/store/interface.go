package store

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// ErrNotFound is returned when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Store persists run reports.
type Store interface {
	Save(ctx context.Context, r *models.Report) error
	Get(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context, limit int) ([]*models.Report, error)
	Close() error
}
