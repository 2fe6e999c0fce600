package extractor

import (
	"errors"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

var (
	// ErrNoSlides is returned for a presentation without slides.
	ErrNoSlides = errors.New("presentation has no slides")
	// ErrSnapshotCount is returned when the rendered pages do not match the
	// slide count.
	ErrSnapshotCount = errors.New("snapshot count does not match slide count")
)

type implExtractor struct {
	snapshots SnapshotRenderer
	logger    logger.Logger
}

// New creates an Extractor reading .pptx files. snapshots may be nil, in
// which case slides carry no snapshot.
func New(snapshots SnapshotRenderer, log logger.Logger) Extractor {
	return &implExtractor{
		snapshots: snapshots,
		logger:    log,
	}
}

type sofficeRenderer struct {
	executor executor.Executor
	binary   string
	dpi      int
	logger   logger.Logger
}

// NewSnapshotRenderer creates a SnapshotRenderer that converts the deck to
// PDF with LibreOffice and rasterizes each page.
func NewSnapshotRenderer(cfg config.RenderConfig, exec executor.Executor, log logger.Logger) SnapshotRenderer {
	return &sofficeRenderer{
		executor: exec,
		binary:   cfg.SofficeBinary,
		dpi:      cfg.DPI,
		logger:   log,
	}
}
