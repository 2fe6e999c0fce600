package handout

import (
	"time"

	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

type implWriter struct {
	logger logger.Logger
	now    func() time.Time
}

// New creates a Writer producing Markdown and .docx lecture notes.
func New(log logger.Logger) Writer {
	return &implWriter{logger: log, now: time.Now}
}
