package media

import (
	"errors"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

var (
	// ErrMissingInput is returned when a render input does not exist.
	ErrMissingInput = errors.New("missing render input")
	// ErrZeroDuration is returned when the audio track has no length.
	ErrZeroDuration = errors.New("audio duration is zero")
)

// softwareEncoder is used when the configured encoder fails.
const softwareEncoder = "libx264"

// Toolkit is the ffmpeg-backed implementation of every media collaborator.
type Toolkit interface {
	ClipRenderer
	Concatenator
	Prober
}

type implFFmpeg struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Toolkit running the configured ffmpeg and ffprobe binaries.
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Toolkit {
	return &implFFmpeg{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
