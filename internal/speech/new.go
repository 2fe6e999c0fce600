package speech

import (
	"errors"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/workspace"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

var (
	// ErrEmptyText is returned for a blank narration segment.
	ErrEmptyText = errors.New("narration text is empty")
	// ErrEmptyAudio is returned when the backend produced no bytes.
	ErrEmptyAudio = errors.New("speech backend returned no audio")
)

const defaultVoice = "alloy"

type implSynthesizer struct {
	backend  Backend
	executor executor.Executor
	ws       workspace.Workspace
	ffmpeg   config.FFmpegConfig
	logger   logger.Logger
}

// New creates a Synthesizer writing audio into the run workspace ws.
func New(backend Backend, exec executor.Executor, ws workspace.Workspace, ffmpeg config.FFmpegConfig, log logger.Logger) Synthesizer {
	return &implSynthesizer{
		backend:  backend,
		executor: exec,
		ws:       ws,
		ffmpeg:   ffmpeg,
		logger:   log,
	}
}
