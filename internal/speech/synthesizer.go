package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

// Synthesize speaks req.Text and, when req.Rate differs from 1, re-times the
// audio with ffmpeg. The raw and adjusted files are named by slide index.
func (s *implSynthesizer) Synthesize(ctx context.Context, req models.SpeechRequest) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", ErrEmptyText
	}
	if err := os.MkdirAll(s.ws.AudioDir(), 0755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}

	voice := normalizeVoice(req.Voice)
	rawPath := s.ws.RawAudioPath(req.Index)

	s.logger.Info(ctx, "Synthesizing speech for slide %d (voice=%s)", req.Index+1, voice)
	rc, err := s.backend.Speak(ctx, req.Text, voice)
	if err != nil {
		return "", fmt.Errorf("speak: %w", err)
	}
	defer rc.Close()

	if err := writeAudio(rawPath, rc); err != nil {
		return "", err
	}

	if req.Rate <= 0 || req.Rate == 1 {
		return rawPath, nil
	}

	outPath := s.ws.AudioPath(req.Index, req.Rate)
	args := []string{
		"-y",
		"-i", rawPath,
		"-filter:a", atempoChain(req.Rate),
		"-b:a", s.ffmpeg.AudioBitrate,
		outPath,
	}
	if _, err := s.executor.Execute(ctx, s.ffmpeg.Binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg adjust speed: %w", err)
	}
	return outPath, nil
}

func writeAudio(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	if n == 0 {
		os.Remove(path)
		return ErrEmptyAudio
	}
	return nil
}

// normalizeVoice reduces display labels such as "Calm - nova" to the voice
// name after the last dash.
func normalizeVoice(label string) string {
	if i := strings.LastIndex(label, "-"); i >= 0 {
		label = label[i+1:]
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return defaultVoice
	}
	return label
}

// atempoChain builds an ffmpeg atempo filter for rate, chaining stages so
// each factor stays within [0.5, 2.0].
func atempoChain(rate float64) string {
	var stages []string
	for rate > 2.0 {
		stages = append(stages, "atempo=2.0")
		rate /= 2.0
	}
	for rate < 0.5 {
		stages = append(stages, "atempo=0.5")
		rate /= 0.5
	}
	if rate != 1.0 || len(stages) == 0 {
		stages = append(stages, "atempo="+strconv.FormatFloat(rate, 'f', -1, 64))
	}
	return strings.Join(stages, ",")
}
