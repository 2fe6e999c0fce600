package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

type call struct {
	name string
	args []string
}

// fakeExecutor records commands; ffprobe answers with probeOut and ffmpeg
// calls fail while failures > 0.
type fakeExecutor struct {
	probeOut string
	failures int
	calls    []call
	list     string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if name == "ffprobe" {
		return f.probeOut, nil
	}
	for i, a := range args {
		if a == "concat" && i+2 < len(args) {
			data, _ := os.ReadFile(args[i+2])
			f.list = string(data)
		}
	}
	if f.failures > 0 {
		f.failures--
		return "", errors.New("exit status 1")
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func testConfig() config.FFmpegConfig {
	return config.FFmpegConfig{
		Binary:       "ffmpeg",
		ProbeBinary:  "ffprobe",
		Encoder:      "libx264",
		Preset:       "veryfast",
		CRF:          20,
		AudioCodec:   "aac",
		AudioBitrate: "192k",
		Width:        1920,
		Height:       1080,
	}
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("data"), 0644))
	return p
}

func TestDuration(t *testing.T) {
	exec := &fakeExecutor{probeOut: "12.480000\n"}
	d, err := New(testConfig(), exec, logger.Nop()).Duration(context.Background(), "a.mp3")
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 1e-9)
	assert.Equal(t, []string{"-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", "a.mp3"}, exec.calls[0].args)

	exec.probeOut = "N/A"
	_, err = New(testConfig(), exec, logger.Nop()).Duration(context.Background(), "a.mp3")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	img := touch(t, dir, "slide.png")
	audio := touch(t, dir, "a.mp3")
	out := filepath.Join(dir, "clips", "slide1_lecture.mp4")

	exec := &fakeExecutor{probeOut: "3.5"}
	err := New(testConfig(), exec, logger.Nop()).Render(context.Background(), img, audio, out)
	require.NoError(t, err)

	require.Len(t, exec.calls, 2)
	args := strings.Join(exec.calls[1].args, " ")
	assert.Contains(t, args, "-loop 1 -i "+img)
	assert.Contains(t, args, "-t 3.5")
	assert.Contains(t, args, "scale=1920:1080:force_original_aspect_ratio=decrease,pad=1920:1080:(ow-iw)/2:(oh-ih)/2:color=black")
	assert.Contains(t, args, "-c:v libx264 -preset veryfast -crf 20")
	assert.Contains(t, args, "-c:a aac -b:a 192k")
	assert.Contains(t, args, "-movflags +faststart")
	assert.Equal(t, out, exec.calls[1].args[len(exec.calls[1].args)-1])
	assert.DirExists(t, filepath.Join(dir, "clips"))
}

func TestRenderMissingInput(t *testing.T) {
	dir := t.TempDir()
	audio := touch(t, dir, "a.mp3")

	exec := &fakeExecutor{probeOut: "1"}
	tk := New(testConfig(), exec, logger.Nop())

	err := tk.Render(context.Background(), filepath.Join(dir, "none.png"), audio, filepath.Join(dir, "o.mp4"))
	assert.ErrorIs(t, err, ErrMissingInput)

	err = tk.Render(context.Background(), "", audio, filepath.Join(dir, "o.mp4"))
	assert.ErrorIs(t, err, ErrMissingInput)
	assert.Empty(t, exec.calls)
}

func TestRenderZeroDuration(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{probeOut: "0.000"}
	err := New(testConfig(), exec, logger.Nop()).Render(context.Background(), touch(t, dir, "s.png"), touch(t, dir, "a.mp3"), filepath.Join(dir, "o.mp4"))
	assert.ErrorIs(t, err, ErrZeroDuration)
}

func TestRenderFallsBackToSoftwareEncoder(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.Encoder = "h264_videotoolbox"

	exec := &fakeExecutor{probeOut: "2", failures: 1}
	err := New(cfg, exec, logger.Nop()).Render(context.Background(), touch(t, dir, "s.png"), touch(t, dir, "a.mp3"), filepath.Join(dir, "o.mp4"))
	require.NoError(t, err)

	require.Len(t, exec.calls, 3)
	assert.Contains(t, strings.Join(exec.calls[1].args, " "), "-c:v h264_videotoolbox")
	assert.Contains(t, strings.Join(exec.calls[2].args, " "), "-c:v libx264")
}

func TestRenderEncoderFailure(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{probeOut: "2", failures: 1}
	err := New(testConfig(), exec, logger.Nop()).Render(context.Background(), touch(t, dir, "s.png"), touch(t, dir, "a.mp3"), filepath.Join(dir, "o.mp4"))
	require.Error(t, err)
	assert.Len(t, exec.calls, 2)
}

func TestConcatEmpty(t *testing.T) {
	exec := &fakeExecutor{}
	out, err := New(testConfig(), exec, logger.Nop()).Concat(context.Background(), nil, "final.mp4")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Empty(t, exec.calls)
}

func TestConcat(t *testing.T) {
	dir := t.TempDir()
	clips := []string{filepath.Join(dir, "slide1_lecture.mp4"), filepath.Join(dir, "it's.mp4")}
	out := filepath.Join(dir, "final_lecture.mp4")

	exec := &fakeExecutor{}
	got, err := New(testConfig(), exec, logger.Nop()).Concat(context.Background(), clips, out)
	require.NoError(t, err)
	assert.Equal(t, out, got)

	require.Len(t, exec.calls, 1)
	assert.Equal(t, []string{"-y", "-safe", "0", "-f", "concat", "-i", out + ".txt", "-c", "copy", out}, exec.calls[0].args)
	assert.Equal(t, "file '"+clips[0]+"'\nfile '"+filepath.Join(dir, `it'\''s.mp4`)+"'\n", exec.list)
	assert.NoFileExists(t, out+".txt")
}

func TestConcatReencode(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig()
	cfg.ReencodeConcat = true

	exec := &fakeExecutor{}
	_, err := New(cfg, exec, logger.Nop()).Concat(context.Background(), []string{filepath.Join(dir, "a.mp4")}, filepath.Join(dir, "f.mp4"))
	require.NoError(t, err)
	args := strings.Join(exec.calls[0].args, " ")
	assert.Contains(t, args, "-vf format=yuv420p -c:v libx264")
	assert.NotContains(t, args, "-c copy")
}

func TestConcatFailure(t *testing.T) {
	dir := t.TempDir()
	exec := &fakeExecutor{failures: 1}
	_, err := New(testConfig(), exec, logger.Nop()).Concat(context.Background(), []string{filepath.Join(dir, "a.mp4")}, filepath.Join(dir, "f.mp4"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg concat")
}
