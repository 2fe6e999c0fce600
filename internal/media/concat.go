package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Concat joins clips with the ffmpeg concat demuxer. Streams are copied
// unless ReencodeConcat is set.
func (f *implFFmpeg) Concat(ctx context.Context, clips []string, outPath string) (string, error) {
	if len(clips) == 0 {
		return "", nil
	}

	listPath := outPath + ".txt"
	if err := writeConcatList(listPath, clips); err != nil {
		return "", err
	}
	defer os.Remove(listPath)

	args := []string{"-y", "-safe", "0", "-f", "concat", "-i", listPath}
	if f.cfg.ReencodeConcat {
		args = append(args,
			"-vf", "format=yuv420p",
			"-c:v", softwareEncoder, "-preset", f.cfg.Preset,
			"-c:a", f.cfg.AudioCodec, "-b:a", f.cfg.AudioBitrate,
		)
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, outPath)

	f.logger.Info(ctx, "Concatenating %d clips into %s", len(clips), outPath)
	if _, err := f.executor.Execute(ctx, f.cfg.Binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg concat: %w", err)
	}
	return outPath, nil
}

// writeConcatList writes one absolute "file '...'" line per clip.
func writeConcatList(path string, clips []string) error {
	var b strings.Builder
	for _, c := range clips {
		abs, err := filepath.Abs(c)
		if err != nil {
			return fmt.Errorf("resolve clip path: %w", err)
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}
