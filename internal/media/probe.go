package media

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Duration returns the container duration of path in seconds.
func (f *implFFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := f.executor.Execute(ctx, f.cfg.ProbeBinary, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	value := strings.TrimSpace(out)
	d, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", value, err)
	}
	return d, nil
}
