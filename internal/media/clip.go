package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Render loops imagePath over audioPath, scaled and padded to the configured
// frame size, and cuts the clip at the audio duration.
func (f *implFFmpeg) Render(ctx context.Context, imagePath, audioPath, outPath string) error {
	for _, in := range []string{imagePath, audioPath} {
		if in == "" {
			return fmt.Errorf("%w: empty path", ErrMissingInput)
		}
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("%w: %s", ErrMissingInput, in)
		}
	}

	dur, err := f.Duration(ctx, audioPath)
	if err != nil {
		return err
	}
	if dur <= 0 {
		return fmt.Errorf("%w: %s", ErrZeroDuration, audioPath)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("create clip dir: %w", err)
	}

	f.logger.Debug(ctx, "Rendering clip %s (%.2fs)", outPath, dur)

	if _, err := f.executor.Execute(ctx, f.cfg.Binary, f.renderArgs(imagePath, audioPath, outPath, dur, f.cfg.Encoder)...); err != nil {
		if f.cfg.Encoder == softwareEncoder {
			return fmt.Errorf("ffmpeg render clip: %w", err)
		}
		f.logger.Warn(ctx, "Encoder %s failed, trying %s...", f.cfg.Encoder, softwareEncoder)
		if _, err := f.executor.Execute(ctx, f.cfg.Binary, f.renderArgs(imagePath, audioPath, outPath, dur, softwareEncoder)...); err != nil {
			return fmt.Errorf("ffmpeg render clip: %w", err)
		}
	}
	return nil
}

func (f *implFFmpeg) renderArgs(imagePath, audioPath, outPath string, dur float64, encoder string) []string {
	w, h := f.cfg.Width, f.cfg.Height
	vf := fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:color=black", w, h, w, h)

	return []string{
		"-y",
		"-loop", "1", "-i", imagePath,
		"-i", audioPath,
		"-t", strconv.FormatFloat(dur, 'f', -1, 64),
		"-vf", vf,
		"-c:v", encoder, "-preset", f.cfg.Preset, "-crf", strconv.Itoa(f.cfg.CRF),
		"-c:a", f.cfg.AudioCodec, "-b:a", f.cfg.AudioBitrate,
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		outPath,
	}
}
