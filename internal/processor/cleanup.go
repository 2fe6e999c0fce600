package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// moveToArchived moves the source deck out of the input folder. A name
// clash gets a timestamp suffix.
func (p *implProcessor) moveToArchived(ctx context.Context, deckPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived folder: %w", err)
	}

	filename := filepath.Base(deckPath)
	destPath := filepath.Join(p.cfg.Paths.Archived, filename)
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(filename)
		destPath = filepath.Join(p.cfg.Paths.Archived,
			fmt.Sprintf("%s_%s%s", strings.TrimSuffix(filename, ext), time.Now().Format("20060102_150405"), ext))
	}

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", deckPath, destPath)

	if err := os.Rename(deckPath, destPath); err == nil {
		return nil
	}
	// Rename fails across devices.
	if err := copyFile(deckPath, destPath); err != nil {
		return fmt.Errorf("archive source: %w", err)
	}
	if err := os.Remove(deckPath); err != nil {
		return fmt.Errorf("remove source: %w", err)
	}
	return nil
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("write destination: %w", err)
	}
	return out.Close()
}
