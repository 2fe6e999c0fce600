// Package workspace names the files of one lecture run. Every per-slide
// asset is named deterministically by slide index so a finished run can be
// inspected; concurrent runs must use different roots.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	slidesDir = "slides"
	mediaDir  = "media"
	audioDir  = "audio"
	clipsDir  = "clips"
)

// Workspace is the directory layout of one run.
type Workspace struct {
	Root string
}

// New returns the workspace rooted at root.
func New(root string) Workspace {
	return Workspace{Root: root}
}

// Prepare creates the workspace directories.
func (w Workspace) Prepare() error {
	for _, dir := range []string{w.Root, w.SlidesDir(), w.MediaDir(), w.AudioDir(), w.ClipsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (w Workspace) SlidesDir() string { return filepath.Join(w.Root, slidesDir) }
func (w Workspace) MediaDir() string  { return filepath.Join(w.Root, mediaDir) }
func (w Workspace) AudioDir() string  { return filepath.Join(w.Root, audioDir) }
func (w Workspace) ClipsDir() string  { return filepath.Join(w.Root, clipsDir) }

// DeckPath is where the source presentation is copied.
func (w Workspace) DeckPath(ext string) string {
	return filepath.Join(w.Root, "deck"+ext)
}

// SnapshotPath is the rendered raster of slide index.
func (w Workspace) SnapshotPath(index int) string {
	return filepath.Join(w.SlidesDir(), fmt.Sprintf("slide_img%d.png", index+1))
}

// ImagePath is the k-th embedded picture of slide index.
func (w Workspace) ImagePath(index, k int, ext string) string {
	return filepath.Join(w.MediaDir(), fmt.Sprintf("slide%d_img_%d.%s", index+1, k, ext))
}

// RawAudioPath is the speech returned by the synthesis backend.
func (w Workspace) RawAudioPath(index int) string {
	return filepath.Join(w.AudioDir(), fmt.Sprintf("narration_raw_%d.mp3", index))
}

// AudioPath is the speech after playback-rate adjustment.
func (w Workspace) AudioPath(index int, rate float64) string {
	return filepath.Join(w.AudioDir(), fmt.Sprintf("narration_%d_%sx.mp3", index, strconv.FormatFloat(rate, 'f', -1, 64)))
}

// ClipPath is the rendered video of slide index.
func (w Workspace) ClipPath(index int) string {
	return filepath.Join(w.ClipsDir(), fmt.Sprintf("slide%d_lecture.mp4", index+1))
}

// FinalVideoPath is the concatenated lecture.
func (w Workspace) FinalVideoPath() string {
	return filepath.Join(w.Root, "final_lecture.mp4")
}

// HandoutBase is the lecture notes path without extension.
func (w Workspace) HandoutBase() string {
	return filepath.Join(w.Root, "lecture_notes")
}
