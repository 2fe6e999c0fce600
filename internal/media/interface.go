package media

import "context"

// ClipRenderer combines a still image and an audio track into a video clip
// whose duration equals the audio duration.
type ClipRenderer interface {
	Render(ctx context.Context, imagePath, audioPath, outPath string) error
}

// Concatenator joins clips, in order, into one video. An empty clip list
// produces no file and returns "".
type Concatenator interface {
	Concat(ctx context.Context, clips []string, outPath string) (string, error)
}

// Prober reports the duration of a media file in seconds.
type Prober interface {
	Duration(ctx context.Context, path string) (float64, error)
}
