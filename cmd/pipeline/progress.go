package main

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// slideProgress renders one progress bar step per slide. The bar is created
// on the first slide, once the deck size is known.
type slideProgress struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newSlideProgress(w io.Writer) *slideProgress {
	return &slideProgress{w: w}
}

func (p *slideProgress) SlideStarted(index, total int, title string) {
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "│",
				BarEnd:        "│",
			}),
		)
	}
	p.bar.Describe(fmt.Sprintf("Slide %d/%d %s", index+1, total, truncate(title, 30)))
}

func (p *slideProgress) SlideFinished(index, total int, verified bool) {
	if p.bar == nil {
		return
	}
	if !verified {
		p.bar.Describe(fmt.Sprintf("Slide %d/%d (no clip)", index+1, total))
	}
	_ = p.bar.Add(1)
}

func (p *slideProgress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	fmt.Fprintln(p.w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
