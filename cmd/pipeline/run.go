package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/models"
	"github.com/nguyentantai21042004/lecture-flow/internal/processor"
)

var runFlags struct {
	tone          string
	style         string
	voice         string
	language      string
	targetSeconds int
	speed         float64
}

var runCmd = &cobra.Command{
	Use:   "run <deck.pptx>",
	Short: "Narrate one deck and render its lecture video",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeck,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runFlags.tone, "tone", "", "narration tone (default from config)")
	f.StringVar(&runFlags.style, "style", "", "description style")
	f.StringVar(&runFlags.voice, "voice", "", "speech voice")
	f.StringVar(&runFlags.language, "language", "", "narration language")
	f.IntVar(&runFlags.targetSeconds, "target-seconds", 0, "target narration length per slide")
	f.Float64Var(&runFlags.speed, "speed", 0, "playback speed of the narration")
}

func runDeck(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	progress := newSlideProgress(os.Stderr)
	report, runErr := a.processor.Run(ctx, processor.Job{
		DeckPath:   args[0],
		Directives: directivesFromFlags(cmd, a.cfg.Lecture),
		Observer:   progress,
	})
	progress.Finish()

	if report != nil {
		printReport(report)
	}
	return runErr
}

// directivesFromFlags starts from the configured lecture defaults and
// applies the flags the user set.
func directivesFromFlags(cmd *cobra.Command, l config.LectureConfig) *models.Directives {
	d := l.Directives()
	flags := cmd.Flags()
	if flags.Changed("tone") {
		d.Tone = runFlags.tone
	}
	if flags.Changed("style") {
		d.Style = runFlags.style
	}
	if flags.Changed("voice") {
		d.Voice = runFlags.voice
	}
	if flags.Changed("language") {
		d.Language = runFlags.language
	}
	if flags.Changed("target-seconds") {
		d.TargetSeconds = runFlags.targetSeconds
	}
	if flags.Changed("speed") {
		d.Speed = runFlags.speed
	}
	return d
}

func printReport(r *models.Report) {
	fmt.Println()
	statusColor(r.Status).Printf("Run %s: %s\n", r.ID, statusLabel(r))
	fmt.Printf("  Slides:    %d\n", r.TotalSlides)
	if len(r.FailedSlides) > 0 {
		color.Yellow("  No clip:   slides %v", r.FailedSlides)
	}
	if r.FinalVideo != "" {
		fmt.Printf("  Video:     %s\n", r.FinalVideo)
	}
	if r.Handout != "" {
		fmt.Printf("  Handout:   %s\n", r.Handout)
	}
	fmt.Printf("  Quiz:      %d questions\n", len(r.Quiz.Questions))
	fmt.Printf("  Workspace: %s\n", r.WorkDir)
	if r.Error != "" {
		color.Red("  Error:     %s", r.Error)
	}
}

func statusLabel(r *models.Report) string {
	switch r.Status {
	case models.StatusComplete:
		return "lecture video complete"
	case models.StatusPartial:
		return fmt.Sprintf("lecture video missing %d slide(s)", len(r.FailedSlides))
	case models.StatusNoVideo:
		return "no lecture video produced"
	default:
		return string(r.Status)
	}
}

func statusColor(s models.RunStatus) *color.Color {
	switch s {
	case models.StatusComplete:
		return color.New(color.FgGreen, color.Bold)
	case models.StatusPartial, models.StatusRunning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
