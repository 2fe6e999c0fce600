package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-flow/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process every deck dropped into the input folder",
	Args:  cobra.NoArgs,
	RunE:  watchInput,
}

func watchInput(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	w, err := watcher.New(a.cfg.Paths.Input, a.processor.Process, a.logger, a.cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "Lecture Pipeline is ready!")
	a.logger.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
	a.logger.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.logger.Info(ctx, "Press Ctrl+C to stop")
	a.logger.Info(ctx, "========================================")

	err = w.Start(ctx)
	a.logger.Info(context.Background(), "Lecture Pipeline stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
