package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-flow/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  serveAPI,
}

func serveAPI(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	api := httpapi.New(ctx, a.processor, a.store, a.cfg.Paths.Input, filepath.Join(a.cfg.Paths.Input, "uploads"), a.logger)
	server := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "HTTP API listening on %s", a.cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info(context.Background(), "Shutdown signal received")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn(shutdownCtx, "HTTP shutdown: %v", err)
	}
	a.logger.Info(shutdownCtx, "Waiting for running lectures to stop...")
	api.Wait()
	return nil
}
