package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/lecture-flow/internal/cache"
	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/enricher"
	"github.com/nguyentantai21042004/lecture-flow/internal/extractor"
	"github.com/nguyentantai21042004/lecture-flow/internal/handout"
	"github.com/nguyentantai21042004/lecture-flow/internal/llm"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"github.com/nguyentantai21042004/lecture-flow/internal/media"
	"github.com/nguyentantai21042004/lecture-flow/internal/narration"
	"github.com/nguyentantai21042004/lecture-flow/internal/processor"
	"github.com/nguyentantai21042004/lecture-flow/internal/quiz"
	"github.com/nguyentantai21042004/lecture-flow/internal/speech"
	"github.com/nguyentantai21042004/lecture-flow/internal/store"
	"github.com/nguyentantai21042004/lecture-flow/pkg/executor"
)

var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:           "pipeline",
	Short:         "Turn slide decks into narrated lecture videos",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(runCmd, watchCmd, serveCmd, runsCmd)
}

// app holds the long-lived components shared by every subcommand.
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	store     store.Store
	cache     cache.Client
	processor processor.Processor
}

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}

// newApp wires every collaborator from cfg.
func newApp(ctx context.Context) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Lecture Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "LLM: %s (%s), %d key(s)", cfg.LLM.Provider, cfg.LLM.Model, len(cfg.LLM.APIKeys))
	log.Info(ctx, "Max concurrent runs: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	gen, err := llm.New(ctx, cfg.LLM, log)
	if err != nil {
		return nil, err
	}
	if cfg.Speech.APIKey == "" {
		return nil, fmt.Errorf("speech: OPENAI_API_KEY or speech.api_key is required")
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	searchCache := cache.New(ctx, cfg.Cache, log)
	var searcher enricher.Searcher
	if cfg.Search.APIKey != "" {
		searcher = enricher.NewSerpAPI(cfg.Search)
	} else {
		log.Warn(ctx, "No search API key, slides will not be enriched")
	}

	exec := executor.New()
	proc := processor.New(cfg, processor.Dependencies{
		Extractor: extractor.New(extractor.NewSnapshotRenderer(cfg.Render, exec, log), log),
		Enricher:  enricher.New(searcher, searchCache, cfg.Search, cfg.Cache.TTL, log),
		Content:   narration.NewContent(gen, log),
		Script:    narration.NewScript(gen, log),
		Quiz:      quiz.New(gen, log),
		Media:     media.New(cfg.FFmpeg, exec, log),
		Speech:    speech.NewOpenAIBackend(cfg.Speech),
		Handout:   handout.New(log),
		Store:     st,
		Executor:  exec,
	}, log)

	return &app{
		cfg:       cfg,
		logger:    log,
		store:     st,
		cache:     searchCache,
		processor: proc,
	}, nil
}

func (a *app) Close() {
	a.cache.Close()
	a.store.Close()
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
