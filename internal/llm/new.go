package llm

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

// New builds the Generator selected by cfg.Provider. Backend clients are
// created here, once, and reused for every call.
func New(ctx context.Context, cfg config.LLMConfig, log logger.Logger) (Generator, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("llm: no API key configured for %s", cfg.Provider)
	}

	switch cfg.Provider {
	case "openai":
		return newOpenAI(cfg), nil
	case "gemini", "":
		return newGemini(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
