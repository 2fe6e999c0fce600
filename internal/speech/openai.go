package speech

import (
	"context"
	"fmt"
	"io"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

type openAIBackend struct {
	cli   *openai.Client
	model string
}

// NewOpenAIBackend creates a Backend calling the OpenAI speech endpoint.
func NewOpenAIBackend(cfg config.SpeechConfig) Backend {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &openAIBackend{
		cli:   openai.NewClientWithConfig(clientConfig),
		model: cfg.Model,
	}
}

func (o *openAIBackend) Speak(ctx context.Context, text, voice string) (io.ReadCloser, error) {
	resp, err := o.cli.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("create speech: %w", err)
	}
	return resp, nil
}
