package llm

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

type openAIGenerator struct {
	cli         *openai.Client
	model       string
	temperature float32
}

func newOpenAI(cfg config.LLMConfig) *openAIGenerator {
	clientConfig := openai.DefaultConfig(cfg.APIKeys[0])
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &openAIGenerator{
		cli:         openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

func (o *openAIGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	user, err := userMessage(p)
	if err != nil {
		return "", err
	}

	var messages []openai.ChatCompletionMessage
	if p.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: p.System,
		})
	}
	messages = append(messages, user)

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
	}
	if p.Temperature != 0 {
		req.Temperature = p.Temperature
	}
	if p.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := o.cli.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func userMessage(p Prompt) (openai.ChatCompletionMessage, error) {
	if len(p.Images) == 0 {
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: p.User}, nil
	}

	parts := []openai.ChatMessagePart{{Type: openai.ChatMessagePartTypeText, Text: p.User}}
	for _, path := range p.Images {
		url, err := imageDataURL(path)
		if err != nil {
			return openai.ChatCompletionMessage{}, err
		}
		parts = append(parts, openai.ChatMessagePart{
			Type:     openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{URL: url},
		})
	}
	return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, MultiContent: parts}, nil
}
