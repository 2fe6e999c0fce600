package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
	"google.golang.org/genai"
)

// contentModel is the part of *genai.Models used here.
type contentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type geminiGenerator struct {
	mu          sync.Mutex
	models      []contentModel
	currentKey  int
	model       string
	temperature float32
	logger      logger.Logger
}

func newGemini(ctx context.Context, cfg config.LLMConfig, log logger.Logger) (*geminiGenerator, error) {
	g := &geminiGenerator{
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      log,
	}
	for i, key := range cfg.APIKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client %d: %w", i+1, err)
		}
		g.models = append(g.models, client.Models)
	}
	return g, nil
}

// Generate calls Gemini, rotating API keys on 429 / quota errors.
func (g *geminiGenerator) Generate(ctx context.Context, p Prompt) (string, error) {
	contents, err := geminiContents(p)
	if err != nil {
		return "", err
	}
	cfg := g.contentConfig(p)

	var lastErr error
	for range len(g.models) {
		idx, m := g.current()

		result, err := m.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		text := responseText(result)
		if text == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiGenerator) current() (int, contentModel) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.models[g.currentKey]
}

// rotateKey moves past from unless another call already rotated.
func (g *geminiGenerator) rotateKey(from int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == from {
		g.currentKey = (g.currentKey + 1) % len(g.models)
	}
}

func (g *geminiGenerator) contentConfig(p Prompt) *genai.GenerateContentConfig {
	temp := p.Temperature
	if temp == 0 {
		temp = g.temperature
	}
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr(temp)}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}
	if p.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

func geminiContents(p Prompt) ([]*genai.Content, error) {
	parts := []*genai.Part{genai.NewPartFromText(p.User)}
	for _, path := range p.Images {
		data, mimeType, err := readImage(path)
		if err != nil {
			return nil, err
		}
		parts = append(parts, genai.NewPartFromBytes(data, mimeType))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}

func responseText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text += part.Text
		}
	}
	return text
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
