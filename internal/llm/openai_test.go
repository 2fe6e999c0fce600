package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

func chatServer(t *testing.T, reply string, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "1",
			"choices": []map[string]any{{
				"index":   0,
				"message": map[string]any{"role": "assistant", "content": reply},
			}},
		})
	}))
}

func TestOpenAIGenerate(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, "narration", &seen)
	defer srv.Close()

	gen, err := New(context.Background(), config.LLMConfig{
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		APIKeys:     []string{"test-key"},
		BaseURL:     srv.URL,
		Temperature: 0.7,
	}, logger.Nop())
	require.NoError(t, err)

	got, err := gen.Generate(context.Background(), Prompt{System: "be brief", User: "explain", JSON: true})
	require.NoError(t, err)
	assert.Equal(t, "narration", got)

	assert.Equal(t, "gpt-4o-mini", seen["model"])
	messages := seen["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	format := seen["response_format"].(map[string]any)
	assert.Equal(t, "json_object", format["type"])
}

func TestOpenAIGenerateWithImages(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "pic.png")
	require.NoError(t, os.WriteFile(img, []byte{0x89, 'P', 'N', 'G'}, 0644))

	var seen map[string]any
	srv := chatServer(t, "ok", &seen)
	defer srv.Close()

	gen := newOpenAI(config.LLMConfig{Model: "m", APIKeys: []string{"test-key"}, BaseURL: srv.URL})
	_, err := gen.Generate(context.Background(), Prompt{User: "look", Images: []string{img}})
	require.NoError(t, err)

	messages := seen["messages"].([]any)
	require.Len(t, messages, 1)
	content := messages[0].(map[string]any)["content"].([]any)
	require.Len(t, content, 2)
	image := content[1].(map[string]any)["image_url"].(map[string]any)
	assert.True(t, strings.HasPrefix(image["url"].(string), "data:image/png;base64,"))
}

func TestOpenAIEmptyChoice(t *testing.T) {
	var seen map[string]any
	srv := chatServer(t, "", &seen)
	defer srv.Close()

	gen := newOpenAI(config.LLMConfig{Model: "m", APIKeys: []string{"test-key"}, BaseURL: srv.URL})
	_, err := gen.Generate(context.Background(), Prompt{User: "x"})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: "openai"}, logger.Nop())
	assert.Error(t, err)

	_, err = New(context.Background(), config.LLMConfig{Provider: "other", APIKeys: []string{"k"}}, logger.Nop())
	assert.Error(t, err)
}

func TestImageDataURL(t *testing.T) {
	dir := t.TempDir()
	jpg := filepath.Join(dir, "a.JPG")
	require.NoError(t, os.WriteFile(jpg, []byte("x"), 0644))
	url, err := imageDataURL(jpg)
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,eA==", url)

	odd := filepath.Join(dir, "b.bin")
	require.NoError(t, os.WriteFile(odd, []byte("x"), 0644))
	url, err = imageDataURL(odd)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
}
