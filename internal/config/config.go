package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/lecture-flow/internal/models"
)

type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Speech      SpeechConfig      `yaml:"speech"`
	Search      SearchConfig      `yaml:"search"`
	Cache       CacheConfig       `yaml:"cache"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Render      RenderConfig      `yaml:"render"`
	Lecture     LectureConfig     `yaml:"lecture"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Store       StoreConfig       `yaml:"store"`
	Server      ServerConfig      `yaml:"server"`
}

// LLMConfig selects the text generation backend.
// Provider is "gemini" or "openai".
type LLMConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	APIKeys     []string `yaml:"api_keys"`
	BaseURL     string   `yaml:"base_url"`
	Temperature float32  `yaml:"temperature"`
}

type SpeechConfig struct {
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// SearchConfig configures web search enrichment. Search is skipped when
// APIKey is empty.
type SearchConfig struct {
	Endpoint        string   `yaml:"endpoint"`
	APIKey          string   `yaml:"api_key"`
	ResultsPerQuery int      `yaml:"results_per_query"`
	MaxSummaries    int      `yaml:"max_summaries"`
	MaxReferences   int      `yaml:"max_references"`
	Language        string   `yaml:"language"`
	Country         string   `yaml:"country"`
	ExcludeDomains  []string `yaml:"exclude_domains"`
}

// CacheConfig configures the search result cache. An empty RedisAddr keeps
// results in process memory.
type CacheConfig struct {
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	Prefix        string        `yaml:"prefix"`
	TTL           time.Duration `yaml:"ttl"`
}

type FFmpegConfig struct {
	Binary         string `yaml:"binary"`
	ProbeBinary    string `yaml:"probe_binary"`
	Encoder        string `yaml:"encoder"`
	Preset         string `yaml:"preset"`
	CRF            int    `yaml:"crf"`
	AudioCodec     string `yaml:"audio_codec"`
	AudioBitrate   string `yaml:"audio_bitrate"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	ReencodeConcat bool   `yaml:"reencode_concat"`
}

type RenderConfig struct {
	SofficeBinary string `yaml:"soffice_binary"`
	DPI           int    `yaml:"dpi"`
}

// LectureConfig holds the default narration directives.
type LectureConfig struct {
	Tone          string  `yaml:"tone"`
	Style         string  `yaml:"style"`
	Voice         string  `yaml:"voice"`
	Language      string  `yaml:"language"`
	TargetSeconds int     `yaml:"target_duration_sec"`
	Speed         float64 `yaml:"speed"`
}

// Directives returns the defaults as per-run narration directives.
func (l LectureConfig) Directives() *models.Directives {
	return &models.Directives{
		Tone:          l.Tone,
		Style:         l.Style,
		Voice:         l.Voice,
		Language:      l.Language,
		TargetSeconds: l.TargetSeconds,
		Speed:         l.Speed,
	}
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int           `yaml:"max_concurrent"`
	RunTimeout    time.Duration `yaml:"run_timeout"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads the YAML file at path, overlays secrets from the environment
// (and a .env file if present) and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	_ = godotenv.Load() // .env is optional
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" && c.LLM.Provider != "openai" {
		c.LLM.APIKeys = splitList(keys)
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		if c.LLM.Provider == "openai" && len(c.LLM.APIKeys) == 0 {
			c.LLM.APIKeys = []string{key}
		}
		if c.Speech.APIKey == "" {
			c.Speech.APIKey = key
		}
	}
	if key := os.Getenv("SERPAPI_API_KEY"); key != "" && c.Search.APIKey == "" {
		c.Search.APIKey = key
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Lecture.Speed < 0 {
		return fmt.Errorf("lecture.speed must be positive")
	}

	switch c.LLM.Provider {
	case "":
		c.LLM.Provider = "gemini"
	case "gemini", "openai":
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}

	if c.LLM.Model == "" {
		if c.LLM.Provider == "openai" {
			c.LLM.Model = "gpt-4o-mini"
		} else {
			c.LLM.Model = "gemini-2.5-flash"
		}
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.6
	}
	if c.Speech.Model == "" {
		c.Speech.Model = "tts-1"
	}

	if c.Search.Endpoint == "" {
		c.Search.Endpoint = "https://serpapi.com/search.json"
	}
	if c.Search.ResultsPerQuery == 0 {
		c.Search.ResultsPerQuery = 4
	}
	if c.Search.MaxSummaries == 0 {
		c.Search.MaxSummaries = 3
	}
	if c.Search.MaxReferences == 0 {
		c.Search.MaxReferences = 4
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "lecture-flow:search:"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 24 * time.Hour
	}

	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libx264"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "veryfast"
	}
	if c.FFmpeg.CRF == 0 {
		c.FFmpeg.CRF = 20
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.AudioBitrate == "" {
		c.FFmpeg.AudioBitrate = "192k"
	}
	if c.FFmpeg.Width == 0 {
		c.FFmpeg.Width = 1920
	}
	if c.FFmpeg.Height == 0 {
		c.FFmpeg.Height = 1080
	}

	if c.Render.SofficeBinary == "" {
		c.Render.SofficeBinary = "soffice"
	}
	if c.Render.DPI == 0 {
		c.Render.DPI = 220
	}

	if c.Lecture.Tone == "" {
		c.Lecture.Tone = "friendly and clear lecture tone"
	}
	if c.Lecture.Style == "" {
		c.Lecture.Style = "examples and key points"
	}
	if c.Lecture.Voice == "" {
		c.Lecture.Voice = "alloy"
	}
	if c.Lecture.Language == "" {
		c.Lecture.Language = "English"
	}
	if c.Lecture.TargetSeconds == 0 {
		c.Lecture.TargetSeconds = 60
	}
	if c.Lecture.Speed == 0 {
		c.Lecture.Speed = 1.0
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Store.Path == "" {
		c.Store.Path = "data/runs.db"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	return nil
}
