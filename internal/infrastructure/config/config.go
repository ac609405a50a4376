package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	AI        AIConfig
	STT       STTConfig
	Stats     StatsConfig
	Tracking  TrackingConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// AIConfig holds generation/classification capability configuration.
type AIConfig struct {
	APIKey      string        `envconfig:"AI_API_KEY"`
	Model       string        `envconfig:"AI_MODEL" default:"gemini-2.0-flash"`
	Timeout     time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`
	Temperature float32       `envconfig:"AI_TEMPERATURE" default:"0.1"`
}

// STTConfig holds the transcription service configuration.
type STTConfig struct {
	BaseURL string        `envconfig:"STT_URL" default:"http://localhost:9000"`
	Timeout time.Duration `envconfig:"STT_TIMEOUT" default:"60s"`
}

// StatsConfig holds the statistics collaborator configuration.
type StatsConfig struct {
	BaseURL string        `envconfig:"STATS_URL" default:"http://localhost:9100"`
	Timeout time.Duration `envconfig:"STATS_TIMEOUT" default:"5s"`
}

// TrackingConfig holds behavioral tracking policy knobs.
type TrackingConfig struct {
	// SilenceThreshold is the quiet period before a nag becomes eligible.
	SilenceThreshold time.Duration `envconfig:"SILENCE_THRESHOLD" default:"5m"`
	// MinClipboardChars gates nags on clipboard context length.
	MinClipboardChars int `envconfig:"MIN_CLIPBOARD_CHARS" default:"10"`
	// DefaultUserID routes turns that arrive without a user id.
	DefaultUserID string `envconfig:"DEFAULT_USER_ID" default:"dev1"`
	// StatsWindow is the lookback window for the play ratio.
	StatsWindow time.Duration `envconfig:"STATS_WINDOW" default:"72h"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		AI: AIConfig{
			Model:       "gemini-2.0-flash",
			Timeout:     30 * time.Second,
			Temperature: 0.1,
		},
		STT: STTConfig{
			BaseURL: "http://localhost:9000",
			Timeout: 60 * time.Second,
		},
		Stats: StatsConfig{
			BaseURL: "http://localhost:9100",
			Timeout: 5 * time.Second,
		},
		Tracking: TrackingConfig{
			SilenceThreshold:  5 * time.Minute,
			MinClipboardChars: 10,
			DefaultUserID:     "dev1",
			StatsWindow:       72 * time.Hour,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
