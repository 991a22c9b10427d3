package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr          string        `env:"HTTP_ADDR"            envDefault:":8080"`
	TogetherAPIKey    string        `env:"TOGETHER_API_KEY,required,notEmpty"`
	HeliconeAPIKey    string        `env:"HELICONE_API_KEY"`
	LLMBaseURL        string        `env:"LLM_BASE_URL"         envDefault:"https://together.helicone.ai/v1"`
	LLMModel          string        `env:"LLM_MODEL"            envDefault:"meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo"`
	SummaryMaxTokens  int64         `env:"SUMMARY_MAX_TOKENS"   envDefault:"1024"`
	LLMMaxRetries     int           `env:"LLM_MAX_RETRIES"      envDefault:"2"`
	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT"        envDefault:"3s"`
	FetchMaxBodyBytes int64         `env:"FETCH_MAX_BODY_BYTES" envDefault:"5242880"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"      envDefault:"45s"`
	LogLevel          string        `env:"LOG_LEVEL"            envDefault:"info"`
}

func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.FetchTimeout <= 0 {
		return Config{}, fmt.Errorf("FETCH_TIMEOUT must be positive (value = %s)", cfg.FetchTimeout)
	}
	if cfg.SummaryMaxTokens <= 0 {
		return Config{}, fmt.Errorf("SUMMARY_MAX_TOKENS must be positive (value = %d)", cfg.SummaryMaxTokens)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
