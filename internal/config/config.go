// Package config loads CLI configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the rapidcaptcha CLI configuration.
type Config struct {
	APIKey  string `mapstructure:"rapidcaptcha_api_key"`
	BaseURL string `mapstructure:"rapidcaptcha_url"`

	TimeoutSeconds      int64  `mapstructure:"timeout_seconds"`
	MaxRetries          int    `mapstructure:"max_retries"`
	RetryDelaySeconds   int64  `mapstructure:"retry_delay_seconds"`
	PollIntervalSeconds int64  `mapstructure:"poll_interval_seconds"`
	LogLevel            string `mapstructure:"log_level"`

	Timeout      time.Duration `mapstructure:"-"`
	RetryDelay   time.Duration `mapstructure:"-"`
	PollInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables, with a .env
// file as a fallback source.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()

	v.SetDefault("rapidcaptcha_url", "https://rapidcaptcha.xyz")
	v.SetDefault("timeout_seconds", 300)
	v.SetDefault("max_retries", 3)
	v.SetDefault("retry_delay_seconds", 2)
	v.SetDefault("poll_interval_seconds", 5)
	v.SetDefault("log_level", "info")

	for _, key := range []string{
		"rapidcaptcha_api_key",
		"rapidcaptcha_url",
		"timeout_seconds",
		"max_retries",
		"retry_delay_seconds",
		"poll_interval_seconds",
		"log_level",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be positive)")
	}
	if cfg.MaxRetries < 0 {
		return nil, fmt.Errorf("invalid max_retries (must be non-negative)")
	}
	if cfg.RetryDelaySeconds < 0 {
		return nil, fmt.Errorf("invalid retry_delay_seconds (must be non-negative)")
	}
	if cfg.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid poll_interval_seconds (must be positive)")
	}

	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	cfg.RetryDelay = time.Duration(cfg.RetryDelaySeconds) * time.Second
	cfg.PollInterval = time.Duration(cfg.PollIntervalSeconds) * time.Second

	return &cfg, nil
}
