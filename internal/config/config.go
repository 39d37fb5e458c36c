// Package config loads docnorm configuration from defaults, an optional
// YAML file, and DOCNORM_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full docnorm configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// ProviderConfig configures the remote normalizer client.
type ProviderConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	BaseURL        string        `mapstructure:"base_url"`
	Model          string        `mapstructure:"model"`
	MaxTokens      int           `mapstructure:"max_tokens"`
	Temperature    float64       `mapstructure:"temperature"`
	TopP           float64       `mapstructure:"top_p"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// PipelineConfig configures batching and retry behavior.
type PipelineConfig struct {
	BatchSize  int           `mapstructure:"batch_size"`
	BatchDelay time.Duration `mapstructure:"batch_delay"`
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

// Load reads configuration. cfgFile may be empty, in which case
// ./docnorm.yaml and ~/.docnorm/config.yaml are tried; a missing config file
// is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	// api_key and base_url default to empty so the keys are known to viper
	// and can be supplied via environment variables alone.
	v.SetDefault("provider", map[string]any{
		"api_key":         defaults.Provider.APIKey,
		"base_url":        defaults.Provider.BaseURL,
		"model":           defaults.Provider.Model,
		"max_tokens":      defaults.Provider.MaxTokens,
		"temperature":     defaults.Provider.Temperature,
		"top_p":           defaults.Provider.TopP,
		"connect_timeout": defaults.Provider.ConnectTimeout,
		"request_timeout": defaults.Provider.RequestTimeout,
	})
	v.SetDefault("pipeline", map[string]any{
		"batch_size":  defaults.Pipeline.BatchSize,
		"batch_delay": defaults.Pipeline.BatchDelay,
		"max_retries": defaults.Pipeline.MaxRetries,
		"retry_delay": defaults.Pipeline.RetryDelay,
	})

	// Environment variables with DOCNORM_ prefix, e.g. DOCNORM_PROVIDER_API_KEY.
	v.SetEnvPrefix("DOCNORM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("docnorm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.docnorm")
	}

	// Config file is optional.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects nonsensical settings.
func (c *Config) Validate() error {
	if c.Pipeline.BatchSize < 1 {
		return fmt.Errorf("pipeline.batch_size must be at least 1, got %d", c.Pipeline.BatchSize)
	}
	if c.Pipeline.MaxRetries < 0 {
		return fmt.Errorf("pipeline.max_retries must not be negative, got %d", c.Pipeline.MaxRetries)
	}
	if c.Provider.MaxTokens < 1 {
		return fmt.Errorf("provider.max_tokens must be at least 1, got %d", c.Provider.MaxTokens)
	}
	return nil
}
