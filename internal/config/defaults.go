package config

import "time"

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Model:          "gpt-4o-mini",
			MaxTokens:      4096,
			Temperature:    0.1,
			TopP:           0.9,
			ConnectTimeout: 5 * time.Second,
			RequestTimeout: 30 * time.Second,
		},
		Pipeline: PipelineConfig{
			BatchSize:  5,
			BatchDelay: time.Second,
			MaxRetries: 3,
			RetryDelay: time.Second,
		},
	}
}
