// Package config loads weavr settings from the config file, a local
// .env file, and WEAVR_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MergeOptions are the defaults applied when resolving hunks with the
// accept-both strategy.
type MergeOptions struct {
	// DefaultStrategy is applied by headless runs: "left", "right",
	// "both", or "manual" (manual means leave unresolved).
	DefaultStrategy string `mapstructure:"default_strategy"`
	Deduplicate     bool   `mapstructure:"deduplicate"`
	TrimWhitespace  bool   `mapstructure:"trim_whitespace"`
}

// AIOptions configure the AI resolution provider.
type AIOptions struct {
	Enabled       bool   `mapstructure:"enabled"`
	Provider      string `mapstructure:"provider"`
	Model         string `mapstructure:"model"`
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	Timeout       int    `mapstructure:"timeout"` // seconds
	MinConfidence int    `mapstructure:"min_confidence"`
}

// Config holds all weavr settings.
type Config struct {
	Merge MergeOptions `mapstructure:"merge"`
	AI    AIOptions    `mapstructure:"ai"`

	Debug   bool   `mapstructure:"debug"`
	LogFile string `mapstructure:"log_file"`
}

const (
	DefaultStrategy      = "manual"
	DefaultProvider      = "openai"
	DefaultModel         = "gpt-4o"
	DefaultBaseURL       = "https://api.openai.com/v1"
	DefaultTimeout       = 60 // seconds
	DefaultMinConfidence = 70
	DefaultConfigDir     = ".weavr"
)

// Load reads the config file from ~/.weavr, overlays .env from the
// working directory, then applies WEAVR_* environment variables. A
// missing config file is not an error.
func Load() (*Config, error) {
	// .env values become plain environment variables; existing ones win.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir())

	v.SetEnvPrefix("WEAVR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("merge.default_strategy", DefaultStrategy)
	v.SetDefault("merge.deduplicate", false)
	v.SetDefault("merge.trim_whitespace", false)
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.provider", DefaultProvider)
	v.SetDefault("ai.model", DefaultModel)
	v.SetDefault("ai.base_url", DefaultBaseURL)
	v.SetDefault("ai.timeout", DefaultTimeout)
	v.SetDefault("ai.min_confidence", DefaultMinConfidence)
	v.SetDefault("debug", false)
	v.SetDefault("log_file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// OPENAI_API_KEY wins over the config file's ai.api_key.
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.AI.APIKey = key
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// validate rejects values the rest of the program cannot act on.
func (c *Config) validate() error {
	switch c.Merge.DefaultStrategy {
	case "left", "right", "both", "manual":
	default:
		return fmt.Errorf("invalid default strategy %q", c.Merge.DefaultStrategy)
	}
	if c.AI.MinConfidence < 0 || c.AI.MinConfidence > 100 {
		return fmt.Errorf("ai.min_confidence must be 0-100, got %d", c.AI.MinConfidence)
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %d", c.AI.Timeout)
	}
	return nil
}

// configDir returns ~/.weavr, creating it if missing.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, DefaultConfigDir)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return dir
}
