package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KattaAkshaya/smart-data-cleaner/internal/narrative"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/pipeline"
)

// Global configuration structure.
type Global struct {
	// Cleaning stage toggles
	DropEmptyColumns bool `mapstructure:"drop_empty_columns" yaml:"drop_empty_columns"`
	RemoveDuplicates bool `mapstructure:"remove_duplicates" yaml:"remove_duplicates"`
	FillMissing      bool `mapstructure:"fill_missing" yaml:"fill_missing"`
	HandleOutliers   bool `mapstructure:"handle_outliers" yaml:"handle_outliers"`
	NormalizeTypes   bool `mapstructure:"normalize_types" yaml:"normalize_types"`

	// Narrative generation
	NarrativeEnabled bool    `mapstructure:"narrative_enabled" yaml:"narrative_enabled"`
	APIKey           string  `mapstructure:"api_key" yaml:"api_key"`
	Model            string  `mapstructure:"model" yaml:"model"`
	BaseURL          string  `mapstructure:"base_url" yaml:"base_url"`
	MaxTokens        int     `mapstructure:"max_tokens" yaml:"max_tokens"`
	Temperature      float64 `mapstructure:"temperature" yaml:"temperature"`

	// HTTP/Retry configuration
	HTTPTimeoutSec   int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	RetryMaxAttempts int `mapstructure:"retry_max_attempts" yaml:"retry_max_attempts"`
	RetryBaseDelayMs int `mapstructure:"retry_base_delay_ms" yaml:"retry_base_delay_ms"`
	RetryMaxDelayMs  int `mapstructure:"retry_max_delay_ms" yaml:"retry_max_delay_ms"`

	// Web UI
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.smart-data-cleaner/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".smart-data-cleaner")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("SDC")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("drop_empty_columns", true)
	v.SetDefault("remove_duplicates", true)
	v.SetDefault("fill_missing", true)
	v.SetDefault("handle_outliers", true)
	v.SetDefault("normalize_types", true)
	v.SetDefault("narrative_enabled", true)
	v.SetDefault("model", "google/gemini-2.0-flash-001")
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("temperature", 0.4)
	// HTTP/retry defaults
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("retry_max_attempts", 3)
	v.SetDefault("retry_base_delay_ms", 500)
	v.SetDefault("retry_max_delay_ms", 4000)
	// Web defaults
	v.SetDefault("listen_addr", "127.0.0.1:8080")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".smart-data-cleaner")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Pipeline maps the stage toggles onto pipeline options.
func (c *Global) Pipeline() pipeline.Options {
	return pipeline.Options{
		DropEmptyColumns: c.DropEmptyColumns,
		RemoveDuplicates: c.RemoveDuplicates,
		FillMissing:      c.FillMissing,
		HandleOutliers:   c.HandleOutliers,
		NormalizeTypes:   c.NormalizeTypes,
	}
}

// ResolveAPIKey prefers the OPENROUTER_API_KEY environment variable
// over the config file value.
func (c *Global) ResolveAPIKey() string {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		return key
	}
	return c.APIKey
}

// ClientConfig assembles the narrative client settings.
func (c *Global) ClientConfig() narrative.ClientConfig {
	return narrative.ClientConfig{
		APIKey:        c.ResolveAPIKey(),
		Model:         c.Model,
		BaseURL:       c.BaseURL,
		MaxTokens:     c.MaxTokens,
		Temperature:   c.Temperature,
		HTTPTimeout:   time.Duration(c.HTTPTimeoutSec) * time.Second,
		RetryMax:      c.RetryMaxAttempts,
		RetryBase:     time.Duration(c.RetryBaseDelayMs) * time.Millisecond,
		RetryMaxDelay: time.Duration(c.RetryMaxDelayMs) * time.Millisecond,
	}
}

// Generator returns the configured narrative generator, or nil when
// narration is disabled or no API key is available. A nil generator
// still yields templated report prose.
func (c *Global) Generator() narrative.Generator {
	if !c.NarrativeEnabled {
		return nil
	}
	cc := c.ClientConfig()
	if cc.APIKey == "" {
		return nil
	}
	return narrative.NewClient(cc)
}
