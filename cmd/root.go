package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KattaAkshaya/smart-data-cleaner/internal/config"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/dataset"
	"github.com/KattaAkshaya/smart-data-cleaner/internal/narrative"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string
	debug   bool
	// Retry/HTTP flags (override config if set)
	flagHTTPTimeoutSec   int
	flagRetryMaxAttempts int
	flagRetryBaseDelayMs int
	flagRetryMaxDelayMs  int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "smart-data-cleaner",
	Short: "Clean tabular data and score its quality",
	Long: `Smart Data Cleaner reads CSV or Excel files, runs a fixed cleaning
pipeline (drop empty columns, deduplicate, fill missing values, clip
outliers, normalize numeric text), and reports quality scores before
and after with a log of every action taken.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		if hint := errorHint(err); hint != "" {
			fmt.Fprintln(os.Stderr, "  Hint:", hint)
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.smart-data-cleaner/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxAttempts, "retry-max", 0, "max retry attempts on 429/5xx (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryBaseDelayMs, "retry-base-ms", 0, "base retry backoff in ms (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagRetryMaxDelayMs, "retry-max-ms", 0, "max retry backoff cap in ms (overrides config)")
}

func loadConfig() {
	if debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("retry-max") && flagRetryMaxAttempts > 0 {
		cfg.RetryMaxAttempts = flagRetryMaxAttempts
	}
	if f.Changed("retry-base-ms") && flagRetryBaseDelayMs > 0 {
		cfg.RetryBaseDelayMs = flagRetryBaseDelayMs
	}
	if f.Changed("retry-max-ms") && flagRetryMaxDelayMs > 0 {
		cfg.RetryMaxDelayMs = flagRetryMaxDelayMs
	}
}

// activeConfig returns the loaded config, falling back to defaults when
// loadConfig failed or was skipped.
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return &cfgpkg.Global{}
	}
	return c
}

// errorHint maps well-known failures to a one-line suggestion.
func errorHint(err error) string {
	var authErr *narrative.AuthError
	var rateErr *narrative.RateLimitError
	var unreachErr *narrative.UnreachableError
	switch {
	case errors.Is(err, dataset.ErrUnsupported):
		return "supported input formats are .csv, .tsv and .xlsx"
	case errors.As(err, &authErr):
		return "set OPENROUTER_API_KEY or add api_key via 'smart-data-cleaner config set api_key <key>'"
	case errors.As(err, &rateErr):
		return "rate limited by the API; retry later or raise --retry-max"
	case errors.As(err, &unreachErr):
		return "check your network connection and base_url setting"
	}
	return ""
}
