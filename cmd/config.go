package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KattaAkshaya/smart-data-cleaner/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set Smart Data Cleaner configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		fmt.Printf("drop_empty_columns: %t\n", c.DropEmptyColumns)
		fmt.Printf("remove_duplicates: %t\n", c.RemoveDuplicates)
		fmt.Printf("fill_missing: %t\n", c.FillMissing)
		fmt.Printf("handle_outliers: %t\n", c.HandleOutliers)
		fmt.Printf("normalize_types: %t\n", c.NormalizeTypes)
		fmt.Printf("narrative_enabled: %t\n", c.NarrativeEnabled)
		fmt.Printf("api_key: %s\n", mask(c.APIKey))
		fmt.Printf("model: %s\n", c.Model)
		if c.BaseURL != "" {
			fmt.Printf("base_url: %s\n", c.BaseURL)
		}
		fmt.Printf("max_tokens: %d\n", c.MaxTokens)
		fmt.Printf("temperature: %.3f\n", c.Temperature)
		fmt.Printf("http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		fmt.Printf("retry_max_attempts: %d\n", c.RetryMaxAttempts)
		fmt.Printf("listen_addr: %s\n", c.ListenAddr)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c := cfg
		if c == nil {
			loaded, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			c = loaded
		}
		switch key {
		case "drop_empty_columns", "remove_duplicates", "fill_missing",
			"handle_outliers", "normalize_types", "narrative_enabled":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			switch key {
			case "drop_empty_columns":
				c.DropEmptyColumns = b
			case "remove_duplicates":
				c.RemoveDuplicates = b
			case "fill_missing":
				c.FillMissing = b
			case "handle_outliers":
				c.HandleOutliers = b
			case "normalize_types":
				c.NormalizeTypes = b
			case "narrative_enabled":
				c.NarrativeEnabled = b
			}
		case "api_key":
			c.APIKey = val
		case "model":
			c.Model = val
		case "base_url":
			c.BaseURL = val
		case "max_tokens":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for max_tokens: %w", err)
			}
			c.MaxTokens = i
		case "temperature":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for temperature: %w", err)
			}
			c.Temperature = f
		case "http_timeout_sec":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
			}
			c.HTTPTimeoutSec = i
		case "retry_max_attempts":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for retry_max_attempts: %v", val)
			}
			c.RetryMaxAttempts = i
		case "listen_addr":
			c.ListenAddr = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		cfg = c
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
