// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Supported store backends.
const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Supported report formats.
var ReportFormats = []string{"text", "json", "yaml", "html"}

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Store struct {
		Backend string `mapstructure:"backend" yaml:"backend"`
		Path    string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"store" yaml:"store"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`

	Alerts struct {
		LowBalance       float64 `mapstructure:"low_balance" yaml:"low_balance"`
		WeeklyExpense    float64 `mapstructure:"weekly_expense" yaml:"weekly_expense"`
		GoalDeadlineDays int     `mapstructure:"goal_deadline_days" yaml:"goal_deadline_days"`
	} `mapstructure:"alerts" yaml:"alerts"`

	Import struct {
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"import" yaml:"import"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// When configFile is empty the standard locations are searched.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.finanai")
		v.AddConfigPath(".finanai")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("FINANAI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. API key always comes from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("store.backend", BackendJSON)
	v.SetDefault("store.path", "")

	v.SetDefault("report.format", "text")

	v.SetDefault("alerts.low_balance", 100.0)
	v.SetDefault("alerts.weekly_expense", 1000.0)
	v.SetDefault("alerts.goal_deadline_days", 7)

	v.SetDefault("import.rules_file", "")

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Store.Backend {
	case BackendJSON, BackendYAML, BackendCSV, BackendSQLite:
	default:
		return fmt.Errorf("invalid store backend: %s (must be one of json, yaml, csv, sqlite)", config.Store.Backend)
	}

	if !isReportFormat(config.Report.Format) {
		return fmt.Errorf("invalid report format: %s (must be one of %v)", config.Report.Format, ReportFormats)
	}

	if config.Alerts.LowBalance < 0 {
		return fmt.Errorf("alerts.low_balance must not be negative, got: %f", config.Alerts.LowBalance)
	}
	if config.Alerts.WeeklyExpense <= 0 {
		return fmt.Errorf("alerts.weekly_expense must be positive, got: %f", config.Alerts.WeeklyExpense)
	}
	if config.Alerts.GoalDeadlineDays < 1 || config.Alerts.GoalDeadlineDays > 365 {
		return fmt.Errorf("alerts.goal_deadline_days must be between 1 and 365, got: %d", config.Alerts.GoalDeadlineDays)
	}

	if config.AI.Enabled {
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

func isReportFormat(format string) bool {
	for _, f := range ReportFormats {
		if f == format {
			return true
		}
	}
	return false
}

// CoachEnabled reports whether AI coaching can run.
func (c *Config) CoachEnabled() bool {
	return c.AI.Enabled && c.AI.APIKey != ""
}

// StorePath returns the configured store location, or the backend's default
// location under the user's data directory.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataDir(), defaultStoreName(c.Store.Backend))
}

func defaultStoreName(backend string) string {
	switch backend {
	case BackendYAML:
		return "finanai.yaml"
	case BackendCSV:
		return "csv"
	case BackendSQLite:
		return "finanai.db"
	default:
		return "finanai.json"
	}
}

// DataDir returns $HOME/.finanai, falling back to .finanai in the working directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".finanai"
	}
	return filepath.Join(home, ".finanai")
}
