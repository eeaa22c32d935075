// Package config provides Viper-based hierarchical configuration management
// for the import tool: defaults, then an optional config file, then
// MOVEIMPORT_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Import struct {
		// Precision is the monetary rounding unit for balance checks,
		// as a decimal string (e.g. "0.01").
		Precision string `mapstructure:"precision" yaml:"precision"`
		// Encoding is the default file encoding for text formats.
		Encoding string `mapstructure:"encoding" yaml:"encoding"`
		// FECSeparator is the default FEC field separator: "pipe" or "tab".
		FECSeparator string `mapstructure:"fec_separator" yaml:"fec_separator"`
	} `mapstructure:"import" yaml:"import"`
}

// Load initializes Viper and returns the validated configuration.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("import.precision", "0.01")
	v.SetDefault("import.encoding", "utf-8")
	v.SetDefault("import.fec_separator", "pipe")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.move-import")
	v.AddConfigPath(".move-import")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MOVEIMPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A missing file is fine; a broken one is worth a warning but
			// not a hard failure.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	precision, err := decimal.NewFromString(config.Import.Precision)
	if err != nil || precision.Sign() <= 0 {
		return fmt.Errorf("invalid import precision: %s", config.Import.Precision)
	}
	if config.Import.FECSeparator != "pipe" && config.Import.FECSeparator != "tab" {
		return fmt.Errorf("invalid FEC separator: %s (must be 'pipe' or 'tab')", config.Import.FECSeparator)
	}
	return nil
}

// Precision returns the configured rounding unit as a decimal.
func (c *Config) Precision() decimal.Decimal {
	precision, err := decimal.NewFromString(c.Import.Precision)
	if err != nil {
		return decimal.New(1, -2)
	}
	return precision
}

// Separator returns the configured FEC separator as a rune.
func (c *Config) Separator() rune {
	if c.Import.FECSeparator == "tab" {
		return '\t'
	}
	return '|'
}

// ConfigureLogging builds a logrus logger from the configuration.
func ConfigureLogging(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
	return logger
}
