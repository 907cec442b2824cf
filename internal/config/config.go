// Package config loads command-line settings from flags, MIXABLE_*
// environment variables and an optional mixable.yaml file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Keys understood by Load. Flags bound to a viper instance use the same
// names with '-' in place of '_'.
const (
	KeyLogLevel = "log_level"
	KeyQuiet    = "quiet"
	KeyNoColor  = "no_color"
	KeyFormat   = "format"
	KeyDryRun   = "dry_run"
)

// Diagnostic output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// EnvPrefix prefixes environment overrides, e.g. MIXABLE_LOG_LEVEL.
const EnvPrefix = "MIXABLE"

// Config holds the resolved settings.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Quiet    bool   `mapstructure:"quiet"`
	NoColor  bool   `mapstructure:"no_color"`
	Format   string `mapstructure:"format"`
	DryRun   bool   `mapstructure:"dry_run"`
}

// Load reads settings into a Config. When file is empty a mixable.yaml in
// the working directory is used if present; a named file must exist.
func Load(v *viper.Viper, file string) (*Config, error) {
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyNoColor, false)
	v.SetDefault(KeyFormat, FormatText)
	v.SetDefault(KeyDryRun, false)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("mixable")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("format must be %q or %q, got: %s", FormatText, FormatJSON, cfg.Format)
	}

	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}

	return nil
}

func parseLevel(s string) (zapcore.Level, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}

	return level, nil
}

// Logger builds a development logger at the configured level writing to
// stderr. Quiet mode returns a no-op logger.
func (c *Config) Logger() (*zap.Logger, error) {
	if c.Quiet {
		return zap.NewNop(), nil
	}

	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true

	if c.NoColor {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return zc.Build()
}
