package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"dailytemp/report"
)

// Timezone providers.
const (
	ProviderGeoNames = "geonames"
	ProviderOffline  = "offline"
)

const envPrefix = "DAILYTEMP"

// maxForecastDays is the longest range Open-Meteo serves.
const maxForecastDays = 16

var ErrInvalid = errors.New("invalid configuration")

// Config holds all configuration for the application.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Timezone  TimezoneConfig  `mapstructure:"timezone"`
	GeoNames  GeoNamesConfig  `mapstructure:"geonames"`
	OpenMeteo OpenMeteoConfig `mapstructure:"openmeteo"`
	Report    ReportConfig    `mapstructure:"report"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

type HTTPConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"` // applied to each upstream call
	UserAgent string        `mapstructure:"user_agent"`
}

type TimezoneConfig struct {
	Provider string `mapstructure:"provider"` // geonames, offline
}

type GeoNamesConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
}

type OpenMeteoConfig struct {
	URL          string `mapstructure:"url"`
	ForecastDays int    `mapstructure:"forecast_days"` // 0 keeps the API default
}

type ReportConfig struct {
	Units  string `mapstructure:"units"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load builds the configuration from the given YAML defaults, an optional
// dailytemp.yaml file, a .env file and DAILYTEMP_* environment variables,
// in increasing order of precedence.
func Load(defaults []byte) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	v.SetConfigName("dailytemp")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.dailytemp")

	if err := v.MergeInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate reports the first setting that cannot be used, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("%w: http.timeout must be positive, got %s", ErrInvalid, c.HTTP.Timeout)
	}

	switch c.Timezone.Provider {
	case ProviderGeoNames:
		if c.GeoNames.Username == "" {
			return fmt.Errorf("%w: geonames.username is required for the %s provider (set %s_GEONAMES_USERNAME)",
				ErrInvalid, ProviderGeoNames, envPrefix)
		}
		if c.GeoNames.URL == "" {
			return fmt.Errorf("%w: geonames.url is empty", ErrInvalid)
		}
	case ProviderOffline:
	default:
		return fmt.Errorf("%w: unsupported timezone provider %q (available: %s, %s)",
			ErrInvalid, c.Timezone.Provider, ProviderGeoNames, ProviderOffline)
	}

	if c.OpenMeteo.URL == "" {
		return fmt.Errorf("%w: openmeteo.url is empty", ErrInvalid)
	}
	if c.OpenMeteo.ForecastDays < 0 || c.OpenMeteo.ForecastDays > maxForecastDays {
		return fmt.Errorf("%w: openmeteo.forecast_days must be between 0 and %d, got %d",
			ErrInvalid, maxForecastDays, c.OpenMeteo.ForecastDays)
	}

	if _, err := report.ParseUnits(c.Report.Units); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := report.ParseFormat(c.Report.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if _, ok := levels[strings.ToLower(c.Log.Level)]; !ok {
		return fmt.Errorf("%w: unsupported log level %q", ErrInvalid, c.Log.Level)
	}

	return nil
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// NewLogger creates a new slog.Logger writing to w based on the configuration.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, ok := levels[strings.ToLower(c.Log.Level)]
	if !ok {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
