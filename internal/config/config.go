// Package config loads application configuration from config.yaml, .env and the environment.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override, e.g. ACS_DEMOS_ACS_YEAR.
const EnvPrefix = "ACS_DEMOS"

// Config holds the full application configuration.
type Config struct {
	ACS    ACSConfig    `yaml:"acs" mapstructure:"acs"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ACSConfig configures the Census ACS API client and query defaults.
type ACSConfig struct {
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	Year        int    `yaml:"year" mapstructure:"year"`
	Dataset     string `yaml:"dataset" mapstructure:"dataset"`
	StateFIPS   string `yaml:"state_fips" mapstructure:"state_fips"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
}

// Timeout returns the HTTP timeout as a duration.
func (c ACSConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// OutputConfig configures how results are rendered.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment. A .env file in the working directory
// is loaded first; it never overrides variables already set in the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !isNotExist(err) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("acs.api_key", EnvPrefix+"_ACS_API_KEY", "CENSUS_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind api key env")
	}

	// Defaults
	v.SetDefault("acs.base_url", "https://api.census.gov/data")
	v.SetDefault("acs.year", 2022)
	v.SetDefault("acs.dataset", "acs5")
	v.SetDefault("acs.state_fips", "08")
	v.SetDefault("acs.timeout_secs", 30)
	v.SetDefault("acs.max_retries", 1)
	v.SetDefault("acs.user_agent", "acs-demos/1.0")
	v.SetDefault("output.format", "table")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail deep inside a request.
func (c *Config) Validate() error {
	if c.ACS.BaseURL == "" {
		return eris.New("config: acs.base_url is required")
	}
	if c.ACS.TimeoutSecs <= 0 {
		return eris.Errorf("config: acs.timeout_secs must be positive, got %d", c.ACS.TimeoutSecs)
	}
	if c.ACS.MaxRetries < 1 {
		return eris.Errorf("config: acs.max_retries must be at least 1, got %d", c.ACS.MaxRetries)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
