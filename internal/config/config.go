package config

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Server   struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Cache struct {
		Backend       string `mapstructure:"backend"` // "memory" or "redis"
		Size          int    `mapstructure:"size"`    // Maximum number of entries in the LRU cache
		TTL           string `mapstructure:"ttl"`     // Go duration string like "168h"
		RedisAddress  string `mapstructure:"redis_address"`
		RedisPassword string `mapstructure:"redis_password"`
		RedisDB       int    `mapstructure:"redis_db"`
	} `mapstructure:"cache"`
	Matcher struct {
		AcceptThreshold float64 `mapstructure:"accept_threshold"` // Minimum confidence to retain a match
		SearchTimeout   string  `mapstructure:"search_timeout"`   // Per-provider search timeout, Go duration string
	} `mapstructure:"matcher"`
	Aggregator struct {
		FetchTimeout    string  `mapstructure:"fetch_timeout"`    // Per-provider details/episodes timeout
		SeasonThreshold float64 `mapstructure:"season_threshold"` // Coverage needed for season grouping
		PageSize        int     `mapstructure:"page_size"`        // Episodes per page when grouping falls back
	} `mapstructure:"aggregator"`
}

// Default tuning values. These match the observed behavior of the trackers
// the resolver integrates with and can all be overridden in config.
const (
	DefaultCacheTTL        = 7 * 24 * time.Hour
	DefaultCacheSize       = 1000
	DefaultAcceptThreshold = 0.75
	DefaultSearchTimeout   = 15 * time.Second
	DefaultFetchTimeout    = 20 * time.Second
	DefaultSeasonThreshold = 0.9
	DefaultPageSize        = 50
)

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	config, err := LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	// Set the global log level
	zerolog.SetGlobalLevel(level)

	// Update logger with the configured level
	logger = logger.Level(level)

	globalConfig = config
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variable support
	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.address", "localhost")
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9090)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.size", DefaultCacheSize)
	viper.SetDefault("cache.ttl", DefaultCacheTTL.String())
	viper.SetDefault("matcher.accept_threshold", DefaultAcceptThreshold)
	viper.SetDefault("matcher.search_timeout", DefaultSearchTimeout.String())
	viper.SetDefault("aggregator.fetch_timeout", DefaultFetchTimeout.String())
	viper.SetDefault("aggregator.season_threshold", DefaultSeasonThreshold)
	viper.SetDefault("aggregator.page_size", DefaultPageSize)

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func GetConfig() *Config {
	return globalConfig
}

func GetLogger() zerolog.Logger {
	return logger
}

// CacheTTL parses the configured cache TTL, falling back to the default on
// an empty or invalid duration string.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, DefaultCacheTTL)
}

// SearchTimeout parses the configured per-provider search timeout.
func (c *Config) SearchTimeout() time.Duration {
	return parseDuration(c.Matcher.SearchTimeout, DefaultSearchTimeout)
}

// FetchTimeout parses the configured per-provider fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return parseDuration(c.Aggregator.FetchTimeout, DefaultFetchTimeout)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Warn().Str("duration", s).Msg("Invalid duration in config, using default")
		return fallback
	}
	return d
}
