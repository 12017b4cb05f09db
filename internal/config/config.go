// Package config provides application configuration management using Viper.
// Configuration is loaded from YAML files and environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Provider ProviderConfig `mapstructure:"provider"`
	Digest   DigestConfig   `mapstructure:"digest"`
	Ranking  RankingConfig  `mapstructure:"ranking"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name  string `mapstructure:"name"`
	Env   string `mapstructure:"env"` // development, staging, production
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Name         string        `mapstructure:"name"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	SSLMode      string        `mapstructure:"ssl_mode"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	MaxLifetime  time.Duration `mapstructure:"max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// ProviderConfig holds the external engagement feed settings.
type ProviderConfig struct {
	SocialFeed ProviderEndpoint `mapstructure:"social_feed"`
	VideoFeed  ProviderEndpoint `mapstructure:"video_feed"`
}

// ProviderEndpoint holds a single feed provider's configuration.
type ProviderEndpoint struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
	Retry   RetryConfig   `mapstructure:"retry"`
	CB      CBConfig      `mapstructure:"circuit_breaker"`
}

// RetryConfig holds retry settings.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	WaitTime    time.Duration `mapstructure:"wait_time"`
	MaxWaitTime time.Duration `mapstructure:"max_wait_time"`
}

// CBConfig holds circuit breaker settings.
type CBConfig struct {
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// DigestConfig holds the background digest cycle settings: how often to pull
// the feeds, recompute trending content and broadcast digests to subscribers.
type DigestConfig struct {
	Interval  time.Duration `mapstructure:"interval"`
	OnStartup bool          `mapstructure:"on_startup"`
	Timeout   time.Duration `mapstructure:"timeout"`
	TopPosts  int           `mapstructure:"top_posts"`
	TopVideos int           `mapstructure:"top_videos"`
}

// RankingConfig holds result-set limits for the ranked content endpoints.
type RankingConfig struct {
	PostLimit  int `mapstructure:"post_limit"`
	VideoLimit int `mapstructure:"video_limit"`
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, file path
}

// SentryConfig holds Sentry error tracking settings.
type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// RedisConfig holds Redis connection settings for caching and the digest lock.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig holds caching settings for ranked content results.
type CacheConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	ContentTTL time.Duration `mapstructure:"content_ttl"`
	KeyPrefix  string        `mapstructure:"key_prefix"`
}

// Load reads configuration from file and environment variables.
// Priority: env vars > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Config file not found, continue with defaults + env vars
	}

	// Environment variable settings
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "product-pulse-service")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", true)

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "product_pulse")
	v.SetDefault("database.user", "app")
	v.SetDefault("database.password", "secret")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_lifetime", "5m")

	// Social feed provider defaults
	v.SetDefault("provider.social_feed.base_url", "http://localhost:8081")
	v.SetDefault("provider.social_feed.api_key", "")
	v.SetDefault("provider.social_feed.timeout", "10s")
	v.SetDefault("provider.social_feed.retry.max_attempts", 3)
	v.SetDefault("provider.social_feed.retry.wait_time", "1s")
	v.SetDefault("provider.social_feed.retry.max_wait_time", "5s")
	v.SetDefault("provider.social_feed.circuit_breaker.max_requests", 3)
	v.SetDefault("provider.social_feed.circuit_breaker.interval", "60s")
	v.SetDefault("provider.social_feed.circuit_breaker.timeout", "30s")
	v.SetDefault("provider.social_feed.circuit_breaker.failure_ratio", 0.5)

	// Video feed provider defaults
	v.SetDefault("provider.video_feed.base_url", "http://localhost:8082")
	v.SetDefault("provider.video_feed.api_key", "")
	v.SetDefault("provider.video_feed.timeout", "10s")
	v.SetDefault("provider.video_feed.retry.max_attempts", 3)
	v.SetDefault("provider.video_feed.retry.wait_time", "1s")
	v.SetDefault("provider.video_feed.retry.max_wait_time", "5s")
	v.SetDefault("provider.video_feed.circuit_breaker.max_requests", 3)
	v.SetDefault("provider.video_feed.circuit_breaker.interval", "60s")
	v.SetDefault("provider.video_feed.circuit_breaker.timeout", "30s")
	v.SetDefault("provider.video_feed.circuit_breaker.failure_ratio", 0.5)

	// Digest cycle defaults
	v.SetDefault("digest.interval", "10m")
	v.SetDefault("digest.on_startup", true)
	v.SetDefault("digest.timeout", "60s")
	v.SetDefault("digest.top_posts", 3)
	v.SetDefault("digest.top_videos", 2)

	// Ranking defaults
	v.SetDefault("ranking.post_limit", 10)
	v.SetDefault("ranking.video_limit", 5)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output", "stdout")

	// Sentry defaults
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.sample_rate", 1.0)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.content_ttl", "5m")
	v.SetDefault("cache.key_prefix", "product-pulse")
}
