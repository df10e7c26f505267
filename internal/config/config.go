// Package config loads application configuration from file, environment
// and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Listen    string `mapstructure:"listen"`
	LogLevel  string `mapstructure:"log_level"`
	LogPretty bool   `mapstructure:"log_pretty"`

	Defaults  DefaultsConfig  `mapstructure:"defaults"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Retry     RetryConfig     `mapstructure:"retry"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
	TTS       TTSConfig       `mapstructure:"tts"`
	History   HistoryConfig   `mapstructure:"history"`
}

// DefaultsConfig holds the default language pair for the UI.
type DefaultsConfig struct {
	Source string `mapstructure:"source"`
	Target string `mapstructure:"target"`
}

// CacheConfig configures the translation cache.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Backend  string        `mapstructure:"backend"` // "memory" or "redis"
	Capacity int           `mapstructure:"capacity"`
	TTL      time.Duration `mapstructure:"ttl"`
	RedisURL string        `mapstructure:"redis_url"`
}

// ProvidersConfig configures the translation provider chain.
type ProvidersConfig struct {
	// Order lists providers by name; earlier entries are tried first.
	Order   []string      `mapstructure:"order"`
	Timeout time.Duration `mapstructure:"timeout"`

	LibreTranslate LibreTranslateConfig `mapstructure:"libretranslate"`
	OpenAI         OpenAIConfig         `mapstructure:"openai"`
}

// LibreTranslateConfig configures the LibreTranslate provider.
type LibreTranslateConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
}

// OpenAIConfig configures the OpenAI provider and synthesizer.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// RetryConfig configures retry behavior around the provider chain.
type RetryConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	BaseDelay  time.Duration `mapstructure:"base_delay"`
	MaxDelay   time.Duration `mapstructure:"max_delay"`
}

// RateLimitConfig configures outbound request pacing.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

// BreakerConfig configures per-provider circuit breaking.
type BreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// TTSConfig configures speech synthesis.
type TTSConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Order lists synthesizers by name; earlier entries are tried first.
	Order []string `mapstructure:"order"`
	Slow  bool     `mapstructure:"slow"`
	Voice string   `mapstructure:"voice"`
	Model string   `mapstructure:"model"`
}

// HistoryConfig configures the translation history.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Size    int  `mapstructure:"size"`
}

// SetDefaults registers default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)

	v.SetDefault("defaults.source", "auto")
	v.SetDefault("defaults.target", "es")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.capacity", 1000)
	v.SetDefault("cache.ttl", 24*time.Hour)

	v.SetDefault("providers.order", []string{"google", "libretranslate"})
	v.SetDefault("providers.timeout", 10*time.Second)
	v.SetDefault("providers.libretranslate.endpoint", "https://libretranslate.com")
	v.SetDefault("providers.openai.model", "gpt-4o-mini")

	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.base_delay", time.Second)
	v.SetDefault("retry.max_delay", 30*time.Second)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.requests_per_minute", 60)

	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_failures", 5)
	v.SetDefault("breaker.timeout", 30*time.Second)

	v.SetDefault("tts.enabled", true)
	v.SetDefault("tts.order", []string{"google"})
	v.SetDefault("tts.voice", "alloy")
	v.SetDefault("tts.model", "tts-1")

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.size", 10)
}

// Load reads configuration from the given file (or the default search
// path when empty), environment variables prefixed with LINGOPIPE, and
// defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".lingopipe")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("LINGOPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; anything else is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache.redis_url is required for the redis backend")
	}
	if len(c.Providers.Order) == 0 {
		return fmt.Errorf("providers.order must list at least one provider")
	}
	for _, name := range c.Providers.Order {
		switch name {
		case "google", "libretranslate", "openai":
		default:
			return fmt.Errorf("unknown provider %q", name)
		}
	}
	for _, name := range c.TTS.Order {
		switch name {
		case "google", "openai":
		default:
			return fmt.Errorf("unknown synthesizer %q", name)
		}
	}
	return nil
}
