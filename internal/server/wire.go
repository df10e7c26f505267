package server

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lingopipe/lingopipe"
	"github.com/lingopipe/lingopipe/cache"
	"github.com/lingopipe/lingopipe/internal/config"
	"github.com/lingopipe/lingopipe/provider"
	"github.com/lingopipe/lingopipe/tts"
)

// BuildService assembles the translation service from configuration:
// providers in fallback order, each behind an optional circuit breaker,
// the whole chain behind optional rate limiting and retry, with the
// configured cache and history attached.
func BuildService(cfg *config.Config, log zerolog.Logger) (*lingopipe.Service, error) {
	var chain []lingopipe.Provider
	for _, name := range cfg.Providers.Order {
		p, err := buildProvider(name, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Breaker.Enabled {
			p = lingopipe.NewBreakerProvider(p, lingopipe.BreakerConfig{
				MaxFailures: cfg.Breaker.MaxFailures,
				Timeout:     cfg.Breaker.Timeout,
			})
		}
		chain = append(chain, p)
	}

	var prov lingopipe.Provider = lingopipe.NewFallbackProvider(log, chain...)

	if cfg.RateLimit.Enabled {
		prov = lingopipe.NewRateLimitedProvider(prov, lingopipe.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			BurstSize:         cfg.RateLimit.Burst,
		})
	}

	prov = lingopipe.NewRetryableProvider(prov, lingopipe.RetryConfig{
		MaxRetries: cfg.Retry.MaxRetries,
		BaseDelay:  cfg.Retry.BaseDelay,
		MaxDelay:   cfg.Retry.MaxDelay,
	})

	opts := []lingopipe.ServiceOption{
		lingopipe.WithLogger(log),
	}

	if cfg.Cache.Enabled {
		c, err := buildCache(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lingopipe.WithCache(c))
	}

	if cfg.History.Enabled {
		opts = append(opts, lingopipe.WithHistory(lingopipe.NewHistory(cfg.History.Size)))
	}

	return lingopipe.NewService(prov, opts...), nil
}

func buildProvider(name string, cfg *config.Config) (lingopipe.Provider, error) {
	switch name {
	case "google":
		return provider.NewGoogleProvider(provider.GoogleConfig{
			Timeout: cfg.Providers.Timeout,
		}), nil
	case "libretranslate":
		return provider.NewLibreTranslateProvider(provider.LibreTranslateConfig{
			Endpoint: cfg.Providers.LibreTranslate.Endpoint,
			APIKey:   cfg.Providers.LibreTranslate.APIKey,
			Timeout:  cfg.Providers.Timeout,
		}), nil
	case "openai":
		if cfg.Providers.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("provider %q requires providers.openai.api_key", name)
		}
		return provider.NewOpenAIProvider(provider.OpenAIConfig{
			APIKey: cfg.Providers.OpenAI.APIKey,
			Model:  cfg.Providers.OpenAI.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}

func buildCache(cfg *config.Config) (lingopipe.TranslationCache, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewLRUCache(cfg.Cache.Capacity, cfg.Cache.TTL), nil
	case "redis":
		return cache.NewRedisCache(cache.RedisConfig{
			URL: cfg.Cache.RedisURL,
			TTL: cfg.Cache.TTL,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

// buildSynthesizer assembles the speech synthesizer chain, or returns nil
// when synthesis is disabled.
func buildSynthesizer(cfg *config.Config, log zerolog.Logger) (tts.Synthesizer, error) {
	if !cfg.TTS.Enabled || len(cfg.TTS.Order) == 0 {
		return nil, nil
	}

	var chain []tts.Synthesizer
	for _, name := range cfg.TTS.Order {
		switch name {
		case "google":
			chain = append(chain, tts.NewGoogleSynthesizer(tts.GoogleConfig{
				Slow: cfg.TTS.Slow,
			}))
		case "openai":
			if cfg.Providers.OpenAI.APIKey == "" {
				return nil, fmt.Errorf("synthesizer %q requires providers.openai.api_key", name)
			}
			chain = append(chain, tts.NewOpenAISynthesizer(tts.OpenAIConfig{
				APIKey: cfg.Providers.OpenAI.APIKey,
				Model:  cfg.TTS.Model,
				Voice:  cfg.TTS.Voice,
			}))
		default:
			return nil, fmt.Errorf("unknown synthesizer %q", name)
		}
	}

	return tts.NewFallbackSynthesizer(log, chain...), nil
}
