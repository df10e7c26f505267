package lingopipe

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Service is the main translation engine. It validates and sanitizes input,
// consults the cache, delegates to the configured provider (usually a
// fallback chain wrapped with retry) and records completed translations in
// the history.
type Service struct {
	provider Provider
	cache    TranslationCache
	history  *History
	pace     time.Duration
	log      zerolog.Logger
}

// ServiceOption is a functional option for configuring the Service.
type ServiceOption func(*Service)

// WithCache sets the translation cache.
func WithCache(cache TranslationCache) ServiceOption {
	return func(s *Service) {
		s.cache = cache
	}
}

// WithHistory sets the translation history.
func WithHistory(history *History) ServiceOption {
	return func(s *Service) {
		s.history = history
	}
}

// WithLogger sets the service logger.
func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// WithBatchPace sets the delay between consecutive provider calls in batch
// translation. Zero disables pacing.
func WithBatchPace(d time.Duration) ServiceOption {
	return func(s *Service) {
		s.pace = d
	}
}

// NewService creates a new translation service backed by the given provider.
func NewService(provider Provider, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		pace:     100 * time.Millisecond,
		log:      zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Translate translates req.Text from req.Source to req.Target.
func (s *Service) Translate(ctx context.Context, req Request) (*Result, error) {
	req.Source = NormalizeCode(req.Source)
	req.Target = NormalizeCode(req.Target)

	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	req.Text = Sanitize(req.Text)

	// Cache lookup
	key := CacheKey(req.Text, req.Source, req.Target)
	if s.cache != nil && !req.SkipCache {
		if cached, ok := s.cache.Get(key); ok {
			s.log.Debug().
				Str("source", req.Source).
				Str("target", req.Target).
				Msg("cache hit")
			result := &Result{
				Text:     cached,
				Source:   req.Source,
				Target:   req.Target,
				Provider: "cache",
				Cached:   true,
			}
			s.record(req, result)
			return result, nil
		}
	}

	result, err := s.provider.Translate(ctx, req)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("source", req.Source).
			Str("target", req.Target).
			Msg("translation failed")
		return nil, err
	}

	if result.Target == "" {
		result.Target = req.Target
	}
	if result.Source == "" {
		result.Source = req.Source
	}
	if req.Source == AutoDetect && result.DetectedLang != "" {
		result.DetectedLang = NormalizeCode(result.DetectedLang)
		if !IsValidLanguage(result.DetectedLang) {
			s.log.Warn().
				Str("lang", result.DetectedLang).
				Msg("provider reported unknown source language")
		} else {
			result.Source = result.DetectedLang
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(key, result.Text); err != nil {
			// A failed cache write costs a future lookup, nothing else.
			s.log.Debug().Err(err).Msg("cache set failed")
		}
	}

	s.log.Info().
		Str("provider", result.Provider).
		Str("source", result.Source).
		Str("target", result.Target).
		Int("chars", len(req.Text)).
		Msg("translated")

	s.record(req, result)
	return result, nil
}

// Detect identifies the language of the given text.
func (s *Service) Detect(ctx context.Context, text string) (*Detection, error) {
	if err := ValidateText(text, MaxTextLen); err != nil {
		return nil, err
	}
	text = Sanitize(text)

	detection, err := s.provider.Detect(ctx, text)
	if err != nil {
		return nil, err
	}

	detection.Lang = NormalizeCode(detection.Lang)
	if !IsValidLanguage(detection.Lang) {
		return nil, &DetectionError{Message: "unknown language detected", Lang: detection.Lang}
	}

	s.log.Info().
		Str("provider", detection.Provider).
		Str("lang", detection.Lang).
		Float64("confidence", detection.Confidence).
		Msg("language detected")

	return detection, nil
}

// Cache returns the configured cache, or nil.
func (s *Service) Cache() TranslationCache {
	return s.cache
}

// History returns the configured history, or nil.
func (s *Service) History() *History {
	return s.history
}

// Provider returns the underlying provider.
func (s *Service) Provider() Provider {
	return s.provider
}

func (s *Service) record(req Request, result *Result) {
	if s.history == nil {
		return
	}
	s.history.Add(HistoryEntry{
		SourceText:     Preview(req.Text, 100),
		TranslatedText: Preview(result.Text, 100),
		Source:         result.Source,
		Target:         result.Target,
		Provider:       result.Provider,
		Cached:         result.Cached,
	})
}
