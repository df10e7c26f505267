package lingopipe

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig configures the provider circuit breaker.
type BreakerConfig struct {
	MaxFailures uint32        // Consecutive failures before the breaker opens
	Timeout     time.Duration // How long the breaker stays open
}

// DefaultBreakerConfig returns sensible defaults for circuit breaking.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxFailures: 5,
		Timeout:     30 * time.Second,
	}
}

// BreakerProvider wraps a Provider with a circuit breaker. After a run of
// consecutive failures the breaker opens and calls fail fast with a
// retryable ProviderError, letting a fallback provider take over without
// waiting on a dead backend.
type BreakerProvider struct {
	provider Provider
	breaker  *gobreaker.CircuitBreaker
}

// NewBreakerProvider creates a new circuit-breaking provider.
func NewBreakerProvider(provider Provider, cfg BreakerConfig) *BreakerProvider {
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = DefaultBreakerConfig().MaxFailures
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultBreakerConfig().Timeout
	}

	settings := gobreaker.Settings{
		Name:    provider.Name(),
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}

	return &BreakerProvider{
		provider: provider,
		breaker:  gobreaker.NewCircuitBreaker(settings),
	}
}

// Name implements Provider.
func (p *BreakerProvider) Name() string {
	return p.provider.Name()
}

// Translate implements Provider through the circuit breaker.
func (p *BreakerProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.provider.Translate(ctx, req)
	})
	if err != nil {
		return nil, p.wrapBreakerErr(err)
	}
	return result.(*Result), nil
}

// Detect implements Provider through the circuit breaker.
func (p *BreakerProvider) Detect(ctx context.Context, text string) (*Detection, error) {
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.provider.Detect(ctx, text)
	})
	if err != nil {
		return nil, p.wrapBreakerErr(err)
	}
	return result.(*Detection), nil
}

// State returns the current breaker state.
func (p *BreakerProvider) State() gobreaker.State {
	return p.breaker.State()
}

func (p *BreakerProvider) wrapBreakerErr(err error) error {
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return &ProviderError{
			Provider:  p.provider.Name(),
			Message:   "circuit breaker open",
			Cause:     err,
			Retryable: true,
		}
	}
	return err
}
