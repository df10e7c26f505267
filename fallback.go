package lingopipe

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// FallbackProvider chains providers in order. Each fallback is invoked only
// when the previous provider's call fails; the first success wins.
type FallbackProvider struct {
	providers []Provider
	log       zerolog.Logger
}

// NewFallbackProvider creates a provider chain. At least one provider is
// required.
func NewFallbackProvider(log zerolog.Logger, providers ...Provider) *FallbackProvider {
	return &FallbackProvider{
		providers: providers,
		log:       log,
	}
}

// Name implements Provider.
func (p *FallbackProvider) Name() string {
	if len(p.providers) == 1 {
		return p.providers[0].Name()
	}
	return "fallback"
}

// Providers returns the chained providers in order.
func (p *FallbackProvider) Providers() []Provider {
	return p.providers
}

// Translate tries each provider in order and returns the first success.
func (p *FallbackProvider) Translate(ctx context.Context, req Request) (*Result, error) {
	var errs []error

	for _, prov := range p.providers {
		result, err := prov.Translate(ctx, req)
		if err == nil {
			return result, nil
		}

		p.log.Warn().
			Err(err).
			Str("provider", prov.Name()).
			Msg("translation provider failed, trying next")
		errs = append(errs, err)

		// Context errors abort the chain: the remaining providers would
		// fail the same way.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}

	return nil, p.exhausted(errs)
}

// Detect tries each provider in order and returns the first success.
func (p *FallbackProvider) Detect(ctx context.Context, text string) (*Detection, error) {
	var errs []error

	for _, prov := range p.providers {
		detection, err := prov.Detect(ctx, text)
		if err == nil {
			return detection, nil
		}

		p.log.Warn().
			Err(err).
			Str("provider", prov.Name()).
			Msg("detection provider failed, trying next")
		errs = append(errs, err)

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
	}

	return nil, p.exhausted(errs)
}

// exhausted builds the chain-failure error. The chain is retryable when any
// of the individual failures was.
func (p *FallbackProvider) exhausted(errs []error) error {
	if len(errs) == 0 {
		return &ProviderError{Message: "no providers configured"}
	}

	retryable := false
	for _, err := range errs {
		if IsRetryable(err) {
			retryable = true
			break
		}
	}

	return &ProviderError{
		Message:   "all providers failed",
		Cause:     errors.Join(errs...),
		Retryable: retryable,
	}
}
