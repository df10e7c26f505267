package lingopipe

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestFallbackProvider_FirstSuccess(t *testing.T) {
	primary := newMockProvider()
	secondary := newMockProvider()

	chain := NewFallbackProvider(zerolog.Nop(), primary, secondary)

	result, err := chain.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "Hola" {
		t.Errorf("Expected 'Hola', got %q", result.Text)
	}
	if secondary.callCount != 0 {
		t.Errorf("Expected secondary untouched, got %d calls", secondary.callCount)
	}
}

func TestFallbackProvider_FallsThrough(t *testing.T) {
	primary := newMockProvider()
	primary.err = &ProviderError{Provider: "primary", Message: "down", Retryable: true}
	secondary := newMockProvider()

	chain := NewFallbackProvider(zerolog.Nop(), primary, secondary)

	result, err := chain.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "Hola" {
		t.Errorf("Expected 'Hola', got %q", result.Text)
	}
	if primary.callCount != 1 || secondary.callCount != 1 {
		t.Errorf("Expected one call each, got %d and %d", primary.callCount, secondary.callCount)
	}
}

func TestFallbackProvider_AllFail(t *testing.T) {
	first := newMockProvider()
	first.err = &ProviderError{Provider: "first", Message: "down", Retryable: false}
	second := newMockProvider()
	second.err = &ProviderError{Provider: "second", Message: "down", Retryable: true}

	chain := NewFallbackProvider(zerolog.Nop(), first, second)

	_, err := chain.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"})
	if err == nil {
		t.Fatal("Expected error when all providers fail")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	// The chain is retryable because one of its failures was.
	if !provErr.Retryable {
		t.Error("Expected chain error to be retryable")
	}
	if !errors.Is(err, first.err) {
		t.Error("Expected chain error to wrap the first failure")
	}
	if !errors.Is(err, second.err) {
		t.Error("Expected chain error to wrap the second failure")
	}
}

func TestFallbackProvider_NoneRetryable(t *testing.T) {
	first := newMockProvider()
	first.err = &ProviderError{Message: "bad request", Retryable: false}

	chain := NewFallbackProvider(zerolog.Nop(), first)

	_, err := chain.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"})
	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("Expected ProviderError, got %T", err)
	}
	if provErr.Retryable {
		t.Error("Expected chain error to be non-retryable")
	}
}

func TestFallbackProvider_ContextAbortsChain(t *testing.T) {
	first := newMockProvider()
	first.err = context.Canceled
	second := newMockProvider()

	chain := NewFallbackProvider(zerolog.Nop(), first, second)

	_, err := chain.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"})
	if err == nil {
		t.Fatal("Expected error")
	}
	if second.callCount != 0 {
		t.Errorf("Expected chain to abort on context error, secondary got %d calls", second.callCount)
	}
}

func TestFallbackProvider_NoProviders(t *testing.T) {
	chain := NewFallbackProvider(zerolog.Nop())

	_, err := chain.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"})
	if err == nil {
		t.Fatal("Expected error with no providers")
	}
}

func TestFallbackProvider_Detect(t *testing.T) {
	first := newMockProvider()
	first.err = &ProviderError{Message: "down", Retryable: true}
	second := newMockProvider()

	chain := NewFallbackProvider(zerolog.Nop(), first, second)

	detection, err := chain.Detect(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if detection.Lang != "en" {
		t.Errorf("Expected 'en', got %q", detection.Lang)
	}
}

func TestFallbackProvider_Name(t *testing.T) {
	single := NewFallbackProvider(zerolog.Nop(), newMockProvider())
	if single.Name() != "mock" {
		t.Errorf("Expected single chain to take the provider's name, got %q", single.Name())
	}

	multi := NewFallbackProvider(zerolog.Nop(), newMockProvider(), newMockProvider())
	if multi.Name() != "fallback" {
		t.Errorf("Expected 'fallback', got %q", multi.Name())
	}
}
