package lingopipe

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
	}
}

func TestWithRetry_Success(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), testRetryConfig(), func() (string, error) {
		callCount++
		return "success", nil
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got %q", result)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
}

func TestWithRetry_RetryableError(t *testing.T) {
	callCount := 0
	result, err := WithRetry(context.Background(), testRetryConfig(), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", &ProviderError{Message: "rate limited", Retryable: true}
		}
		return "success", nil
	})

	if err != nil {
		t.Fatalf("Expected no error after retries, got: %v", err)
	}
	if result != "success" {
		t.Errorf("Expected 'success', got %q", result)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestWithRetry_NonRetryableError(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), testRetryConfig(), func() (string, error) {
		callCount++
		return "", &ProviderError{Message: "bad request", Retryable: false}
	})

	if err == nil {
		t.Fatal("Expected error")
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call for non-retryable error, got %d", callCount)
	}
}

func TestWithRetry_ExhaustsRetries(t *testing.T) {
	callCount := 0
	_, err := WithRetry(context.Background(), testRetryConfig(), func() (string, error) {
		callCount++
		return "", &ProviderError{Message: "still failing", Retryable: true}
	})

	if err == nil {
		t.Fatal("Expected error after exhausting retries")
	}
	// Initial attempt plus MaxRetries.
	if callCount != 4 {
		t.Errorf("Expected 4 calls, got %d", callCount)
	}
}

func TestWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(ctx, testRetryConfig(), func() (string, error) {
		return "", &ProviderError{Message: "fail", Retryable: true}
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"retryable provider error", &ProviderError{Retryable: true}, true},
		{"non-retryable provider error", &ProviderError{Retryable: false}, false},
		{"retryable synthesis error", &SynthesisError{Retryable: true}, true},
		{"non-retryable synthesis error", &SynthesisError{Retryable: false}, false},
		{"wrapped retryable", &ProviderError{Message: "outer", Cause: &ProviderError{Retryable: true}, Retryable: true}, true},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"plain error", errors.New("whatever"), false},
		{"validation error", &ValidationError{Message: "bad"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetryableProvider(t *testing.T) {
	provider := newMockProvider()
	provider.err = &ProviderError{Message: "flaky", Retryable: true}

	wrapped := NewRetryableProvider(provider, RetryConfig{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   10 * time.Millisecond,
	})

	if wrapped.Name() != "mock" {
		t.Errorf("Expected wrapped name 'mock', got %q", wrapped.Name())
	}

	_, err := wrapped.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"})
	if err == nil {
		t.Fatal("Expected error")
	}
	if provider.callCount != 3 {
		t.Errorf("Expected 3 attempts, got %d", provider.callCount)
	}

	provider.err = nil
	provider.callCount = 0
	result, err := wrapped.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "es"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "Hola" {
		t.Errorf("Expected 'Hola', got %q", result.Text)
	}
}
