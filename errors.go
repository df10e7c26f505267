package lingopipe

import "fmt"

// ValidationError indicates a rejected request (empty text, bad language pair).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ProviderError indicates a translation backend failure (API error, rate limit, etc.).
type ProviderError struct {
	Provider  string
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	name := e.Provider
	if name == "" {
		name = "provider"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error: %s: %v", name, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error: %s", name, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache operation failure.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// SynthesisError indicates a text-to-speech backend failure.
type SynthesisError struct {
	Provider  string
	Message   string
	Cause     error
	Retryable bool
}

func (e *SynthesisError) Error() string {
	name := e.Provider
	if name == "" {
		name = "tts"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s synthesis error: %s: %v", name, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s synthesis error: %s", name, e.Message)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}

// DetectionError indicates that language detection produced no usable result.
type DetectionError struct {
	Message string
	Lang    string // The offending code, if any
}

func (e *DetectionError) Error() string {
	if e.Lang != "" {
		return fmt.Sprintf("detection error: %s: %q", e.Message, e.Lang)
	}
	return fmt.Sprintf("detection error: %s", e.Message)
}
